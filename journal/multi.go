package journal

import (
	"context"
	"errors"
)

type multi []Journal

// Multi returns a journal that records to every non-nil journal in order.
// All journals are attempted and their errors are joined.
func Multi(journals ...Journal) Journal {
	var kept multi
	for _, j := range journals {
		if j != nil {
			kept = append(kept, j)
		}
	}
	switch len(kept) {
	case 0:
		return Discard
	case 1:
		return kept[0]
	}
	return kept
}

func (m multi) Record(ctx context.Context, e Entry) error {
	var errs []error
	for _, j := range m {
		if err := j.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
