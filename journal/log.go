package journal

import (
	"context"
	"log/slog"
)

// LogJournal writes entries to a slog.Logger. Successful statements are
// logged at the configured level, failures and rolled back statements at
// warn.
type LogJournal struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLog returns a journal logging to logger at level. A nil logger uses
// slog.Default().
func NewLog(logger *slog.Logger, level slog.Level) *LogJournal {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogJournal{logger: logger, level: level}
}

// Record logs the entry.
func (j *LogJournal) Record(ctx context.Context, e Entry) error {
	level := j.level
	if e.Failed() || e.RolledBack {
		level = slog.LevelWarn
	}
	if !j.logger.Enabled(ctx, level) {
		return nil
	}

	attrs := []slog.Attr{
		slog.String("operation_id", e.OperationID),
		slog.String("kind", e.Kind),
		slog.String("statement", e.Statement),
		slog.Duration("duration", e.Duration),
		slog.Int("rows", e.Rows),
	}
	if e.BatchID != "" {
		attrs = append(attrs, slog.String("batch_id", e.BatchID), slog.Int("index", e.Index))
	}
	if len(e.Parameters) > 0 {
		attrs = append(attrs, slog.Any("parameters", e.Parameters))
	}
	if e.Failed() {
		attrs = append(attrs, slog.String("error", e.Error))
	}
	if e.RolledBack {
		attrs = append(attrs, slog.Bool("rolled_back", true))
	}

	j.logger.LogAttrs(ctx, level, "statement executed", attrs...)
	return nil
}
