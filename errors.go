package ogmneo

import (
	"errors"
	"io"
	"log/slog"
)

var (
	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotConnected indicates the database could not be reached when
	// opening a connection.
	ErrNotConnected = errors.New("not connected")
)

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer ogmneo.CloseWithLog(journal, logger, "redis journal")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
