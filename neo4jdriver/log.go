package neo4jdriver

import (
	"fmt"
	"log/slog"
)

// slogAdapter implements the driver's log.Logger on top of slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Error(name, id string, err error) {
	a.logger.Error("neo4j driver error", "component", name, "id", id, "error", err)
}

func (a *slogAdapter) Warnf(name, id string, msg string, args ...any) {
	a.logger.Warn(fmt.Sprintf(msg, args...), "component", name, "id", id)
}

func (a *slogAdapter) Infof(name, id string, msg string, args ...any) {
	a.logger.Info(fmt.Sprintf(msg, args...), "component", name, "id", id)
}

func (a *slogAdapter) Debugf(name, id string, msg string, args ...any) {
	a.logger.Debug(fmt.Sprintf(msg, args...), "component", name, "id", id)
}
