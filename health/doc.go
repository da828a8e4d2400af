// Package health reports whether the database and the statement journals
// a connection depends on are reachable.
//
// Each check returns a Status. Combine folds several statuses into one with
// this priority:
//
//   - Unhealthy: if any check is unhealthy, the combined result is unhealthy
//   - Degraded: if any check is degraded (and none unhealthy), the result is degraded
//   - Healthy: if all checks are healthy, the result is healthy
//
// A failing database is unhealthy. A failing journal is only degraded, since
// statements still execute when their journal entries are lost.
package health
