// Package journal records executed operations.
//
// The operation executer hands every statement it ran to a Journal together
// with its parameters, duration and outcome. LogJournal writes entries to a
// slog.Logger, RedisJournal keeps a capped list of recent entries in Redis
// and publishes each one on a pub/sub channel, and Multi fans out to several
// journals.
//
// Entries are encoded as protobuf JSON (a google.protobuf.Struct), which
// keeps parameter values readable by any consumer without a Go type.
//
// Example:
//
//	j, err := journal.NewRedis(journal.RedisOptions{URL: "redis://localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer j.Close()
//	exec := operation.NewExecuter(provider, operation.WithJournal(j))
package journal
