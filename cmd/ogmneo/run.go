package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ogmneo "github.com/LucianoPAlmeida/OGMNeo"
	"github.com/LucianoPAlmeida/OGMNeo/config"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <statement>",
		Short: "Run a statement and print its rows",
		Long: `Run one statement in a transaction and print each row as JSON.

Examples:
  ogmneo run 'MATCH (n:Person) RETURN n LIMIT 5'
  ogmneo run --write 'CREATE (n:Person { name : $name }) RETURN n' --param name=ada`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			rawParams, _ := cmd.Flags().GetStringArray("param")

			params := map[string]any{}
			for _, p := range rawParams {
				name, value, err := parseParam(p)
				if err != nil {
					return err
				}
				params[name] = value
			}
			kind := operation.Read
			if write {
				kind = operation.Write
			}

			conn, closeConn, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeConn()

			result, err := conn.Cypher().Run(cmd.Context(), kind, args[0], params)
			if err != nil {
				return fmt.Errorf("statement failed: %w", err)
			}
			return printRows(cmd, result)
		},
	}

	cmd.Flags().Bool("write", false, "Run in a write transaction")
	cmd.Flags().StringArray("param", nil, "Statement parameter as name=value (repeatable)")
	return cmd
}

func printRows(cmd *cobra.Command, result *session.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, rec := range result.Records {
		row := make(map[string]any, len(rec.Keys))
		for i, k := range rec.Keys {
			if i < len(rec.Values) {
				row[k] = rec.Values[i]
			}
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	if !jsonOut {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d row(s), columns: %s\n", result.Len(), strings.Join(result.Keys, ", "))
	}
	return nil
}

// connect opens a connection from the --config flag, an etcd key or the
// environment. The returned func closes it and logs close failures.
func connect(cmd *cobra.Command) (*ogmneo.Connection, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}
	cfg, err := config.Load(ctx, path, nil)
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Log.Logger(os.Stderr)
	conn, err := ogmneo.OpenConfig(ctx, cfg, ogmneo.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return conn, func() {
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil {
			logger.Warn("failed to close connection", "error", cerr)
		}
	}, nil
}
