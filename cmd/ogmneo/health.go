package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/LucianoPAlmeida/OGMNeo/health"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the database and journal connections",
		Long: `Connect with the configured settings and report whether Neo4j and
each configured journal are reachable. Exits non-zero when unhealthy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, closeConn, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeConn()

			jsonOut, _ := cmd.Flags().GetBool("json")
			status := conn.Health(cmd.Context())
			if err := printHealth(cmd.OutOrStdout(), status, jsonOut); err != nil {
				return err
			}
			if status.IsUnhealthy() {
				return fmt.Errorf("connection is %s", status.Status)
			}
			return nil
		},
	}
}

func printHealth(w io.Writer, s health.Status, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", s.Status, s.Message)
	return err
}
