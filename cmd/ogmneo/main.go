// Command ogmneo renders node and relationship queries and runs raw
// statements against a Neo4j database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ogmneo",
		Short: "Build and run Cypher queries",
		Long: `ogmneo renders the statements produced by node and relationship
queries, and runs raw statements in a single transaction.

Connection settings come from --config, an etcd key named by
OGMNEO_ETCD_ENDPOINTS, or OGMNEO_* environment variables.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRenderCmd(),
		newRunCmd(),
		newHealthCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ogmneo version %s\n", version)
		},
	}
}
