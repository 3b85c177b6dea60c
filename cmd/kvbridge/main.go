package main

import (
	"context"
	"os"

	"log/slog"

	"github.com/spf13/cobra"

	_ "github.com/kvbridge/kvbridge/adapters/drivers/provider/azure"
	"github.com/kvbridge/kvbridge/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kvbridge",
		Short:   "Key Vault to Kubernetes secret sync",
		Long:    "kvbridge provisions Azure Key Vaults, migrates credentials into them, and keeps Kubernetes Secrets and their dependent workloads in sync with vault secret rotations.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDB := os.Getenv("KVBRIDGE_DB_URL")
	if defaultDB == "" {
		defaultDB = "file:kvbridge.yml"
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "Database URL (env KVBRIDGE_DB_URL) (file:/path/to/kvbridge.yml | sqlite:/path/to.db)")
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env KVBRIDGE_LOG_FORMAT)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("KVBRIDGE_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		l, err := logging.New(format, slog.LevelInfo)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdVault())
	cmd.AddCommand(newCmdCluster())
	cmd.AddCommand(newCmdSecret())
	cmd.AddCommand(newCmdBinding())
	cmd.AddCommand(newCmdSync())
	cmd.AddCommand(newCmdRedis())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
