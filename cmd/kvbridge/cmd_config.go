package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvbridge/kvbridge/config/kvbridgecfg"
)

// newCmdConfig returns a command that reads and shows the current configuration.
func newCmdConfig() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:   "config",
		Short: "Read and validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = kvbridgecfg.DefaultConfigPath
			}
			cfg, err := kvbridgecfg.Load(file)
			if err != nil {
				return err
			}
			// Print a concise summary to stdout
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d vault=%s cluster=%s bindings=%d\n",
				cfg.Version, cfg.Vault.Name, cfg.Cluster.Name, len(cfg.Bindings))
			for i := range cfg.Bindings {
				b := &cfg.Bindings[i]
				fmt.Fprintf(cmd.OutOrStdout(), "binding name=%s vaultSecret=%s namespace=%s key=%s deployment=%s\n",
					b.Name, b.VaultSecret, b.Namespace, b.Key, b.Deployment)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&file, "file", "f", kvbridgecfg.DefaultConfigPath, "Path to kvbridge.yml")
	return c
}
