package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ucworkload "github.com/kvbridge/kvbridge/usecase/workload"
)

// newCmdRedis returns the parent command for the Redis reference workload.
func newCmdRedis() *cobra.Command {
	c := &cobra.Command{
		Use:   "redis",
		Short: "Redis workload related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdRedisDeploy())
	c.AddCommand(newCmdRedisRemove())
	c.AddCommand(newCmdRedisVerify())
	return c
}

func newCmdRedisDeploy() *cobra.Command {
	var release string
	c := &cobra.Command{
		Use:   "deploy BINDING",
		Short: "Install Redis wired to a binding's synced Secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			uc, repos, err := newWorkloadUseCase(cmd)
			if err != nil {
				return err
			}
			b, err := resolveBinding(cmd.Context(), repos, args[0])
			if err != nil {
				return err
			}
			out, err := uc.DeployRedis(cmd.Context(), &ucworkload.DeployRedisInput{
				BindingID: b.ID, Release: release,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deployed release=%s namespace=%s\n", out.Release, b.Namespace)
			return nil
		},
	}
	c.Flags().StringVar(&release, "release", "", "Helm release name (default: binding name)")
	return c
}

func newCmdRedisRemove() *cobra.Command {
	var release string
	c := &cobra.Command{
		Use:   "remove BINDING",
		Short: "Uninstall the Redis release for a binding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			uc, repos, err := newWorkloadUseCase(cmd)
			if err != nil {
				return err
			}
			b, err := resolveBinding(cmd.Context(), repos, args[0])
			if err != nil {
				return err
			}
			if _, err := uc.RemoveRedis(cmd.Context(), &ucworkload.RemoveRedisInput{
				BindingID: b.ID, Release: release,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed namespace=%s\n", b.Namespace)
			return nil
		},
	}
	c.Flags().StringVar(&release, "release", "", "Helm release name (default: binding name)")
	return c
}

func newCmdRedisVerify() *cobra.Command {
	var addr string
	var password string
	var vaultName string
	var secretName string
	c := &cobra.Command{
		Use:   "verify",
		Short: "Check that Redis accepts the credential held in the vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newWorkloadUseCase(cmd)
			if err != nil {
				return err
			}
			in := &ucworkload.VerifyRedisInput{Addr: addr, Password: password}
			if password == "" {
				v, err := resolveVault(cmd.Context(), repos, vaultName)
				if err != nil {
					return err
				}
				in.VaultID = v.ID
				in.SecretName = secretName
			}
			out, err := uc.VerifyRedis(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "verified addr=%s version=%s latency=%s\n",
				addr, out.Version, out.Latency)
			return nil
		},
	}
	c.Flags().StringVar(&addr, "addr", "", "Redis endpoint, host:port")
	c.Flags().StringVar(&password, "password", "", "Password to test directly (skips vault lookup)")
	c.Flags().StringVar(&vaultName, "vault", "", "Vault name (optional when only one vault is configured)")
	c.Flags().StringVar(&secretName, "secret", "", "Vault secret holding the password")
	_ = c.MarkFlagRequired("addr")
	return c
}
