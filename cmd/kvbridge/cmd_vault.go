package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ucvault "github.com/kvbridge/kvbridge/usecase/vault"
)

// newCmdVault returns the parent command for vault-related operations.
func newCmdVault() *cobra.Command {
	c := &cobra.Command{
		Use:   "vault",
		Short: "Key Vault related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdVaultList())
	c.AddCommand(newCmdVaultStatus())
	c.AddCommand(newCmdVaultProvision())
	c.AddCommand(newCmdVaultDeprovision())
	return c
}

func newCmdVaultList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured vaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := newVaultUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := uc.List(cmd.Context(), &ucvault.ListInput{})
			if err != nil {
				return err
			}
			for _, v := range out.Vaults {
				fmt.Fprintf(cmd.OutOrStdout(), "name=%s resourceGroup=%s uri=%s driver=%s\n",
					v.Name, v.ResourceGroup, v.URI, v.Driver)
			}
			return nil
		},
	}
}

func newCmdVaultStatus() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "status",
		Short: "Show vault provisioning status",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newVaultUseCase(cmd)
			if err != nil {
				return err
			}
			v, err := resolveVault(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			out, err := uc.Status(cmd.Context(), &ucvault.StatusInput{VaultID: v.ID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name=%s exists=%t provisioned=%t uri=%s\n",
				v.Name, out.Status.Exists, out.Status.Provisioned, out.Status.URI)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Vault name (optional when only one vault is configured)")
	return c
}

func newCmdVaultProvision() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "provision",
		Short: "Provision the vault in Azure",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newVaultUseCase(cmd)
			if err != nil {
				return err
			}
			v, err := resolveVault(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			out, err := uc.Provision(cmd.Context(), &ucvault.ProvisionInput{VaultID: v.ID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "provisioned name=%s uri=%s\n", out.Vault.Name, out.Vault.URI)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Vault name (optional when only one vault is configured)")
	return c
}

func newCmdVaultDeprovision() *cobra.Command {
	var name string
	var purge bool
	c := &cobra.Command{
		Use:   "deprovision",
		Short: "Delete the vault in Azure",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newVaultUseCase(cmd)
			if err != nil {
				return err
			}
			v, err := resolveVault(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			if _, err := uc.Deprovision(cmd.Context(), &ucvault.DeprovisionInput{VaultID: v.ID, Purge: purge}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deprovisioned name=%s purge=%t\n", v.Name, purge)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Vault name (optional when only one vault is configured)")
	c.Flags().BoolVar(&purge, "purge", false, "Also purge the soft-deleted vault so the name frees up")
	return c
}
