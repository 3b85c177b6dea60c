package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ucbinding "github.com/kvbridge/kvbridge/usecase/binding"
)

// newCmdBinding returns the parent command for binding operations.
func newCmdBinding() *cobra.Command {
	c := &cobra.Command{
		Use:   "binding",
		Short: "Vault-to-cluster binding related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdBindingList())
	c.AddCommand(newCmdBindingShow())
	c.AddCommand(newCmdBindingApply())
	c.AddCommand(newCmdBindingUnapply())
	c.AddCommand(newCmdBindingDelete())
	return c
}

func newCmdBindingList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := newBindingUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := uc.List(cmd.Context(), &ucbinding.ListInput{})
			if err != nil {
				return err
			}
			for _, b := range out.Bindings {
				fmt.Fprintf(cmd.OutOrStdout(), "name=%s vaultSecret=%s namespace=%s secret=%s key=%s deployment=%s interval=%s\n",
					b.Name, b.VaultSecret, b.Namespace, b.SecretName, b.SecretKey, b.Deployment, b.EffectiveInterval())
			}
			return nil
		},
	}
}

func newCmdBindingShow() *cobra.Command {
	c := &cobra.Command{
		Use:   "show NAME",
		Short: "Show a binding and its last sync state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newBindingUseCase(cmd)
			if err != nil {
				return err
			}
			b, err := resolveBinding(cmd.Context(), repos, args[0])
			if err != nil {
				return err
			}
			out, err := uc.Get(cmd.Context(), &ucbinding.GetInput{BindingID: b.ID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name=%s vaultSecret=%s namespace=%s secret=%s key=%s deployment=%s interval=%s\n",
				b.Name, b.VaultSecret, b.Namespace, b.SecretName, b.SecretKey, b.Deployment, b.EffectiveInterval())
			if st := out.SyncState; st != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "synced version=%s hash=%s at=%s\n",
					st.Version, st.Hash, st.SyncedAt.Format("2006-01-02T15:04:05Z07:00"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "synced never")
			}
			return nil
		},
	}
	return c
}

func newCmdBindingApply() *cobra.Command {
	c := &cobra.Command{
		Use:   "apply NAME",
		Short: "Materialize a binding in the cluster",
		Long:  "Grants the kubelet identity read access to the vault, ensures the namespace, and applies the SecretProviderClass.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			uc, repos, err := newBindingUseCase(cmd)
			if err != nil {
				return err
			}
			b, err := resolveBinding(cmd.Context(), repos, args[0])
			if err != nil {
				return err
			}
			if _, err := uc.Apply(cmd.Context(), &ucbinding.ApplyInput{BindingID: b.ID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied name=%s namespace=%s\n", b.Name, b.Namespace)
			return nil
		},
	}
	return c
}

func newCmdBindingUnapply() *cobra.Command {
	c := &cobra.Command{
		Use:   "unapply NAME",
		Short: "Remove a binding's cluster resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			uc, repos, err := newBindingUseCase(cmd)
			if err != nil {
				return err
			}
			b, err := resolveBinding(cmd.Context(), repos, args[0])
			if err != nil {
				return err
			}
			if _, err := uc.Unapply(cmd.Context(), &ucbinding.UnapplyInput{BindingID: b.ID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unapplied name=%s\n", b.Name)
			return nil
		},
	}
	return c
}

func newCmdBindingDelete() *cobra.Command {
	c := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a binding and its sync state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newBindingUseCase(cmd)
			if err != nil {
				return err
			}
			b, err := resolveBinding(cmd.Context(), repos, args[0])
			if err != nil {
				return err
			}
			if _, err := uc.Delete(cmd.Context(), &ucbinding.DeleteInput{BindingID: b.ID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted name=%s\n", b.Name)
			return nil
		},
	}
	return c
}
