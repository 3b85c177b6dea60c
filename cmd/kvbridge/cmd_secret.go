package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	ucsecret "github.com/kvbridge/kvbridge/usecase/secret"
)

// newCmdSecret returns the parent command for vault secret operations.
func newCmdSecret() *cobra.Command {
	c := &cobra.Command{
		Use:   "secret",
		Short: "Vault secret related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdSecretSet())
	c.AddCommand(newCmdSecretGet())
	c.AddCommand(newCmdSecretVersions())
	c.AddCommand(newCmdSecretMigrate())
	return c
}

// readSecretValue resolves the secret material: --value wins, then stdin.
// A terminal gets a no-echo prompt; a pipe is read whole and trimmed of the
// trailing newline.
func readSecretValue(cmd *cobra.Command, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Value: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func newCmdSecretSet() *cobra.Command {
	var vaultName string
	var value string
	c := &cobra.Command{
		Use:   "set NAME",
		Short: "Write a new secret version into the vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newSecretUseCase(cmd)
			if err != nil {
				return err
			}
			v, err := resolveVault(cmd.Context(), repos, vaultName)
			if err != nil {
				return err
			}
			material, err := readSecretValue(cmd, value)
			if err != nil {
				return err
			}
			out, err := uc.Set(cmd.Context(), &ucsecret.SetInput{
				VaultID: v.ID, Name: args[0], Value: material,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "set name=%s version=%s\n", args[0], out.Version)
			return nil
		},
	}
	c.Flags().StringVar(&vaultName, "vault", "", "Vault name (optional when only one vault is configured)")
	c.Flags().StringVar(&value, "value", "", "Secret value (omit to read from stdin)")
	return c
}

func newCmdSecretGet() *cobra.Command {
	var vaultName string
	var version string
	var showValue bool
	c := &cobra.Command{
		Use:   "get NAME",
		Short: "Read a secret from the vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newSecretUseCase(cmd)
			if err != nil {
				return err
			}
			v, err := resolveVault(cmd.Context(), repos, vaultName)
			if err != nil {
				return err
			}
			out, err := uc.Get(cmd.Context(), &ucsecret.GetInput{
				VaultID: v.ID, Name: args[0], Version: version,
			})
			if err != nil {
				return err
			}
			if showValue {
				fmt.Fprintln(cmd.OutOrStdout(), out.Secret.Value)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name=%s version=%s length=%d\n",
				args[0], out.Secret.Version, len(out.Secret.Value))
			return nil
		},
	}
	c.Flags().StringVar(&vaultName, "vault", "", "Vault name (optional when only one vault is configured)")
	c.Flags().StringVar(&version, "version", "", "Secret version (default: latest)")
	c.Flags().BoolVar(&showValue, "value", false, "Print the raw secret value instead of metadata")
	return c
}

func newCmdSecretVersions() *cobra.Command {
	var vaultName string
	c := &cobra.Command{
		Use:   "versions NAME",
		Short: "List versions of a secret, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newSecretUseCase(cmd)
			if err != nil {
				return err
			}
			v, err := resolveVault(cmd.Context(), repos, vaultName)
			if err != nil {
				return err
			}
			out, err := uc.Versions(cmd.Context(), &ucsecret.VersionsInput{VaultID: v.ID, Name: args[0]})
			if err != nil {
				return err
			}
			for _, sv := range out.Versions {
				fmt.Fprintf(cmd.OutOrStdout(), "version=%s enabled=%t updated=%s\n",
					sv.Version, sv.Enabled, sv.Updated.Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	}
	c.Flags().StringVar(&vaultName, "vault", "", "Vault name (optional when only one vault is configured)")
	return c
}

func newCmdSecretMigrate() *cobra.Command {
	var vaultName string
	var file string
	var only []string
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Import secrets from a local env file into the vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newSecretUseCase(cmd)
			if err != nil {
				return err
			}
			v, err := resolveVault(cmd.Context(), repos, vaultName)
			if err != nil {
				return err
			}
			out, err := uc.Migrate(cmd.Context(), &ucsecret.MigrateInput{
				VaultID: v.ID, Path: file, Only: only,
			})
			if err != nil {
				return err
			}
			for _, s := range out.Secrets {
				fmt.Fprintf(cmd.OutOrStdout(), "migrated key=%s name=%s version=%s\n", s.Key, s.Name, s.Version)
			}
			return nil
		},
	}
	c.Flags().StringVar(&vaultName, "vault", "", "Vault name (optional when only one vault is configured)")
	c.Flags().StringVarP(&file, "file", "f", "", "Path to .env, .json, or .yaml secrets file")
	c.Flags().StringArrayVar(&only, "only", nil, "Migrate only the named keys. Can be repeated.")
	_ = c.MarkFlagRequired("file")
	return c
}
