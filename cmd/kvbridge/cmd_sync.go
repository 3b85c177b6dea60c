package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	ucsyncer "github.com/kvbridge/kvbridge/usecase/syncer"
)

// newCmdSync returns the parent command for the sync poller.
func newCmdSync() *cobra.Command {
	c := &cobra.Command{
		Use:   "sync",
		Short: "Secret sync related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdSyncOnce())
	c.AddCommand(newCmdSyncRun())
	return c
}

// resolveBindingIDs maps binding names from args to ids; no args means all.
func resolveBindingIDs(cmd *cobra.Command, args []string) ([]string, *ucsyncer.UseCase, error) {
	uc, repos, err := newSyncerUseCase(cmd)
	if err != nil {
		return nil, nil, err
	}
	var ids []string
	for _, name := range args {
		b, err := resolveBinding(cmd.Context(), repos, name)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, b.ID)
	}
	return ids, uc, nil
}

func newCmdSyncOnce() *cobra.Command {
	c := &cobra.Command{
		Use:   "once [NAME...]",
		Short: "Run one sync pass over the named bindings (default: all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			ids, uc, err := resolveBindingIDs(cmd, args)
			if err != nil {
				return err
			}
			out, err := uc.Once(cmd.Context(), &ucsyncer.OnceInput{BindingIDs: ids})
			if err != nil {
				return err
			}
			for _, r := range out.Results {
				fmt.Fprintf(cmd.OutOrStdout(), "binding=%s version=%s changed=%t restarted=%t\n",
					r.BindingID, r.Version, r.Changed, r.Restarted)
			}
			return nil
		},
	}
	return c
}

func newCmdSyncRun() *cobra.Command {
	c := &cobra.Command{
		Use:   "run [NAME...]",
		Short: "Poll the named bindings until interrupted (default: all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			ids, uc, err := resolveBindingIDs(cmd, args)
			if err != nil {
				return err
			}
			// Stop cleanly on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			_, err = uc.Run(ctx, &ucsyncer.RunInput{BindingIDs: ids})
			return err
		},
	}
	return c
}
