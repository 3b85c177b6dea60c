package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	uccluster "github.com/kvbridge/kvbridge/usecase/cluster"
)

// newCmdCluster returns the parent command for cluster-related operations.
func newCmdCluster() *cobra.Command {
	c := &cobra.Command{
		Use:   "cluster",
		Short: "AKS cluster related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdClusterList())
	c.AddCommand(newCmdClusterStatus())
	c.AddCommand(newCmdClusterProvision())
	c.AddCommand(newCmdClusterDeprovision())
	c.AddCommand(newCmdClusterKubeconfig())
	c.AddCommand(newCmdClusterInstall())
	c.AddCommand(newCmdClusterUninstall())
	return c
}

func newCmdClusterList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := newClusterUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := uc.List(cmd.Context(), &uccluster.ListInput{})
			if err != nil {
				return err
			}
			for _, c := range out.Clusters {
				fmt.Fprintf(cmd.OutOrStdout(), "name=%s resourceGroup=%s existing=%t driver=%s\n",
					c.Name, c.ResourceGroup, c.Existing, c.Driver)
			}
			return nil
		},
	}
}

func newCmdClusterStatus() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "status",
		Short: "Show cluster provisioning status",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newClusterUseCase(cmd)
			if err != nil {
				return err
			}
			cl, err := resolveCluster(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			out, err := uc.Status(cmd.Context(), &uccluster.StatusInput{ClusterID: cl.ID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name=%s existing=%t provisioned=%t installed=%t\n",
				cl.Name, out.Status.Existing, out.Status.Provisioned, out.Status.Installed)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Cluster name (optional when only one cluster is configured)")
	return c
}

func newCmdClusterProvision() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "provision",
		Short: "Provision the AKS cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newClusterUseCase(cmd)
			if err != nil {
				return err
			}
			cl, err := resolveCluster(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			if _, err := uc.Provision(cmd.Context(), &uccluster.ProvisionInput{ClusterID: cl.ID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "provisioned name=%s\n", cl.Name)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Cluster name (optional when only one cluster is configured)")
	return c
}

func newCmdClusterDeprovision() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "deprovision",
		Short: "Delete the AKS cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newClusterUseCase(cmd)
			if err != nil {
				return err
			}
			cl, err := resolveCluster(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			if _, err := uc.Deprovision(cmd.Context(), &uccluster.DeprovisionInput{ClusterID: cl.ID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deprovisioned name=%s\n", cl.Name)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Cluster name (optional when only one cluster is configured)")
	return c
}

func newCmdClusterKubeconfig() *cobra.Command {
	var name string
	var output string
	c := &cobra.Command{
		Use:   "kubeconfig",
		Short: "Fetch admin kubeconfig for the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, repos, err := newClusterUseCase(cmd)
			if err != nil {
				return err
			}
			cl, err := resolveCluster(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			out, err := uc.Kubeconfig(cmd.Context(), &uccluster.KubeconfigInput{ClusterID: cl.ID})
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), string(out.Kubeconfig))
				return nil
			}
			if err := os.WriteFile(output, out.Kubeconfig, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote kubeconfig to %s\n", output)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Cluster name (optional when only one cluster is configured)")
	c.Flags().StringVarP(&output, "output", "o", "", "Write kubeconfig to file instead of stdout")
	return c
}

func newCmdClusterInstall() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "install",
		Short: "Install the secrets-store CSI driver into the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			uc, repos, err := newClusterUseCase(cmd)
			if err != nil {
				return err
			}
			cl, err := resolveCluster(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			if _, err := uc.Install(cmd.Context(), &uccluster.InstallInput{ClusterID: cl.ID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed csi driver name=%s\n", cl.Name)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Cluster name (optional when only one cluster is configured)")
	return c
}

func newCmdClusterUninstall() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the secrets-store CSI driver from the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			uc, repos, err := newClusterUseCase(cmd)
			if err != nil {
				return err
			}
			cl, err := resolveCluster(cmd.Context(), repos, name)
			if err != nil {
				return err
			}
			if _, err := uc.Uninstall(cmd.Context(), &uccluster.UninstallInput{ClusterID: cl.ID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uninstalled csi driver name=%s\n", cl.Name)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "Cluster name (optional when only one cluster is configured)")
	return c
}
