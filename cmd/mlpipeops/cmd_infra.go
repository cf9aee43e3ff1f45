package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yaegashi/mlpipeops/domain/model"
	iuc "github.com/yaegashi/mlpipeops/usecase/infra"
)

// newCmdInfra returns the parent command for Databricks workspace provisioning.
func newCmdInfra() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "infra",
		Short:              "Provision the Databricks workspace with a deployment stack",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.PersistentFlags().String("databricks-workspace-name", "", "Databricks workspace name (required)")
	_ = cmd.MarkPersistentFlagRequired("databricks-workspace-name")
	cmd.AddCommand(newCmdInfraDeploy(), newCmdInfraDestroy(), newCmdInfraStatus())
	return cmd
}

// infraTarget places the Databricks workspace in the Azure ML workspace's resource group.
func infraTarget(cmd *cobra.Command, s *session) model.InfraTarget {
	name, _ := flagString(cmd, "databricks-workspace-name")
	return model.InfraTarget{
		SubscriptionID: s.Env.Ref.SubscriptionID,
		ResourceGroup:  s.Env.Ref.ResourceGroup,
		SparkWorkspace: name,
	}
}

func newCmdInfraDeploy() *cobra.Command {
	var location, sku string
	var force bool
	cmd := &cobra.Command{
		Use:           "deploy",
		Short:         "Deploy the Databricks workspace",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			target := infraTarget(cmd, s)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "infra.deploy", target.SparkWorkspace)
			defer func() { cleanup(err) }()

			out, err := buildInfraUseCase(s).Deploy(ctx, &iuc.DeployInput{
				Target:   target,
				Location: location,
				SKU:      sku,
				Force:    force,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, out.Status)
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "Azure region (default: resource group location)")
	cmd.Flags().StringVar(&sku, "sku", "", "Databricks pricing tier: standard, premium or trial")
	cmd.Flags().BoolVar(&force, "force", false, "Redeploy even when the stack already succeeded")
	return cmd
}

func newCmdInfraDestroy() *cobra.Command {
	return &cobra.Command{
		Use:           "destroy",
		Short:         "Delete the Databricks workspace and its deployment stack",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			target := infraTarget(cmd, s)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "infra.destroy", target.SparkWorkspace)
			defer func() { cleanup(err) }()

			if _, err = buildInfraUseCase(s).Destroy(ctx, &iuc.DestroyInput{Target: target}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Destroyed: %s\n", target.SparkWorkspace)
			return nil
		},
	}
}

func newCmdInfraStatus() *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show the deployment stack state",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			target := infraTarget(cmd, s)
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "infra.status", target.SparkWorkspace)
			defer func() { cleanup(err) }()

			out, err := buildInfraUseCase(s).Status(ctx, &iuc.StatusInput{Target: target})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}
