package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	cuc "github.com/yaegashi/mlpipeops/usecase/compute"
)

// newCmdCompute returns the parent command for compute target operations.
func newCmdCompute() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "compute",
		Short:              "Manage the Databricks compute target",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdComputeShow(), newCmdComputeAttach())
	return cmd
}

func newCmdComputeShow() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:           "show",
		Short:         "Show the compute target",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if name == "" {
				name = s.Settings.Compute.Name
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "compute.show", name)
			defer func() { cleanup(err) }()

			ws, err := s.workspace(ctx)
			if err != nil {
				return err
			}
			out, err := buildComputeUseCase(s, nil).Get(ctx, &cuc.GetInput{Workspace: ws, Name: name})
			if err != nil {
				return err
			}
			if out.Compute == nil {
				return fmt.Errorf("compute target %s not found", name)
			}
			return printJSON(cmd, out.Compute)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Compute target name (default from settings)")
	return cmd
}

func newCmdComputeAttach() *cobra.Command {
	var name, sparkName, buildID string
	cmd := &cobra.Command{
		Use:           "attach",
		Short:         "Attach the Databricks workspace as a compute target when missing",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if name == "" {
				name = s.Settings.Compute.Name
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "compute.attach", name)
			defer func() { cleanup(err) }()

			ws, sw, sp, err := s.spark(ctx, sparkName)
			if err != nil {
				return err
			}
			out, err := buildComputeUseCase(s, sp).Ensure(ctx, &cuc.EnsureInput{
				Workspace:      ws,
				Name:           name,
				SparkWorkspace: sw,
				BuildID:        buildID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Compute target name (default from settings)")
	cmd.Flags().StringVar(&sparkName, "databricks-workspace-name", "", "Databricks workspace name (required)")
	cmd.Flags().StringVar(&buildID, "build-id", defaultBuildID, "Build identifier recorded in the access token comment")
	_ = cmd.MarkFlagRequired("databricks-workspace-name")
	return cmd
}
