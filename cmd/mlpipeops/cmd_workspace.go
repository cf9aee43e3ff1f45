package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yaegashi/mlpipeops/domain/model"
	wuc "github.com/yaegashi/mlpipeops/usecase/workspace"
)

// newCmdWorkspace returns the parent command for workspace operations.
func newCmdWorkspace() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "workspace",
		Short:              "Inspect the Azure ML workspace",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdWorkspaceShow())
	return cmd
}

// newCmdWorkspaceShow prints the resolved workspace and the datastores the pipeline uses.
func newCmdWorkspaceShow() *cobra.Command {
	var datastores []string
	cmd := &cobra.Command{
		Use:           "show",
		Short:         "Show the resolved workspace",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.show", s.Env.Ref.Name)
			defer func() { cleanup(err) }()

			if !cmd.Flags().Changed("datastore") {
				datastores = (&model.Pipeline{Steps: []model.DatabricksStep{s.Settings.Step.DatabricksStep()}}).Datastores()
			}
			out, err := buildWorkspaceUseCase(s).Show(ctx, &wuc.ShowInput{Ref: s.Env.Ref, Datastores: datastores})
			if err != nil {
				return err
			}
			return printJSON(cmd, struct {
				Source string `json:"source"`
				*wuc.ShowOutput
			}{Source: string(s.Env.Source), ShowOutput: out})
		},
	}
	cmd.Flags().StringSliceVar(&datastores, "datastore", nil, "Datastores to check (default: those used by the pipeline step)")
	return cmd
}
