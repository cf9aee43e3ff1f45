package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	puc "github.com/yaegashi/mlpipeops/usecase/pool"
)

// newCmdPool returns the parent command for instance pool operations.
func newCmdPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "pool",
		Short:              "Manage Databricks instance pools",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.PersistentFlags().String("databricks-workspace-name", "", "Databricks workspace name (required)")
	_ = cmd.MarkPersistentFlagRequired("databricks-workspace-name")
	cmd.AddCommand(newCmdPoolList(), newCmdPoolEnsure())
	return cmd
}

func newCmdPoolList() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List instance pools",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			sparkName, _ := flagString(cmd, "databricks-workspace-name")
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "pool.list", sparkName)
			defer func() { cleanup(err) }()

			_, _, sp, err := s.spark(ctx, sparkName)
			if err != nil {
				return err
			}
			out, err := buildPoolUseCase(sp).List(ctx, &puc.ListInput{})
			if err != nil {
				return err
			}
			return printJSON(cmd, out.Pools)
		},
	}
}

func newCmdPoolEnsure() *cobra.Command {
	return &cobra.Command{
		Use:           "ensure",
		Short:         "Create the configured instance pool when missing",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			sparkName, _ := flagString(cmd, "databricks-workspace-name")
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "pool.ensure", s.Settings.Pool.Name)
			defer func() { cleanup(err) }()

			_, _, sp, err := s.spark(ctx, sparkName)
			if err != nil {
				return err
			}
			out, err := buildPoolUseCase(sp).Ensure(ctx, &puc.EnsureInput{Pool: s.Settings.Pool.InstancePool()})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}
