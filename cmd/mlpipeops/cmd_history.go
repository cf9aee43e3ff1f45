package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	huc "github.com/yaegashi/mlpipeops/usecase/history"
)

// newCmdHistory returns the parent command for published pipeline records.
func newCmdHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "history",
		Short:              "Inspect recorded pipeline publications",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdHistoryList(), newCmdHistoryGet())
	return cmd
}

func newCmdHistoryList() *cobra.Command {
	var ws string
	var limit int
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List recorded publications, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			u, err := buildHistoryUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			out, err := u.List(ctx, &huc.ListInput{Workspace: ws, Limit: limit})
			if err != nil {
				return err
			}
			return printJSON(cmd, out.Deployments)
		},
	}
	cmd.Flags().StringVar(&ws, "workspace", "", "Only show records for this Azure ML workspace")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only show the newest N records")
	return cmd
}

func newCmdHistoryGet() *cobra.Command {
	return &cobra.Command{
		Use:           "get <id>",
		Short:         "Show one recorded publication",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			u, err := buildHistoryUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			out, err := u.Get(ctx, &huc.GetInput{ID: args[0]})
			if err != nil {
				return fmt.Errorf("history %s: %w", args[0], err)
			}
			return printJSON(cmd, out.Deployment)
		},
	}
}
