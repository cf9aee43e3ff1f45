package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	nuc "github.com/yaegashi/mlpipeops/usecase/notebook"
)

// newCmdNotebook returns the parent command for notebook operations.
func newCmdNotebook() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "notebook",
		Short:              "Manage Databricks notebooks",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdNotebookUpload())
	return cmd
}

func newCmdNotebookUpload() *cobra.Command {
	var sparkName, folder, dir, name string
	cmd := &cobra.Command{
		Use:           "upload",
		Short:         "Upload the notebook to a checksum-addressed folder",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			in := &nuc.UploadInput{Folder: s.Settings.Notebook.Folder, Dir: s.Settings.Notebook.Dir, Name: s.Settings.Notebook.Name}
			if folder != "" {
				in.Folder = folder
			}
			if dir != "" {
				in.Dir = dir
			}
			if name != "" {
				in.Name = name
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "notebook.upload", in.Name)
			defer func() { cleanup(err) }()

			_, _, sp, err := s.spark(ctx, sparkName)
			if err != nil {
				return err
			}
			out, err := buildNotebookUseCase(sp).Upload(ctx, in)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&sparkName, "databricks-workspace-name", "", "Databricks workspace name (required)")
	cmd.Flags().StringVar(&folder, "folder", "", "Databricks workspace folder (default from settings)")
	cmd.Flags().StringVar(&dir, "dir", "", "Local directory holding <name>.py (default from settings)")
	cmd.Flags().StringVar(&name, "name", "", "Notebook name (default from settings)")
	_ = cmd.MarkFlagRequired("databricks-workspace-name")
	return cmd
}
