package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/usecase/pipeline"
)

const defaultBuildID = "local"

// newCmdBuild returns the command that provisions and publishes the pipeline.
func newCmdBuild() *cobra.Command {
	var sparkName, buildID string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Attach compute, prepare the pool and notebook, and publish the pipeline",
		Long: `Resolve the Azure ML workspace, attach the Databricks workspace as a compute
target, ensure the instance pool, upload the notebook and publish the feature
engineering pipeline versioned by the build id.

Flags also accept underscore spellings, e.g. --databricks_workspace_name.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			u, err := buildPipelineUseCase(cmd, s)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "build", s.Env.Ref.Name)
			defer func() { cleanup(err) }()

			out, err := u.Build(ctx, newBuildInput(s, sparkName, buildID))
			if err != nil {
				return err
			}
			printPublished(cmd.OutOrStdout(), out.Published)
			return nil
		},
	}
	cmd.Flags().StringVar(&sparkName, "databricks-workspace-name", "", "Databricks workspace name (required)")
	cmd.Flags().StringVar(&buildID, "build-id", defaultBuildID, "Build identifier used as the pipeline version")
	_ = cmd.MarkFlagRequired("databricks-workspace-name")
	return cmd
}

// printPublished writes the published pipeline name and its build version.
func printPublished(w io.Writer, p *model.PublishedPipeline) {
	fmt.Fprintf(w, "Published pipeline: %s\n", p.Name)
	fmt.Fprintf(w, "for build %s\n", p.Version)
}

// newBuildInput assembles the build input from the session settings.
func newBuildInput(s *session, sparkName, buildID string) *pipeline.BuildInput {
	cfg := s.Settings
	in := &pipeline.BuildInput{
		Ref:            s.Env.Ref,
		SparkWorkspace: sparkName,
		BuildID:        buildID,
		ComputeName:    cfg.Compute.Name,
		Pool:           cfg.Pool.InstancePool(),
		Notebook: pipeline.NotebookSpec{
			Folder: cfg.Notebook.Folder,
			Dir:    cfg.Notebook.Dir,
			Name:   cfg.Notebook.Name,
		},
		Step:                cfg.Step.DatabricksStep(),
		PipelineName:        cfg.Pipeline.Name,
		PipelineDescription: cfg.Pipeline.Description,
	}
	in.Secrets = pipeline.SecretNames{
		TenantID:     cfg.Auth.TenantIDSecret,
		ClientID:     cfg.Auth.ClientIDSecret,
		ClientSecret: cfg.Auth.ClientSecretSecret,
	}
	in.RunContext = s.inRunContext()
	return in
}
