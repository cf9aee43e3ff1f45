package main

import (
	"github.com/spf13/cobra"
	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/usecase/compute"
	"github.com/yaegashi/mlpipeops/usecase/history"
	"github.com/yaegashi/mlpipeops/usecase/infra"
	"github.com/yaegashi/mlpipeops/usecase/notebook"
	"github.com/yaegashi/mlpipeops/usecase/pipeline"
	"github.com/yaegashi/mlpipeops/usecase/pool"
	"github.com/yaegashi/mlpipeops/usecase/workspace"
)

// buildPipelineUseCase creates the pipeline use case with the history store and cloud port.
func buildPipelineUseCase(cmd *cobra.Command, s *session) (*pipeline.UseCase, error) {
	repo, err := buildDeploymentRepository(cmd)
	if err != nil {
		return nil, err
	}
	return &pipeline.UseCase{
		Repos:     &pipeline.Repos{Deployment: repo},
		CloudPort: s.Cloud,
	}, nil
}

// buildHistoryUseCase creates the history use case.
func buildHistoryUseCase(cmd *cobra.Command) (*history.UseCase, error) {
	repo, err := buildDeploymentRepository(cmd)
	if err != nil {
		return nil, err
	}
	return &history.UseCase{Repos: &history.Repos{Deployment: repo}}, nil
}

func buildWorkspaceUseCase(s *session) *workspace.UseCase {
	return &workspace.UseCase{WorkspacePort: s.Cloud, SecretPort: s.Cloud}
}

func buildComputeUseCase(s *session, sp model.SparkPort) *compute.UseCase {
	return &compute.UseCase{ComputePort: s.Cloud, SparkPort: sp}
}

func buildPoolUseCase(sp model.SparkPort) *pool.UseCase {
	return &pool.UseCase{SparkPort: sp}
}

func buildNotebookUseCase(sp model.SparkPort) *notebook.UseCase {
	return &notebook.UseCase{SparkPort: sp}
}

func buildInfraUseCase(s *session) *infra.UseCase {
	return &infra.UseCase{InfraPort: s.Cloud}
}
