package compute

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/ensure"
	"github.com/yaegashi/mlpipeops/internal/logging"
	"github.com/yaegashi/mlpipeops/internal/naming"
)

// EnsureInput describes the compute target to attach when missing.
type EnsureInput struct {
	Workspace      *model.Workspace      `json:"workspace"`
	Name           string                `json:"name"`
	SparkWorkspace *model.SparkWorkspace `json:"spark_workspace"`
	// BuildID is recorded in the comment of the issued access token.
	BuildID string `json:"build_id"`
}

// EnsureOutput holds the attached compute target.
type EnsureOutput struct {
	Compute *model.ComputeTarget `json:"compute"`
	Created bool                 `json:"created"`
}

// Ensure returns the named Databricks compute target, attaching the Spark
// workspace with a freshly issued access token when it does not exist.
func (u *UseCase) Ensure(ctx context.Context, in *EnsureInput) (*EnsureOutput, error) {
	if in == nil || in.Workspace == nil || in.Name == "" {
		return nil, fmt.Errorf("workspace and compute name are required")
	}
	if in.SparkWorkspace == nil {
		return nil, fmt.Errorf("spark workspace is required")
	}
	if u.SparkPort == nil {
		return nil, fmt.Errorf("spark port is not configured")
	}
	log := logging.FromContext(ctx).With("compute", in.Name)

	var current *model.ComputeTarget
	created := false
	lookup := func(ctx context.Context, name string) (string, error) {
		out, err := u.Get(ctx, &GetInput{Workspace: in.Workspace, Name: name})
		if err != nil {
			return "", err
		}
		current = out.Compute
		if current == nil {
			return "", nil
		}
		return current.Name, nil
	}
	create := func(ctx context.Context) error {
		token, err := u.SparkPort.TokenCreate(ctx, naming.TokenComment(in.BuildID))
		if err != nil {
			return fmt.Errorf("create access token: %w", err)
		}
		if _, err := u.ComputePort.ComputeAttach(ctx, in.Workspace, in.Name, in.SparkWorkspace, token); err != nil {
			return err
		}
		created = true
		return nil
	}

	if _, err := ensure.Resource(ctx, in.Name, lookup, create); err != nil {
		return nil, err
	}
	if created {
		log.Info(ctx, "compute target attached", "sparkWorkspace", in.SparkWorkspace.Name)
	}
	return &EnsureOutput{Compute: current, Created: created}, nil
}
