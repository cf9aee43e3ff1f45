package compute

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// GetInput identifies a compute target.
type GetInput struct {
	Workspace *model.Workspace `json:"workspace"`
	Name      string           `json:"name"`
}

// GetOutput holds the compute target, nil when it does not exist.
type GetOutput struct {
	Compute *model.ComputeTarget `json:"compute"`
}

// Get returns the named compute target. An existing target that is not a
// Databricks compute yields model.ErrComputeTypeMismatch.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.Workspace == nil || in.Name == "" {
		return nil, fmt.Errorf("workspace and compute name are required")
	}
	ct, err := u.ComputePort.ComputeGet(ctx, in.Workspace, in.Name)
	if err != nil {
		return nil, err
	}
	if ct != nil && ct.Type != model.ComputeTypeDatabricks {
		return nil, fmt.Errorf("%w: compute target %s is of different type %s", model.ErrComputeTypeMismatch, in.Name, ct.Type)
	}
	return &GetOutput{Compute: ct}, nil
}
