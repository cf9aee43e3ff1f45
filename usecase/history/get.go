package history

import (
	"context"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// GetInput identifies a deployment record.
type GetInput struct {
	ID string `json:"id"`
}

// GetOutput wraps the deployment record.
type GetOutput struct {
	Deployment *model.Deployment `json:"deployment"`
}

// Get returns a deployment record by ID.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrDeploymentNotFound
	}
	d, err := u.Repos.Deployment.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Deployment: d}, nil
}
