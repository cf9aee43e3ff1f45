package domain

import (
	"context"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// DeploymentRepository stores and retrieves build deployment records.
type DeploymentRepository interface {
	Create(ctx context.Context, d *model.Deployment) error
	Get(ctx context.Context, id string) (*model.Deployment, error)
	// List returns records ordered by creation time, oldest first.
	List(ctx context.Context) ([]*model.Deployment, error)
	Delete(ctx context.Context, id string) error
}
