package infra

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// DestroyInput identifies the stack to delete.
type DestroyInput struct {
	Target model.InfraTarget `json:"target"`
}

// DestroyOutput is empty because destroy has no return entity.
type DestroyOutput struct{}

// Destroy deletes the Spark workspace deployment stack and its resources.
func (u *UseCase) Destroy(ctx context.Context, in *DestroyInput) (*DestroyOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("destroy input is required")
	}
	if err := validateTarget(in.Target); err != nil {
		return nil, err
	}
	if err := u.InfraPort.InfraDestroy(ctx, in.Target); err != nil {
		return nil, err
	}
	return &DestroyOutput{}, nil
}
