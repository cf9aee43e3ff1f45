package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// StatusInput identifies the stack to inspect.
type StatusInput struct {
	Target model.InfraTarget `json:"target"`
}

// StatusOutput reports whether the stack exists and its state.
type StatusOutput struct {
	Exists bool               `json:"exists"`
	Status *model.InfraStatus `json:"status,omitempty"`
}

// Status reads the Spark workspace deployment stack. A missing stack is
// reported with Exists=false rather than an error.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("status input is required")
	}
	if err := validateTarget(in.Target); err != nil {
		return nil, err
	}
	st, err := u.InfraPort.InfraStatus(ctx, in.Target)
	if err != nil {
		if errors.Is(err, model.ErrResourceNotFound) {
			return &StatusOutput{Exists: false}, nil
		}
		return nil, err
	}
	return &StatusOutput{Exists: true, Status: st}, nil
}
