package pool

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/ensure"
)

// EnsureInput describes the pool to create when missing.
type EnsureInput struct {
	Pool model.InstancePool `json:"pool"`
}

// EnsureOutput holds the pool identifier.
type EnsureOutput struct {
	PoolID  string `json:"pool_id"`
	Created bool   `json:"created"`
}

// Ensure returns the ID of the pool named in.Pool.Name, creating it with the
// given settings when no pool has that name.
func (u *UseCase) Ensure(ctx context.Context, in *EnsureInput) (*EnsureOutput, error) {
	if in == nil || in.Pool.Name == "" {
		return nil, fmt.Errorf("pool name is required")
	}
	created := false
	lookup := func(ctx context.Context, name string) (string, error) {
		p, err := u.find(ctx, name)
		if err != nil || p == nil {
			return "", err
		}
		return p.ID, nil
	}
	create := func(ctx context.Context) error {
		if _, err := u.SparkPort.InstancePoolCreate(ctx, in.Pool); err != nil {
			return fmt.Errorf("create instance pool %s: %w", in.Pool.Name, err)
		}
		created = true
		return nil
	}
	id, err := ensure.Resource(ctx, in.Pool.Name, lookup, create)
	if err != nil {
		return nil, err
	}
	return &EnsureOutput{PoolID: id, Created: created}, nil
}
