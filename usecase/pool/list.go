package pool

import (
	"context"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// ListInput is empty; pools are listed for the whole Spark workspace.
type ListInput struct{}

// ListOutput holds all instance pools.
type ListOutput struct {
	Pools []*model.InstancePool `json:"pools"`
}

// List returns all instance pools.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	pools, err := u.SparkPort.InstancePoolList(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Pools: pools}, nil
}

// find returns the first pool named name, or nil.
func (u *UseCase) find(ctx context.Context, name string) (*model.InstancePool, error) {
	pools, err := u.SparkPort.InstancePoolList(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range pools {
		if p != nil && p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}
