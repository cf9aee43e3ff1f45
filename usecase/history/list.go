package history

import (
	"context"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// ListInput filters deployments. Empty fields match everything.
type ListInput struct {
	Workspace string `json:"workspace,omitempty"`
	// Limit keeps only the newest records when positive.
	Limit int `json:"limit,omitempty"`
}

// ListOutput holds deployments oldest first.
type ListOutput struct {
	Deployments []*model.Deployment `json:"deployments"`
}

// List returns recorded deployments, oldest first.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	items, err := u.Repos.Deployment.List(ctx)
	if err != nil {
		return nil, err
	}
	if in == nil {
		in = &ListInput{}
	}
	out := make([]*model.Deployment, 0, len(items))
	for _, d := range items {
		if in.Workspace != "" && d.Workspace != in.Workspace {
			continue
		}
		out = append(out, d)
	}
	if in.Limit > 0 && len(out) > in.Limit {
		out = out[len(out)-in.Limit:]
	}
	return &ListOutput{Deployments: out}, nil
}
