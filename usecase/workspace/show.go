package workspace

import (
	"context"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// ShowInput identifies the workspace and optional datastores to inspect.
type ShowInput struct {
	Ref        model.WorkspaceRef `json:"ref"`
	Datastores []string           `json:"datastores,omitempty"`
}

// ShowOutput describes the resolved workspace.
type ShowOutput struct {
	Workspace  *model.Workspace   `json:"workspace"`
	Datastores []*model.Datastore `json:"datastores,omitempty"`
}

// Show resolves a workspace and the requested datastores.
func (u *UseCase) Show(ctx context.Context, in *ShowInput) (*ShowOutput, error) {
	if in == nil {
		return nil, model.ErrWorkspaceNotFound
	}
	ws, err := u.WorkspacePort.WorkspaceGet(ctx, in.Ref)
	if err != nil {
		return nil, err
	}
	out := &ShowOutput{Workspace: ws}
	for _, name := range in.Datastores {
		ds, err := u.WorkspacePort.DatastoreGet(ctx, ws, name)
		if err != nil {
			return nil, err
		}
		out.Datastores = append(out.Datastores, ds)
	}
	return out, nil
}
