package workspace

import "github.com/yaegashi/mlpipeops/domain/model"

// UseCase wires the ports needed for workspace use cases.
type UseCase struct {
	WorkspacePort model.WorkspacePort
	SecretPort    model.SecretPort
}
