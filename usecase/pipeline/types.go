package pipeline

import (
	"github.com/yaegashi/mlpipeops/domain"
	"github.com/yaegashi/mlpipeops/domain/model"
)

// Repos holds repositories needed for pipeline use cases.
type Repos struct {
	Deployment domain.DeploymentRepository
}

// UseCase wires repositories and the cloud port for pipeline builds.
type UseCase struct {
	Repos     *Repos
	CloudPort model.CloudPort
}
