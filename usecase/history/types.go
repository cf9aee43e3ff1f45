package history

import "github.com/yaegashi/mlpipeops/domain"

// Repos holds repositories needed for history use cases.
type Repos struct {
	Deployment domain.DeploymentRepository
}

// UseCase wires repositories for history use cases.
type UseCase struct {
	Repos *Repos
}
