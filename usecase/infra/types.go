package infra

import "github.com/yaegashi/mlpipeops/domain/model"

// UseCase wires the infra port.
type UseCase struct {
	InfraPort model.InfraPort
}
