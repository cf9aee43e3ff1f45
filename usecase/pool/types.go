package pool

import "github.com/yaegashi/mlpipeops/domain/model"

// UseCase wires the Spark port for instance pool use cases.
type UseCase struct {
	SparkPort model.SparkPort
}
