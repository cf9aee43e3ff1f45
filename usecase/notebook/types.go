package notebook

import "github.com/yaegashi/mlpipeops/domain/model"

// UseCase wires the Spark port for notebook use cases.
type UseCase struct {
	SparkPort model.SparkPort
}
