package compute

import "github.com/yaegashi/mlpipeops/domain/model"

// UseCase wires the ports needed for compute target use cases.
type UseCase struct {
	// ComputePort reads and attaches workspace compute targets.
	ComputePort model.ComputePort
	// SparkPort issues access tokens for the attached Spark workspace.
	SparkPort model.SparkPort
}
