package model

import "context"

// ComputeTypeDatabricks is the compute type of attached Databricks workspaces.
const ComputeTypeDatabricks = "Databricks"

// ComputeTarget is a compute registered in an Azure ML workspace.
type ComputeTarget struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	ResourceID        string `json:"resource_id,omitempty"`
	ProvisioningState string `json:"provisioning_state,omitempty"`
}

// ComputePort manages workspace compute targets.
type ComputePort interface {
	// ComputeGet returns nil, nil when the compute does not exist.
	ComputeGet(ctx context.Context, ws *Workspace, name string) (*ComputeTarget, error)
	// ComputeAttach attaches a Spark workspace and waits for completion.
	ComputeAttach(ctx context.Context, ws *Workspace, name string, spark *SparkWorkspace, accessToken string) (*ComputeTarget, error)
}
