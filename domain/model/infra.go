package model

import "context"

// InfraTarget identifies a Spark workspace managed as a deployment stack.
type InfraTarget struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	SparkWorkspace string `json:"spark_workspace"`
}

// InfraDeployRequest describes the Spark workspace to deploy.
type InfraDeployRequest struct {
	InfraTarget
	Location string
	// SKU is the Databricks pricing tier: standard, premium or trial.
	SKU string
	// Force redeploys even when the stack has already succeeded.
	Force bool
}

// InfraStatus reports the state of a deployment stack.
type InfraStatus struct {
	StackName         string         `json:"stack_name"`
	StackID           string         `json:"stack_id,omitempty"`
	ProvisioningState string         `json:"provisioning_state,omitempty"`
	Resources         []string       `json:"resources,omitempty"`
	Outputs           map[string]any `json:"outputs,omitempty"`
}

// InfraPort deploys Spark workspaces. InfraStatus returns ErrResourceNotFound
// when the stack does not exist.
type InfraPort interface {
	InfraDeploy(ctx context.Context, req InfraDeployRequest) (*InfraStatus, error)
	InfraDestroy(ctx context.Context, target InfraTarget) error
	InfraStatus(ctx context.Context, target InfraTarget) (*InfraStatus, error)
}
