package model

import "context"

// ServicePrincipal is a client-secret identity read from Key Vault.
type ServicePrincipal struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// CloudPort bundles the Azure ports that share one credential.
type CloudPort interface {
	WorkspacePort
	SecretPort
	ComputePort
	PipelinePort
	InfraPort
	// SparkClient returns a Spark management client for the workspace.
	SparkClient(ctx context.Context, spark *SparkWorkspace) (SparkPort, error)
	// WithServicePrincipal returns a CloudPort authenticated as sp.
	WithServicePrincipal(sp ServicePrincipal) (CloudPort, error)
}
