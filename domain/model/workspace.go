package model

import (
	"context"
	"fmt"
)

// WorkspaceRef identifies an Azure ML workspace.
type WorkspaceRef struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	Name           string `json:"workspace_name"`
}

// Validate reports the first missing field.
func (r WorkspaceRef) Validate() error {
	switch {
	case r.SubscriptionID == "":
		return fmt.Errorf("subscription_id is required")
	case r.ResourceGroup == "":
		return fmt.Errorf("resource_group is required")
	case r.Name == "":
		return fmt.Errorf("workspace_name is required")
	}
	return nil
}

// Workspace is a resolved Azure ML workspace.
type Workspace struct {
	WorkspaceRef
	ID           string `json:"id"`
	Location     string `json:"location"`
	KeyVaultID   string `json:"key_vault_id,omitempty"`
	DiscoveryURL string `json:"discovery_url,omitempty"`
}

// SparkWorkspace is an Azure Databricks workspace.
type SparkWorkspace struct {
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	ID            string `json:"id"`
	URL           string `json:"url,omitempty"`
	Location      string `json:"location,omitempty"`
}

// Datastore is a workspace datastore registration.
type Datastore struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	AccountName   string `json:"account_name,omitempty"`
	ContainerName string `json:"container_name,omitempty"`
}

// WorkspacePort reads workspace-scoped resources.
type WorkspacePort interface {
	WorkspaceGet(ctx context.Context, ref WorkspaceRef) (*Workspace, error)
	DatastoreGet(ctx context.Context, ws *Workspace, name string) (*Datastore, error)
	SparkWorkspaceGet(ctx context.Context, subscriptionID, resourceGroup, name string) (*SparkWorkspace, error)
}

// SecretPort reads secrets from a Key Vault identified by its ARM resource ID.
type SecretPort interface {
	SecretGet(ctx context.Context, vaultID, name string) (string, error)
}
