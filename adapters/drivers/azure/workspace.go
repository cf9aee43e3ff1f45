package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/databricks/armdatabricks"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"
	"github.com/yaegashi/mlpipeops/domain/model"
)

// WorkspaceGet reads an Azure ML workspace.
func (d *Driver) WorkspaceGet(ctx context.Context, ref model.WorkspaceRef) (ws *model.Workspace, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "WorkspaceGet", "workspace", ref.Name)
	defer func() { cleanup(err) }()

	if err := ref.Validate(); err != nil {
		return nil, err
	}
	client, err := armmachinelearning.NewWorkspacesClient(ref.SubscriptionID, d.TokenCredential, d.armOptions())
	if err != nil {
		return nil, fmt.Errorf("create workspaces client: %w", err)
	}
	res, err := client.Get(ctx, ref.ResourceGroup, ref.Name, nil)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s/%s", model.ErrWorkspaceNotFound, ref.ResourceGroup, ref.Name)
		}
		return nil, fmt.Errorf("get workspace %s: %w", ref.Name, err)
	}
	return workspaceFromResource(ref, res.Workspace), nil
}

func workspaceFromResource(ref model.WorkspaceRef, res armmachinelearning.Workspace) *model.Workspace {
	ws := &model.Workspace{
		WorkspaceRef: ref,
		ID:           str(res.ID),
		Location:     str(res.Location),
	}
	if p := res.Properties; p != nil {
		ws.KeyVaultID = str(p.KeyVault)
		ws.DiscoveryURL = str(p.DiscoveryURL)
	}
	return ws
}

// DatastoreGet reads a datastore registered in ws. A missing datastore
// yields model.ErrResourceNotFound.
func (d *Driver) DatastoreGet(ctx context.Context, ws *model.Workspace, name string) (ds *model.Datastore, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "DatastoreGet", "datastore", name)
	defer func() { cleanup(err) }()

	client, err := armmachinelearning.NewDatastoresClient(ws.SubscriptionID, d.TokenCredential, d.armOptions())
	if err != nil {
		return nil, fmt.Errorf("create datastores client: %w", err)
	}
	res, err := client.Get(ctx, ws.ResourceGroup, ws.Name, name, nil)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: datastore %s", model.ErrResourceNotFound, name)
		}
		return nil, fmt.Errorf("get datastore %s: %w", name, err)
	}
	return datastoreFromResource(name, res.Properties), nil
}

func datastoreFromResource(name string, props armmachinelearning.DatastorePropertiesClassification) *model.Datastore {
	ds := &model.Datastore{Name: name}
	if props == nil {
		return ds
	}
	if base := props.GetDatastoreProperties(); base != nil && base.DatastoreType != nil {
		ds.Type = string(*base.DatastoreType)
	}
	if blob, ok := props.(*armmachinelearning.AzureBlobDatastore); ok {
		ds.AccountName = str(blob.AccountName)
		ds.ContainerName = str(blob.ContainerName)
	}
	return ds
}

// SparkWorkspaceGet reads an Azure Databricks workspace.
func (d *Driver) SparkWorkspaceGet(ctx context.Context, subscriptionID, resourceGroup, name string) (sw *model.SparkWorkspace, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "SparkWorkspaceGet", "sparkWorkspace", name)
	defer func() { cleanup(err) }()

	client, err := armdatabricks.NewWorkspacesClient(subscriptionID, d.TokenCredential, d.armOptions())
	if err != nil {
		return nil, fmt.Errorf("create databricks workspaces client: %w", err)
	}
	res, err := client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: databricks workspace %s/%s", model.ErrResourceNotFound, resourceGroup, name)
		}
		return nil, fmt.Errorf("get databricks workspace %s: %w", name, err)
	}
	return sparkWorkspaceFromResource(resourceGroup, res.Workspace), nil
}

func sparkWorkspaceFromResource(resourceGroup string, res armdatabricks.Workspace) *model.SparkWorkspace {
	sw := &model.SparkWorkspace{
		Name:          str(res.Name),
		ResourceGroup: resourceGroup,
		ID:            str(res.ID),
		Location:      str(res.Location),
	}
	if res.Properties != nil {
		sw.URL = str(res.Properties.WorkspaceURL)
	}
	return sw
}
