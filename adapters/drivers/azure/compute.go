package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"
	"github.com/yaegashi/mlpipeops/domain/model"
)

// ComputeGet reads a compute target. It returns nil, nil when absent.
func (d *Driver) ComputeGet(ctx context.Context, ws *model.Workspace, name string) (ct *model.ComputeTarget, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ComputeGet", "compute", name)
	defer func() { cleanup(err) }()

	client, err := armmachinelearning.NewComputeClient(ws.SubscriptionID, d.TokenCredential, d.armOptions())
	if err != nil {
		return nil, fmt.Errorf("create compute client: %w", err)
	}
	res, err := client.Get(ctx, ws.ResourceGroup, ws.Name, name, nil)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compute %s: %w", name, err)
	}
	return computeFromResource(name, res.ComputeResource), nil
}

// ComputeAttach attaches spark as a Databricks compute target and waits for
// the operation to finish.
func (d *Driver) ComputeAttach(ctx context.Context, ws *model.Workspace, name string, spark *model.SparkWorkspace, accessToken string) (ct *model.ComputeTarget, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ComputeAttach", "compute", name, "sparkWorkspace", spark.Name)
	defer func() { cleanup(err) }()

	client, err := armmachinelearning.NewComputeClient(ws.SubscriptionID, d.TokenCredential, d.armOptions())
	if err != nil {
		return nil, fmt.Errorf("create compute client: %w", err)
	}
	params := armmachinelearning.ComputeResource{
		Location: to.Ptr(ws.Location),
		Properties: &armmachinelearning.Databricks{
			ComputeType: to.Ptr(armmachinelearning.ComputeTypeDatabricks),
			ResourceID:  to.Ptr(spark.ID),
			Properties: &armmachinelearning.DatabricksProperties{
				DatabricksAccessToken: to.Ptr(accessToken),
				WorkspaceURL:          to.Ptr(sparkWorkspaceURL(spark.URL)),
			},
		},
	}
	poller, err := client.BeginCreateOrUpdate(ctx, ws.ResourceGroup, ws.Name, name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("begin attach compute %s: %w", name, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("attach compute %s: %w", name, err)
	}
	return computeFromResource(name, res.ComputeResource), nil
}

func computeFromResource(name string, res armmachinelearning.ComputeResource) *model.ComputeTarget {
	ct := &model.ComputeTarget{Name: name}
	if n := str(res.Name); n != "" {
		ct.Name = n
	}
	if res.Properties == nil {
		return ct
	}
	base := res.Properties.GetCompute()
	if base == nil {
		return ct
	}
	if base.ComputeType != nil {
		ct.Type = string(*base.ComputeType)
	}
	ct.ResourceID = str(base.ResourceID)
	if base.ProvisioningState != nil {
		ct.ProvisioningState = string(*base.ProvisioningState)
	}
	return ct
}

func sparkWorkspaceURL(host string) string {
	if host == "" || strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}
