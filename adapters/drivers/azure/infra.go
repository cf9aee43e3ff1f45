package azure

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armdeploymentstacks"
	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/naming"
)

// Output keys of the embedded template, upper-cased.
const (
	StackOutputWorkspaceID  = "WORKSPACEID"
	StackOutputWorkspaceURL = "WORKSPACEURL"
)

//go:embed databricks_workspace.json
var databricksWorkspaceJSON []byte

func stackTags(target model.InfraTarget) map[string]*string {
	return map[string]*string{
		"mlpipeops-spark-workspace": to.Ptr(target.SparkWorkspace),
		"managed-by":                to.Ptr("mlpipeops"),
	}
}

// stackOutputs flattens ARM outputs to key -> value with upper-cased keys.
func stackOutputs(raw any) map[string]any {
	outputsMap, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	outputs := make(map[string]any)
	for key, value := range outputsMap {
		if outputValue, ok := value.(map[string]any); ok {
			if val, exists := outputValue["value"]; exists {
				// ARM does not preserve the case of output keys
				outputs[strings.ToUpper(key)] = val
			}
		}
	}
	return outputs
}

func infraStatusFromStack(name string, stack armdeploymentstacks.DeploymentStack) *model.InfraStatus {
	st := &model.InfraStatus{StackName: name, StackID: str(stack.ID)}
	if p := stack.Properties; p != nil {
		if p.ProvisioningState != nil {
			st.ProvisioningState = string(*p.ProvisioningState)
		}
		for _, r := range p.Resources {
			if r != nil && r.ID != nil {
				st.Resources = append(st.Resources, *r.ID)
			}
		}
		st.Outputs = stackOutputs(p.Outputs)
	}
	return st
}

func (d *Driver) stacksClient(subscriptionID string) (*armdeploymentstacks.Client, error) {
	client, err := armdeploymentstacks.NewClient(subscriptionID, d.TokenCredential, d.armOptions())
	if err != nil {
		return nil, fmt.Errorf("create deployment stacks client: %w", err)
	}
	return client, nil
}

// InfraDeploy deploys the Spark workspace as a resource group scoped
// deployment stack. A stack that already succeeded is left alone unless req.Force.
func (d *Driver) InfraDeploy(ctx context.Context, req model.InfraDeployRequest) (st *model.InfraStatus, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "InfraDeploy", "sparkWorkspace", req.SparkWorkspace)
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	var template map[string]any
	if err := json.Unmarshal(databricksWorkspaceJSON, &template); err != nil {
		return nil, fmt.Errorf("unmarshal embedded template: %w", err)
	}
	sku := req.SKU
	if sku == "" {
		sku = "standard"
	}
	parameters := map[string]*armdeploymentstacks.DeploymentParameter{
		"workspaceName": {Value: req.SparkWorkspace},
		"sku":           {Value: sku},
	}
	if req.Location != "" {
		parameters["location"] = &armdeploymentstacks.DeploymentParameter{Value: req.Location}
	}

	client, err := d.stacksClient(req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	name := naming.StackName(req.SparkWorkspace)

	if !req.Force {
		if existing, err := client.GetAtResourceGroup(ctx, req.ResourceGroup, name, nil); err == nil {
			if existing.Properties != nil && existing.Properties.ProvisioningState != nil &&
				*existing.Properties.ProvisioningState == armdeploymentstacks.DeploymentStackProvisioningStateSucceeded {
				return infraStatusFromStack(name, existing.DeploymentStack), nil
			}
		}
	}

	stack := armdeploymentstacks.DeploymentStack{
		Properties: &armdeploymentstacks.DeploymentStackProperties{
			Template:   template,
			Parameters: parameters,
			ActionOnUnmanage: &armdeploymentstacks.ActionOnUnmanage{
				Resources:        to.Ptr(armdeploymentstacks.DeploymentStacksDeleteDetachEnumDetach),
				ResourceGroups:   to.Ptr(armdeploymentstacks.DeploymentStacksDeleteDetachEnumDetach),
				ManagementGroups: to.Ptr(armdeploymentstacks.DeploymentStacksDeleteDetachEnumDetach),
			},
			DenySettings: &armdeploymentstacks.DenySettings{
				Mode: to.Ptr(armdeploymentstacks.DenySettingsModeNone),
			},
		},
		Tags: stackTags(req.InfraTarget),
	}
	poller, err := client.BeginCreateOrUpdateAtResourceGroup(ctx, req.ResourceGroup, name, stack, nil)
	if err != nil {
		return nil, fmt.Errorf("begin deployment stack %s: %w", name, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("deployment stack %s failed: %w", name, err)
	}
	return infraStatusFromStack(name, res.DeploymentStack), nil
}

// InfraDestroy deletes the deployment stack and the resources it manages.
// A missing stack is not an error.
func (d *Driver) InfraDestroy(ctx context.Context, target model.InfraTarget) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "InfraDestroy", "sparkWorkspace", target.SparkWorkspace)
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	client, err := d.stacksClient(target.SubscriptionID)
	if err != nil {
		return err
	}
	name := naming.StackName(target.SparkWorkspace)
	if _, err := client.GetAtResourceGroup(ctx, target.ResourceGroup, name, nil); err != nil {
		if isNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("get deployment stack %s: %w", name, err)
	}

	poller, err := client.BeginDeleteAtResourceGroup(ctx, target.ResourceGroup, name, &armdeploymentstacks.ClientBeginDeleteAtResourceGroupOptions{
		UnmanageActionResources:        to.Ptr(armdeploymentstacks.UnmanageActionResourceModeDelete),
		UnmanageActionResourceGroups:   to.Ptr(armdeploymentstacks.UnmanageActionResourceGroupModeDelete),
		UnmanageActionManagementGroups: to.Ptr(armdeploymentstacks.UnmanageActionManagementGroupModeDelete),
	})
	if err != nil {
		return fmt.Errorf("begin delete deployment stack %s: %w", name, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("delete deployment stack %s: %w", name, err)
	}
	return nil
}

// InfraStatus reads the deployment stack state.
func (d *Driver) InfraStatus(ctx context.Context, target model.InfraTarget) (st *model.InfraStatus, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "InfraStatus", "sparkWorkspace", target.SparkWorkspace)
	defer func() { cleanup(err) }()

	client, err := d.stacksClient(target.SubscriptionID)
	if err != nil {
		return nil, err
	}
	name := naming.StackName(target.SparkWorkspace)
	res, err := client.GetAtResourceGroup(ctx, target.ResourceGroup, name, nil)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: deployment stack %s", model.ErrResourceNotFound, name)
		}
		return nil, fmt.Errorf("get deployment stack %s: %w", name, err)
	}
	return infraStatusFromStack(name, res.DeploymentStack), nil
}
