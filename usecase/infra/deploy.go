package infra

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/naming"
)

// DeployInput describes the Spark workspace to deploy.
type DeployInput struct {
	Target   model.InfraTarget `json:"target"`
	Location string            `json:"location,omitempty"`
	SKU      string            `json:"sku,omitempty"`
	Force    bool              `json:"force,omitempty"`
}

// DeployOutput holds the stack state after deployment.
type DeployOutput struct {
	Status *model.InfraStatus `json:"status"`
}

func validateTarget(t model.InfraTarget) error {
	if t.SubscriptionID == "" || t.ResourceGroup == "" {
		return fmt.Errorf("subscription and resource group are required")
	}
	return naming.ValidateSparkWorkspaceName(t.SparkWorkspace)
}

// Deploy creates or converges the Spark workspace deployment stack.
func (u *UseCase) Deploy(ctx context.Context, in *DeployInput) (*DeployOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("deploy input is required")
	}
	if err := validateTarget(in.Target); err != nil {
		return nil, err
	}
	switch in.SKU {
	case "", "standard", "premium", "trial":
	default:
		return nil, fmt.Errorf("unsupported sku %q", in.SKU)
	}
	st, err := u.InfraPort.InfraDeploy(ctx, model.InfraDeployRequest{
		InfraTarget: in.Target,
		Location:    in.Location,
		SKU:         in.SKU,
		Force:       in.Force,
	})
	if err != nil {
		return nil, err
	}
	return &DeployOutput{Status: st}, nil
}
