// Package azure implements the workspace, compute, secret, pipeline and infra
// ports on top of the Azure SDK for Go.
package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/yaegashi/mlpipeops/adapters/drivers/databricks"
	"github.com/yaegashi/mlpipeops/domain/model"
)

// Options configures a Driver.
type Options struct {
	// ClientOptions is shared by every SDK client the driver creates.
	ClientOptions policy.ClientOptions
	// KeyVaultSuffix is the DNS suffix of vault URLs. Defaults to .vault.azure.net.
	KeyVaultSuffix string
}

// Driver talks to Azure with a single credential.
type Driver struct {
	TokenCredential azcore.TokenCredential
	opts            Options
}

var _ model.CloudPort = (*Driver)(nil)

// New returns a Driver using cred.
func New(cred azcore.TokenCredential, opts *Options) (*Driver, error) {
	if cred == nil {
		return nil, fmt.Errorf("credential is required")
	}
	d := &Driver{TokenCredential: cred}
	if opts != nil {
		d.opts = *opts
	}
	if d.opts.KeyVaultSuffix == "" {
		d.opts.KeyVaultSuffix = ".vault.azure.net"
	}
	return d, nil
}

func (d *Driver) armOptions() *arm.ClientOptions {
	return &arm.ClientOptions{ClientOptions: d.opts.ClientOptions}
}

// WithServicePrincipal returns a Driver with the same options authenticated as sp.
func (d *Driver) WithServicePrincipal(sp model.ServicePrincipal) (model.CloudPort, error) {
	cred, err := NewServicePrincipalCredential(sp.TenantID, sp.ClientID, sp.ClientSecret)
	if err != nil {
		return nil, err
	}
	nd, err := New(cred, &d.opts)
	if err != nil {
		return nil, err
	}
	return nd, nil
}

// SparkClient returns a Databricks REST client for spark. The regional
// endpoint is used when the workspace URL is not known yet.
func (d *Driver) SparkClient(ctx context.Context, spark *model.SparkWorkspace) (model.SparkPort, error) {
	if spark == nil {
		return nil, fmt.Errorf("spark workspace is required")
	}
	host := spark.URL
	if host == "" {
		if spark.Location == "" {
			return nil, fmt.Errorf("spark workspace %s has neither url nor location", spark.Name)
		}
		host = databricks.RegionURL(spark.Location)
	}
	return databricks.New(host, d.TokenCredential, &databricks.Options{
		WorkspaceResourceID: spark.ID,
		ClientOptions:       d.opts.ClientOptions,
	})
}
