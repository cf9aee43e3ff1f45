package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/yaegashi/mlpipeops/domain/model"
)

const keyVaultResourceType = "Microsoft.KeyVault/vaults"

// vaultURL converts a Key Vault ARM resource ID to its data plane URL.
// A value that is already a URL is returned unchanged.
func (d *Driver) vaultURL(vaultID string) (string, error) {
	if strings.HasPrefix(vaultID, "https://") {
		return strings.TrimRight(vaultID, "/") + "/", nil
	}
	id, err := arm.ParseResourceID(vaultID)
	if err != nil {
		return "", fmt.Errorf("parse key vault id %q: %w", vaultID, err)
	}
	if !strings.EqualFold(id.ResourceType.String(), keyVaultResourceType) {
		return "", fmt.Errorf("resource %q is not a key vault", vaultID)
	}
	return "https://" + id.Name + d.opts.KeyVaultSuffix + "/", nil
}

// SecretGet reads the latest version of a secret. A missing secret yields
// model.ErrSecretNotFound.
func (d *Driver) SecretGet(ctx context.Context, vaultID, name string) (value string, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "SecretGet", "secret", name)
	defer func() { cleanup(err) }()

	vaultURL, err := d.vaultURL(vaultID)
	if err != nil {
		return "", err
	}
	client, err := azsecrets.NewClient(vaultURL, d.TokenCredential, &azsecrets.ClientOptions{ClientOptions: d.opts.ClientOptions})
	if err != nil {
		return "", fmt.Errorf("create secrets client: %w", err)
	}
	res, err := client.GetSecret(ctx, name, "", nil)
	if err != nil {
		if isNotFoundError(err) {
			return "", fmt.Errorf("%w: %s", model.ErrSecretNotFound, name)
		}
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	if res.Value == nil {
		return "", fmt.Errorf("%w: %s has no value", model.ErrSecretNotFound, name)
	}
	return *res.Value, nil
}
