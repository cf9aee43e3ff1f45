package workspace

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// CredentialsInput names the Key Vault secrets holding a service principal.
type CredentialsInput struct {
	Workspace          *model.Workspace `json:"workspace"`
	TenantIDSecret     string           `json:"tenant_id_secret"`
	ClientIDSecret     string           `json:"client_id_secret"`
	ClientSecretSecret string           `json:"client_secret_secret"`
}

// CredentialsOutput holds the service principal read from Key Vault.
type CredentialsOutput struct {
	ServicePrincipal model.ServicePrincipal `json:"-"`
}

// Credentials reads the service principal from the workspace's default Key Vault.
func (u *UseCase) Credentials(ctx context.Context, in *CredentialsInput) (*CredentialsOutput, error) {
	if in == nil || in.Workspace == nil {
		return nil, fmt.Errorf("workspace is required")
	}
	if in.Workspace.KeyVaultID == "" {
		return nil, fmt.Errorf("workspace %s has no default key vault", in.Workspace.Name)
	}
	get := func(name string) (string, error) {
		v, err := u.SecretPort.SecretGet(ctx, in.Workspace.KeyVaultID, name)
		if err != nil {
			return "", fmt.Errorf("read secret %s: %w", name, err)
		}
		return v, nil
	}

	var sp model.ServicePrincipal
	var err error
	if sp.TenantID, err = get(in.TenantIDSecret); err != nil {
		return nil, err
	}
	if sp.ClientID, err = get(in.ClientIDSecret); err != nil {
		return nil, err
	}
	if sp.ClientSecret, err = get(in.ClientSecretSecret); err != nil {
		return nil, err
	}
	return &CredentialsOutput{ServicePrincipal: sp}, nil
}
