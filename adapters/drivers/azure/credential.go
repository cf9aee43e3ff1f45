package azure

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Setting keys understood by NewCredential.
const (
	SettingAuthMethod          = "AZURE_AUTH_METHOD"
	SettingTenantID            = "AZURE_TENANT_ID"
	SettingClientID            = "AZURE_CLIENT_ID"
	SettingClientSecret        = "AZURE_CLIENT_SECRET"
	SettingFederatedTokenFile  = "AZURE_FEDERATED_TOKEN_FILE"
	AuthMethodDefault          = "default"
	AuthMethodClientSecret     = "client_secret"
	AuthMethodManagedIdentity  = "managed_identity"
	AuthMethodWorkloadIdentity = "workload_identity"
	AuthMethodAzureCLI         = "azure_cli"
	AuthMethodAzureDeveloper   = "azure_developer_cli"
)

// NewCredential builds a token credential from settings. An empty
// AZURE_AUTH_METHOD selects DefaultAzureCredential.
func NewCredential(settings map[string]string) (azcore.TokenCredential, error) {
	get := func(k string) string {
		if settings == nil {
			return ""
		}
		return strings.TrimSpace(settings[k])
	}

	authMethod := get(SettingAuthMethod)
	if authMethod == "" {
		authMethod = AuthMethodDefault
	}

	var cred azcore.TokenCredential
	var err error
	switch authMethod {
	case AuthMethodDefault:
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	case AuthMethodClientSecret:
		return NewServicePrincipalCredential(get(SettingTenantID), get(SettingClientID), get(SettingClientSecret))
	case AuthMethodManagedIdentity:
		opts := &azidentity.ManagedIdentityCredentialOptions{}
		if clientID := get(SettingClientID); clientID != "" {
			opts.ID = azidentity.ClientID(clientID)
		}
		cred, err = azidentity.NewManagedIdentityCredential(opts)
	case AuthMethodWorkloadIdentity:
		tenantID := get(SettingTenantID)
		clientID := get(SettingClientID)
		tokenFile := get(SettingFederatedTokenFile)
		if missing := missingKeys(map[string]string{SettingTenantID: tenantID, SettingClientID: clientID, SettingFederatedTokenFile: tokenFile}); missing != "" {
			return nil, fmt.Errorf("workload_identity auth requires %s", missing)
		}
		cred, err = azidentity.NewWorkloadIdentityCredential(&azidentity.WorkloadIdentityCredentialOptions{
			TenantID:      tenantID,
			ClientID:      clientID,
			TokenFilePath: tokenFile,
		})
	case AuthMethodAzureCLI:
		cred, err = azidentity.NewAzureCLICredential(nil)
	case AuthMethodAzureDeveloper:
		cred, err = azidentity.NewAzureDeveloperCLICredential(nil)
	default:
		return nil, fmt.Errorf("unsupported %s: %s", SettingAuthMethod, authMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}
	return cred, nil
}

// NewServicePrincipalCredential builds a client secret credential.
func NewServicePrincipalCredential(tenantID, clientID, clientSecret string) (azcore.TokenCredential, error) {
	if missing := missingKeys(map[string]string{SettingTenantID: tenantID, SettingClientID: clientID, SettingClientSecret: clientSecret}); missing != "" {
		return nil, fmt.Errorf("client_secret auth requires %s", missing)
	}
	cred, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}
	return cred, nil
}

// missingKeys lists the keys of kv whose values are empty.
func missingKeys(kv map[string]string) string {
	var missing []string
	for _, k := range []string{SettingTenantID, SettingClientID, SettingClientSecret, SettingFederatedTokenFile} {
		if v, ok := kv[k]; ok && v == "" {
			missing = append(missing, k)
		}
	}
	return strings.Join(missing, ", ")
}
