package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yaegashi/mlpipeops/adapters/drivers/azure"
	"github.com/yaegashi/mlpipeops/config/amlenv"
	"github.com/yaegashi/mlpipeops/config/pipelinecfg"
	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/logging"
	"github.com/yaegashi/mlpipeops/usecase/workspace"
)

const defaultSettingsFile = pipelinecfg.DefaultFileName

// authEnvKeys are read from the process environment and override settings.
var authEnvKeys = []string{
	azure.SettingAuthMethod,
	azure.SettingTenantID,
	azure.SettingClientID,
	azure.SettingClientSecret,
	azure.SettingFederatedTokenFile,
}

// session holds what every Azure command resolves first.
type session struct {
	Env      *amlenv.Env
	Settings *pipelinecfg.Root
	Cloud    model.CloudPort
}

// findFlag looks up a flag on cmd or any of its parents.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) (value string, changed bool) {
	if f := findFlag(cmd, name); f != nil {
		return f.Value.String(), f.Changed
	}
	return "", false
}

// loadSettings reads the settings file named by --settings, or the default
// file when present.
func loadSettings(cmd *cobra.Command) (*pipelinecfg.Root, error) {
	path, changed := flagString(cmd, "settings")
	if path == "" {
		path = defaultSettingsFile
	}
	cfg, err := pipelinecfg.LoadOptional(path, !changed)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return cfg, nil
}

// authSettings merges settings file values with AZURE_* environment variables.
// Inside a run context the default method is the compute's managed identity.
func authSettings(cfg *pipelinecfg.Root, env *amlenv.Env) map[string]string {
	out := map[string]string{}
	for k, v := range cfg.Auth.Settings {
		out[k] = v
	}
	for _, k := range authEnvKeys {
		if v, ok := os.LookupEnv(k); ok && v != "" {
			out[k] = v
		}
	}
	if out[azure.SettingAuthMethod] == "" && env.Source == amlenv.SourceRunContext {
		out[azure.SettingAuthMethod] = azure.AuthMethodManagedIdentity
	}
	return out
}

// newSession resolves the workspace reference, settings and Azure credential.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	configPath, _ := flagString(cmd, "config")
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	env, err := amlenv.Resolve(os.LookupEnv, configPath, wd)
	if err != nil {
		return nil, err
	}
	cred, err := azure.NewCredential(authSettings(cfg, env))
	if err != nil {
		return nil, err
	}
	drv, err := azure.New(cred, nil)
	if err != nil {
		return nil, err
	}
	return &session{Env: env, Settings: cfg, Cloud: drv}, nil
}

// inRunContext reports whether the workspace came from a submitted run.
func (s *session) inRunContext() bool {
	return s.Env.Source == amlenv.SourceRunContext
}

// servicePrincipal reads the service principal from the workspace's default
// Key Vault and returns a cloud session authenticated as it.
func (s *session) servicePrincipal(ctx context.Context, ws *model.Workspace) (model.CloudPort, error) {
	out, err := (&workspace.UseCase{SecretPort: s.Cloud}).Credentials(ctx, &workspace.CredentialsInput{
		Workspace:          ws,
		TenantIDSecret:     s.Settings.Auth.TenantIDSecret,
		ClientIDSecret:     s.Settings.Auth.ClientIDSecret,
		ClientSecretSecret: s.Settings.Auth.ClientSecretSecret,
	})
	if err != nil {
		return nil, err
	}
	return s.Cloud.WithServicePrincipal(out.ServicePrincipal)
}

// workspace resolves the workspace and, inside a run context, switches the
// session to the service principal stored in its Key Vault.
func (s *session) workspace(ctx context.Context) (*model.Workspace, error) {
	ws, err := s.Cloud.WorkspaceGet(ctx, s.Env.Ref)
	if err != nil {
		return nil, err
	}
	if !s.inRunContext() {
		return ws, nil
	}
	cloud, err := s.servicePrincipal(ctx, ws)
	if err != nil {
		return nil, err
	}
	s.Cloud = cloud
	logging.FromContext(ctx).Info(ctx, "using service principal from workspace key vault", "runId", s.Env.RunID)
	return ws, nil
}

// spark resolves the workspace, the named Databricks workspace in the same
// resource group, and a Spark client for it. The Spark client always
// authenticates as the workspace Key Vault service principal.
func (s *session) spark(ctx context.Context, name string) (*model.Workspace, *model.SparkWorkspace, model.SparkPort, error) {
	ws, err := s.workspace(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	sw, err := s.Cloud.SparkWorkspaceGet(ctx, ws.SubscriptionID, ws.ResourceGroup, name)
	if err != nil {
		return nil, nil, nil, err
	}
	spCloud := s.Cloud
	if !s.inRunContext() {
		if spCloud, err = s.servicePrincipal(ctx, ws); err != nil {
			return nil, nil, nil, err
		}
	}
	sp, err := spCloud.SparkClient(ctx, sw)
	if err != nil {
		return nil, nil, nil, err
	}
	return ws, sw, sp, nil
}
