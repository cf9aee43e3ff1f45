package amlenv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// Environment variables set by Azure ML inside a submitted run.
const (
	RunIDEnvKey          = "AZUREML_RUN_ID"
	SubscriptionEnvKey   = "AZUREML_ARM_SUBSCRIPTION"
	ResourceGroupEnvKey  = "AZUREML_ARM_RESOURCEGROUP"
	WorkspaceNameEnvKey  = "AZUREML_ARM_WORKSPACE_NAME"
	ConfigFileName       = "config.json"
	azuremlConfigDirName = ".azureml"
	legacyConfigDirName  = "aml_config"
)

// Source records where the workspace reference came from.
type Source string

const (
	SourceRunContext Source = "run"
	SourceConfigFile Source = "config"
)

// Env is the resolved workspace reference plus its origin.
type Env struct {
	Ref        model.WorkspaceRef
	Source     Source
	RunID      string // set for SourceRunContext
	ConfigPath string // set for SourceConfigFile
}

// configFile is the workspace config.json written by the Azure portal and CLI.
type configFile struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	WorkspaceName  string `json:"workspace_name"`
}

// Resolve determines the workspace to operate on.
//
// Resolution order:
//  1. Run context: AZUREML_RUN_ID with the AZUREML_ARM_* variables (lookupEnv).
//  2. configPath when non-empty.
//  3. Upward search from workDir for .azureml/config.json, config.json or aml_config/config.json.
func Resolve(lookupEnv func(string) (string, bool), configPath, workDir string) (*Env, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if env, ok := fromRunContext(lookupEnv); ok {
		return env, nil
	}

	if configPath == "" {
		found, err := searchConfigFile(workDir)
		if err != nil {
			return nil, fmt.Errorf("searching for %s: %w", ConfigFileName, err)
		}
		if found == "" {
			return nil, fmt.Errorf("workspace %s not found in ancestors of %q and not running inside an Azure ML run", ConfigFileName, workDir)
		}
		configPath = found
	}

	ref, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	return &Env{Ref: ref, Source: SourceConfigFile, ConfigPath: configPath}, nil
}

func fromRunContext(lookupEnv func(string) (string, bool)) (*Env, bool) {
	get := func(k string) string {
		v, _ := lookupEnv(k)
		return strings.TrimSpace(v)
	}
	runID := get(RunIDEnvKey)
	if runID == "" {
		return nil, false
	}
	ref := model.WorkspaceRef{
		SubscriptionID: get(SubscriptionEnvKey),
		ResourceGroup:  get(ResourceGroupEnvKey),
		Name:           get(WorkspaceNameEnvKey),
	}
	if ref.Validate() != nil {
		// Offline or partial run context; fall back to config files.
		return nil, false
	}
	return &Env{Ref: ref, Source: SourceRunContext, RunID: runID}, true
}

// searchConfigFile walks up from startDir and returns the first config file found, or "".
func searchConfigFile(startDir string) (string, error) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		for _, candidate := range []string{
			filepath.Join(current, azuremlConfigDirName, ConfigFileName),
			filepath.Join(current, ConfigFileName),
			filepath.Join(current, legacyConfigDirName, ConfigFileName),
		} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func loadConfigFile(path string) (model.WorkspaceRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WorkspaceRef{}, fmt.Errorf("reading config file %q: %w", path, err)
	}
	var cf configFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return model.WorkspaceRef{}, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	ref := model.WorkspaceRef{
		SubscriptionID: strings.TrimSpace(cf.SubscriptionID),
		ResourceGroup:  strings.TrimSpace(cf.ResourceGroup),
		Name:           strings.TrimSpace(cf.WorkspaceName),
	}
	if err := ref.Validate(); err != nil {
		return model.WorkspaceRef{}, fmt.Errorf("config file %q: %w", path, err)
	}
	return ref, nil
}
