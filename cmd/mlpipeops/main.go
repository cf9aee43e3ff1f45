package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yaegashi/mlpipeops/internal/logging"
)

// Environment variables overriding global flags.
const (
	envLogFormat = "MLPIPEOPS_LOG_FORMAT"
	envDBURL     = "MLPIPEOPS_DB_URL"
)

// normalizeFlagName accepts underscore spellings such as --build_id for --build-id.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mlpipeops",
		Short:   "Azure ML pipeline provisioning CLI",
		Long:    "Attach a Databricks workspace to an Azure ML workspace, prepare its instance pool and notebook, and publish the feature engineering pipeline.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	defaultDB := os.Getenv(envDBURL)
	if defaultDB == "" {
		defaultDB = "memory:"
	}
	pf := cmd.PersistentFlags()
	pf.String("db-url", defaultDB, "Deployment history store (env "+envDBURL+") (memory: | sqlite:/path/to.db)")
	pf.String("log-format", "human", "Log format (human|text|json) (env "+envLogFormat+")")
	pf.String("log-level", "info", "Log level (debug|info|warn|error)")
	pf.String("log-output", "", "Log destination (- for stderr, none, auto, or a file path)")
	pf.String("log-dir", ".mlpipeops/logs", "Directory for auto and relative log files")
	pf.Int("log-retention-days", 7, "Remove auto log files older than this many days (0 keeps all)")
	pf.String("config", "", "Workspace config.json (default: search .azureml/config.json, config.json, aml_config/config.json upward)")
	pf.String("settings", "", "Pipeline settings file (default: "+defaultSettingsFile+" when present)")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRunE = func(c *cobra.Command, _ []string) error {
		closeLogFile()
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdBuild())
	cmd.AddCommand(newCmdWorkspace())
	cmd.AddCommand(newCmdCompute())
	cmd.AddCommand(newCmdPool())
	cmd.AddCommand(newCmdNotebook())
	cmd.AddCommand(newCmdInfra())
	cmd.AddCommand(newCmdHistory())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		closeLogFile()
		os.Exit(1)
	}
}
