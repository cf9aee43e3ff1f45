package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=..." in release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// versionInfo describes the running binary.
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

func currentVersion() versionInfo {
	return versionInfo{Version: version, Commit: commit, Date: date, Go: runtime.Version()}
}

func (v versionInfo) String() string {
	return fmt.Sprintf("mlpipeops %s (commit %s, built %s, %s)", v.Version, v.Commit, v.Date, v.Go)
}

func newCmdVersion() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := currentVersion()
			if asJSON {
				return printJSON(cmd, v)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return cmd
}
