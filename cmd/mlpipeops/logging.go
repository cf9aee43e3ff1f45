package main

import (
	"context"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/yaegashi/mlpipeops/internal/logging"
)

var (
	logFile   *logging.LogFile
	logFileMu sync.Mutex
)

// setupLogging installs the logger selected by the global flags into the
// command context.
func setupLogging(c *cobra.Command, _ []string) error {
	flags := c.Flags()
	format, _ := flags.GetString("log-format")
	if env := os.Getenv(envLogFormat); env != "" { // env overrides flag
		format = env
	}
	levelStr, _ := flags.GetString("log-level")
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	output, _ := flags.GetString("log-output")
	dir, _ := flags.GetString("log-dir")
	retention, _ := flags.GetInt("log-retention-days")

	lf, err := logging.NewLogFile(&logging.LogConfig{Output: output, Dir: dir, RetentionDays: retention})
	if err != nil {
		return err
	}
	l, err := logging.NewWithWriter(format, level, lf.Writer())
	if err != nil {
		lf.Close()
		return err
	}

	logFileMu.Lock()
	logFile = lf
	logFileMu.Unlock()

	c.SetContext(logging.WithLogger(c.Context(), l))
	return nil
}

func closeLogFile() {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// withCmdRunLogger starts a CMD:<operation> span carrying resourceId.
//
//	ctx, cleanup := withCmdRunLogger(ctx, "build", resourceID)
//	defer func() { cleanup(err) }()
func withCmdRunLogger(ctx context.Context, operation, resourceID string) (context.Context, func(err error)) {
	return logging.Span(ctx, "CMD:"+operation, "resourceId", resourceID)
}
