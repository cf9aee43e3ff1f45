package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// logFilePrefix is shared by generated log file names and retention cleanup.
const logFilePrefix = "mlpipeops-"

// LogConfig holds configuration for log output destinations.
type LogConfig struct {
	Output        string // "-" or empty for stderr, "none" to disable, "auto" for a generated file in Dir, or a path
	Dir           string // Directory for generated and relative log files
	RetentionDays int    // Generated files older than this are removed; 0 keeps everything
}

// LogFile manages a log destination lifecycle.
type LogFile struct {
	Path   string   // Full path to the log file (empty for stderr or disabled)
	file   *os.File // Opened file handle (nil for stderr or disabled)
	writer io.Writer
}

// NewLogFile opens the destination described by cfg.
func NewLogFile(cfg *LogConfig) (*LogFile, error) {
	lf := &LogFile{}

	switch strings.ToLower(cfg.Output) {
	case "", "-":
		lf.writer = os.Stderr
		return lf, nil
	case "none":
		lf.writer = io.Discard
		return lf, nil
	case "auto":
		lf.Path = filepath.Join(cfg.Dir, GenerateLogFilename(time.Now().UTC()))
	default:
		if filepath.IsAbs(cfg.Output) || cfg.Dir == "" {
			lf.Path = cfg.Output
		} else {
			lf.Path = filepath.Join(cfg.Dir, cfg.Output)
		}
	}

	dir := filepath.Dir(lf.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}
	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", lf.Path, err)
	}
	lf.file = f
	lf.writer = f

	if cfg.RetentionDays > 0 {
		_ = CleanupOldLogFiles(dir, cfg.RetentionDays)
	}
	return lf, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer {
	return lf.writer
}

// Close closes the log file if one was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// GenerateLogFilename returns mlpipeops-YYYYMMDD-HHMMSS-sss.log for t.
func GenerateLogFilename(t time.Time) string {
	return fmt.Sprintf("%s%s-%03d.log", logFilePrefix, t.Format("20060102-150405"), t.Nanosecond()/1_000_000)
}

// CleanupOldLogFiles removes generated log files older than retentionDays from dir.
func CleanupOldLogFiles(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading log directory %q: %w", dir, err)
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
	return nil
}
