package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerateLogFilename(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected string
	}{
		{
			name:     "basic timestamp",
			time:     time.Date(2026, 10, 19, 9, 51, 5, 123000000, time.UTC),
			expected: "mlpipeops-20261019-095105-123.log",
		},
		{
			name:     "midnight",
			time:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "mlpipeops-20260101-000000-000.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateLogFilename(tt.time); got != tt.expected {
				t.Errorf("GenerateLogFilename() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewLogFile_Destinations(t *testing.T) {
	dir := t.TempDir()

	t.Run("stderr", func(t *testing.T) {
		for _, out := range []string{"", "-"} {
			lf, err := NewLogFile(&LogConfig{Output: out, Dir: dir})
			if err != nil {
				t.Fatalf("NewLogFile(%q) error = %v", out, err)
			}
			if lf.Path != "" || lf.Writer() != os.Stderr {
				t.Errorf("NewLogFile(%q) should write to stderr", out)
			}
			lf.Close()
		}
	})

	t.Run("none", func(t *testing.T) {
		lf, err := NewLogFile(&LogConfig{Output: "none", Dir: dir})
		if err != nil {
			t.Fatalf("NewLogFile() error = %v", err)
		}
		defer lf.Close()
		if lf.Path != "" || lf.Writer() == nil {
			t.Errorf("unexpected none destination: path=%q", lf.Path)
		}
	})

	t.Run("auto", func(t *testing.T) {
		lf, err := NewLogFile(&LogConfig{Output: "auto", Dir: dir})
		if err != nil {
			t.Fatalf("NewLogFile() error = %v", err)
		}
		defer lf.Close()
		if filepath.Dir(lf.Path) != dir {
			t.Errorf("Path should be in dir %q, got %q", dir, lf.Path)
		}
		if _, err := os.Stat(lf.Path); err != nil {
			t.Errorf("log file was not created: %v", err)
		}
	})

	t.Run("relative path", func(t *testing.T) {
		lf, err := NewLogFile(&LogConfig{Output: "relative.log", Dir: dir})
		if err != nil {
			t.Fatalf("NewLogFile() error = %v", err)
		}
		defer lf.Close()
		if want := filepath.Join(dir, "relative.log"); lf.Path != want {
			t.Errorf("Path = %q, want %q", lf.Path, want)
		}
	})
}

func TestCleanupOldLogFiles(t *testing.T) {
	dir := t.TempDir()
	oldTime := time.Now().AddDate(0, 0, -10)
	newTime := time.Now().AddDate(0, 0, -3)

	write := func(name string, mtime time.Time) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatal(err)
		}
		return p
	}
	oldFile := write("mlpipeops-20261001-120000-000.log", oldTime)
	newFile := write("mlpipeops-20261010-120000-000.log", newTime)
	otherFile := write("other.log", oldTime)

	if err := CleanupOldLogFiles(dir, 7); err != nil {
		t.Fatalf("CleanupOldLogFiles() error = %v", err)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Errorf("old log file should have been deleted: %s", oldFile)
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Errorf("new log file should have been kept: %s", newFile)
	}
	if _, err := os.Stat(otherFile); err != nil {
		t.Errorf("non-matching file should have been kept: %s", otherFile)
	}

	if err := CleanupOldLogFiles("/nonexistent/path", 7); err != nil {
		t.Errorf("CleanupOldLogFiles() should ignore missing dir, got: %v", err)
	}
}
