package notebook

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/naming"
)

// mockSparkPort records workspace calls.
type mockSparkPort struct {
	model.SparkPort
	dirs      []string
	imports   []model.NotebookImport
	importErr error
}

func (m *mockSparkPort) WorkspaceMkdirs(ctx context.Context, path string) error {
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *mockSparkPort) WorkspaceImport(ctx context.Context, in model.NotebookImport) error {
	if m.importErr != nil {
		return m.importErr
	}
	m.imports = append(m.imports, in)
	return nil
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	content := []byte("# Databricks notebook source\nprint('features')\n")
	if err := os.WriteFile(filepath.Join(dir, "feature_engineering.py"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	m := &mockSparkPort{}
	uc := &UseCase{SparkPort: m}
	out, err := uc.Upload(context.Background(), &UploadInput{Folder: "/Shared/AzureMLDeployed", Dir: dir, Name: "feature_engineering"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := naming.Checksum(content)
	wantPath := "/Shared/AzureMLDeployed/" + sum + "/feature_engineering"
	if out.Path != wantPath || out.Checksum != sum {
		t.Errorf("unexpected output %+v", out)
	}
	if len(m.dirs) != 1 || m.dirs[0] != "/Shared/AzureMLDeployed/"+sum {
		t.Errorf("mkdirs = %v", m.dirs)
	}
	if len(m.imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(m.imports))
	}
	imp := m.imports[0]
	if imp.Path != wantPath || string(imp.Content) != string(content) || !imp.Overwrite ||
		imp.Language != model.NotebookLanguagePython || imp.Format != model.NotebookFormatSource {
		t.Errorf("unexpected import %+v", imp)
	}

	// Same content maps to the same path.
	out2, err := uc.Upload(context.Background(), &UploadInput{Folder: "/Shared/AzureMLDeployed", Dir: dir, Name: "feature_engineering"})
	if err != nil {
		t.Fatal(err)
	}
	if out2.Path != out.Path {
		t.Errorf("re-upload path changed: %q != %q", out2.Path, out.Path)
	}
}

func TestUpload_Errors(t *testing.T) {
	dir := t.TempDir()
	uc := &UseCase{SparkPort: &mockSparkPort{}}

	if _, err := uc.Upload(context.Background(), &UploadInput{Folder: "/Shared", Dir: dir, Name: "missing"}); err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if _, err := uc.Upload(context.Background(), &UploadInput{Dir: dir, Name: "x"}); err == nil {
		t.Error("expected error for empty folder")
	}

	if err := os.WriteFile(filepath.Join(dir, "nb.py"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	uc = &UseCase{SparkPort: &mockSparkPort{importErr: errors.New("denied")}}
	_, err := uc.Upload(context.Background(), &UploadInput{Folder: "/Shared", Dir: dir, Name: "nb"})
	if err == nil || !strings.Contains(err.Error(), "denied") {
		t.Errorf("expected import error, got %v", err)
	}
}
