package notebook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/logging"
	"github.com/yaegashi/mlpipeops/internal/naming"
)

// sourceExt is appended to the notebook name to find its local source.
const sourceExt = ".py"

// UploadInput locates a local notebook and its remote folder.
type UploadInput struct {
	// Folder is the absolute workspace folder, e.g. /Shared/AzureMLDeployed.
	Folder string `json:"folder"`
	// Dir is the local directory holding <Name>.py.
	Dir  string `json:"dir"`
	Name string `json:"name"`
}

// UploadOutput holds the uploaded notebook location.
type UploadOutput struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
}

// Upload imports <Dir>/<Name>.py as a Python notebook at
// <Folder>/<sha1>/<Name>, overwriting any notebook already there.
func (u *UseCase) Upload(ctx context.Context, in *UploadInput) (*UploadOutput, error) {
	if in == nil || in.Folder == "" || in.Name == "" {
		return nil, fmt.Errorf("notebook folder and name are required")
	}
	src := filepath.Join(in.Dir, in.Name+sourceExt)
	content, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}

	checksum := naming.Checksum(content)
	folder := naming.NotebookFolder(in.Folder, content)
	path := naming.NotebookPath(in.Folder, in.Name, content)

	if err := u.SparkPort.WorkspaceMkdirs(ctx, folder); err != nil {
		return nil, fmt.Errorf("mkdirs %s: %w", folder, err)
	}
	err = u.SparkPort.WorkspaceImport(ctx, model.NotebookImport{
		Path:      path,
		Content:   content,
		Language:  model.NotebookLanguagePython,
		Format:    model.NotebookFormatSource,
		Overwrite: true,
	})
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	logging.FromContext(ctx).Info(ctx, "notebook uploaded", "path", path, "source", src)
	return &UploadOutput{Path: path, Checksum: checksum}, nil
}
