package model

import "context"

// InstancePool is a pre-warmed VM pool in a Spark workspace.
type InstancePool struct {
	ID                         string   `json:"instance_pool_id,omitempty"`
	Name                       string   `json:"instance_pool_name"`
	NodeTypeID                 string   `json:"node_type_id,omitempty"`
	IdleAutoterminationMinutes int      `json:"idle_instance_autotermination_minutes,omitempty"`
	MinIdleInstances           int      `json:"min_idle_instances,omitempty"`
	MaxCapacity                int      `json:"max_capacity,omitempty"`
	PreloadedSparkVersions     []string `json:"preloaded_spark_versions,omitempty"`
	State                      string   `json:"state,omitempty"`
}

// Notebook import parameters.
const (
	NotebookLanguagePython = "PYTHON"
	NotebookFormatSource   = "SOURCE"
)

// NotebookImport describes a workspace import request.
type NotebookImport struct {
	Path      string
	Content   []byte
	Language  string
	Format    string
	Overwrite bool
}

// SparkPort is the Spark workspace management API.
type SparkPort interface {
	TokenCreate(ctx context.Context, comment string) (string, error)
	InstancePoolList(ctx context.Context) ([]*InstancePool, error)
	InstancePoolCreate(ctx context.Context, pool InstancePool) (string, error)
	WorkspaceMkdirs(ctx context.Context, path string) error
	WorkspaceImport(ctx context.Context, in NotebookImport) error
}
