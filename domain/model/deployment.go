package model

import "time"

// Deployment records one successful build: what was provisioned and published.
type Deployment struct {
	ID             string    `json:"id"`
	BuildID        string    `json:"build_id"`
	Workspace      string    `json:"workspace"`
	SparkWorkspace string    `json:"spark_workspace"`
	ComputeName    string    `json:"compute_name"`
	InstancePoolID string    `json:"instance_pool_id"`
	NotebookPath   string    `json:"notebook_path"`
	PipelineID     string    `json:"pipeline_id"`
	PipelineName   string    `json:"pipeline_name"`
	Version        string    `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
}
