package model

import (
	"context"
	"errors"
	"fmt"
)

// DataReference is a step input read from a datastore path.
type DataReference struct {
	Name            string `json:"data_reference_name"`
	Datastore       string `json:"datastore"`
	PathOnDatastore string `json:"path_on_datastore"`
}

// PipelineData is an intermediate step output stored on a datastore.
type PipelineData struct {
	Name      string `json:"name"`
	Datastore string `json:"datastore"`
}

// DatabricksStep runs a notebook on a Databricks job cluster drawn from an instance pool.
type DatabricksStep struct {
	Name           string            `json:"name"`
	RunName        string            `json:"run_name,omitempty"`
	Inputs         []DataReference   `json:"inputs,omitempty"`
	Outputs        []PipelineData    `json:"outputs,omitempty"`
	SparkVersion   string            `json:"spark_version"`
	InstancePoolID string            `json:"instance_pool_id"`
	NumWorkers     int               `json:"num_workers"`
	NotebookPath   string            `json:"notebook_path"`
	NotebookParams map[string]string `json:"notebook_params,omitempty"`
	ComputeTarget  string            `json:"compute_target"`
	AllowReuse     bool              `json:"allow_reuse"`
}

func (s *DatabricksStep) validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if s.NotebookPath == "" {
		errs = append(errs, fmt.Errorf("notebook_path is required"))
	}
	if s.ComputeTarget == "" {
		errs = append(errs, fmt.Errorf("compute_target is required"))
	}
	if s.InstancePoolID == "" {
		errs = append(errs, fmt.Errorf("instance_pool_id is required"))
	}
	if s.SparkVersion == "" {
		errs = append(errs, fmt.Errorf("spark_version is required"))
	}
	if s.NumWorkers <= 0 {
		errs = append(errs, fmt.Errorf("num_workers must be positive, got %d", s.NumWorkers))
	}
	for i, in := range s.Inputs {
		if in.Name == "" || in.Datastore == "" {
			errs = append(errs, fmt.Errorf("inputs[%d]: name and datastore are required", i))
		}
	}
	for i, out := range s.Outputs {
		if out.Name == "" || out.Datastore == "" {
			errs = append(errs, fmt.Errorf("outputs[%d]: name and datastore are required", i))
		}
	}
	return errors.Join(errs...)
}

// Pipeline is an ordered set of steps.
type Pipeline struct {
	Steps []DatabricksStep `json:"steps"`
}

// Validate checks the pipeline graph before publishing. Errors wrap ErrPipelineInvalid.
func (p *Pipeline) Validate() error {
	if p == nil || len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrPipelineInvalid)
	}
	steps := make(map[string]struct{}, len(p.Steps))
	outputs := make(map[string]string)
	for i := range p.Steps {
		s := &p.Steps[i]
		if err := s.validate(); err != nil {
			return fmt.Errorf("%w: steps[%d]: %w", ErrPipelineInvalid, i, err)
		}
		if _, dup := steps[s.Name]; dup {
			return fmt.Errorf("%w: duplicate step name %q", ErrPipelineInvalid, s.Name)
		}
		steps[s.Name] = struct{}{}
		for _, out := range s.Outputs {
			if prev, dup := outputs[out.Name]; dup {
				return fmt.Errorf("%w: output %q produced by both %q and %q", ErrPipelineInvalid, out.Name, prev, s.Name)
			}
			outputs[out.Name] = s.Name
		}
	}
	return nil
}

// Datastores returns the distinct datastore names referenced by the pipeline, in order of first use.
func (p *Pipeline) Datastores() []string {
	var names []string
	seen := map[string]bool{}
	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, s := range p.Steps {
		for _, in := range s.Inputs {
			add(in.Datastore)
		}
		for _, out := range s.Outputs {
			add(out.Datastore)
		}
	}
	return names
}

// PublishedPipeline is the result of publishing a pipeline.
type PublishedPipeline struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
	Endpoint    string `json:"endpoint,omitempty"`
}

// PipelinePublishRequest carries a validated pipeline and its published metadata.
type PipelinePublishRequest struct {
	Name        string
	Description string
	Version     string
	Pipeline    *Pipeline
}

// PipelinePort publishes pipelines to a workspace.
type PipelinePort interface {
	PipelinePublish(ctx context.Context, ws *Workspace, req PipelinePublishRequest) (*PublishedPipeline, error)
}
