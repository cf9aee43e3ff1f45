package pipelinecfg

import (
	"fmt"

	"github.com/yaegashi/mlpipeops/internal/naming"
)

// Validate performs semantic validation on a defaulted configuration tree.
func (r *Root) Validate() error {
	if r.Version != "v1" {
		return fmt.Errorf("version: unsupported %q", r.Version)
	}
	if err := naming.ValidateComputeName(r.Compute.Name); err != nil {
		return fmt.Errorf("compute.name: %w", err)
	}
	if err := r.Pool.validate(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	if r.Notebook.Name == "" || r.Notebook.Folder == "" {
		return fmt.Errorf("notebook: name and folder are required")
	}
	if r.Notebook.Folder[0] != '/' {
		return fmt.Errorf("notebook.folder: must be an absolute workspace path, got %q", r.Notebook.Folder)
	}
	if err := r.Step.validate(); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	return nil
}

func (p *Pool) validate() error {
	if err := naming.ValidatePoolName(p.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if p.NodeTypeID == "" {
		return fmt.Errorf("nodeTypeId is required")
	}
	if p.IdleAutoterminationMinutes < 0 || p.IdleAutoterminationMinutes > 10000 {
		return fmt.Errorf("idleAutoterminationMinutes: out of range: %d", p.IdleAutoterminationMinutes)
	}
	if p.MinIdleInstances < 0 || p.MaxCapacity < 0 {
		return fmt.Errorf("minIdleInstances and maxCapacity must not be negative")
	}
	if p.MaxCapacity > 0 && p.MinIdleInstances > p.MaxCapacity {
		return fmt.Errorf("minIdleInstances (%d) exceeds maxCapacity (%d)", p.MinIdleInstances, p.MaxCapacity)
	}
	return nil
}

func (s *Step) validate() error {
	if s.NumWorkers < 1 {
		return fmt.Errorf("numWorkers: must be positive, got %d", s.NumWorkers)
	}
	seen := make(map[string]struct{}, len(s.Inputs)+len(s.Outputs))
	for i, in := range s.Inputs {
		if in.Name == "" || in.Datastore == "" {
			return fmt.Errorf("inputs[%d]: name and datastore are required", i)
		}
		if _, dup := seen[in.Name]; dup {
			return fmt.Errorf("inputs[%d].name: duplicate name %q", i, in.Name)
		}
		seen[in.Name] = struct{}{}
	}
	for i, out := range s.Outputs {
		if out.Name == "" || out.Datastore == "" {
			return fmt.Errorf("outputs[%d]: name and datastore are required", i)
		}
		if _, dup := seen[out.Name]; dup {
			return fmt.Errorf("outputs[%d].name: duplicate name %q", i, out.Name)
		}
		seen[out.Name] = struct{}{}
	}
	return nil
}
