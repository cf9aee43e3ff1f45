package pipelinecfg

import "github.com/yaegashi/mlpipeops/domain/model"

// InstancePool converts the pool settings to a create request.
func (p *Pool) InstancePool() model.InstancePool {
	return model.InstancePool{
		Name:                       p.Name,
		NodeTypeID:                 p.NodeTypeID,
		IdleAutoterminationMinutes: p.IdleAutoterminationMinutes,
		MinIdleInstances:           p.MinIdleInstances,
		MaxCapacity:                p.MaxCapacity,
		PreloadedSparkVersions:     append([]string(nil), p.PreloadedSparkVersions...),
	}
}

// DatabricksStep converts the step settings to a step template. Pool, notebook
// path and compute target are filled in at build time.
func (s *Step) DatabricksStep() model.DatabricksStep {
	step := model.DatabricksStep{
		Name:         s.Name,
		RunName:      s.RunName,
		SparkVersion: s.SparkVersion,
		NumWorkers:   s.NumWorkers,
		AllowReuse:   s.AllowReuse == nil || *s.AllowReuse,
	}
	for _, in := range s.Inputs {
		step.Inputs = append(step.Inputs, model.DataReference{Name: in.Name, Datastore: in.Datastore, PathOnDatastore: in.Path})
	}
	for _, out := range s.Outputs {
		step.Outputs = append(step.Outputs, model.PipelineData{Name: out.Name, Datastore: out.Datastore})
	}
	if len(s.NotebookParams) > 0 {
		step.NotebookParams = make(map[string]string, len(s.NotebookParams))
		for k, v := range s.NotebookParams {
			step.NotebookParams[k] = v
		}
	}
	return step
}
