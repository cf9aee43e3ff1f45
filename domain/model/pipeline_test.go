package model

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func validStep() DatabricksStep {
	return DatabricksStep{
		Name:           "FeatureEngineering",
		RunName:        "FeatureEngineering",
		Inputs:         []DataReference{{Name: "training", Datastore: "trainingdata", PathOnDatastore: "/"}},
		Outputs:        []PipelineData{{Name: "feature_engineered", Datastore: "workspaceblobstore"}},
		SparkVersion:   "6.2.x-scala2.11",
		InstancePoolID: "pool-1",
		NumWorkers:     3,
		NotebookPath:   "/Shared/AzureMLDeployed/abc/feature_engineering",
		ComputeTarget:  "databricks",
		AllowReuse:     true,
	}
}

func TestPipelineValidate(t *testing.T) {
	tests := []struct {
		name        string
		pipeline    *Pipeline
		errContains string
	}{
		{name: "valid", pipeline: &Pipeline{Steps: []DatabricksStep{validStep()}}},
		{name: "nil", pipeline: nil, errContains: "no steps"},
		{name: "empty", pipeline: &Pipeline{}, errContains: "no steps"},
		{
			name: "missing notebook",
			pipeline: func() *Pipeline {
				s := validStep()
				s.NotebookPath = ""
				return &Pipeline{Steps: []DatabricksStep{s}}
			}(),
			errContains: "notebook_path is required",
		},
		{
			name: "zero workers",
			pipeline: func() *Pipeline {
				s := validStep()
				s.NumWorkers = 0
				return &Pipeline{Steps: []DatabricksStep{s}}
			}(),
			errContains: "num_workers must be positive",
		},
		{
			name: "input without datastore",
			pipeline: func() *Pipeline {
				s := validStep()
				s.Inputs[0].Datastore = ""
				return &Pipeline{Steps: []DatabricksStep{s}}
			}(),
			errContains: "inputs[0]",
		},
		{
			name:        "duplicate step",
			pipeline:    &Pipeline{Steps: []DatabricksStep{validStep(), validStep()}},
			errContains: "duplicate step name",
		},
		{
			name: "duplicate output",
			pipeline: func() *Pipeline {
				a, b := validStep(), validStep()
				b.Name = "Second"
				return &Pipeline{Steps: []DatabricksStep{a, b}}
			}(),
			errContains: "produced by both",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pipeline.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errContains)
			}
			if !errors.Is(err, ErrPipelineInvalid) {
				t.Errorf("error should wrap ErrPipelineInvalid: %v", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestPipelineDatastores(t *testing.T) {
	p := &Pipeline{Steps: []DatabricksStep{validStep()}}
	got := p.Datastores()
	want := []string{"trainingdata", "workspaceblobstore"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Datastores() = %v, want %v", got, want)
	}
}

func TestWorkspaceRefValidate(t *testing.T) {
	ok := WorkspaceRef{SubscriptionID: "s", ResourceGroup: "rg", Name: "ws"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := ok
	bad.ResourceGroup = ""
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "resource_group") {
		t.Fatalf("expected resource_group error, got %v", err)
	}
}
