package pipelinecfg

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *Root)
		errContains string
	}{
		{name: "defaults", mutate: func(r *Root) {}},
		{name: "bad version", mutate: func(r *Root) { r.Version = "v2" }, errContains: "version"},
		{name: "bad compute name", mutate: func(r *Root) { r.Compute.Name = "data_bricks" }, errContains: "compute.name"},
		{name: "pool name with slash", mutate: func(r *Root) { r.Pool.Name = "a/b" }, errContains: "pool: name"},
		{name: "min idle above capacity", mutate: func(r *Root) { r.Pool.MinIdleInstances, r.Pool.MaxCapacity = 5, 2 }, errContains: "exceeds maxCapacity"},
		{name: "relative folder", mutate: func(r *Root) { r.Notebook.Folder = "Shared" }, errContains: "absolute"},
		{name: "negative workers", mutate: func(r *Root) { r.Step.NumWorkers = -1 }, errContains: "numWorkers"},
		{
			name: "duplicate io name",
			mutate: func(r *Root) {
				r.Step.Outputs = []DataOut{{Name: "training", Datastore: "workspaceblobstore"}}
			},
			errContains: "duplicate name",
		},
		{
			name:        "output without datastore",
			mutate:      func(r *Root) { r.Step.Outputs = []DataOut{{Name: "x"}} },
			errContains: "outputs[0]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := (&Root{}).Defaults()
			tt.mutate(r)
			err := r.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Fatalf("error = %v, want substring %q", err, tt.errContains)
			}
		})
	}
}
