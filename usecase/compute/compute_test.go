package compute

import (
	"context"
	"errors"
	"testing"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// mockComputePort is a mock implementation for testing.
type mockComputePort struct {
	getFunc    func(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error)
	attachFunc func(ctx context.Context, ws *model.Workspace, name string, spark *model.SparkWorkspace, token string) (*model.ComputeTarget, error)
}

func (m *mockComputePort) ComputeGet(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ws, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockComputePort) ComputeAttach(ctx context.Context, ws *model.Workspace, name string, spark *model.SparkWorkspace, token string) (*model.ComputeTarget, error) {
	if m.attachFunc != nil {
		return m.attachFunc(ctx, ws, name, spark, token)
	}
	return nil, errors.New("not implemented")
}

// mockSparkPort is a mock implementation for testing.
type mockSparkPort struct {
	model.SparkPort
	tokenFunc func(ctx context.Context, comment string) (string, error)
}

func (m *mockSparkPort) TokenCreate(ctx context.Context, comment string) (string, error) {
	if m.tokenFunc != nil {
		return m.tokenFunc(ctx, comment)
	}
	return "", errors.New("not implemented")
}

var (
	testWS    = &model.Workspace{WorkspaceRef: model.WorkspaceRef{SubscriptionID: "s", ResourceGroup: "rg", Name: "ws"}}
	testSpark = &model.SparkWorkspace{Name: "spark", ID: "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Databricks/workspaces/spark"}
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		found   *model.ComputeTarget
		wantNil bool
		wantErr error
	}{
		{name: "absent", found: nil, wantNil: true},
		{name: "databricks", found: &model.ComputeTarget{Name: "databricks", Type: model.ComputeTypeDatabricks}},
		{name: "other type", found: &model.ComputeTarget{Name: "databricks", Type: "AKS"}, wantErr: model.ErrComputeTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &UseCase{ComputePort: &mockComputePort{
				getFunc: func(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
					return tt.found, nil
				},
			}}
			out, err := uc.Get(context.Background(), &GetInput{Workspace: testWS, Name: "databricks"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (out.Compute == nil) != tt.wantNil {
				t.Errorf("Compute = %+v, wantNil %v", out.Compute, tt.wantNil)
			}
		})
	}

	t.Run("invalid input", func(t *testing.T) {
		uc := &UseCase{ComputePort: &mockComputePort{}}
		if _, err := uc.Get(context.Background(), &GetInput{Workspace: testWS}); err == nil {
			t.Error("expected error for empty name")
		}
	})
}

func TestEnsure_Existing(t *testing.T) {
	tokenCalled := false
	uc := &UseCase{
		ComputePort: &mockComputePort{
			getFunc: func(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
				return &model.ComputeTarget{Name: name, Type: model.ComputeTypeDatabricks}, nil
			},
		},
		SparkPort: &mockSparkPort{tokenFunc: func(ctx context.Context, comment string) (string, error) {
			tokenCalled = true
			return "dapi", nil
		}},
	}
	out, err := uc.Ensure(context.Background(), &EnsureInput{Workspace: testWS, Name: "databricks", SparkWorkspace: testSpark, BuildID: "local"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Created || out.Compute == nil {
		t.Errorf("unexpected output %+v", out)
	}
	if tokenCalled {
		t.Error("token must not be issued for an existing compute")
	}
}

func TestEnsure_Attach(t *testing.T) {
	attached := false
	var gotComment, gotToken string
	uc := &UseCase{
		ComputePort: &mockComputePort{
			getFunc: func(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
				if !attached {
					return nil, nil
				}
				return &model.ComputeTarget{Name: name, Type: model.ComputeTypeDatabricks, ResourceID: testSpark.ID}, nil
			},
			attachFunc: func(ctx context.Context, ws *model.Workspace, name string, spark *model.SparkWorkspace, token string) (*model.ComputeTarget, error) {
				attached = true
				gotToken = token
				return &model.ComputeTarget{Name: name}, nil
			},
		},
		SparkPort: &mockSparkPort{tokenFunc: func(ctx context.Context, comment string) (string, error) {
			gotComment = comment
			return "dapi-xyz", nil
		}},
	}
	out, err := uc.Ensure(context.Background(), &EnsureInput{Workspace: testWS, Name: "databricks", SparkWorkspace: testSpark, BuildID: "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Created || out.Compute == nil || out.Compute.ResourceID != testSpark.ID {
		t.Errorf("unexpected output %+v", out)
	}
	if gotComment != "Azure ML Token generated by Build 42" {
		t.Errorf("token comment = %q", gotComment)
	}
	if gotToken != "dapi-xyz" {
		t.Errorf("attach token = %q", gotToken)
	}
}

func TestEnsure_Errors(t *testing.T) {
	t.Run("type mismatch", func(t *testing.T) {
		uc := &UseCase{
			ComputePort: &mockComputePort{getFunc: func(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
				return &model.ComputeTarget{Name: name, Type: "AmlCompute"}, nil
			}},
			SparkPort: &mockSparkPort{},
		}
		_, err := uc.Ensure(context.Background(), &EnsureInput{Workspace: testWS, Name: "databricks", SparkWorkspace: testSpark})
		if !errors.Is(err, model.ErrComputeTypeMismatch) {
			t.Errorf("expected ErrComputeTypeMismatch, got %v", err)
		}
	})

	t.Run("token failure", func(t *testing.T) {
		uc := &UseCase{
			ComputePort: &mockComputePort{getFunc: func(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
				return nil, nil
			}},
			SparkPort: &mockSparkPort{tokenFunc: func(ctx context.Context, comment string) (string, error) {
				return "", errors.New("forbidden")
			}},
		}
		if _, err := uc.Ensure(context.Background(), &EnsureInput{Workspace: testWS, Name: "databricks", SparkWorkspace: testSpark}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("still absent", func(t *testing.T) {
		uc := &UseCase{
			ComputePort: &mockComputePort{
				getFunc: func(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
					return nil, nil
				},
				attachFunc: func(ctx context.Context, ws *model.Workspace, name string, spark *model.SparkWorkspace, token string) (*model.ComputeTarget, error) {
					return nil, nil
				},
			},
			SparkPort: &mockSparkPort{tokenFunc: func(ctx context.Context, comment string) (string, error) { return "t", nil }},
		}
		_, err := uc.Ensure(context.Background(), &EnsureInput{Workspace: testWS, Name: "databricks", SparkWorkspace: testSpark})
		if !errors.Is(err, model.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})
}
