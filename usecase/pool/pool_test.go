package pool

import (
	"context"
	"errors"
	"testing"

	"github.com/yaegashi/mlpipeops/domain/model"
)

// mockSparkPort keeps pools in memory.
type mockSparkPort struct {
	model.SparkPort
	pools     []*model.InstancePool
	listErr   error
	createErr error
	created   []model.InstancePool
}

func (m *mockSparkPort) InstancePoolList(ctx context.Context) ([]*model.InstancePool, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.pools, nil
}

func (m *mockSparkPort) InstancePoolCreate(ctx context.Context, pool model.InstancePool) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, pool)
	pool.ID = "pool-new"
	m.pools = append(m.pools, &pool)
	return pool.ID, nil
}

func TestList(t *testing.T) {
	m := &mockSparkPort{pools: []*model.InstancePool{{ID: "p1", Name: "a"}, {ID: "p2", Name: "b"}}}
	uc := &UseCase{SparkPort: m}
	out, err := uc.List(context.Background(), &ListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Pools) != 2 {
		t.Errorf("expected 2 pools, got %d", len(out.Pools))
	}

	m.listErr = errors.New("boom")
	if _, err := uc.List(context.Background(), &ListInput{}); err == nil {
		t.Error("expected error")
	}
}

func TestEnsure(t *testing.T) {
	spec := model.InstancePool{
		Name:                       "azureml_training",
		NodeTypeID:                 "Standard_D3_v2",
		IdleAutoterminationMinutes: 10,
		PreloadedSparkVersions:     []string{"6.2.x-scala2.11"},
	}

	t.Run("existing", func(t *testing.T) {
		m := &mockSparkPort{pools: []*model.InstancePool{{ID: "p-old", Name: "other"}, {ID: "p-1", Name: "azureml_training"}}}
		out, err := (&UseCase{SparkPort: m}).Ensure(context.Background(), &EnsureInput{Pool: spec})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.PoolID != "p-1" || out.Created {
			t.Errorf("unexpected output %+v", out)
		}
		if len(m.created) != 0 {
			t.Error("no pool should be created")
		}
	})

	t.Run("created", func(t *testing.T) {
		m := &mockSparkPort{}
		out, err := (&UseCase{SparkPort: m}).Ensure(context.Background(), &EnsureInput{Pool: spec})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.PoolID != "pool-new" || !out.Created {
			t.Errorf("unexpected output %+v", out)
		}
		if len(m.created) != 1 || m.created[0].NodeTypeID != "Standard_D3_v2" || m.created[0].IdleAutoterminationMinutes != 10 {
			t.Errorf("unexpected create request %+v", m.created)
		}
	})

	t.Run("create error", func(t *testing.T) {
		m := &mockSparkPort{createErr: errors.New("quota")}
		if _, err := (&UseCase{SparkPort: m}).Ensure(context.Background(), &EnsureInput{Pool: spec}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := (&UseCase{SparkPort: &mockSparkPort{}}).Ensure(context.Background(), &EnsureInput{}); err == nil {
			t.Error("expected error")
		}
	})
}
