package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yaegashi/mlpipeops/domain"
	"github.com/yaegashi/mlpipeops/domain/model"
)

// DeploymentRepository is a thread-safe in-memory implementation.
type DeploymentRepository struct {
	mu          sync.RWMutex
	deployments map[string]*model.Deployment
}

func NewDeploymentRepository() *DeploymentRepository {
	return &DeploymentRepository{deployments: make(map[string]*model.Deployment)}
}

func (r *DeploymentRepository) Create(_ context.Context, d *model.Deployment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = "dep-" + uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	// Copy to avoid external mutation.
	cp := *d
	r.deployments[d.ID] = &cp
	return nil
}

func (r *DeploymentRepository) Get(_ context.Context, id string) (*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.deployments[id]
	if !ok {
		return nil, model.ErrDeploymentNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *DeploymentRepository) List(_ context.Context) ([]*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Deployment, 0, len(r.deployments))
	for _, v := range r.deployments {
		cp := *v
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *DeploymentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deployments[id]; !ok {
		return model.ErrDeploymentNotFound
	}
	delete(r.deployments, id)
	return nil
}

// Compile-time assertion.
var _ domain.DeploymentRepository = (*DeploymentRepository)(nil)
