package rdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yaegashi/mlpipeops/domain"
	"github.com/yaegashi/mlpipeops/domain/model"
	"gorm.io/gorm"
)

// DeploymentRepository is a GORM-backed implementation of domain.DeploymentRepository.
type DeploymentRepository struct {
	db *gorm.DB
}

func NewDeploymentRepository(db *gorm.DB) *DeploymentRepository {
	return &DeploymentRepository{db: db}
}

func toRecord(d *model.Deployment) *DeploymentRecord {
	return &DeploymentRecord{
		ID:             d.ID,
		BuildID:        d.BuildID,
		Workspace:      d.Workspace,
		SparkWorkspace: d.SparkWorkspace,
		ComputeName:    d.ComputeName,
		InstancePoolID: d.InstancePoolID,
		NotebookPath:   d.NotebookPath,
		PipelineID:     d.PipelineID,
		PipelineName:   d.PipelineName,
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
	}
}

func toModel(r *DeploymentRecord) *model.Deployment {
	return &model.Deployment{
		ID:             r.ID,
		BuildID:        r.BuildID,
		Workspace:      r.Workspace,
		SparkWorkspace: r.SparkWorkspace,
		ComputeName:    r.ComputeName,
		InstancePoolID: r.InstancePoolID,
		NotebookPath:   r.NotebookPath,
		PipelineID:     r.PipelineID,
		PipelineName:   r.PipelineName,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
	}
}

func (r *DeploymentRepository) Create(ctx context.Context, d *model.Deployment) error {
	rec := toRecord(d)
	if rec.ID == "" {
		rec.ID = "dep-" + uuid.NewString()
		d.ID = rec.ID
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	// gorm fills CreatedAt when zero
	d.CreatedAt = rec.CreatedAt
	return nil
}

func (r *DeploymentRepository) Get(ctx context.Context, id string) (*model.Deployment, error) {
	var rec DeploymentRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrDeploymentNotFound
		}
		return nil, err
	}
	return toModel(&rec), nil
}

func (r *DeploymentRepository) List(ctx context.Context) ([]*model.Deployment, error) {
	var recs []DeploymentRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Deployment, 0, len(recs))
	for i := range recs {
		out = append(out, toModel(&recs[i]))
	}
	return out, nil
}

func (r *DeploymentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DeploymentRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrDeploymentNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.DeploymentRepository = (*DeploymentRepository)(nil)
