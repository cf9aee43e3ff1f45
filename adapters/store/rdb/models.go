package rdb

import "time"

// DeploymentRecord is the RDB persistence model for domain Deployment.
// Table name: deployments
type DeploymentRecord struct {
	ID             string    `gorm:"primaryKey;type:text;not null"`
	BuildID        string    `gorm:"type:text;not null;index"`
	Workspace      string    `gorm:"type:text;not null"`
	SparkWorkspace string    `gorm:"type:text"`
	ComputeName    string    `gorm:"type:text"`
	InstancePoolID string    `gorm:"type:text"`
	NotebookPath   string    `gorm:"type:text"`
	PipelineID     string    `gorm:"type:text"`
	PipelineName   string    `gorm:"type:text"`
	Version        string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

func (DeploymentRecord) TableName() string { return "deployments" }
