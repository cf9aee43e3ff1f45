package model

import "errors"

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrComputeTypeMismatch = errors.New("compute target is of different type")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrPipelineInvalid     = errors.New("pipeline invalid")
	ErrDeploymentNotFound  = errors.New("deployment not found")
	ErrWorkspaceNotFound   = errors.New("workspace not found")
)
