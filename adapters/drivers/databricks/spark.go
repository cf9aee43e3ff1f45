package databricks

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
)

var _ model.SparkPort = (*Client)(nil)

// TokenCreate issues a personal access token with the given comment and no expiry.
func (c *Client) TokenCreate(ctx context.Context, comment string) (string, error) {
	body := map[string]any{"comment": comment}
	var out struct {
		TokenValue string `json:"token_value"`
	}
	if err := c.post(ctx, "token/create", body, &out); err != nil {
		return "", err
	}
	if out.TokenValue == "" {
		return "", fmt.Errorf("token/create returned no token_value")
	}
	return out.TokenValue, nil
}

// InstancePoolList returns all instance pools. The API omits instance_pools
// entirely when there are none.
func (c *Client) InstancePoolList(ctx context.Context) ([]*model.InstancePool, error) {
	var out struct {
		InstancePools []*model.InstancePool `json:"instance_pools"`
	}
	if err := c.get(ctx, "instance-pools/list", &out); err != nil {
		return nil, err
	}
	if out.InstancePools == nil {
		return []*model.InstancePool{}, nil
	}
	return out.InstancePools, nil
}

// InstancePoolCreate creates a pool and returns its ID.
func (c *Client) InstancePoolCreate(ctx context.Context, pool model.InstancePool) (string, error) {
	pool.ID = ""
	pool.State = ""
	var out struct {
		InstancePoolID string `json:"instance_pool_id"`
	}
	if err := c.post(ctx, "instance-pools/create", pool, &out); err != nil {
		return "", err
	}
	if out.InstancePoolID == "" {
		return "", fmt.Errorf("instance-pools/create returned no instance_pool_id")
	}
	return out.InstancePoolID, nil
}

// WorkspaceMkdirs creates path and its parents. Existing directories are not an error.
func (c *Client) WorkspaceMkdirs(ctx context.Context, path string) error {
	return c.post(ctx, "workspace/mkdirs", map[string]string{"path": path}, nil)
}

// WorkspaceImport uploads a notebook source.
func (c *Client) WorkspaceImport(ctx context.Context, in model.NotebookImport) error {
	language := in.Language
	if language == "" {
		language = model.NotebookLanguagePython
	}
	format := in.Format
	if format == "" {
		format = model.NotebookFormatSource
	}
	body := map[string]any{
		"path":      in.Path,
		"content":   base64.StdEncoding.EncodeToString(in.Content),
		"language":  language,
		"format":    format,
		"overwrite": in.Overwrite,
	}
	return c.post(ctx, "workspace/import", body, nil)
}
