package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/yaegashi/mlpipeops/domain/model"
)

const (
	moduleName      = "mlpipeops/azure"
	moduleVersion   = "v1"
	managementScope = "https://management.azure.com/.default"

	databricksStepType = "DatabricksStep"
)

// pipelinesBaseURL returns the scheme and host of the workspace pipelines
// service, taken from the discovery URL or derived from the region.
func pipelinesBaseURL(ws *model.Workspace) (string, error) {
	if ws.DiscoveryURL != "" {
		u, err := url.Parse(ws.DiscoveryURL)
		if err == nil && u.Host != "" {
			scheme := u.Scheme
			if scheme == "" {
				scheme = "https"
			}
			return scheme + "://" + u.Host, nil
		}
	}
	if ws.Location == "" {
		return "", fmt.Errorf("workspace %s has neither discovery url nor location", ws.Name)
	}
	return fmt.Sprintf("https://%s.api.azureml.ms", strings.ToLower(ws.Location)), nil
}

func pipelinePublishURL(ws *model.Workspace) (string, error) {
	if ws.ID == "" {
		return "", fmt.Errorf("workspace %s has no resource id", ws.Name)
	}
	base, err := pipelinesBaseURL(ws)
	if err != nil {
		return "", err
	}
	return base + "/pipelines/v1.0" + ws.ID + "/PublishedPipelines/Create", nil
}

type publishRequest struct {
	Name                     string       `json:"Name"`
	Description              string       `json:"Description,omitempty"`
	Version                  string       `json:"Version,omitempty"`
	ContinueRunOnStepFailure bool         `json:"ContinueRunOnStepFailure"`
	Graph                    publishGraph `json:"Graph"`
}

type publishGraph struct {
	Nodes []publishNode `json:"ModuleNodes"`
}

type publishNode struct {
	Name          string                 `json:"Name"`
	Type          string                 `json:"Type"`
	ComputeTarget string                 `json:"ComputeTarget"`
	AllowReuse    bool                   `json:"AllowReuse"`
	Inputs        []model.DataReference  `json:"Inputs,omitempty"`
	Outputs       []model.PipelineData   `json:"Outputs,omitempty"`
	Parameters    map[string]any         `json:"Parameters"`
}

type publishResponse struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Version     string `json:"Version"`
	URL         string `json:"Url"`
}

func newPublishRequest(req model.PipelinePublishRequest) publishRequest {
	body := publishRequest{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
	}
	for _, s := range req.Pipeline.Steps {
		params := map[string]any{
			"run_name":         s.RunName,
			"spark_version":    s.SparkVersion,
			"instance_pool_id": s.InstancePoolID,
			"num_workers":      s.NumWorkers,
			"notebook_path":    s.NotebookPath,
		}
		if len(s.NotebookParams) > 0 {
			params["notebook_params"] = s.NotebookParams
		}
		body.Graph.Nodes = append(body.Graph.Nodes, publishNode{
			Name:          s.Name,
			Type:          databricksStepType,
			ComputeTarget: s.ComputeTarget,
			AllowReuse:    s.AllowReuse,
			Inputs:        s.Inputs,
			Outputs:       s.Outputs,
			Parameters:    params,
		})
	}
	return body
}

// PipelinePublish validates and publishes a pipeline to ws.
func (d *Driver) PipelinePublish(ctx context.Context, ws *model.Workspace, req model.PipelinePublishRequest) (pp *model.PublishedPipeline, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "PipelinePublish", "pipeline", req.Name, "version", req.Version)
	defer func() { cleanup(err) }()

	if req.Pipeline == nil {
		return nil, fmt.Errorf("%w: no pipeline", model.ErrPipelineInvalid)
	}
	if err := req.Pipeline.Validate(); err != nil {
		return nil, err
	}
	endpoint, err := pipelinePublishURL(ws)
	if err != nil {
		return nil, err
	}

	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerRetry: []policy.Policy{runtime.NewBearerTokenPolicy(d.TokenCredential, []string{managementScope}, nil)},
	}, &d.opts.ClientOptions)

	httpReq, err := runtime.NewRequest(ctx, http.MethodPost, endpoint)
	if err != nil {
		return nil, fmt.Errorf("new publish request: %w", err)
	}
	if err := runtime.MarshalAsJSON(httpReq, newPublishRequest(req)); err != nil {
		return nil, fmt.Errorf("marshal publish request: %w", err)
	}
	resp, err := pl.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("publish pipeline %s: %w", req.Name, err)
	}
	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusCreated) {
		return nil, fmt.Errorf("publish pipeline %s: %w", req.Name, runtime.NewResponseError(resp))
	}
	var out publishResponse
	if err := runtime.UnmarshalAsJSON(resp, &out); err != nil {
		return nil, fmt.Errorf("decode publish response: %w", err)
	}

	pp = &model.PublishedPipeline{
		ID:          out.ID,
		Name:        out.Name,
		Description: out.Description,
		Version:     out.Version,
		Endpoint:    out.URL,
	}
	if pp.Name == "" {
		pp.Name = req.Name
	}
	if pp.Description == "" {
		pp.Description = req.Description
	}
	if pp.Version == "" {
		pp.Version = req.Version
	}
	return pp, nil
}
