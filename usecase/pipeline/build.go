package pipeline

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/logging"
	"github.com/yaegashi/mlpipeops/internal/naming"
	"github.com/yaegashi/mlpipeops/usecase/compute"
	"github.com/yaegashi/mlpipeops/usecase/notebook"
	"github.com/yaegashi/mlpipeops/usecase/pool"
	"github.com/yaegashi/mlpipeops/usecase/workspace"
)

// SecretNames names the Key Vault secrets holding the build service principal.
type SecretNames struct {
	TenantID     string `json:"tenant_id"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func (n SecretNames) withDefaults() SecretNames {
	if n.TenantID == "" {
		n.TenantID = "TenantId"
	}
	if n.ClientID == "" {
		n.ClientID = "ClientId"
	}
	if n.ClientSecret == "" {
		n.ClientSecret = "ClientSecret"
	}
	return n
}

// NotebookSpec locates the notebook source and its workspace folder.
type NotebookSpec struct {
	Folder string `json:"folder"`
	Dir    string `json:"dir"`
	Name   string `json:"name"`
}

// BuildInput carries everything a build provisions and publishes.
type BuildInput struct {
	Ref            model.WorkspaceRef `json:"ref"`
	SparkWorkspace string             `json:"spark_workspace"`
	BuildID        string             `json:"build_id"`
	// Secrets locates the service principal in the workspace's default Key
	// Vault. Databricks calls always run as that principal.
	Secrets SecretNames `json:"secrets"`
	// RunContext moves the remaining Azure calls to the service principal too.
	RunContext          bool                 `json:"run_context,omitempty"`
	ComputeName         string               `json:"compute_name"`
	Pool                model.InstancePool   `json:"pool"`
	Notebook            NotebookSpec         `json:"notebook"`
	Step                model.DatabricksStep `json:"step"`
	PipelineName        string               `json:"pipeline_name"`
	PipelineDescription string               `json:"pipeline_description"`
}

// BuildOutput reports what was published.
type BuildOutput struct {
	Published  *model.PublishedPipeline `json:"published"`
	Deployment *model.Deployment        `json:"deployment"`
}

func (in *BuildInput) validate() error {
	if err := in.Ref.Validate(); err != nil {
		return err
	}
	if err := naming.ValidateSparkWorkspaceName(in.SparkWorkspace); err != nil {
		return err
	}
	if in.BuildID == "" {
		return fmt.Errorf("build id is required")
	}
	if err := naming.ValidateComputeName(in.ComputeName); err != nil {
		return err
	}
	if err := naming.ValidatePoolName(in.Pool.Name); err != nil {
		return err
	}
	if in.PipelineName == "" {
		return fmt.Errorf("pipeline name is required")
	}
	return nil
}

// Build runs the whole provisioning sequence: resolve the workspace, attach
// the Spark workspace as compute, ensure the instance pool, upload the
// notebook, then define, validate and publish a one-step pipeline. The
// published pipeline is recorded in the deployment history.
func (u *UseCase) Build(ctx context.Context, in *BuildInput) (*BuildOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("build input is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	cloud := u.CloudPort

	ws, err := cloud.WorkspaceGet(ctx, in.Ref)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "workspace resolved", "workspace", ws.Name, "location", ws.Location)

	names := in.Secrets.withDefaults()
	creds, err := (&workspace.UseCase{SecretPort: cloud}).Credentials(ctx, &workspace.CredentialsInput{
		Workspace:          ws,
		TenantIDSecret:     names.TenantID,
		ClientIDSecret:     names.ClientID,
		ClientSecretSecret: names.ClientSecret,
	})
	if err != nil {
		return nil, err
	}
	spCloud, err := cloud.WithServicePrincipal(creds.ServicePrincipal)
	if err != nil {
		return nil, err
	}
	if in.RunContext {
		cloud = spCloud
		log.Info(ctx, "switched to service principal from key vault")
	}

	spark, err := cloud.SparkWorkspaceGet(ctx, ws.SubscriptionID, ws.ResourceGroup, in.SparkWorkspace)
	if err != nil {
		return nil, err
	}
	sparkPort, err := spCloud.SparkClient(ctx, spark)
	if err != nil {
		return nil, err
	}

	computeOut, err := (&compute.UseCase{ComputePort: cloud, SparkPort: sparkPort}).Ensure(ctx, &compute.EnsureInput{
		Workspace:      ws,
		Name:           in.ComputeName,
		SparkWorkspace: spark,
		BuildID:        in.BuildID,
	})
	if err != nil {
		return nil, err
	}

	poolOut, err := (&pool.UseCase{SparkPort: sparkPort}).Ensure(ctx, &pool.EnsureInput{Pool: in.Pool})
	if err != nil {
		return nil, err
	}

	nbOut, err := (&notebook.UseCase{SparkPort: sparkPort}).Upload(ctx, &notebook.UploadInput{
		Folder: in.Notebook.Folder,
		Dir:    in.Notebook.Dir,
		Name:   in.Notebook.Name,
	})
	if err != nil {
		return nil, err
	}

	step := cloneStep(in.Step)
	step.InstancePoolID = poolOut.PoolID
	step.NotebookPath = nbOut.Path
	step.ComputeTarget = computeOut.Compute.Name
	p := &model.Pipeline{Steps: []model.DatabricksStep{step}}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, name := range p.Datastores() {
		if _, err := cloud.DatastoreGet(ctx, ws, name); err != nil {
			return nil, err
		}
	}

	published, err := cloud.PipelinePublish(ctx, ws, model.PipelinePublishRequest{
		Name:        in.PipelineName,
		Description: in.PipelineDescription,
		Version:     in.BuildID,
		Pipeline:    p,
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "pipeline published", "name", published.Name, "version", published.Version, "id", published.ID)

	dep := &model.Deployment{
		BuildID:        in.BuildID,
		Workspace:      ws.Name,
		SparkWorkspace: spark.Name,
		ComputeName:    computeOut.Compute.Name,
		InstancePoolID: poolOut.PoolID,
		NotebookPath:   nbOut.Path,
		PipelineID:     published.ID,
		PipelineName:   published.Name,
		Version:        published.Version,
	}
	if u.Repos != nil && u.Repos.Deployment != nil {
		if err := u.Repos.Deployment.Create(ctx, dep); err != nil {
			return nil, fmt.Errorf("record deployment: %w", err)
		}
	}
	return &BuildOutput{Published: published, Deployment: dep}, nil
}

func cloneStep(s model.DatabricksStep) model.DatabricksStep {
	c := s
	c.Inputs = append([]model.DataReference(nil), s.Inputs...)
	c.Outputs = append([]model.PipelineData(nil), s.Outputs...)
	if s.NotebookParams != nil {
		c.NotebookParams = make(map[string]string, len(s.NotebookParams))
		for k, v := range s.NotebookParams {
			c.NotebookParams[k] = v
		}
	}
	return c
}
