package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaegashi/mlpipeops/adapters/store/inmem"
	"github.com/yaegashi/mlpipeops/domain/model"
)

// fakeSpark keeps pools and notebooks in memory.
type fakeSpark struct {
	tokens    []string
	pools     []*model.InstancePool
	notebooks map[string][]byte
}

func (f *fakeSpark) TokenCreate(ctx context.Context, comment string) (string, error) {
	f.tokens = append(f.tokens, comment)
	return "dapi-token", nil
}

func (f *fakeSpark) InstancePoolList(ctx context.Context) ([]*model.InstancePool, error) {
	return f.pools, nil
}

func (f *fakeSpark) InstancePoolCreate(ctx context.Context, pool model.InstancePool) (string, error) {
	pool.ID = "pool-" + pool.Name
	f.pools = append(f.pools, &pool)
	return pool.ID, nil
}

func (f *fakeSpark) WorkspaceMkdirs(ctx context.Context, path string) error { return nil }

func (f *fakeSpark) WorkspaceImport(ctx context.Context, in model.NotebookImport) error {
	if f.notebooks == nil {
		f.notebooks = map[string][]byte{}
	}
	f.notebooks[in.Path] = in.Content
	return nil
}

// fakeCloud implements model.CloudPort in memory.
type fakeCloud struct {
	identity   string
	spark      *fakeSpark
	computes   map[string]*model.ComputeTarget
	datastores map[string]bool
	secrets    map[string]string
	published  []model.PipelinePublishRequest
	publishErr error
	// derived records the clouds created by WithServicePrincipal.
	derived *[]*fakeCloud
	// sparkClients records the identity of every SparkClient call.
	sparkClients *[]string
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		identity:     "ambient",
		spark:        &fakeSpark{},
		computes:     map[string]*model.ComputeTarget{},
		datastores:   map[string]bool{"trainingdata": true, "workspaceblobstore": true},
		secrets:      map[string]string{"TenantId": "t", "ClientId": "c", "ClientSecret": "s"},
		derived:      &[]*fakeCloud{},
		sparkClients: &[]string{},
	}
}

func (f *fakeCloud) WorkspaceGet(ctx context.Context, ref model.WorkspaceRef) (*model.Workspace, error) {
	return &model.Workspace{WorkspaceRef: ref, ID: "/ws/" + ref.Name, Location: "eastus", KeyVaultID: "/kv"}, nil
}

func (f *fakeCloud) DatastoreGet(ctx context.Context, ws *model.Workspace, name string) (*model.Datastore, error) {
	if !f.datastores[name] {
		return nil, model.ErrResourceNotFound
	}
	return &model.Datastore{Name: name}, nil
}

func (f *fakeCloud) SparkWorkspaceGet(ctx context.Context, sub, rg, name string) (*model.SparkWorkspace, error) {
	return &model.SparkWorkspace{Name: name, ResourceGroup: rg, ID: "/dbx/" + name, URL: "adb-1.1.azuredatabricks.net"}, nil
}

func (f *fakeCloud) SecretGet(ctx context.Context, vaultID, name string) (string, error) {
	v, ok := f.secrets[name]
	if !ok {
		return "", model.ErrSecretNotFound
	}
	return v, nil
}

func (f *fakeCloud) ComputeGet(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
	return f.computes[name], nil
}

func (f *fakeCloud) ComputeAttach(ctx context.Context, ws *model.Workspace, name string, spark *model.SparkWorkspace, token string) (*model.ComputeTarget, error) {
	ct := &model.ComputeTarget{Name: name, Type: model.ComputeTypeDatabricks, ResourceID: spark.ID}
	f.computes[name] = ct
	return ct, nil
}

func (f *fakeCloud) PipelinePublish(ctx context.Context, ws *model.Workspace, req model.PipelinePublishRequest) (*model.PublishedPipeline, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.published = append(f.published, req)
	return &model.PublishedPipeline{ID: "pp-1", Name: req.Name, Description: req.Description, Version: req.Version}, nil
}

func (f *fakeCloud) InfraDeploy(ctx context.Context, req model.InfraDeployRequest) (*model.InfraStatus, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCloud) InfraDestroy(ctx context.Context, target model.InfraTarget) error {
	return errors.New("not implemented")
}

func (f *fakeCloud) InfraStatus(ctx context.Context, target model.InfraTarget) (*model.InfraStatus, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCloud) SparkClient(ctx context.Context, spark *model.SparkWorkspace) (model.SparkPort, error) {
	*f.sparkClients = append(*f.sparkClients, f.identity)
	return f.spark, nil
}

func (f *fakeCloud) WithServicePrincipal(sp model.ServicePrincipal) (model.CloudPort, error) {
	c := *f
	c.identity = "sp:" + sp.ClientID
	*f.derived = append(*f.derived, &c)
	return &c, nil
}

func newBuildInput(t *testing.T) *BuildInput {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "feature_engineering.py"), []byte("print(1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &BuildInput{
		Ref:            model.WorkspaceRef{SubscriptionID: "sub", ResourceGroup: "rg", Name: "mlws"},
		SparkWorkspace: "spark-ws",
		BuildID:        "local",
		ComputeName:    "databricks",
		Pool: model.InstancePool{
			Name:                       "azureml_training",
			NodeTypeID:                 "Standard_D3_v2",
			IdleAutoterminationMinutes: 10,
			PreloadedSparkVersions:     []string{"6.2.x-scala2.11"},
		},
		Notebook: NotebookSpec{Folder: "/Shared/AzureMLDeployed", Dir: dir, Name: "feature_engineering"},
		Step: model.DatabricksStep{
			Name:         "FeatureEngineering",
			RunName:      "FeatureEngineering",
			SparkVersion: "6.2.x-scala2.11",
			NumWorkers:   3,
			AllowReuse:   true,
			Inputs:       []model.DataReference{{Name: "training", Datastore: "trainingdata", PathOnDatastore: "/"}},
			Outputs:      []model.PipelineData{{Name: "feature_engineered", Datastore: "workspaceblobstore"}},
		},
		PipelineName:        "Feature Engineering",
		PipelineDescription: "Feature engineering pipeline",
	}
}

func TestBuild(t *testing.T) {
	cloud := newFakeCloud()
	repo := inmem.NewDeploymentRepository()
	uc := &UseCase{CloudPort: cloud, Repos: &Repos{Deployment: repo}}
	in := newBuildInput(t)

	out, err := uc.Build(context.Background(), in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if out.Published.Name != "Feature Engineering" || out.Published.Version != "local" {
		t.Errorf("unexpected published pipeline %+v", out.Published)
	}
	if len(cloud.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(cloud.published))
	}
	step := cloud.published[0].Pipeline.Steps[0]
	if step.InstancePoolID != "pool-azureml_training" || step.ComputeTarget != "databricks" {
		t.Errorf("unexpected step %+v", step)
	}
	if !strings.HasPrefix(step.NotebookPath, "/Shared/AzureMLDeployed/") || !strings.HasSuffix(step.NotebookPath, "/feature_engineering") {
		t.Errorf("NotebookPath = %q", step.NotebookPath)
	}
	if _, ok := cloud.spark.notebooks[step.NotebookPath]; !ok {
		t.Error("notebook was not uploaded to the step path")
	}
	if len(cloud.spark.tokens) != 1 || cloud.spark.tokens[0] != "Azure ML Token generated by Build local" {
		t.Errorf("tokens = %v", cloud.spark.tokens)
	}
	if in.Step.InstancePoolID != "" {
		t.Error("input step template must not be modified")
	}

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].PipelineID != "pp-1" || list[0].SparkWorkspace != "spark-ws" || list[0].ID != out.Deployment.ID {
		t.Errorf("unexpected history %+v", list)
	}

	// A second build reuses compute and pool.
	in.BuildID = "2"
	if _, err := uc.Build(context.Background(), in); err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	if len(cloud.spark.tokens) != 1 {
		t.Errorf("existing compute must not issue a new token, tokens = %v", cloud.spark.tokens)
	}
	if len(cloud.spark.pools) != 1 {
		t.Errorf("existing pool must be reused, pools = %d", len(cloud.spark.pools))
	}
}

func TestBuild_ServicePrincipal(t *testing.T) {
	tests := []struct {
		name       string
		runContext bool
		secrets    SecretNames
	}{
		{name: "config file", runContext: false},
		{name: "run context", runContext: true},
		{name: "custom secret names", secrets: SecretNames{TenantID: "Tenant", ClientID: "Client", ClientSecret: "Secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloud := newFakeCloud()
			cloud.secrets["Tenant"] = "t2"
			cloud.secrets["Client"] = "c2"
			cloud.secrets["Secret"] = "s2"
			in := newBuildInput(t)
			in.RunContext = tt.runContext
			in.Secrets = tt.secrets

			if _, err := (&UseCase{CloudPort: cloud}).Build(context.Background(), in); err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if len(*cloud.derived) != 1 {
				t.Fatalf("expected one service principal session, got %d", len(*cloud.derived))
			}
			sp := (*cloud.derived)[0]
			wantIdentity := "sp:c"
			if tt.secrets.ClientID != "" {
				wantIdentity = "sp:c2"
			}
			if sp.identity != wantIdentity {
				t.Errorf("identity = %q, want %q", sp.identity, wantIdentity)
			}
			if got := *cloud.sparkClients; len(got) != 1 || got[0] != wantIdentity {
				t.Errorf("spark client must use the service principal, got %v", got)
			}
			publishedBySP := len(sp.published) == 1
			if publishedBySP != tt.runContext {
				t.Errorf("publish by service principal = %v, want %v", publishedBySP, tt.runContext)
			}
			if !tt.runContext && len(cloud.published) != 1 {
				t.Error("publish should use the ambient session outside a run context")
			}
		})
	}
}

func TestBuild_MissingSecret(t *testing.T) {
	cloud := newFakeCloud()
	delete(cloud.secrets, "ClientSecret")
	_, err := (&UseCase{CloudPort: cloud}).Build(context.Background(), newBuildInput(t))
	if !errors.Is(err, model.ErrSecretNotFound) {
		t.Errorf("expected ErrSecretNotFound, got %v", err)
	}
	if len(*cloud.sparkClients) != 0 {
		t.Error("spark client must not be created without the service principal")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *BuildInput, c *fakeCloud)
		wantErr error
	}{
		{
			name:   "invalid ref",
			mutate: func(in *BuildInput, c *fakeCloud) { in.Ref.Name = "" },
		},
		{
			name:   "invalid compute name",
			mutate: func(in *BuildInput, c *fakeCloud) { in.ComputeName = "1bad" },
		},
		{
			name:   "empty build id",
			mutate: func(in *BuildInput, c *fakeCloud) { in.BuildID = "" },
		},
		{
			name: "compute type mismatch",
			mutate: func(in *BuildInput, c *fakeCloud) {
				c.computes["databricks"] = &model.ComputeTarget{Name: "databricks", Type: "AKS"}
			},
			wantErr: model.ErrComputeTypeMismatch,
		},
		{
			name:    "missing datastore",
			mutate:  func(in *BuildInput, c *fakeCloud) { delete(c.datastores, "trainingdata") },
			wantErr: model.ErrResourceNotFound,
		},
		{
			name:    "invalid step",
			mutate:  func(in *BuildInput, c *fakeCloud) { in.Step.NumWorkers = 0 },
			wantErr: model.ErrPipelineInvalid,
		},
		{
			name:   "missing notebook",
			mutate: func(in *BuildInput, c *fakeCloud) { in.Notebook.Name = "nope" },
		},
		{
			name:   "publish failure",
			mutate: func(in *BuildInput, c *fakeCloud) { c.publishErr = errors.New("403") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloud := newFakeCloud()
			repo := inmem.NewDeploymentRepository()
			in := newBuildInput(t)
			tt.mutate(in, cloud)
			_, err := (&UseCase{CloudPort: cloud, Repos: &Repos{Deployment: repo}}).Build(context.Background(), in)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if list, _ := repo.List(context.Background()); len(list) != 0 {
				t.Error("failed build must not be recorded")
			}
		})
	}
}
