package pipelinecfg

// Default values applied to unset fields.
const (
	DefaultSparkVersion        = "6.2.x-scala2.11"
	DefaultComputeName         = "databricks"
	DefaultPoolName            = "azureml_training"
	DefaultNodeTypeID          = "Standard_D3_v2"
	DefaultIdleAutotermination = 10
	DefaultNotebookFolder      = "/Shared/AzureMLDeployed"
	DefaultNotebookDir         = "code/prepare"
	DefaultNotebookName        = "feature_engineering"
	DefaultStepName            = "FeatureEngineering"
	DefaultNumWorkers          = 3
	DefaultPipelineName        = "Feature Engineering"
	DefaultPipelineDescription = "Feature engineering pipeline"
	DefaultWorkspaceDatastore  = "workspaceblobstore"
	DefaultTrainingDatastore   = "trainingdata"
)

// Defaults fills unset fields in place and returns r.
func (r *Root) Defaults() *Root {
	if r.Version == "" {
		r.Version = "v1"
	}
	a := &r.Auth
	a.TenantIDSecret = or(a.TenantIDSecret, "TenantId")
	a.ClientIDSecret = or(a.ClientIDSecret, "ClientId")
	a.ClientSecretSecret = or(a.ClientSecretSecret, "ClientSecret")

	r.Compute.Name = or(r.Compute.Name, DefaultComputeName)

	p := &r.Pool
	p.Name = or(p.Name, DefaultPoolName)
	p.NodeTypeID = or(p.NodeTypeID, DefaultNodeTypeID)
	if p.IdleAutoterminationMinutes == 0 {
		p.IdleAutoterminationMinutes = DefaultIdleAutotermination
	}

	n := &r.Notebook
	n.Folder = or(n.Folder, DefaultNotebookFolder)
	n.Dir = or(n.Dir, DefaultNotebookDir)
	n.Name = or(n.Name, DefaultNotebookName)

	s := &r.Step
	s.Name = or(s.Name, DefaultStepName)
	s.RunName = or(s.RunName, s.Name)
	s.SparkVersion = or(s.SparkVersion, DefaultSparkVersion)
	if s.NumWorkers == 0 {
		s.NumWorkers = DefaultNumWorkers
	}
	if s.AllowReuse == nil {
		t := true
		s.AllowReuse = &t
	}
	if len(s.Inputs) == 0 {
		s.Inputs = []DataRef{{Name: "training", Datastore: DefaultTrainingDatastore, Path: "/"}}
	}
	for i := range s.Inputs {
		s.Inputs[i].Path = or(s.Inputs[i].Path, "/")
	}
	if len(s.Outputs) == 0 {
		s.Outputs = []DataOut{{Name: "feature_engineered", Datastore: DefaultWorkspaceDatastore}}
	}

	// The pool preloads the runtime the step runs on unless told otherwise.
	if len(p.PreloadedSparkVersions) == 0 {
		p.PreloadedSparkVersions = []string{s.SparkVersion}
	}

	r.Pipeline.Name = or(r.Pipeline.Name, DefaultPipelineName)
	r.Pipeline.Description = or(r.Pipeline.Description, DefaultPipelineDescription)
	return r
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
