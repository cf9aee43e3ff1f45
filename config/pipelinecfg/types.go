package pipelinecfg

// Root is the mlpipeops.yml document. Every field is optional; Defaults fills
// the values the feature engineering pipeline has always used.
type Root struct {
	Version  string   `yaml:"version"`
	Auth     Auth     `yaml:"auth,omitempty"`
	Compute  Compute  `yaml:"compute,omitempty"`
	Pool     Pool     `yaml:"pool,omitempty"`
	Notebook Notebook `yaml:"notebook,omitempty"`
	Step     Step     `yaml:"step,omitempty"`
	Pipeline Pipeline `yaml:"pipeline,omitempty"`
}

// Auth selects how the tool authenticates to Azure before the workspace
// service principal takes over. Settings are AZURE_* keys.
type Auth struct {
	Settings map[string]string `yaml:"settings,omitempty"`
	// Secret names holding the service principal in the workspace Key Vault.
	TenantIDSecret     string `yaml:"tenantIdSecret,omitempty"`
	ClientIDSecret     string `yaml:"clientIdSecret,omitempty"`
	ClientSecretSecret string `yaml:"clientSecretSecret,omitempty"`
}

// Compute is the Azure ML compute target the Spark workspace is attached as.
type Compute struct {
	Name string `yaml:"name,omitempty"`
}

// Pool is the Databricks instance pool the step's job clusters draw from.
type Pool struct {
	Name                       string   `yaml:"name,omitempty"`
	NodeTypeID                 string   `yaml:"nodeTypeId,omitempty"`
	IdleAutoterminationMinutes int      `yaml:"idleAutoterminationMinutes,omitempty"`
	MinIdleInstances           int      `yaml:"minIdleInstances,omitempty"`
	MaxCapacity                int      `yaml:"maxCapacity,omitempty"`
	PreloadedSparkVersions     []string `yaml:"preloadedSparkVersions,omitempty"`
}

// Notebook locates the notebook source and its upload folder.
type Notebook struct {
	Folder string `yaml:"folder,omitempty"` // Databricks workspace folder
	Dir    string `yaml:"dir,omitempty"`    // local directory holding <name>.py
	Name   string `yaml:"name,omitempty"`
}

// DataRef is a step input on a datastore.
type DataRef struct {
	Name      string `yaml:"name"`
	Datastore string `yaml:"datastore"`
	Path      string `yaml:"path,omitempty"`
}

// DataOut is a step output on a datastore.
type DataOut struct {
	Name      string `yaml:"name"`
	Datastore string `yaml:"datastore"`
}

// Step configures the Databricks pipeline step.
type Step struct {
	Name           string            `yaml:"name,omitempty"`
	RunName        string            `yaml:"runName,omitempty"`
	SparkVersion   string            `yaml:"sparkVersion,omitempty"`
	NumWorkers     int               `yaml:"numWorkers,omitempty"`
	AllowReuse     *bool             `yaml:"allowReuse,omitempty"`
	Inputs         []DataRef         `yaml:"inputs,omitempty"`
	Outputs        []DataOut         `yaml:"outputs,omitempty"`
	NotebookParams map[string]string `yaml:"notebookParams,omitempty"`
}

// Pipeline holds the published pipeline metadata.
type Pipeline struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
}
