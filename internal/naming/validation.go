package naming

import (
	"fmt"
	"regexp"
)

var (
	// Azure ML compute names: 2-16 chars, letters, digits and hyphens, starting with a letter.
	computeNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{1,15}$`)
	// Azure Databricks workspace names: 3-64 chars, alphanumerics, underscores and hyphens.
	sparkWorkspaceNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)
	// Databricks instance pool names are free-form but bounded.
	poolNameRe = regexp.MustCompile(`^[^\s/][^/]{0,99}$`)
)

func validate(re *regexp.Regexp, kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if !re.MatchString(name) {
		return fmt.Errorf("invalid %s name: %q", kind, name)
	}
	return nil
}

// ValidateComputeName checks an Azure ML compute target name.
func ValidateComputeName(name string) error {
	return validate(computeNameRe, "compute", name)
}

// ValidateSparkWorkspaceName checks an Azure Databricks workspace name.
func ValidateSparkWorkspaceName(name string) error {
	return validate(sparkWorkspaceNameRe, "databricks workspace", name)
}

// ValidatePoolName checks an instance pool name.
func ValidatePoolName(name string) error {
	return validate(poolNameRe, "instance pool", name)
}
