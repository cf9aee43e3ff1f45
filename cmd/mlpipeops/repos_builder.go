package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/yaegashi/mlpipeops/adapters/store/inmem"
	"github.com/yaegashi/mlpipeops/adapters/store/rdb"
	"github.com/yaegashi/mlpipeops/domain"
)

// reposCache keeps one repository per db-url for the process lifetime so the
// memory: store is shared across use case builders.
var (
	reposCache   = map[string]domain.DeploymentRepository{}
	reposCacheMu sync.Mutex
)

// getDBURL extracts the db-url flag value from command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	if v, _ := flagString(cmd, "db-url"); v != "" {
		return v
	}
	return "memory:"
}

// buildDeploymentRepository creates the deployment history store from db-url.
func buildDeploymentRepository(cmd *cobra.Command) (domain.DeploymentRepository, error) {
	dbURL := getDBURL(cmd)

	reposCacheMu.Lock()
	defer reposCacheMu.Unlock()
	if cached, ok := reposCache[dbURL]; ok {
		return cached, nil
	}

	var repo domain.DeploymentRepository
	switch {
	case dbURL == "memory:":
		repo = inmem.NewDeploymentRepository()
	case strings.HasPrefix(dbURL, "sqlite:"), strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate %s: %w", dbURL, err)
		}
		repo = rdb.NewDeploymentRepository(db)
	default:
		return nil, fmt.Errorf("unsupported db-url: %s", dbURL)
	}
	reposCache[dbURL] = repo
	return repo, nil
}
