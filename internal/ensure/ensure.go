// Package ensure implements the get-or-create reconciliation used for remote
// resources identified by name.
package ensure

import (
	"context"
	"fmt"

	"github.com/yaegashi/mlpipeops/domain/model"
	"github.com/yaegashi/mlpipeops/internal/logging"
)

// LookupFunc returns the identifier of the named resource, or "" when it does not exist.
type LookupFunc func(ctx context.Context, name string) (string, error)

// CreateFunc creates the resource. Its return value is not used as the
// identifier; the resource is looked up again after creation.
type CreateFunc func(ctx context.Context) error

// Resource returns the identifier of the named resource, creating it when the
// first lookup finds nothing. A resource still absent after creation yields
// an error wrapping model.ErrResourceNotFound.
func Resource(ctx context.Context, name string, lookup LookupFunc, create CreateFunc) (string, error) {
	log := logging.FromContext(ctx).With("name", name)

	id, err := lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if id != "" {
		log.Debug(ctx, "resource exists", "id", id)
		return id, nil
	}

	log.Info(ctx, "resource missing, creating")
	if err := create(ctx); err != nil {
		return "", err
	}

	id, err = lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s absent after create", model.ErrResourceNotFound, name)
	}
	log.Info(ctx, "resource created", "id", id)
	return id, nil
}
