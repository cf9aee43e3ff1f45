package azure

import (
	"context"

	"github.com/yaegashi/mlpipeops/internal/logging"
)

// withMethodLogger starts an AZ:<method> span carrying driver=AZ.<method>.
//
//	ctx, cleanup := d.withMethodLogger(ctx, "ComputeAttach")
//	defer func() { cleanup(err) }()
//
// Failures are logged with the shortened Azure error string.
func (d *Driver) withMethodLogger(ctx context.Context, method string, kv ...any) (context.Context, func(err error)) {
	ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With("driver", "AZ."+method))
	ctx, end := logging.Span(ctx, "AZ:"+method, kv...)
	return ctx, func(err error) {
		if err != nil {
			logging.FromContext(ctx).Debug(ctx, "azure call failed", "err", azureShorterErrorString(err))
		}
		end(err)
	}
}
