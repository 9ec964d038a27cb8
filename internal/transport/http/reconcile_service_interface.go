package http

import (
	"context"
	"io"

	"adrecon/internal/dataprocessing"
	"adrecon/internal/services"
)

// Reconciler is the service surface the reconcile handler depends on
type Reconciler interface {
	Reconcile(ctx context.Context, req services.ReconcileRequest) (*dataprocessing.Result, error)
	Report(ctx context.Context, req services.ReconcileRequest, w io.Writer) (*dataprocessing.Result, error)
}

var _ Reconciler = (*services.ReconcileService)(nil)
