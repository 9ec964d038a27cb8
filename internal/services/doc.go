// Package services holds the application layer between the HTTP transport
// and the reconciliation core.
//
// # Reconciliation
//
// ReconcileService runs the dataprocessing pipeline for one pair of exports
// and renders the report. It bounds the number of concurrent runs with a
// weighted semaphore so a burst of large uploads cannot exhaust memory:
//
//	svc := services.NewReconcileService(pipeline, 4, metrics, tracer, logger)
//	result, err := svc.Report(ctx, req, w)
//
// Waiting for a slot honours ctx. A cancelled wait is reported as an
// *errors.AppError of type CAPACITY wrapping ErrServiceBusy, which the HTTP
// layer renders as 503.
//
// Every run is traced with an OpenTelemetry span and recorded in the
// reconcile_* metrics.
//
// # Health
//
// HealthService backs the /api/health endpoints. Readiness reports the
// reconciler's free capacity and whether the static front-end is present.
package services
