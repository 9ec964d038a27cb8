// Package http implements the HTTP handlers of the reconciliation service.
// Handlers stay thin: they parse and validate the request, call the service
// layer and translate the outcome into a response.
//
// # Endpoints
//
//	POST /api/upload       multipart file1 (cost), file2 (revenue), rate; ?format=xlsx|csv
//	                       responds with the report as an attachment
//	POST /api/reconcile    same form, responds with the rows as JSON
//	POST /api/client-log   front-end log forwarding
//	GET  /api/health       liveness, readiness and version under /api/health/*
//
// # Error Handling
//
// Failures are rendered as RFC 7807 problem details by errors.ErrorHandler.
// Core pipeline errors are translated first:
//
//	*dataprocessing.UnsupportedFormatError  415 UNSUPPORTED_FORMAT
//	*dataprocessing.MissingColumnError      422 MISSING_COLUMN
//	*dataprocessing.MissingFieldError       422 MISSING_FIELD
//	dataprocessing.ErrInvalidRate           400 INVALID_RATE
//
// # Testing
//
// Handlers are tested with httptest against a mocked Reconciler and, end to
// end, against the real service.
package http
