package services

import "errors"

// Reconcile service errors
var (
	// ErrServiceBusy means no reconciliation slot became free before the
	// caller gave up.
	ErrServiceBusy = errors.New("reconciliation capacity exhausted")

	// ErrEmptyUpload means an export was present but had no bytes.
	ErrEmptyUpload = errors.New("uploaded export is empty")
)
