// Package app wires the reconciliation server together and manages its
// lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, the optional YAML file and ADRECON_* variables
//  2. Initialize the JSON logger and OpenTelemetry providers
//  3. Build the pipeline, the reconcile service and the health service
//  4. Mount middleware, API routes, /metrics and the static front-end
//  5. Serve until SIGINT/SIGTERM, then shut down gracefully
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    os.Exit(1)
//	}
//	if err := application.Run(); err != nil {
//	    os.Exit(1)
//	}
//
// Tests build an Application from an explicit configuration with New and
// drive its Router through httptest.
package app
