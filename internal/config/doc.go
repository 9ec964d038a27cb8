// Package config provides configuration management for the reconciliation
// service and CLI.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//  1. Default values (Default)
//  2. A YAML file: $ADRECON_CONFIG_FILE, config.yaml or configs/config.yaml
//  3. Environment variables
//
// # Environment Variables
//
// All environment variables use the ADRECON_ prefix followed by the section:
//
//	ADRECON_SERVER_PORT=8080
//	ADRECON_LOGGING_LEVEL=debug
//	ADRECON_RECONCILE_MAX_UPLOAD_BYTES=33554432
//	ADRECON_RECONCILE_MAX_CONCURRENT=4
//	ADRECON_RECONCILE_COLUMN_MATCHER=normalized
//	ADRECON_SECURITY_ALLOWED_ORIGINS=http://localhost:3000,http://localhost:8080
//
// # Validation
//
// Load validates ports, timeouts, upload limits, the default report format
// and the column matcher name before returning.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
