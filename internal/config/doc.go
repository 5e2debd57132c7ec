// Package config provides centralized configuration management for sheetcli.
// It handles loading configuration from multiple sources, validation, and path
// resolution for the command line tools.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// The YAML file is taken from SHEETCLI_CONFIG, or from sheetcli.yaml or
// configs/sheetcli.yaml in the working directory.
//
// # Environment Variables
//
// All environment variables follow the pattern SHEETCLI_<SECTION>_<FIELD>:
//
//	SHEETCLI_LOGGING_LEVEL=debug
//	SHEETCLI_PROCESSING_MAX_ROWS=5000
//	SHEETCLI_PROCESSING_CSV_ENCODING=windows-1252
//	SHEETCLI_OUTPUT_DIR=out
//	SHEETCLI_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/sheetcli.prom
//
// # Validation
//
// Every section is validated with go-playground/validator struct tags after
// loading. Invalid configuration is reported with the offending field names.
package config
