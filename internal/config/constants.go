package config

// Application constants
const (
	AppName = "sheetcli"

	// EnvPrefix namespaces every environment variable (SHEETCLI_LOGGING_LEVEL, ...)
	EnvPrefix = "SHEETCLI"
	// ConfigFileEnv points at an explicit YAML configuration file
	ConfigFileEnv = "SHEETCLI_CONFIG"

	DefaultLogFile = "logs/sheetcli.log"
	DefaultLogsDir = "logs"

	// Processing defaults
	DefaultMaxRows = 10000
	DefaultWorkers = 4

	// File extensions understood by the loaders and writers
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
	ExtODS  = ".ods"

	// Well-known output files
	UoMOutputFile = "productos_validados.csv"
)
