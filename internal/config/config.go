package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Output     OutputConfig     `yaml:"output" envconfig:"OUTPUT"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ProcessingConfig controls how spreadsheets are read and transformed
type ProcessingConfig struct {
	MaxRows         int    `yaml:"max_rows" envconfig:"MAX_ROWS" validate:"min=1"`
	Workers         int    `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	DuplicatePolicy string `yaml:"duplicate_policy" envconfig:"DUPLICATE_POLICY" validate:"oneof=first_wins last_wins"`
	CSVDelimiter    string `yaml:"csv_delimiter" envconfig:"CSV_DELIMITER" validate:"len=1"`
	CSVEncoding     string `yaml:"csv_encoding" envconfig:"CSV_ENCODING" validate:"oneof=utf-8 windows-1252 iso-8859-1"`
	CSVBOM          bool   `yaml:"csv_bom" envconfig:"CSV_BOM"`
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=ods csv xlsx"`
}

// TelemetryConfig contains tracing and metrics export settings.
// Empty file paths disable the corresponding signal.
type TelemetryConfig struct {
	ServiceName string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceFile   string  `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	SampleRate  float64 `yaml:"sample_rate" envconfig:"SAMPLE_RATE" validate:"gte=0,lte=1"`
}

// Delimiter returns the CSV delimiter as a rune.
func (p ProcessingConfig) Delimiter() rune {
	for _, r := range p.CSVDelimiter {
		return r
	}
	return ','
}

// Load builds the configuration from defaults, the optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFromFile(getConfigFilePath())
}

// LoadFromFile is Load with an explicit YAML file. An empty path skips the file.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// env tags carry no defaults, so only variables that are set override
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Processing.DuplicatePolicy = strings.ToLower(strings.TrimSpace(c.Processing.DuplicatePolicy))
	c.Processing.CSVEncoding = strings.ToLower(strings.TrimSpace(c.Processing.CSVEncoding))
	c.Output.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Output.Format), "."))
}

// Validate checks every section against its validate tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(ConfigFileEnv); p != "" {
		return p
	}

	locations := []string{
		"sheetcli.yaml",
		"configs/sheetcli.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Processing: ProcessingConfig{
			MaxRows:         DefaultMaxRows,
			Workers:         DefaultWorkers,
			DuplicatePolicy: "first_wins",
			CSVDelimiter:    ",",
			CSVEncoding:     "utf-8",
		},
		Output: OutputConfig{
			Format: "ods",
		},
		Telemetry: TelemetryConfig{
			ServiceName: AppName,
			Environment: "local",
			SampleRate:  1.0,
		},
	}
}
