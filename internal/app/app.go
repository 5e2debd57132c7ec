package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sheetcli/internal/config"
	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/exporter"
	"sheetcli/internal/files"
	"sheetcli/internal/infrastructure"
	"sheetcli/internal/operations"
	"sheetcli/internal/validation"
	"sheetcli/pkg/contracts"
	"sheetcli/pkg/contracts/domain"
)

// Application holds everything a tool needs for one invocation
type Application struct {
	Tool          string
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.ToolMetrics
	Files         *files.Manager
	Discovery     *files.Discovery
	Validator     *validation.FileValidator
	// Out receives the user facing report, one line per written file.
	Out io.Writer
}

// NewApplication loads the configuration, applies flag overrides and
// initializes logging, paths and telemetry.
func NewApplication(tool string, flags *CommonFlags) (*Application, error) {
	// Load configuration
	var configFile string
	if flags != nil {
		configFile = flags.ConfigFile
	}
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewUsageError(fmt.Sprintf("invalid flags: %v", err))
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize logger", err)
	}
	logger = infrastructure.WithComponent(logger, tool)

	logger.Debug("Application starting",
		slog.String("tool", tool),
		slog.String("version", contracts.Version))

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return nil, err
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFrom(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize OpenTelemetry", err)
	}
	metrics, err := infrastructure.NewToolMetrics(otelProviders.Meter)
	if err != nil {
		otelProviders.Shutdown(context.Background())
		return nil, apperrors.NewConfigError("failed to create metrics", err)
	}

	return &Application{
		Tool:          tool,
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Files:         files.NewManager(paths),
		Discovery:     files.NewDiscovery(paths.WorkingDir),
		Validator:     validator,
		Out:           os.Stdout,
	}, nil
}

// Runner returns a batch runner sized by the processing configuration.
func (a *Application) Runner() *operations.Runner {
	return operations.NewRunner(operations.RunnerOptions{
		Tool:    a.Tool,
		Workers: a.Config.Processing.Workers,
		Logger:  a.Logger,
		Tracer:  a.OTelProviders.Tracer,
		Metrics: a.Metrics,
	})
}

// RunFiles processes inputs with the batch runner, reports every written
// file on Out and returns the first failure.
func (a *Application) RunFiles(ctx context.Context, inputs []string, job operations.JobFunc) error {
	summary := a.Runner().Run(ctx, inputs, job)
	for _, out := range summary.Outputs() {
		fmt.Fprintf(a.Out, "Written %s\n", out)
	}
	return summary.Err()
}

// LoadOptions returns the reader options from the configuration.
func (a *Application) LoadOptions() files.LoadOptions {
	return files.LoadOptionsFrom(a.Config.Processing)
}

// SaveOptions returns the writer options from the configuration.
func (a *Application) SaveOptions() exporter.Options {
	return exporter.OptionsFrom(a.Config.Processing)
}

// OutputFormat is the configured format for generated file names.
func (a *Application) OutputFormat() files.Format {
	format, err := files.ParseFormat(a.Config.Output.Format)
	if err != nil {
		return files.FormatODS
	}
	return format
}

// Inputs expands directories and glob patterns among args into files.
func (a *Application) Inputs(args []string) ([]string, error) {
	inputs, err := a.Discovery.ExpandInputs(args)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to expand inputs", err)
	}
	return inputs, nil
}

// LoadWorkbook validates and reads an input file. A non-empty sheet limits
// multi-sheet formats to that sheet.
func (a *Application) LoadWorkbook(path, sheet string) (*domain.Workbook, error) {
	path = a.Files.InputPath(path)
	if err := a.Validator.ValidateSpreadsheet(path); err != nil {
		return nil, err
	}
	opts := a.LoadOptions()
	opts.Sheet = sheet
	wb, err := files.Load(path, opts)
	if err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s contains no sheets", path)).
			WithContext("path", path)
	}
	return wb, nil
}

// LoadTable reads one sheet of an input file: the named one, or the first.
func (a *Application) LoadTable(path, sheet string) (*domain.Table, error) {
	wb, err := a.LoadWorkbook(path, sheet)
	if err != nil {
		return nil, err
	}
	return wb.First(), nil
}

// Save writes wb to path, replacing an existing file.
func (a *Application) Save(path string, wb *domain.Workbook) error {
	return exporter.SaveWorkbook(path, wb, a.SaveOptions())
}

// ConversionWarning logs a cell that could not be converted.
func (a *Application) ConversionWarning(ctx context.Context, err *apperrors.AppError) {
	infrastructure.LogWarning(ctx, a.Logger, "Conversion warning", err)
}

// Shutdown flushes telemetry and closes the log file.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
