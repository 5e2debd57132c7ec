package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the directories the tools read from and write to.
// Input files are resolved against the working directory, like a shell user
// would expect; outputs go to OutputDir, which defaults to the same place.
type Paths struct {
	WorkingDir string
	OutputDir  string
	LogsDir    string
}

// GetPaths resolves the configured directories against the current working directory.
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	paths := &Paths{
		WorkingDir: wd,
		OutputDir:  wd,
		LogsDir:    filepath.Join(wd, DefaultLogsDir),
	}
	if cfg == nil {
		return paths, nil
	}

	if cfg.Output.Dir != "" {
		paths.OutputDir = paths.resolve(cfg.Output.Dir)
	}
	if cfg.Logging.FilePath != "" {
		paths.LogsDir = filepath.Dir(paths.resolve(cfg.Logging.FilePath))
	}
	return paths, nil
}

func (p *Paths) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.WorkingDir, path)
}

// EnsureDirectories creates the output directory if it does not exist
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// InputPath resolves a user supplied input file name.
func (p *Paths) InputPath(name string) string {
	return p.resolve(name)
}

// OutputPath places a file name in the output directory.
func (p *Paths) OutputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.OutputDir, name)
}

// LogPathResolution logs the resolved directories at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("resolved paths",
		slog.String("working_dir", p.WorkingDir),
		slog.String("output_dir", p.OutputDir),
		slog.String("logs_dir", p.LogsDir),
	)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
