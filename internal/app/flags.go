package app

import (
	"flag"
	"strings"

	"sheetcli/internal/config"
)

// CommonFlags are the flags every tool accepts on top of its own.
// Zero values leave the loaded configuration untouched.
type CommonFlags struct {
	ConfigFile string
	OutDir     string
	Format     string
	Workers    int
	LogLevel   string
	LogFormat  string
	Delimiter  string
	Encoding   string
	BOM        bool
	Version    bool
}

// RegisterCommonFlags defines the shared flags on fs.
func RegisterCommonFlags(fs *flag.FlagSet) *CommonFlags {
	f := &CommonFlags{}
	fs.StringVar(&f.ConfigFile, "config", "", "YAML configuration `file` (default: $SHEETCLI_CONFIG or ./sheetcli.yaml)")
	fs.StringVar(&f.OutDir, "out-dir", "", "output `directory` (default: working directory)")
	fs.StringVar(&f.Format, "format", "", "output format: ods, csv or xlsx")
	fs.IntVar(&f.Workers, "workers", 0, "files processed in parallel")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format: json or text")
	fs.StringVar(&f.Delimiter, "delimiter", "", `CSV field delimiter (use "\t" or "tab" for tabs)`)
	fs.StringVar(&f.Encoding, "encoding", "", "CSV input encoding: utf-8, windows-1252 or iso-8859-1")
	fs.BoolVar(&f.BOM, "bom", false, "prefix CSV output with a UTF-8 byte order mark")
	fs.BoolVar(&f.Version, "version", false, "print version and exit")
	return f
}

// apply copies the flags that were set over cfg.
func (f *CommonFlags) apply(cfg *config.Config) {
	if f == nil {
		return
	}
	if f.OutDir != "" {
		cfg.Output.Dir = f.OutDir
	}
	if f.Format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimPrefix(f.Format, "."))
	}
	if f.Workers > 0 {
		cfg.Processing.Workers = f.Workers
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(f.LogLevel)
	}
	if f.LogFormat != "" {
		cfg.Logging.Format = strings.ToLower(f.LogFormat)
	}
	if f.Delimiter != "" {
		cfg.Processing.CSVDelimiter = delimiterValue(f.Delimiter)
	}
	if f.Encoding != "" {
		cfg.Processing.CSVEncoding = strings.ToLower(f.Encoding)
	}
	if f.BOM {
		cfg.Processing.CSVBOM = true
	}
}

func delimiterValue(s string) string {
	switch strings.ToLower(s) {
	case `\t`, "tab":
		return "\t"
	default:
		return s
	}
}

// ParseInterspersed parses fs from args, allowing flags to follow
// positional arguments, and returns the positionals in order. Everything
// after "--" is positional.
func ParseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
