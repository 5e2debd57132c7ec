// Package app provides the shared bootstrap of the sheetcli command line
// tools. It handles configuration loading, flag overrides, logging,
// telemetry and the mapping of errors to process exit codes.
//
// # Initialization Flow
//
// Every tool goes through the same sequence:
//
//	1. Parse the common and tool specific flags (flags may follow arguments)
//	2. Load configuration from defaults, YAML file and environment
//	3. Apply flag overrides and validate the result
//	4. Initialize logging and OpenTelemetry
//	5. Resolve the working and output directories
//	6. Run the tool body with a cancellable context
//	7. Flush telemetry and close the log file
//
// # Usage
//
//	cmd := app.NewCommand("splitsheet", "[flags] <file>...", 1, run)
//	rows := cmd.Flags.Int("rows", 10000, "rows per chunk")
//	os.Exit(cmd.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
//
// # Exit Codes
//
// Execute returns 0 on success, 2 for usage errors and the code chosen by
// errors.ExitCode otherwise. SIGINT and SIGTERM cancel the run context,
// which surfaces as exit code 130.
package app
