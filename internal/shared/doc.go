// Package shared groups helpers used across the sheetcli packages that
// belong to no single layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- Table and file fixtures built from Go literals
//	- An in-memory slog handler for asserting on log output
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, records := testutil.NewTestLogger(t)
//	    table := testutil.NewTable(t, "Sheet1", []string{"sku"}, testutil.Row("A1"))
//	    ...
//	    testutil.AssertLogContains(t, records, slog.LevelWarn, "Conversion warning")
//	}
package shared
