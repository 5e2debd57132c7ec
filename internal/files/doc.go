// Package files reads spreadsheet inputs and names and prepares outputs.
//
// Three containers are understood: delimited text (.csv), Office Open XML
// workbooks (.xlsx) and OpenDocument spreadsheets (.ods). Every loader
// returns a domain.Workbook whose sheets use the first row as the header.
//
// Discovery expands command line arguments (files, directories, globs) into
// input paths. Manager resolves them against the working directory, places
// outputs in the configured output directory and clears stale outputs
// before a writer runs.
//
// Example usage:
//
//	table, err := files.LoadTable("productos.ods", files.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	out := manager.OutputPath(files.ProcessedName("productos.ods", table.Name, files.FormatODS))
package files
