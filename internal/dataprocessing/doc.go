// Package dataprocessing is the spreadsheet lookup-and-fill engine. It works
// on in-memory domain.Table values only; loading and saving belong to the
// files and exporter packages.
//
// # Architecture
//
// The package is organized around four components:
//
// 1. Normalizer: canonicalizes cell values (numeric_exact, identifier_slug,
// precision_safe_number)
// 2. Mapping: builds an immutable key to value snapshot from a source table
// 3. Lookup: applies a mapping to a target column with fill-missing semantics
// 4. Composite IDs: joins slugged column values into an identifier column
//
// Around them sit the table processors used by the individual tools:
// splitting, column cleaning, forward fill, unit of measure validation and
// in-table search and write.
//
// # Usage
//
// Lookup and fill between two tables:
//
//	m, err := dataprocessing.BuildMapping(source, "code", "id", dataprocessing.FirstWins)
//	if err != nil {
//	    return err
//	}
//	res, err := dataprocessing.ApplyMapping(target, "code", m)
//
// Composite identifiers:
//
//	col, err := dataprocessing.AddCompositeID(t, []string{"brand", "size"},
//	    dataprocessing.CompositeIDOptions{Prefix: "prod_"})
//
// # Error Handling
//
// Structural problems (a missing column, an invalid chunk size) are returned
// as *errors.AppError values. Cells that cannot be coerced never fail an
// operation; they are left as they were and reported through warning hooks.
//
// # Concurrency
//
// Nothing here is safe for concurrent mutation of the same table. Callers
// that process several files in parallel give each goroutine its own tables
// and mappings.
package dataprocessing
