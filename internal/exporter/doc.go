// Package exporter writes tables back to disk as CSV, XLSX or ODS.
//
// The output format follows the file extension unless Options.Format is
// set. Every writer passes values through dataprocessing.PrecisionSafe, so
// long numeric codes such as barcodes keep all their digits.
//
// Example usage:
//
//	opts := exporter.OptionsFrom(cfg.Processing)
//	if err := exporter.Save("productos_processed_Hoja1.ods", table, opts); err != nil {
//	    return err
//	}
package exporter
