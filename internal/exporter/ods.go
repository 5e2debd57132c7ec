package exporter

import (
	"archive/zip"
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"sheetcli/pkg/contracts/domain"
)

const odsMimeType = "application/vnd.oasis.opendocument.spreadsheet"

const odsManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
 <manifest:file-entry manifest:full-path="/" manifest:version="1.2" manifest:media-type="application/vnd.oasis.opendocument.spreadsheet"/>
 <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
 <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
 <manifest:file-entry manifest:full-path="meta.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

const odsStyles = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" office:version="1.2"/>
`

const odsMeta = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0" office:version="1.2">
 <office:meta><meta:generator>sheetcli</meta:generator></office:meta>
</office:document-meta>
`

const odsContentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" office:version="1.2"><office:body><office:spreadsheet>`

const odsContentFooter = `</office:spreadsheet></office:body></office:document-content>`

// WriteODS writes wb as an ODS package. The mimetype entry comes first and
// is stored uncompressed so the container can be sniffed.
func WriteODS(w io.Writer, wb *domain.Workbook) error {
	zw := zip.NewWriter(w)

	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := io.WriteString(mt, odsMimeType); err != nil {
		return err
	}

	for _, entry := range []struct{ name, body string }{
		{"META-INF/manifest.xml", odsManifest},
		{"styles.xml", odsStyles},
		{"meta.xml", odsMeta},
	} {
		fw, err := zw.Create(entry.name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(fw, entry.body); err != nil {
			return err
		}
	}

	cw, err := zw.Create("content.xml")
	if err != nil {
		return err
	}
	if err := writeODSContent(cw, wb); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	return zw.Close()
}

func writeODSContent(w io.Writer, wb *domain.Workbook) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(odsContentHeader)

	for i, table := range wb.Sheets {
		bw.WriteString(`<table:table table:name="`)
		escape(bw, sheetName(table, i))
		bw.WriteString(`">`)
		if n := table.ColumnCount(); n > 0 {
			fmt.Fprintf(bw, `<table:table-column table:number-columns-repeated="%d"/>`, n)
		}

		bw.WriteString("<table:table-row>")
		for _, h := range table.Header() {
			writeODSCell(bw, domain.Text(h))
		}
		bw.WriteString("</table:table-row>")

		for r := 0; r < table.RowCount(); r++ {
			bw.WriteString("<table:table-row>")
			for _, col := range table.Columns() {
				writeODSCell(bw, col.Values[r])
			}
			bw.WriteString("</table:table-row>")
		}
		bw.WriteString("</table:table>")
	}

	bw.WriteString(odsContentFooter)
	return bw.Flush()
}

func writeODSCell(bw *bufio.Writer, v domain.Value) {
	v = cellValue(v)
	switch v.Kind() {
	case domain.KindInteger:
		i, _ := v.IntValue()
		s := formatInt(i)
		fmt.Fprintf(bw, `<table:table-cell office:value-type="float" office:value="%s"><text:p>%s</text:p></table:table-cell>`, s, s)
	case domain.KindReal:
		f, _ := v.RealValue()
		if math.IsInf(f, 0) {
			writeODSText(bw, v.String())
			return
		}
		s := formatFloat(f)
		fmt.Fprintf(bw, `<table:table-cell office:value-type="float" office:value="%s"><text:p>%s</text:p></table:table-cell>`, s, s)
	case domain.KindText:
		s, _ := v.TextValue()
		writeODSText(bw, s)
	default:
		bw.WriteString("<table:table-cell/>")
	}
}

// writeODSText writes a string cell. Each line becomes a paragraph; runs of
// spaces and tabs use the dedicated elements so they survive whitespace
// collapsing in office suites.
func writeODSText(bw *bufio.Writer, s string) {
	bw.WriteString(`<table:table-cell office:value-type="string">`)
	for _, line := range strings.Split(s, "\n") {
		bw.WriteString("<text:p>")
		writeODSLine(bw, line)
		bw.WriteString("</text:p>")
	}
	bw.WriteString("</table:table-cell>")
}

func writeODSLine(bw *bufio.Writer, line string) {
	start := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '\t':
			escape(bw, line[start:i])
			bw.WriteString("<text:tab/>")
			i++
			start = i
		case ' ':
			j := i
			for j < len(line) && line[j] == ' ' {
				j++
			}
			n := j - i
			if i == 0 || j == len(line) || n > 1 {
				escape(bw, line[start:i])
				if i > 0 && j < len(line) {
					bw.WriteByte(' ')
					n--
				}
				if n == 1 {
					bw.WriteString("<text:s/>")
				} else {
					fmt.Fprintf(bw, `<text:s text:c="%d"/>`, n)
				}
				start = j
			}
			i = j
		default:
			i++
		}
	}
	escape(bw, line[start:])
}

func escape(w io.Writer, s string) {
	xml.EscapeText(w, []byte(s))
}
