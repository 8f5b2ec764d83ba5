// Package xlsx writes and inspects glyph chart workbooks.
//
// A [Writer] lays out one chart row as a block of three spreadsheet rows:
//
//	+------+-----------+-----------+-- ... --+
//	|      | source    | source    |         |
//	| code +-----------+-----------+-- ... --+
//	|      | [glyph]   | [glyph]   |         |
//	|      +-----------+-----------+-- ... --+
//	|      |           |           |         |
//	+------+-----------+-----------+-- ... --+
//
// The code label is merged over the block in the first column. Every block is
// bordered so the column count of a row is always [Config].ColMax, whether or
// not the row has that many cells.
//
// Workbooks are built with github.com/xuri/excelize/v2 and repackaged with
// github.com/klauspost/compress at a fixed deflate level before they are
// written, see [Repack].
//
// A [Reader] reads such a workbook back. [Sheet.Entries] recovers the code
// label, source texts and embedded images of every block:
//
//	r, err := xlsx.Open("chart.xlsx")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	for _, sheet := range r.Sheets() {
//		for _, e := range sheet.Entries() {
//			fmt.Println(e.Code, e.Sources, len(e.Pictures))
//		}
//	}
package xlsx

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphtab.xlsx'
func tracer() tracing.Trace {
	return tracing.Select("glyphtab.xlsx")
}
