// Package format recognizes the files glyphtab reads and writes: chart
// documents, exported page descriptions and workbooks.
package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Format represents a file format handled by glyphtab.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a chart document to be vectorized.
	PDF
	// SVG indicates an exported page description.
	SVG
	// XLSX indicates a workbook.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case SVG:
		return "SVG"
	case XLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case SVG:
		return ".svg"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".svg":
		return SVG
	case ".xlsx":
		return XLSX
	default:
		return Unknown
	}
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
)

// DetectFromMagic checks the leading bytes. A ZIP archive is reported as
// Unknown since only its content tells a workbook apart; use DetectFromReader.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}
	if looksLikeSVG(data) {
		return SVG
	}
	return Unknown
}

// looksLikeSVG accepts an svg root element, optionally after an XML
// declaration, comments or a doctype within the first bytes.
func looksLikeSVG(data []byte) bool {
	head := strings.ToLower(string(data[:min(len(data), 1024)]))
	head = strings.TrimLeft(head, " \t\r\n\ufeff")
	if !strings.HasPrefix(head, "<") {
		return false
	}
	return strings.HasPrefix(head, "<svg") || strings.Contains(head, "<svg ") || strings.Contains(head, "<svg>")
}

// DetectFromReader inspects the content. Unlike DetectFromMagic it opens
// ZIP archives and recognizes workbooks by their xl/ parts.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 1024)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// DetectFile opens filename and inspects its content, falling back to the
// extension when the content is inconclusive.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	got, err := DetectFromReader(f, info.Size())
	if err != nil {
		return Unknown, err
	}
	if got == Unknown {
		return Detect(filename), nil
	}
	return got, nil
}

func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if f.Name == "xl/workbook.xml" {
			return XLSX, nil
		}
	}
	return Unknown, nil
}
