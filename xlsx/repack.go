package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Repack copies the zip archive src to dst, deflating every entry at the
// given level (-2 to 9). Entry order and modification times are kept.
// Entries whose names would escape the archive root are dropped.
func Repack(dst io.Writer, src []byte, level int) error {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return fmt.Errorf("xlsx: invalid compression level %d", level)
	}

	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	zw := zip.NewWriter(dst)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	skipped := 0
	for _, f := range zr.File {
		if !safeEntryName(f.Name) {
			skipped++
			continue
		}
		if err := copyEntry(zw, f); err != nil {
			return fmt.Errorf("repacking %s: %w", f.Name, err)
		}
	}
	if skipped > 0 {
		tracer().Infof("repack dropped %d unsafe entries", skipped)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

func copyEntry(zw *zip.Writer, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	header := &zip.FileHeader{
		Name:     f.Name,
		Method:   zip.Deflate,
		Modified: f.Modified,
	}
	if strings.HasSuffix(f.Name, "/") {
		header.Method = zip.Store
	}
	fw, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, rc)
	return err
}

// safeEntryName reports whether name is a relative path inside the archive.
func safeEntryName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	for _, part := range strings.Split(path.Clean(name), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
