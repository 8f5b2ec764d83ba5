package ocr

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/glyphtab/glyph"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Config holds recognition parameters
type Config struct {
	// Languages is a "+" separated list of Tesseract languages
	// (default: "chi_sim+chi_tra")
	Languages string
}

// DefaultConfig returns the languages covering the CJK blocks of a chart
func DefaultConfig() Config {
	return Config{Languages: "chi_sim+chi_tra"}
}

// Recognizer reads the single character in an encoded image.
type Recognizer interface {
	RecognizeGlyph(imageData []byte) (string, error)
}

// Result is the outcome of verifying one glyph.
type Result struct {
	Want rune
	Got  string // recognized text, possibly empty
}

// Match reports whether the recognized text is exactly the expected character.
func (r Result) Match() bool {
	got, size := utf8.DecodeRuneInString(r.Got)
	return size == len(r.Got) && got == r.Want
}

// String describes the result for warnings.
func (r Result) String() string {
	if r.Got == "" {
		return fmt.Sprintf("U+%04X not recognized", r.Want)
	}
	return fmt.Sprintf("U+%04X recognized as %q", r.Want, r.Got)
}

// Verify renders img as PNG and asks rec which character it shows.
func Verify(rec Recognizer, img *image.Gray, want rune) (Result, error) {
	data, err := glyph.EncodePNG(img)
	if err != nil {
		return Result{}, err
	}
	got, err := rec.RecognizeGlyph(data)
	if err != nil {
		return Result{}, fmt.Errorf("recognizing U+%04X: %w", want, err)
	}
	return Result{Want: want, Got: strings.TrimSpace(got)}, nil
}
