package tables

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/tsawler/glyphtab/model"
	"github.com/tsawler/glyphtab/streams"
)

// tracer traces with key 'glyphtab.tables'
func tracer() tracing.Trace {
	return tracing.Select("glyphtab.tables")
}

// Detector is the interface for chart table reconstruction
type Detector interface {
	// Detect rebuilds the rows of one page from its classified streams
	Detect(set *streams.Set) ([]Row, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// Vertical distance below which glyphs and sources count as one line
	// and are ordered left to right (points)
	SortTolerance float64

	// Vertical gap that starts a new row band (points)
	RowGap float64

	// Tolerance for sorting code labels and collapsing their positions into
	// column and row boundaries (points)
	CodeTolerance float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		SortTolerance: 5.0,
		RowGap:        10.0,
		CodeTolerance: 2.0,
	}
}

// Pair is one rendered glyph with the transliteration printed below it
type Pair struct {
	Graph  model.GraphRecord
	Source model.SourceRecord
}

// Row is one code label with the glyph/source pairs belonging to it
type Row struct {
	Code  model.CodeRecord
	Pairs []Pair
}
