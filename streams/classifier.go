package streams

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/glyphtab/layout"
	"github.com/tsawler/glyphtab/model"
	"golang.org/x/text/unicode/norm"
)

// Scale signatures of the reference chart renderer. They are compared
// exactly: the renderer writes them verbatim into every transform.
const (
	// SourceScale marks transliteration text
	SourceScale = 6.0

	// CodeScale marks the hexadecimal code labels
	CodeScale = 9.9998

	// SourceRunGap is the largest horizontal step inside one transliteration
	SourceRunGap = 7.0

	// CodeRunGap is the largest horizontal step inside one code label
	CodeRunGap = 10.0

	// minCodeLength drops shorter digit runs as noise
	minCodeLength = 4
)

// Config holds configuration for stream classification
type Config struct {
	// SourceScale is the horizontal scale of transliteration text (default: 6.0)
	SourceScale float64

	// CodeScale is the horizontal scale of code labels (default: 9.9998)
	CodeScale float64

	// SourceRunGap splits transliteration runs (default: 7.0)
	SourceRunGap float64

	// CodeRunGap splits code label runs (default: 10.0)
	CodeRunGap float64

	// NormalizeSource applies NFC to transliteration text (default: true)
	NormalizeSource bool
}

// DefaultConfig returns the signatures of the reference chart layout
func DefaultConfig() Config {
	return Config{
		SourceScale:     SourceScale,
		CodeScale:       CodeScale,
		SourceRunGap:    SourceRunGap,
		CodeRunGap:      CodeRunGap,
		NormalizeSource: true,
	}
}

// Set holds the three classified streams of one page
type Set struct {
	Sources []model.SourceRecord
	Codes   []model.CodeRecord
	Graphs  []model.GraphRecord
}

// Classifier partitions page instructions into the source, code and graph
// streams
type Classifier struct {
	config     Config
	acceptance *unicode.RangeTable
}

// NewClassifier creates a classifier with default configuration accepting
// the chart blocks plus the given codepoint range
func NewClassifier(codepoints model.Range[rune]) *Classifier {
	return NewClassifierWithConfig(DefaultConfig(), codepoints)
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config Config, codepoints model.Range[rune]) *Classifier {
	return &Classifier{
		config:     config,
		acceptance: Acceptance(codepoints),
	}
}

// Config returns the classifier configuration
func (c *Classifier) Config() Config {
	return c.config
}

// Classify produces all three streams for one page
func (c *Classifier) Classify(instrs []model.Instruction, glyphs model.GlyphPathDictionary) (*Set, error) {
	codes, err := c.Codes(instrs)
	if err != nil {
		return nil, err
	}
	graphs, err := c.Graphs(instrs, glyphs)
	if err != nil {
		return nil, err
	}

	set := &Set{
		Sources: c.Sources(instrs),
		Codes:   codes,
		Graphs:  graphs,
	}
	tracer().Debugf("classified %d sources, %d codes, %d graphs", len(set.Sources), len(set.Codes), len(set.Graphs))
	return set, nil
}

// Sources extracts transliteration runs. Runs not starting with an ASCII
// letter are dropped.
func (c *Classifier) Sources(instrs []model.Instruction) []model.SourceRecord {
	runs := layout.ExtractRuns(
		withScale(instrs, c.config.SourceScale),
		instrY, instrX, instrText,
		c.config.SourceRunGap,
		startsWithLetter,
	)

	result := make([]model.SourceRecord, 0, len(runs))
	for _, r := range runs {
		text := r.Text
		if c.config.NormalizeSource {
			text = norm.NFC.String(text)
		}
		result = append(result, model.SourceRecord{
			Text: text,
			XMin: r.Min,
			XMax: r.Max,
			Y:    r.Key,
		})
	}
	return result
}

// Codes extracts code label runs of at least four characters and parses them
// as hexadecimal codepoints.
func (c *Classifier) Codes(instrs []model.Instruction) ([]model.CodeRecord, error) {
	runs := layout.ExtractRuns(
		withScale(instrs, c.config.CodeScale),
		instrY, instrX, instrText,
		c.config.CodeRunGap,
		func(r layout.Run[model.Instruction]) bool {
			return utf8.RuneCountInString(r.Text) >= minCodeLength
		},
	)

	result := make([]model.CodeRecord, 0, len(runs))
	for _, r := range runs {
		cp, err := ParseCodepoint(r.Text)
		if err != nil {
			return nil, err
		}
		result = append(result, model.CodeRecord{
			Codepoint: cp,
			XMin:      r.Min,
			XMax:      r.Max,
			Y:         r.Key,
		})
	}
	return result, nil
}

// Graphs selects rendered chart glyphs: uses drawn larger than transliteration
// text whose first character is in the acceptance set.
func (c *Classifier) Graphs(instrs []model.Instruction, glyphs model.GlyphPathDictionary) ([]model.GraphRecord, error) {
	var result []model.GraphRecord

	for _, in := range instrs {
		if in.Transform.ScaleX() <= c.config.SourceScale {
			continue
		}
		ch, _ := utf8.DecodeRuneInString(in.Text)
		if in.Text == "" || !unicode.Is(c.acceptance, ch) {
			continue
		}

		path, ok := glyphs[in.GlyphRef]
		if !ok {
			return nil, fmt.Errorf("%w: glyph %q referenced by %q is not defined",
				model.ErrMalformedDescription, in.GlyphRef, in.Text)
		}
		result = append(result, model.GraphRecord{
			Character: ch,
			Path:      path,
			X:         in.Transform.X(),
			Y:         in.Transform.Y(),
		})
	}

	return result, nil
}

// Accepts reports whether r is accepted as a chart glyph
func (c *Classifier) Accepts(r rune) bool {
	return unicode.Is(c.acceptance, r)
}

// ParseCodepoint parses a code label. Labels that are not hexadecimal or
// that name a surrogate or out-of-range value wrap model.ErrInvalidCodepoint.
func ParseCodepoint(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidCodepoint, s)
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: %q is not a scalar value", model.ErrInvalidCodepoint, s)
	}
	return r, nil
}

func withScale(instrs []model.Instruction, scale float64) []model.Instruction {
	var result []model.Instruction
	for _, in := range instrs {
		if in.Transform.ScaleX() == scale {
			result = append(result, in)
		}
	}
	return result
}

func instrX(in model.Instruction) float64   { return in.Transform.X() }
func instrY(in model.Instruction) float64   { return in.Transform.Y() }
func instrText(in model.Instruction) string { return in.Text }

func startsWithLetter(r layout.Run[model.Instruction]) bool {
	if r.Text == "" {
		return false
	}
	b := r.Text[0]
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
