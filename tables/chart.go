package tables

import (
	"fmt"

	"github.com/tsawler/glyphtab/layout"
	"github.com/tsawler/glyphtab/model"
	"github.com/tsawler/glyphtab/streams"
)

// ChartDetector rebuilds the grid of a code chart page. Code labels define
// the columns and, inside each column, the rows; every glyph/source pair is
// placed by the position of its transliteration.
type ChartDetector struct {
	config Config
}

// NewChartDetector creates a chart detector with default configuration.
func NewChartDetector() *ChartDetector {
	return &ChartDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("chart").
func (d *ChartDetector) Name() string {
	return "chart"
}

// Configure sets the detector configuration.
func (d *ChartDetector) Configure(config Config) error {
	if config.SortTolerance < 0 || config.RowGap < 0 || config.CodeTolerance < 0 {
		return fmt.Errorf("tables: negative tolerance in %+v", config)
	}
	d.config = config
	return nil
}

// Detect returns one row per code label, columns left to right and rows top
// to bottom within a column. The streams in set are not modified.
//
// Glyphs and sources must pair up one to one and form the same number of row
// bands, and no two code labels may share a band; otherwise Detect reports
// model.ErrLayoutMismatch. A pair outside every band (one level with a label,
// or above the first label) lands in the last row of its column.
func (d *ChartDetector) Detect(set *streams.Set) ([]Row, error) {
	pairs, err := d.pair(set.Sources, set.Graphs)
	if err != nil {
		return nil, err
	}

	codes := append([]model.CodeRecord(nil), set.Codes...)
	layout.SortXY(codes, codeX, codeY, d.config.CodeTolerance)

	columns, columnBands := layout.ClusterPositions(codes, codeX, d.config.CodeTolerance)
	columnBuckets, err := d.correlate(pairs, pairX, columnBands, "column")
	if err != nil {
		return nil, err
	}

	var rows []Row
	for c, column := range columns {
		colRows, err := d.detectColumn(column, columnBuckets[c])
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
		rows = append(rows, colRows...)
	}

	tracer().Debugf("detected %d rows in %d columns from %d pairs", len(rows), len(columns), len(pairs))
	return rows, nil
}

// pair sorts both streams into reading order, checks that they agree, and
// joins the i-th glyph with the i-th source.
func (d *ChartDetector) pair(sources []model.SourceRecord, graphs []model.GraphRecord) ([]Pair, error) {
	sources = append([]model.SourceRecord(nil), sources...)
	graphs = append([]model.GraphRecord(nil), graphs...)

	layout.SortYX(sources, sourceXMin, sourceY, d.config.SortTolerance)
	layout.SortYX(graphs, graphX, graphY, d.config.SortTolerance)

	sourceRows := layout.SplitBands(sources, sourceY, d.config.RowGap)
	graphRows := layout.SplitBands(graphs, graphY, d.config.RowGap)

	if len(sources) != len(graphs) || len(sourceRows) != len(graphRows) {
		tracer().Errorf("stream mismatch: %d sources in %d rows, %d glyphs in %d rows",
			len(sources), len(sourceRows), len(graphs), len(graphRows))
		return nil, fmt.Errorf("%w: %d sources in %d rows, %d glyphs in %d rows",
			model.ErrLayoutMismatch, len(sources), len(sourceRows), len(graphs), len(graphRows))
	}

	pairs := make([]Pair, len(sources))
	for i := range sources {
		pairs[i] = Pair{Graph: graphs[i], Source: sources[i]}
	}
	return pairs, nil
}

// detectColumn splits the pairs of one column into the rows of its code labels.
func (d *ChartDetector) detectColumn(codes []model.CodeRecord, pairs []Pair) ([]Row, error) {
	codes = append([]model.CodeRecord(nil), codes...)
	layout.SortYX(codes, codeX, codeY, d.config.CodeTolerance)

	labels, rowBands := layout.ClusterPositions(codes, codeY, d.config.CodeTolerance)
	if len(labels) != len(codes) {
		return nil, fmt.Errorf("%w: %d code labels share %d row bands",
			model.ErrLayoutMismatch, len(codes), len(labels))
	}

	rowBuckets, err := d.correlate(pairs, pairY, rowBands, "row")
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(codes))
	for i, code := range codes {
		rows[i] = Row{Code: code, Pairs: rowBuckets[i]}
	}
	return rows, nil
}

// correlate buckets pairs and returns them indexed by band. The overflow
// bucket is kept and joins the last band.
func (d *ChartDetector) correlate(pairs []Pair, coord func(Pair) float64, bands []model.Interval, axis string) ([][]Pair, error) {
	if len(bands) == 0 {
		if len(pairs) > 0 {
			return nil, fmt.Errorf("%w: %d pairs but no %s labels, first %q",
				model.ErrLayoutMismatch, len(pairs), axis, pairs[0].Source.Text)
		}
		return nil, nil
	}

	byBand := make([][]Pair, len(bands))
	last := len(bands) - 1
	for _, b := range Correlate(pairs, coord, bands) {
		if b.IsOverflow(bands) {
			tracer().Debugf("%d pairs outside every %s band, first %q", len(b.Items), axis, b.Items[0].Source.Text)
			byBand[last] = append(byBand[last], b.Items...)
			continue
		}
		byBand[b.Index] = b.Items
	}
	return byBand, nil
}

func codeX(c model.CodeRecord) float64 { return c.XMin }
func codeY(c model.CodeRecord) float64 { return c.Y }

func sourceXMin(s model.SourceRecord) float64 { return s.XMin }
func sourceY(s model.SourceRecord) float64    { return s.Y }

func graphX(g model.GraphRecord) float64 { return g.X }
func graphY(g model.GraphRecord) float64 { return g.Y }

func pairX(p Pair) float64 { return p.Source.XMin }
func pairY(p Pair) float64 { return p.Source.Y }
