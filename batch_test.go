package glyphtab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/glyphtab/pages"
	"github.com/tsawler/glyphtab/xlsx"
)

func TestParseBatch(t *testing.T) {
	b, err := ParseBatch([]byte(`
defaults:
  per_sheet: 50
  level: 9
jobs:
  - input: U4E00.pdf
    output: result/basic.xlsx
    codepoints: 0x4e00..=0x9fff
  - input: U20000.pdf
    output: result/ext-b.xlsx
    pages: 1..=5
    per_sheet: 2
`))
	require.NoError(t, err)
	require.Len(t, b.Jobs, 2)

	first := b.Resolved(0)
	assert.Equal(t, "U4E00.pdf", first.Input)
	assert.Equal(t, "0x4e00..=0x9fff", first.Codepoints)
	assert.Equal(t, 50, first.PerSheet)
	require.NotNil(t, first.Level)
	assert.Equal(t, 9, *first.Level)

	second := b.Resolved(1)
	assert.Equal(t, "1..=5", second.Pages)
	assert.Equal(t, 2, second.PerSheet)

	// defaults are not written back
	assert.Zero(t, b.Jobs[0].PerSheet)
}

func TestParseBatch_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "jobs:\n  - input: a.pdf\n    output: a.xlsx\n    sheets: 3\n"},
		{"missing output", "jobs:\n  - input: a.pdf\n"},
		{"missing input", "jobs:\n  - output: a.xlsx\n"},
		{"not a mapping", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBatch([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func writeSVGDir(t *testing.T, dir string, descriptions ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for i, desc := range descriptions {
		name := filepath.Join(dir, fmt.Sprintf(pages.DefaultPattern, i))
		require.NoError(t, os.WriteFile(name, []byte(desc), 0o644))
	}
}

func TestBatch_Run(t *testing.T) {
	dir := t.TempDir()
	explanatory := `<svg><defs/><g/></svg>`
	writeSVGDir(t, filepath.Join(dir, "svg", "basic"), explanatory, simplePage(0x4E00), simplePage(0x4F00))
	writeSVGDir(t, filepath.Join(dir, "svg", "ext"), explanatory, simplePage(0x5000))

	jobFile := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(jobFile, []byte(`
defaults:
  per_sheet: 1
jobs:
  - input: svg/basic
    output: result/basic.xlsx
  - input: svg/ext
    output: result/ext.xlsx
`), 0o644))

	b, err := LoadBatch(jobFile)
	require.NoError(t, err)

	var started []string
	results, err := b.Run(context.Background(), nil, func(i int, job Job) {
		started = append(started, filepath.Base(job.Output))
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"basic.xlsx", "ext.xlsx"}, started)

	r, err := xlsx.Open(filepath.Join(dir, "result", "basic.xlsx"))
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 2, r.SheetCount())
	assert.Len(t, r.Entries(), 6)

	_, err = os.Stat(filepath.Join(dir, "result", "ext.xlsx"))
	assert.NoError(t, err)
}

func TestBatch_RunStopsOnError(t *testing.T) {
	dir := t.TempDir()
	writeSVGDir(t, filepath.Join(dir, "good"), `<svg><defs/><g/></svg>`, simplePage(0x4E00))

	b, err := ParseBatch([]byte(`
jobs:
  - input: missing
    output: out/missing.xlsx
  - input: good
    output: out/good.xlsx
`))
	require.NoError(t, err)
	b.dir = dir

	results, err := b.Run(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job 1")
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)

	_, statErr := os.Stat(filepath.Join(dir, "out", "good.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestJob_Converter(t *testing.T) {
	level := 1
	job := Job{Input: "in.pdf", Pages: "2..", PerSheet: 3, Columns: 4, Level: &level}

	base := Open("other.pdf").PerSheet(9)
	conv := job.Converter(base)

	assert.Equal(t, "in.pdf", conv.input)
	assert.Equal(t, 3, conv.options.perSheet)
	assert.Equal(t, 4, conv.options.workbook.ColMax)
	assert.Equal(t, 1, conv.options.workbook.CompressionLevel)
	assert.Equal(t, "2..", conv.options.pages.String())

	// the base is not modified
	assert.Equal(t, "other.pdf", base.input)
	assert.Equal(t, 9, base.options.perSheet)
}
