package glyphtab

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Job is one conversion of a batch. Empty fields take the batch defaults.
type Job struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	Pages      string `yaml:"pages,omitempty"`      // e.g. "1.."
	Codepoints string `yaml:"codepoints,omitempty"` // e.g. "0x4e00..=0x9fff"
	PerSheet   int    `yaml:"per_sheet,omitempty"`
	Columns    int    `yaml:"columns,omitempty"`
	Level      *int   `yaml:"level,omitempty"`
}

// Batch is a list of conversions read from a YAML job file:
//
//	defaults:
//	  per_sheet: 100
//	jobs:
//	  - input: cjk-unicode-pdf/U4E00.pdf
//	    output: result/basic.xlsx
//	    codepoints: 0x4e00..=0x9fff
//	  - input: cjk-unicode-pdf/U20000.pdf
//	    output: result/ext-b.xlsx
//	    codepoints: 0x20000..=0x2A6DF
//
// Relative paths are resolved against the directory of the job file.
type Batch struct {
	Defaults Job   `yaml:"defaults"`
	Jobs     []Job `yaml:"jobs"`

	dir string
}

// JobResult is the outcome of one job.
type JobResult struct {
	Job      Job
	Warnings []Warning
	Err      error
}

// LoadBatch reads a job file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := ParseBatch(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.dir = filepath.Dir(path)
	return b, nil
}

// ParseBatch decodes a job file. Unknown keys are rejected.
func ParseBatch(data []byte) (*Batch, error) {
	var b Batch
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("parsing batch: %w", err)
	}
	for i, job := range b.Jobs {
		if job.Input == "" || job.Output == "" {
			return nil, fmt.Errorf("job %d: input and output are required", i+1)
		}
	}
	return &b, nil
}

// Resolved returns job i with defaults applied and paths made absolute
// relative to the job file.
func (b *Batch) Resolved(i int) Job {
	job := b.Jobs[i]
	d := b.Defaults
	if job.Pages == "" {
		job.Pages = d.Pages
	}
	if job.Codepoints == "" {
		job.Codepoints = d.Codepoints
	}
	if job.PerSheet == 0 {
		job.PerSheet = d.PerSheet
	}
	if job.Columns == 0 {
		job.Columns = d.Columns
	}
	if job.Level == nil {
		job.Level = d.Level
	}
	job.Input = b.resolve(job.Input)
	job.Output = b.resolve(job.Output)
	return job
}

func (b *Batch) resolve(path string) string {
	if b.dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.dir, path)
}

// Converter builds the converter for a resolved job on top of base, which
// supplies everything a job file cannot express (rasterizer, verifier,
// callbacks). A nil base starts from Open defaults.
func (job Job) Converter(base *Converter) *Converter {
	var conv *Converter
	if base == nil {
		conv = Open(job.Input)
	} else {
		conv = base.clone()
		conv.input = job.Input
		conv.source = nil
	}

	if job.Pages != "" {
		conv = conv.ParsePages(job.Pages)
	}
	if job.Codepoints != "" {
		conv = conv.ParseCodepoints(job.Codepoints)
	}
	if job.PerSheet != 0 {
		conv = conv.PerSheet(job.PerSheet)
	}
	if job.Columns != 0 {
		conv = conv.Columns(job.Columns)
	}
	if job.Level != nil {
		conv = conv.CompressionLevel(*job.Level)
	}
	return conv
}

// Run converts the jobs in order and stops at the first failure. onJob, if
// not nil, is called before each job starts. The results of all attempted
// jobs are returned.
func (b *Batch) Run(ctx context.Context, base *Converter, onJob func(i int, job Job)) ([]JobResult, error) {
	results := make([]JobResult, 0, len(b.Jobs))
	for i := range b.Jobs {
		job := b.Resolved(i)
		if onJob != nil {
			onJob(i, job)
		}

		if dir := filepath.Dir(job.Output); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				results = append(results, JobResult{Job: job, Err: err})
				return results, err
			}
		}

		warnings, err := job.Converter(base).Convert(ctx, job.Output)
		results = append(results, JobResult{Job: job, Warnings: warnings, Err: err})
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}
		tracer().Infof("batch job %d/%d: wrote %s", i+1, len(b.Jobs), job.Output)
	}
	return results, nil
}
