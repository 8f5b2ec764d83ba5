// Command glyphtab converts glyph code chart documents into workbooks.
//
//	glyphtab convert U4E00.pdf basic.xlsx --codepoints 0x4e00..=0x9fff
//	glyphtab batch jobs.yaml
//	glyphtab inspect basic.xlsx
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"github.com/tsawler/glyphtab"
	"github.com/tsawler/glyphtab/glyph"
	"github.com/tsawler/glyphtab/ocr"
	"github.com/tsawler/glyphtab/pages"
)

// tracer traces with key 'glyphtab.cli'
func tracer() tracing.Trace {
	return tracing.Select("glyphtab.cli")
}

// exitCode is set by the command actions. main exits with it once
// commando.Parse returns, after every deferred cleanup of the action ran.
var exitCode int

func main() {
	initDisplay()
	initTracing()

	commando.
		SetExecutableName("glyphtab").
		SetVersion("v0.1.0").
		SetDescription("Rebuild glyph code charts as spreadsheets with embedded glyph images.")

	commando.
		Register("convert").
		SetDescription("Convert the pages of a chart document into one workbook.").
		SetShortDescription("convert a chart").
		AddArgument("input", "chart PDF, or a name for the pages given with --svg-dir", "").
		AddArgument("output", "workbook to write", "").
		AddFlag("pages,p", "page range, e.g. 1.., 3..=7 (page 0 is always skipped)", commando.String, "..").
		AddFlag("codepoints,c", "extra accepted codepoints, e.g. 0x20000..=0x2A6DF", commando.String, "-").
		AddFlag("per-sheet,n", "pages per worksheet", commando.Int, glyphtab.DefaultPagesPerSheet).
		AddFlag("columns", "data columns per bordered row", commando.Int, 7).
		AddFlag("svg-dir,d", "read exported page descriptions from this directory", commando.String, "-").
		AddFlag("vectorizer", "program rendering PDF pages to SVG", commando.String, "mutool").
		AddFlag("rasterizer,r", "glyph rasterizer: vector|freetype", commando.String, "vector").
		AddFlag("level,l", "deflate level of the workbook (-2..9)", commando.Int, 6).
		AddFlag("verify", "check every glyph with OCR (needs a build with -tags ocr)", commando.Bool, nil).
		SetAction(runConvertCommand)

	commando.
		Register("batch").
		SetDescription("Run the conversions listed in a YAML job file.").
		SetShortDescription("run a job file").
		AddArgument("jobs", "YAML job file", "").
		AddFlag("rasterizer,r", "glyph rasterizer: vector|freetype", commando.String, "vector").
		SetAction(runBatchCommand)

	commando.
		Register("inspect").
		SetDescription("Summarize the sheets and code rows of a written workbook.").
		SetShortDescription("summarize a workbook").
		AddArgument("workbook", "workbook file", "").
		AddFlag("rows", "also list the code rows", commando.Bool, nil).
		SetAction(runInspectCommand)

	commando.Parse(nil)
	os.Exit(exitCode)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func initTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.glyphtab.cli":     "Info",
		"trace.glyphtab.pages":   "Error",
		"trace.glyphtab.xlsx":    "Error",
		"trace.glyphtab.tables":  "Error",
		"trace.glyphtab.streams": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

type convertOptions struct {
	Input, Output string
	SVGDir        string
	Vectorizer    string
	Pages         string
	Codepoints    string
	PerSheet      int
	Columns       int
	Level         int
	Rasterizer    string
	Verify        bool
}

func runConvertCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	opts, err := parseConvertFlags(args, flags)
	if err != nil {
		fail(err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := doConvert(ctx, opts); err != nil {
		fail(err)
	}
}

func doConvert(ctx context.Context, opts convertOptions) error {
	if opts.Input == "" || opts.Output == "" {
		return errors.New("input and output are required")
	}
	rasterizer, err := parseRasterizer(opts.Rasterizer)
	if err != nil {
		return err
	}

	var src pages.Source
	if opts.SVGDir != "" {
		src = pages.NewDirSource(opts.SVGDir)
	} else {
		config := pages.DefaultCommandConfig()
		config.Program = opts.Vectorizer
		src = pages.NewCommandSourceWithConfig(opts.Input, config)
	}

	conv := glyphtab.FromSource(src).
		ParsePages(opts.Pages).
		PerSheet(opts.PerSheet).
		Columns(opts.Columns).
		CompressionLevel(opts.Level).
		Rasterizer(rasterizer)
	if opts.Codepoints != "" {
		conv = conv.ParseCodepoints(opts.Codepoints)
	}

	if opts.Verify {
		client, err := ocr.New()
		if err != nil {
			return err
		}
		defer client.Close()
		conv = conv.Verify(client)
	}

	pterm.Info.Printf("Converting %s\n", opts.Input)
	conv = conv.OnPage(func(p glyphtab.Progress) {
		tracer().Infof("page %03d: %d rows, sheet %d (%d/%d)", p.Page, p.Rows, p.Sheet+1, p.Done, p.Total)
	})
	warnings, err := conv.Convert(ctx, opts.Output)
	printWarnings(warnings)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s\n", opts.Output)
	return nil
}

func runBatchCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	name, err := flagString(flags["rasterizer"], "rasterizer")
	if err != nil {
		fail(err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := doBatch(ctx, strings.TrimSpace(args["jobs"].Value), name); err != nil {
		fail(err)
	}
}

func doBatch(ctx context.Context, path, rasterizerName string) error {
	rasterizer, err := parseRasterizer(rasterizerName)
	if err != nil {
		return err
	}
	b, err := glyphtab.LoadBatch(path)
	if err != nil {
		return err
	}

	base := glyphtab.Open("").Rasterizer(rasterizer)
	results, err := b.Run(ctx, base, func(i int, job glyphtab.Job) {
		pterm.Info.Printf("[%d/%d] %s -> %s\n", i+1, len(b.Jobs), job.Input, job.Output)
	})
	for _, r := range results {
		printWarnings(r.Warnings)
		if r.Err == nil {
			pterm.Success.Printf("Wrote %s\n", r.Job.Output)
		}
	}
	return err
}

func printWarnings(warnings []glyphtab.Warning) {
	for _, w := range warnings {
		pterm.Warning.Println(w.String())
	}
}

// ---Parsing flags and arguments ---------------------------------------

func parseConvertFlags(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) (convertOptions, error) {
	opts := convertOptions{
		Input:  strings.TrimSpace(args["input"].Value),
		Output: strings.TrimSpace(args["output"].Value),
	}
	var err error
	strs := []struct {
		name string
		dst  *string
	}{
		{"svg-dir", &opts.SVGDir},
		{"vectorizer", &opts.Vectorizer},
		{"pages", &opts.Pages},
		{"codepoints", &opts.Codepoints},
		{"rasterizer", &opts.Rasterizer},
	}
	for _, f := range strs {
		if *f.dst, err = optionalString(flags[f.name], f.name); err != nil {
			return opts, err
		}
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"per-sheet", &opts.PerSheet},
		{"columns", &opts.Columns},
		{"level", &opts.Level},
	}
	for _, f := range ints {
		if *f.dst, err = flagInt(flags[f.name], f.name); err != nil {
			return opts, err
		}
	}
	opts.Verify, err = flagBool(flags["verify"], "verify")
	return opts, err
}

func parseRasterizer(name string) (glyph.Rasterizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "vector":
		return glyph.NewVectorRasterizer(), nil
	case "freetype":
		return glyph.NewFreetypeRasterizer(), nil
	default:
		return nil, fmt.Errorf("unknown rasterizer %q, want vector or freetype", name)
	}
}

// optionalString treats the placeholder default "-" as unset.
func optionalString(flag commando.FlagValue, name string) (string, error) {
	s, err := flagString(flag, name)
	s = strings.TrimSpace(s)
	if s == "-" {
		s = ""
	}
	return s, err
}

func flagString(flag commando.FlagValue, name string) (string, error) {
	s, err := flag.GetString()
	if err != nil {
		return "", fmt.Errorf("invalid --%s flag: %w", name, err)
	}
	return s, nil
}

func flagInt(flag commando.FlagValue, name string) (int, error) {
	n, err := flag.GetInt()
	if err != nil {
		return 0, fmt.Errorf("invalid --%s flag: %w", name, err)
	}
	return n, nil
}

func flagBool(flag commando.FlagValue, name string) (bool, error) {
	b, err := flag.GetBool()
	if err != nil {
		return false, fmt.Errorf("invalid --%s flag: %w", name, err)
	}
	return b, nil
}

// fail reports err and marks the run as failed.
func fail(err error) {
	pterm.Error.Printf("glyphtab: %v\n", err)
	exitCode = 1
}
