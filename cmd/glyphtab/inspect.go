package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"github.com/tsawler/glyphtab/format"
	"github.com/tsawler/glyphtab/xlsx"
)

func runInspectCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	rows, err := flagBool(flags["rows"], "rows")
	if err != nil {
		fail(err)
		return
	}
	if err := doInspect(strings.TrimSpace(args["workbook"].Value), rows); err != nil {
		fail(err)
	}
}

func doInspect(path string, rows bool) error {
	if f, err := format.DetectFile(path); err != nil {
		return err
	} else if f != format.XLSX {
		return fmt.Errorf("%s is %s, not a workbook", path, f)
	}

	r, err := xlsx.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	data := pterm.TableData{{"Sheet", "Rows", "First code", "Last code", "Images"}}
	total := 0
	for _, s := range r.Sheets() {
		entries := s.Entries()
		total += len(entries)
		first, last := "-", "-"
		if len(entries) > 0 {
			first, last = entries[0].Code, entries[len(entries)-1].Code
		}
		data = append(data, []string{
			s.Name,
			strconv.Itoa(len(entries)),
			first,
			last,
			strconv.Itoa(len(s.Pictures)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("%s: %d sheets, %d code rows\n", path, r.SheetCount(), total)

	if rows {
		return printRows(r)
	}
	return nil
}

func printRows(r *xlsx.Reader) error {
	data := pterm.TableData{{"Sheet", "Row", "Code", "Sources", "Images"}}
	for _, s := range r.Sheets() {
		for _, e := range s.Entries() {
			data = append(data, []string{
				s.Name,
				strconv.Itoa(e.Row + 1),
				e.Code,
				strings.Join(e.Sources, " "),
				fmt.Sprint(len(e.Pictures)),
			})
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
