package exporter

import (
	"io"
	"strings"

	"protokollctl/pkg/scraper"

	"github.com/jedib0t/go-pretty/v6/table"
)

// previewWidth caps how much of a long answer is shown per cell in the terminal
const previewWidth = 40

// RenderTable prints a compact overview of the records (sorted by page ID) to w
func RenderTable(records []scraper.Record, w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	header := table.Row{}
	for _, c := range scraper.Columns() {
		if c == "url" {
			continue
		}
		header = append(header, c)
	}
	t.AppendHeader(header)

	for _, r := range sortByPageID(records) {
		row := table.Row{r.PageID}
		for _, k := range scraper.Keys() {
			row = append(row, preview(r.Fields.Get(k)))
		}
		t.AppendRow(row)
	}

	t.AppendFooter(table.Row{"total", len(records)})
	t.Render()
}

// RenderRecord prints every field of one record, untruncated
func RenderRecord(r scraper.Record, w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	t.AppendRow(table.Row{"page_id", r.PageID})
	t.AppendRow(table.Row{"url", r.URL})
	t.AppendSeparator()
	for _, k := range scraper.Keys() {
		t.AppendRow(table.Row{k.String(), r.Fields.Get(k)})
	}
	t.Render()
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= previewWidth {
		return s
	}
	return string(runes[:previewWidth-1]) + "…"
}
