package scraper

import (
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// reportTableSelector matches the table holding the label/value rows of a report
const reportTableSelector = "table.diensttabelle"

var (
	// ErrNoTable is returned when the page has no report table at all
	ErrNoTable = errors.New("report table not found")
	// ErrNoData is returned when the report table exists but none of the known labels carry a value
	ErrNoData = errors.New("no report data found")
)

// rowState tracks whether continuation rows currently have a field to extend
type rowState int

const (
	noKey rowState = iota
	keyActive
)

// tableWalker accumulates field values while walking the rows of a report table
type tableWalker struct {
	fields  Fields
	state   rowState
	current Key
}

// labelRow appends value to key and makes key the target of following continuation rows
func (w *tableWalker) labelRow(key Key, value string) {
	w.fields[key] = joinLines(w.fields[key], value)
	w.state = keyActive
	w.current = key
}

// continuation appends text to the current key. Without a current key the row is dropped.
func (w *tableWalker) continuation(text string) {
	if w.state != keyActive || text == "" {
		return
	}
	w.fields[w.current] = joinLines(w.fields[w.current], text)
}

// ExtractFields walks the report table of doc. Long answers are rendered by the site as a
// label row followed by full-width (colspan) rows, which are folded into the last label.
func ExtractFields(doc *goquery.Document) (Fields, error) {
	table := doc.Find(reportTableSelector).First()
	if table.Length() == 0 {
		return Fields{}, ErrNoTable
	}

	var w tableWalker

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		if cells.Length() >= 2 {
			label := NormalizeLabel(cellText(cells.Eq(0), " "))
			if key, ok := LookupLabel(label); ok {
				w.labelRow(key, cellText(cells.Eq(1), "\n"))
				return
			}
		}

		if cells.Length() == 1 && goquery.NodeName(cells) == "td" {
			if _, spans := cells.Attr("colspan"); spans {
				w.continuation(cellText(cells, "\n"))
			}
		}
	})

	if w.fields.Empty() {
		return Fields{}, ErrNoData
	}
	return w.fields, nil
}

// ParseReport parses an exam report page and extracts its fields
func ParseReport(r io.Reader) (Fields, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Fields{}, err
	}
	return ExtractFields(doc)
}
