package scraper

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Filter keeps only records whose fields contain the given substrings.
// Matching is case-insensitive; an empty filter matches everything.
type Filter struct {
	OrtUni string
	Fach   string
}

// Matches reports whether r satisfies every non-empty filter
func (f Filter) Matches(r Record) bool {
	return contains(r.Fields.Get(KeyOrtUni), f.OrtUni) &&
		contains(r.Fields.Get(KeyFach), f.Fach)
}

// Active describes the non-empty filters, e.g. `Uni/Ort contains "Dresden"`
func (f Filter) Active() []string {
	var active []string
	if !isBlank(f.OrtUni) {
		active = append(active, fmt.Sprintf("Uni/Ort contains %q", f.OrtUni))
	}
	if !isBlank(f.Fach) {
		active = append(active, fmt.Sprintf("Fach contains %q", f.Fach))
	}
	return active
}

func contains(value, filter string) bool {
	if isBlank(filter) {
		return true
	}
	return strings.Contains(fold(value), fold(filter))
}

func fold(s string) string {
	return strings.TrimSpace(cases.Fold().String(s))
}
