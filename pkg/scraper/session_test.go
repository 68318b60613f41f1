package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_AddSortClear(t *testing.T) {
	s := NewSession()

	assert.True(t, s.Add(Record{PageID: 12}))
	assert.True(t, s.Add(Record{PageID: 3}))
	assert.False(t, s.Add(Record{PageID: 12, URL: "second copy"}), "same page ID must not be stored twice")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Seen(3))
	assert.False(t, s.Seen(4))

	records := s.Records()
	assert.Equal(t, []int{3, 12}, pageIDs(records))
	assert.Empty(t, records[1].URL, "the first stored copy wins")

	// Records returns a copy
	records[0].PageID = 99
	assert.Equal(t, []int{3, 12}, pageIDs(s.Records()))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Seen(12))
	assert.True(t, s.Add(Record{PageID: 12}))
}

func TestFilter_Matches(t *testing.T) {
	r := Record{Fields: fieldsWith("Innere Medizin", "Dresden Uniklinik")}

	assert.True(t, Filter{}.Matches(r))
	assert.True(t, Filter{OrtUni: "dresden"}.Matches(r))
	assert.True(t, Filter{OrtUni: "  DRESDEN "}.Matches(r))
	assert.False(t, Filter{OrtUni: "Leipzig"}.Matches(r))
	assert.True(t, Filter{OrtUni: "uniklinik", Fach: "innere"}.Matches(r))
	assert.False(t, Filter{OrtUni: "dresden", Fach: "Chirurgie"}.Matches(r))
	assert.True(t, Filter{Fach: "   "}.Matches(r), "blank filters match everything")

	// Full case folding maps ß to ss
	street := Record{Fields: fieldsWith("", "Klinik Große Straße")}
	assert.True(t, Filter{OrtUni: "STRASSE"}.Matches(street))
}

func TestFilter_Active(t *testing.T) {
	assert.Empty(t, Filter{}.Active())
	assert.Equal(t,
		[]string{`Uni/Ort contains "Dresden"`, `Fach contains "Chirurgie"`},
		Filter{OrtUni: "Dresden", Fach: "Chirurgie"}.Active())
}
