package scraper

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTable(t *testing.T, rows string) (Fields, error) {
	t.Helper()
	html := `<html><body><table class="diensttabelle">` + rows + `</table></body></html>`
	return ParseReport(strings.NewReader(html))
}

func TestNormalizeLabel(t *testing.T) {
	variants := []string{
		"Ort/Uni",
		"Ort/Uni:",
		"  Ort/Uni  ",
		"\tOrt/Uni:\n",
		"Ort/Uni：",
		"Ort/Uni :",
	}
	for _, v := range variants {
		assert.Equal(t, "Ort/Uni", NormalizeLabel(v), "input %q", v)
	}

	assert.Equal(t, "Facharzt Prüfung", NormalizeLabel("Facharzt   Prüfung:"))
	assert.Equal(t, "Facharzt Prüfung", NormalizeLabel(" Facharzt \t\n Prüfung "))
	assert.Equal(t, "", NormalizeLabel(""))
	assert.Equal(t, "", NormalizeLabel("   "))
	assert.Equal(t, "Fach:", NormalizeLabel("Fach::"), "only one trailing colon is removed")
}

func TestParseReport_Fixture(t *testing.T) {
	file, err := os.Open("testdata/report.html")
	if err != nil {
		t.Skip("testdata/report.html not found, skipping test")
	}
	defer file.Close()

	fields, err := ParseReport(file)
	require.NoError(t, err)

	want := map[Key]string{
		KeyFach:         "Chirurgie",
		KeyOrtUni:       "Dresden Uniklinik",
		KeyPruefer:      "Prof. Dr. A\nDr. B",
		KeyAtmosphaere:  "angenehm",
		KeyDauer:        "45 Minuten",
		KeyNote:         "bestanden",
		KeyVorgespraech: "Kurzes Kennenlernen beim Chefarzt.",
		KeyKleidung:     "Anzug",
		KeyGespraech:    "Zuerst Fallvorstellung.\nDann Fragen zur Appendizitis.\nZum Schluss Frakturen.",
	}
	for k, v := range want {
		assert.Equal(t, v, fields.Get(k), "field %s", k)
	}
}

func TestExtractFields_LabelValueRows(t *testing.T) {
	fields, err := parseTable(t, `
		<tr><td>Fach:</td><td> Innere Medizin </td></tr>
		<tr><td>Unbekannt:</td><td>ignoriert</td></tr>
		<tr><td>Note</td><td>2</td></tr>
		<tr><th>Dauer:</th><td>30 min</td></tr>`)
	require.NoError(t, err)

	assert.Equal(t, "Innere Medizin", fields.Get(KeyFach))
	assert.Equal(t, "2", fields.Get(KeyNote))
	assert.Equal(t, "30 min", fields.Get(KeyDauer))
	for _, k := range []Key{KeyOrtUni, KeyPruefer, KeyAtmosphaere, KeyVorgespraech, KeyKleidung, KeyGespraech} {
		assert.Empty(t, fields.Get(k), "field %s", k)
	}
}

func TestExtractFields_ContinuationRows(t *testing.T) {
	fields, err := parseTable(t, `
		<tr><td>Gespräch:</td><td>Teil 1</td></tr>
		<tr><td colspan="2">Teil 2</td></tr>
		<tr><td colspan="2"></td></tr>
		<tr><td colspan="2">Teil 3</td></tr>
		<tr><td>Kleidung:</td><td>Kittel</td></tr>`)
	require.NoError(t, err)

	assert.Equal(t, "Teil 1\nTeil 2\nTeil 3", fields.Get(KeyGespraech))
	assert.Equal(t, "Kittel", fields.Get(KeyKleidung))
}

func TestExtractFields_ContinuationAfterEmptyLabelValue(t *testing.T) {
	fields, err := parseTable(t, `
		<tr><td>Vorgespräch:</td><td></td></tr>
		<tr><td colspan="2">Erst hier steht der Text</td></tr>`)
	require.NoError(t, err)

	assert.Equal(t, "Erst hier steht der Text", fields.Get(KeyVorgespraech),
		"no leading newline when the label row value is empty")
}

func TestExtractFields_ContinuationBeforeAnyLabel(t *testing.T) {
	fields, err := parseTable(t, `
		<tr><td colspan="2">Verwaister Text</td></tr>
		<tr><td>Fach:</td><td>Neurologie</td></tr>`)
	require.NoError(t, err)

	assert.Equal(t, "Neurologie", fields.Get(KeyFach))
	for _, k := range Keys() {
		assert.NotContains(t, fields.Get(k), "Verwaister", "field %s", k)
	}
}

func TestExtractFields_OnlyOrphanContinuation(t *testing.T) {
	_, err := parseTable(t, `<tr><td colspan="2">Verwaister Text</td></tr>`)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExtractFields_UnknownLabelKeepsCurrentKey(t *testing.T) {
	fields, err := parseTable(t, `
		<tr><td>Gespräch:</td><td>Anfang</td></tr>
		<tr><td>Sonstiges:</td><td>egal</td></tr>
		<tr><td colspan="2">Fortsetzung</td></tr>`)
	require.NoError(t, err)

	assert.Equal(t, "Anfang\nFortsetzung", fields.Get(KeyGespraech))
}

func TestExtractFields_SingleCellWithoutColspanIgnored(t *testing.T) {
	fields, err := parseTable(t, `
		<tr><td>Gespräch:</td><td>Anfang</td></tr>
		<tr><td>kein colspan</td></tr>
		<tr><th colspan="2">Überschrift</th></tr>`)
	require.NoError(t, err)

	assert.Equal(t, "Anfang", fields.Get(KeyGespraech))
}

func TestExtractFields_RepeatedLabelConcatenates(t *testing.T) {
	fields, err := parseTable(t, `
		<tr><td>Prüfer:</td><td>Dr. A</td></tr>
		<tr><td>Prüfer:</td><td>Dr. B</td></tr>`)
	require.NoError(t, err)

	assert.Equal(t, "Dr. A\nDr. B", fields.Get(KeyPruefer))
}

func TestExtractFields_NoData(t *testing.T) {
	_, err := parseTable(t, `
		<tr><td>Fach:</td><td>   </td></tr>
		<tr><td>Andere:</td><td>Wert</td></tr>`)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExtractFields_NoTable(t *testing.T) {
	_, err := ParseReport(strings.NewReader(`<html><body><table class="other"><tr><td>Fach</td><td>X</td></tr></table></body></html>`))
	assert.True(t, errors.Is(err, ErrNoTable))
}

func TestKeysAndColumns(t *testing.T) {
	assert.Equal(t, []string{
		"page_id", "url", "fach", "ort_uni", "pruefer", "atmosphaere",
		"dauer", "note", "vorgespraech", "kleidung", "gespraech",
	}, Columns())

	for label, key := range targetLabels {
		got, ok := LookupLabel(NormalizeLabel(label + ":"))
		assert.True(t, ok, "label %s", label)
		assert.Equal(t, key, got)
	}
	assert.Equal(t, "", Key(99).String())
}
