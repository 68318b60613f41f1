package scraper

// Key identifies one of the canonical report fields
type Key int

const (
	KeyFach Key = iota
	KeyOrtUni
	KeyPruefer
	KeyAtmosphaere
	KeyDauer
	KeyNote
	KeyVorgespraech
	KeyKleidung
	KeyGespraech

	numKeys
)

// keyNames holds the column name of each key, in export order
var keyNames = [numKeys]string{
	KeyFach:         "fach",
	KeyOrtUni:       "ort_uni",
	KeyPruefer:      "pruefer",
	KeyAtmosphaere:  "atmosphaere",
	KeyDauer:        "dauer",
	KeyNote:         "note",
	KeyVorgespraech: "vorgespraech",
	KeyKleidung:     "kleidung",
	KeyGespraech:    "gespraech",
}

// targetLabels maps the German row labels of the report table to their keys
var targetLabels = map[string]Key{
	"Fach":        KeyFach,
	"Ort/Uni":     KeyOrtUni,
	"Prüfer":      KeyPruefer,
	"Atmosphäre":  KeyAtmosphaere,
	"Dauer":       KeyDauer,
	"Note":        KeyNote,
	"Vorgespräch": KeyVorgespraech,
	"Kleidung":    KeyKleidung,
	"Gespräch":    KeyGespraech,
}

// String returns the column name of the key (e.g. "ort_uni")
func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return keyNames[k]
}

// Keys returns all canonical keys in export order
func Keys() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// LookupLabel returns the key for an already normalized table label
func LookupLabel(label string) (Key, bool) {
	k, ok := targetLabels[label]
	return k, ok
}

// Fields holds the extracted values of one report. Every key is always present;
// a label missing from the page leaves its value empty.
type Fields [numKeys]string

// Get returns the value stored for a key
func (f Fields) Get(k Key) string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return f[k]
}

// Empty reports whether every value is blank
func (f Fields) Empty() bool {
	for _, v := range f {
		if !isBlank(v) {
			return false
		}
	}
	return true
}

// Record is one successfully parsed report page, identified by its page ID
type Record struct {
	PageID int
	URL    string
	Fields Fields
}

// Columns returns the fixed export header: page_id, url, then the nine field keys
func Columns() []string {
	cols := []string{"page_id", "url"}
	for _, k := range Keys() {
		cols = append(cols, k.String())
	}
	return cols
}

// Values returns the record's field values in the same order as Columns, minus page_id
func (r Record) Values() []string {
	vals := []string{r.URL}
	for _, k := range Keys() {
		vals = append(vals, r.Fields.Get(k))
	}
	return vals
}
