package vetdex

// Status classifies an answer.
type Status string

// Status constants.
const (
	StatusSingle   Status = "single"
	StatusMultiple Status = "multiple"
)

// Drug is one knowledge base row. Empty strings mean "no data".
type Drug struct {
	Name              string
	TradeNames        string
	Classification    string
	Mechanism         string
	Indications       string
	SideEffects       string
	Contraindications string
	Interactions      string
	Usage             string
	Storage           string
	Monitoring        string
	Formulations      string
	DogDosage         string
	CatDosage         string
}

// Token is a normalizer output unit.
type Token struct {
	Text  string
	Lemma string
	POS   string // universal POS tag: NOUN, ADP, PUNCT...
}

// AskRequest is a free-text question. Categories and Animal, when set,
// replace what the interpreter detects.
type AskRequest struct {
	Query      string
	Categories []string
	Animal     string
}

// Facets is the selected part of a drug record keyed by facet name
// (name, trade_names, classification, ..., dog_dosage, cat_dosage, warning).
// Every key is present; omitted facets are "".
type Facets map[string]string

// Name returns the drug name.
func (f Facets) Name() string { return f["name"] }

// Warning returns the contraindication warning, "" if none.
func (f Facets) Warning() string { return f["warning"] }

// Answer is the result of Ask or Lookup.
type Answer struct {
	Status     Status
	Query      string
	Cleaned    string
	Categories []string
	Animal     string
	// Drugs holds one entry per matched drug, each selected by the same
	// categories and animal. Any entry may carry a warning.
	Drugs []Facets
}

// Aspect is one compared field.
type Aspect struct {
	Field  string
	Same   bool
	First  string
	Second string
}

// Comparison is the result of Compare.
type Comparison struct {
	First   string
	Second  string
	Aspects []Aspect
}
