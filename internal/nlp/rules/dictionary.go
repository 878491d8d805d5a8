package rules

// Universal POS tags produced by the tokenizer.
const (
	POSAdposition  = "ADP"
	POSCoordConj   = "CCONJ"
	POSSubordConj  = "SCONJ"
	POSParticle    = "PART"
	POSPronoun     = "PRON"
	POSPunctuation = "PUNCT"
	POSNumber      = "NUM"
	POSOther       = "X"
)

// closedClass tags Russian function words. Open-class words are left as X.
var closedClass = map[string]string{
	// предлоги
	"в": POSAdposition, "во": POSAdposition, "на": POSAdposition, "для": POSAdposition,
	"о": POSAdposition, "об": POSAdposition, "обо": POSAdposition, "от": POSAdposition,
	"с": POSAdposition, "со": POSAdposition, "к": POSAdposition, "ко": POSAdposition,
	"по": POSAdposition, "при": POSAdposition, "про": POSAdposition, "без": POSAdposition,
	"до": POSAdposition, "из": POSAdposition, "за": POSAdposition, "над": POSAdposition,
	"под": POSAdposition, "перед": POSAdposition, "через": POSAdposition, "у": POSAdposition,
	"между": POSAdposition, "после": POSAdposition, "против": POSAdposition,
	"среди": POSAdposition, "около": POSAdposition, "из-за": POSAdposition, "из-под": POSAdposition,

	"и": POSCoordConj, "а": POSCoordConj, "но": POSCoordConj, "или": POSCoordConj,
	"либо": POSCoordConj, "да": POSCoordConj, "ни": POSCoordConj,

	"что": POSSubordConj, "чтобы": POSSubordConj, "если": POSSubordConj, "как": POSSubordConj,
	"когда": POSSubordConj, "потому": POSSubordConj, "поскольку": POSSubordConj,
	"хотя": POSSubordConj, "чем": POSSubordConj,

	"не": POSParticle, "ли": POSParticle, "же": POSParticle, "бы": POSParticle,
	"ведь": POSParticle, "разве": POSParticle,

	"я": POSPronoun, "мне": POSPronoun, "меня": POSPronoun, "мы": POSPronoun, "нам": POSPronoun,
	"мой": POSPronoun, "моя": POSPronoun, "моей": POSPronoun, "моему": POSPronoun, "мою": POSPronoun,
	"наш": POSPronoun, "нашей": POSPronoun, "нашему": POSPronoun, "он": POSPronoun,
	"она": POSPronoun, "они": POSPronoun, "его": POSPronoun, "ее": POSPronoun, "её": POSPronoun,
	"ему": POSPronoun, "ей": POSPronoun, "им": POSPronoun, "какой": POSPronoun,
	"какая": POSPronoun, "какие": POSPronoun, "какую": POSPronoun, "каких": POSPronoun,
}

// lemmas maps frequent inflected query words to their dictionary form.
var lemmas = map[string]string{
	"побочки":         "побочка",
	"побочку":         "побочка",
	"хранится":        "храниться",
	"хранятся":        "храниться",
	"храните":         "хранить",
	"дозу":            "доза",
	"дозе":            "доза",
	"дозировку":       "дозировка",
	"дозировке":       "дозировка",
	"показаниям":      "показание",
	"противопоказан":  "противопоказанный",
	"действует":       "действовать",
	"действуют":       "действовать",
	"взаимодействует": "взаимодействовать",
	"таблетках":       "таблетка",
	"таблеток":        "таблетка",
	"уколы":           "укол",
	"уколах":          "укол",
	"применяется":     "применять",
	"применяют":       "применять",
	"анализов":        "анализ",
}
