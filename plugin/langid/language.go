// Package langid identifies the natural language of short free-text phrases.
//
// Two layers are provided: a pure heuristic classifier driven by weighted
// per-language pattern tables (Classify), and a hybrid resolver that
// reconciles the heuristic result with an optional external detector
// (Resolver.Resolve). Both are stateless and safe for concurrent use.
package langid

import "golang.org/x/text/language"

// Language identifies a supported natural language.
type Language string

const (
	English    Language = "english"
	Spanish    Language = "spanish"
	French     Language = "french"
	German     Language = "german"
	Portuguese Language = "portuguese"
	Dutch      Language = "dutch"
	Vietnamese Language = "vietnamese"
	Japanese   Language = "japanese"

	// None marks an undetermined language. It is never paired with a
	// confidence above zero.
	None Language = ""
)

// supported lists every supported language in scoring order.
var supported = []Language{
	English, Spanish, French, German, Portuguese, Dutch, Vietnamese, Japanese,
}

// Supported returns the fixed set of supported languages.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// languageCodes maps languages to their ISO 639-1 codes.
var languageCodes = map[Language]string{
	English:    "en",
	Spanish:    "es",
	French:     "fr",
	German:     "de",
	Portuguese: "pt",
	Dutch:      "nl",
	Vietnamese: "vi",
	Japanese:   "ja",
}

// baseCodes maps ISO 639-1 base codes back onto the enumeration.
var baseCodes = map[string]Language{
	"en": English,
	"es": Spanish,
	"fr": French,
	"de": German,
	"pt": Portuguese,
	"nl": Dutch,
	"vi": Vietnamese,
	"ja": Japanese,
}

// Code returns the ISO 639-1 code of the language, or "" for None.
func (l Language) Code() string {
	return languageCodes[l]
}

// String returns the language name, or "none" for None.
func (l Language) String() string {
	if l == None {
		return "none"
	}
	return string(l)
}

// FromCode maps a detector language code onto the enumeration. BCP-47
// variants collapse to their base language ("pt-BR" maps to Portuguese).
// Unknown or unparseable codes map to None.
func FromCode(code string) Language {
	if code == "" {
		return None
	}
	tag, err := language.Parse(code)
	if err != nil {
		return None
	}
	base, conf := tag.Base()
	if conf == language.No {
		return None
	}
	return baseCodes[base.String()]
}
