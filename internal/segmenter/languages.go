package segmenter

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported source/target language.
type Language struct {
	Code string // BCP 47 tag as used on the wire (ex: "zh-Hans").
	Name string // English name.
}

var languages = []Language{
	{Code: "ja", Name: "Japanese"},
	{Code: "en", Name: "English"},
	{Code: "zh-Hans", Name: "Chinese Simplified"},
	{Code: "ko", Name: "Korean"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "es", Name: "Spanish"},
	{Code: "pt", Name: "Portuguese"},
}

// Languages returns the supported languages in display order. The slice is a copy.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LanguageName returns the English name of code, and false if code is not a supported language. code must already be canonical.
func LanguageName(code string) (string, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l.Name, true
		}
	}
	return "", false
}

// Canonicalize normalizes the casing and form of a BCP 47 tag (ex: "zh-hans" -> "zh-Hans", "JA" -> "ja"). Input that does not parse is returned trimmed but otherwise unchanged, so
// unknown codes still flow through to the word-granularity fallback.
func Canonicalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}
