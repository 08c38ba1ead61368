package segmenter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/words"
)

// Granularity is the unit a diff compares.
type Granularity int

const (
	GranularityWord     Granularity = iota // UAX #29 word tokens, including whitespace/punctuation tokens.
	GranularityRune                        // Unicode code points.
	GranularityGrapheme                    // Extended grapheme clusters.
)

func (g Granularity) String() string {
	switch g {
	case GranularityWord:
		return "word"
	case GranularityRune:
		return "rune"
	case GranularityGrapheme:
		return "grapheme"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// nonSpaceSegmented is closed: unknown codes fall back to word granularity.
var nonSpaceSegmented = map[string]bool{
	"ja":      true,
	"zh-Hans": true,
}

// IsNonSpaceSegmented reports whether lang is compared character by character. Only "ja" and "zh-Hans" are; any other code, known or not, is not.
func IsNonSpaceSegmented(lang string) bool {
	return nonSpaceSegmented[lang]
}

// GranularityFor returns the default granularity for lang: GranularityRune for non-space-segmented languages and GranularityWord otherwise.
func GranularityFor(lang string) Granularity {
	if IsNonSpaceSegmented(lang) {
		return GranularityRune
	}
	return GranularityWord
}

// ParseGranularity parses "word", "rune", or "grapheme". "auto" and "" are accepted and reported with auto=true; the caller then picks GranularityFor(lang).
func ParseGranularity(s string) (g Granularity, auto bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return GranularityWord, true, nil
	case "word":
		return GranularityWord, false, nil
	case "rune", "char":
		return GranularityRune, false, nil
	case "grapheme":
		return GranularityGrapheme, false, nil
	}
	return 0, false, fmt.Errorf("unknown granularity %q (want auto, word, rune, or grapheme)", s)
}

// Tokenize splits text into units of granularity g. Concatenating the result yields text. The empty string yields nil.
func Tokenize(text string, g Granularity) []string {
	if text == "" {
		return nil
	}
	switch g {
	case GranularityRune:
		out := make([]string, 0, utf8.RuneCountInString(text))
		for i := range text {
			// Slice the source rather than re-encoding, so invalid bytes survive.
			_, size := utf8.DecodeRuneInString(text[i:])
			out = append(out, text[i:i+size])
		}
		return out
	case GranularityGrapheme:
		var out []string
		iter := graphemes.FromString(text)
		for iter.Next() {
			out = append(out, iter.Value())
		}
		return out
	default:
		var out []string
		iter := words.FromString(text)
		for iter.Next() {
			out = append(out, iter.Value())
		}
		return out
	}
}

// Resolve parses a granularity name, mapping "auto" and "" to GranularityFor(lang).
func Resolve(name, lang string) (Granularity, error) {
	g, auto, err := ParseGranularity(name)
	if err != nil {
		return 0, err
	}
	if auto {
		return GranularityFor(lang), nil
	}
	return g, nil
}
