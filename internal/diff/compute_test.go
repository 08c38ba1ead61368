package diff

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/codalotl/retransdiff/internal/segmenter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiff_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		original     string
		retranslated string
		lang         string
		want         []Segment
	}{
		{
			name:         "identical",
			original:     "Hello world",
			retranslated: "Hello world",
			lang:         "en",
			want:         []Segment{{Text: "Hello world", Kind: KindEqual}},
		},
		{
			name: "both empty",
			lang: "en",
			want: nil,
		},
		{
			name:         "word replace",
			original:     "The cat sat",
			retranslated: "The dog sat",
			lang:         "en",
			want: []Segment{
				{Text: "The ", Kind: KindEqual},
				{Text: "cat", Kind: KindRemoved},
				{Text: "dog", Kind: KindAdded},
				{Text: " sat", Kind: KindEqual},
			},
		},
		{
			name:         "japanese is per character",
			original:     "猫が座った",
			retranslated: "犬が座った",
			lang:         "ja",
			want: []Segment{
				{Text: "猫", Kind: KindRemoved},
				{Text: "犬", Kind: KindAdded},
				{Text: "が座った", Kind: KindEqual},
			},
		},
		{
			name:         "standalone deletion",
			original:     "hello world",
			retranslated: "hello ",
			lang:         "en",
			want: []Segment{
				{Text: "hello ", Kind: KindEqual},
				{Text: "world", Kind: KindRemoved},
			},
		},
		{
			name:         "standalone insertion",
			original:     "hello",
			retranslated: "hello world",
			lang:         "en",
			want: []Segment{
				{Text: "hello", Kind: KindEqual},
				{Text: " world", Kind: KindAdded},
			},
		},
		{
			name:         "words are not split",
			original:     "a cat",
			retranslated: "a cart",
			lang:         "en",
			want: []Segment{
				{Text: "a ", Kind: KindEqual},
				{Text: "cat", Kind: KindRemoved},
				{Text: "cart", Kind: KindAdded},
			},
		},
		{
			name:         "disjoint",
			original:     "abc",
			retranslated: "xyz",
			lang:         "fr",
			want: []Segment{
				{Text: "abc", Kind: KindRemoved},
				{Text: "xyz", Kind: KindAdded},
			},
		},
		{
			name:         "from empty",
			original:     "",
			retranslated: "new text",
			lang:         "de",
			want:         []Segment{{Text: "new text", Kind: KindAdded}},
		},
		{
			name:         "to empty",
			original:     "old text",
			retranslated: "",
			lang:         "zh-Hans",
			want:         []Segment{{Text: "old text", Kind: KindRemoved}},
		},
		{
			name:         "unknown language falls back to words",
			original:     "one two",
			retranslated: "one three",
			lang:         "xx",
			want: []Segment{
				{Text: "one ", Kind: KindEqual},
				{Text: "two", Kind: KindRemoved},
				{Text: "three", Kind: KindAdded},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDiff(tc.original, tc.retranslated, tc.lang)
			require.Equal(t, tc.want, got)
			require.NoError(t, Validate(got, tc.original, tc.retranslated))
		})
	}
}

func TestComputeDiff_Korean(t *testing.T) {
	got := ComputeDiff("고양이가 앉았다", "개가 앉았다", "ko")
	require.NoError(t, Validate(got, "고양이가 앉았다", "개가 앉았다"))

	var kinds []Kind
	for _, s := range got {
		kinds = append(kinds, s.Kind)
	}
	assert.Contains(t, kinds, KindRemoved)
	assert.Contains(t, kinds, KindAdded)
	assert.Equal(t, Segment{Text: "고양이가", Kind: KindRemoved}, got[0])
}

func TestComputeDiffGranularity_Grapheme(t *testing.T) {
	// The flag emoji is two runes but one grapheme; grapheme mode must not split it.
	orig := "旗🇯🇵です"
	retr := "旗🇫🇷です"

	got := ComputeDiffGranularity(orig, retr, segmenter.GranularityGrapheme)
	require.NoError(t, Validate(got, orig, retr))
	require.Equal(t, []Segment{
		{Text: "旗", Kind: KindEqual},
		{Text: "🇯🇵", Kind: KindRemoved},
		{Text: "🇫🇷", Kind: KindAdded},
		{Text: "です", Kind: KindEqual},
	}, got)
}

func TestComputeDiff_InvalidUTF8(t *testing.T) {
	orig := "ok \xff bytes"
	retr := "ok \xfe bytes"
	for _, lang := range []string{"en", "ja"} {
		got := ComputeDiff(orig, retr, lang)
		require.NoError(t, Validate(got, orig, retr), lang)
	}
}

func TestComputeDiff_Deterministic(t *testing.T) {
	a := "The quick brown fox jumps over the lazy dog. The dog sleeps."
	b := "A quick red fox leapt over a lazy dog. The dog woke up."
	first := ComputeDiff(a, b, "en")
	for i := 0; i < 20; i++ {
		require.Equal(t, first, ComputeDiff(a, b, "en"))
	}
}

// Pairs used by the property tests below. Each pair is diffed under every language in propertyLangs.
var propertyPairs = [][2]string{
	{"", ""},
	{"", "x"},
	{"x", ""},
	{"The cat sat on the mat.", "A dog sat on a rug."},
	{"猫が座った。犬は走った。", "犬が座った。猫は走った。"},
	{"我们今天去公园吧！", "我们明天去图书馆吧。"},
	{"고양이가 앉았다", "개가 앉았다"},
	{"Le chat est assis.", "Le chien est assis sur le tapis."},
	{"Der Hund bellt laut", "Die Katze miaut leise"},
	{"  spaces   everywhere  ", " spaces everywhere "},
	{"line one\nline two\n", "line one\nline 2\nline three\n"},
	{"a a a a", "a b a b a"},
	{"emoji 👍🏽 here", "emoji 👎 there"},
	{"same", "same"},
}

var propertyLangs = []string{"ja", "zh-Hans", "ko", "en", "fr", "de", "unknown"}

func checkProperties(t *testing.T, a, b, lang string) {
	t.Helper()
	segs := ComputeDiff(a, b, lang)

	require.Equal(t, a, OriginalText(segs), "original reconstruction lang=%s", lang)
	require.Equal(t, b, RetranslatedText(segs), "retranslated reconstruction lang=%s", lang)
	for i := 1; i < len(segs); i++ {
		require.NotEqual(t, segs[i-1].Kind, segs[i].Kind, "adjacent same kind at %d lang=%s", i, lang)
	}
	require.NoError(t, Validate(segs, a, b))

	if a == b {
		if a == "" {
			require.Empty(t, segs)
		} else {
			require.Equal(t, []Segment{{Text: a, Kind: KindEqual}}, segs)
		}
	}
}

func TestComputeDiff_Properties(t *testing.T) {
	for _, p := range propertyPairs {
		for _, lang := range propertyLangs {
			checkProperties(t, p[0], p[1], lang)
			checkProperties(t, p[1], p[0], lang)
			checkProperties(t, p[0], p[0], lang)
		}
	}
}

func TestComputeDiff_RandomProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	vocab := []string{"the", "cat", "dog", " ", "  ", ",", ".", "猫", "犬", "が", "는", "é", "\n", "sat", "mat", "🙂"}

	gen := func() string {
		var b strings.Builder
		n := rng.IntN(20)
		for i := 0; i < n; i++ {
			b.WriteString(vocab[rng.IntN(len(vocab))])
		}
		return b.String()
	}

	for i := 0; i < 300; i++ {
		a, b := gen(), gen()
		lang := propertyLangs[rng.IntN(len(propertyLangs))]
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			checkProperties(t, a, b, lang)
		})
	}
}

func TestNormalize(t *testing.T) {
	in := []Segment{
		{Text: "x", Kind: KindAdded},
		{Text: "y", Kind: KindRemoved},
		{Text: "", Kind: KindEqual},
		{Text: "z", Kind: KindAdded},
		{Text: "a", Kind: KindEqual},
		{Text: "b", Kind: KindEqual},
		{Text: "", Kind: KindRemoved},
	}
	assert.Equal(t, []Segment{
		{Text: "y", Kind: KindRemoved},
		{Text: "xz", Kind: KindAdded},
		{Text: "ab", Kind: KindEqual},
	}, normalize(in))
	assert.Nil(t, normalize(nil))
}

func TestTokenTableIDs(t *testing.T) {
	for _, id := range []int{0, 1, 0xD7FF, 0xD800, 0xD801, maxTokenIDs - 1} {
		r := idToRune(id)
		assert.False(t, r >= 0xD800 && r <= 0xDFFF, "id %d mapped into surrogates", id)
		assert.LessOrEqual(t, r, rune(0x10FFFF))
		assert.Equal(t, id, runeToID(r))
	}

	var table tokenTable
	runes, ok := table.encode([]string{"a", "b", "a"})
	require.True(t, ok)
	assert.Equal(t, runes[0], runes[2])
	assert.Equal(t, "aba", table.decode(string(runes)))
}
