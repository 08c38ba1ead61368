package diff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInline(t *testing.T) {
	segs := ComputeDiff("The cat sat", "The dog sat", "en")

	assert.Equal(t, "The [-cat-]{+dog+} sat", RenderInline(segs, false))

	// Methodology: if the output looks right in a terminal, lock it in.
	exp := "The \x1b[30m\x1b[48;5;217mcat\x1b[0m\x1b[30m\x1b[48;5;114mdog\x1b[0m sat"
	assert.Equal(t, exp, RenderInline(segs, true))

	assert.Equal(t, "", RenderInline(nil, true))
}

func TestComputeStats(t *testing.T) {
	segs := []Segment{
		{Text: "猫", Kind: KindRemoved},
		{Text: "犬", Kind: KindAdded},
		{Text: "が座った", Kind: KindEqual},
		{Text: "よ", Kind: KindAdded},
	}
	st := ComputeStats(segs)
	assert.Equal(t, Stats{EqualRunes: 4, RemovedRunes: 1, AddedRunes: 2, Changes: 2}, st)
	assert.True(t, st.Changed())

	assert.False(t, ComputeStats([]Segment{{Text: "same", Kind: KindEqual}}).Changed())
}

func TestSegmentJSON(t *testing.T) {
	b, err := json.Marshal([]Segment{{Text: "cat", Kind: KindRemoved}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text":"cat","type":"removed"}]`, string(b))

	var got []Segment
	require.NoError(t, json.Unmarshal([]byte(`[{"text":"dog","type":"added"},{"text":" ","type":"equal"}]`), &got))
	assert.Equal(t, []Segment{{Text: "dog", Kind: KindAdded}, {Text: " ", Kind: KindEqual}}, got)

	require.Error(t, json.Unmarshal([]byte(`[{"text":"x","type":"moved"}]`), &got))

	_, err = json.Marshal(Segment{Text: "x", Kind: Kind(9)})
	require.Error(t, err)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
