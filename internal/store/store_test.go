package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sample(orig, translated string) NewHistory {
	return NewHistory{OriginalText: orig, TranslatedText: translated, SourceLang: "ja", TargetLang: "en"}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(context.Background(), path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.CreateHistory(context.Background(), sample("a", "b"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "", zerolog.Nop())
	assert.Error(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	item, err := s.CreateHistory(ctx, sample("猫が座った", "The cat sat"))
	require.NoError(t, err)
	require.NoError(t, s.SetSetting(ctx, "default_lang", "ja"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetHistory(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "猫が座った", got.OriginalText)
	v, ok, err := s.GetSetting(ctx, "default_lang")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ja", v)
}

func TestCreateAndGetHistory(t *testing.T) {
	s := openTest(t)
	s.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	ctx := context.Background()

	item, err := s.CreateHistory(ctx, sample("猫が座った", "The cat sat"))
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "猫が座った", item.OriginalText)
	assert.Equal(t, "The cat sat", item.TranslatedText)
	assert.Equal(t, "ja", item.SourceLang)
	assert.Equal(t, "en", item.TargetLang)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), item.CreatedAt)

	got, err := s.GetHistory(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestGetHistoryNotFound(t *testing.T) {
	s := openTest(t)
	_, err := s.GetHistory(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListHistoryNewestFirst(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	empty, err := s.ListHistory(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, text := range []string{"one", "two", "three"} {
		_, err := s.CreateHistory(ctx, sample(text, text))
		require.NoError(t, err)
	}
	items, err := s.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "three", items[0].OriginalText)
	assert.Equal(t, "two", items[1].OriginalText)
	assert.Equal(t, "one", items[2].OriginalText)
}

func TestSearchHistory(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	_, err := s.CreateHistory(ctx, sample("猫が座った", "The cat sat"))
	require.NoError(t, err)
	_, err = s.CreateHistory(ctx, sample("犬が走った", "The dog ran"))
	require.NoError(t, err)
	_, err = s.CreateHistory(ctx, sample("100%", "one hundred_percent"))
	require.NoError(t, err)

	tests := []struct {
		keyword string
		want    []string
	}{
		{"cat", []string{"猫が座った"}},
		{"猫", []string{"猫が座った"}},
		{"The", []string{"犬が走った", "猫が座った"}},
		{"%", []string{"100%"}},
		{"_", []string{"100%"}},
		{"bird", nil},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			items, err := s.SearchHistory(ctx, tt.keyword)
			require.NoError(t, err)
			var got []string
			for _, item := range items {
				got = append(got, item.OriginalText)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeleteHistory(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	item, err := s.CreateHistory(ctx, sample("a", "b"))
	require.NoError(t, err)

	ok, err := s.DeleteHistory(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteHistory(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.GetHistory(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAllHistory(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateHistory(ctx, sample("a", "b"))
		require.NoError(t, err)
	}
	require.NoError(t, s.DeleteAllHistory(ctx))
	items, err := s.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSettings(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	_, ok, err := s.GetSetting(ctx, "granularity")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetSetting(ctx, "granularity", "word"))
	require.NoError(t, s.SetSetting(ctx, "granularity", "grapheme"))
	require.NoError(t, s.SetSetting(ctx, "default_lang", "ja"))

	v, ok, err := s.GetSetting(ctx, "granularity")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "grapheme", v)

	all, err := s.AllSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"granularity": "grapheme", "default_lang": "ja"}, all)

	deleted, err := s.DeleteSetting(ctx, "granularity")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteSetting(ctx, "granularity")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, in := range []string{"2024-01-02 03:04:05", "2024-01-02T03:04:05Z", "2024-01-02T03:04:05+00:00"} {
		got, err := parseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}
	_, err := parseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%cat%`, likePattern("cat"))
	assert.Equal(t, `%100\%\_x\\%`, likePattern(`100%_x\`))
}
