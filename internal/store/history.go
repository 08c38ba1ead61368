package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// HistoryItem is one saved translation.
type HistoryItem struct {
	ID             int64     `json:"id"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewHistory is the input to CreateHistory.
type NewHistory struct {
	OriginalText   string `json:"original_text" validate:"required,min=1"`
	TranslatedText string `json:"translated_text" validate:"required,min=1"`
	SourceLang     string `json:"source_lang" validate:"required,min=1"`
	TargetLang     string `json:"target_lang" validate:"required,min=1"`
}

const historyColumns = `id, original_text, translated_text, source_lang, target_lang, created_at`

// CreateHistory inserts h and returns the stored row.
func (s *Store) CreateHistory(ctx context.Context, h NewHistory) (HistoryItem, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO history (original_text, translated_text, source_lang, target_lang, created_at) VALUES (?, ?, ?, ?, ?)`,
		h.OriginalText, h.TranslatedText, h.SourceLang, h.TargetLang, s.timestamp())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to insert history")
		return HistoryItem{}, fmt.Errorf("store: insert history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return HistoryItem{}, fmt.Errorf("store: last insert id: %w", err)
	}
	s.logger.Debug().Int64("history_id", id).Msg("history created")
	return s.GetHistory(ctx, id)
}

// GetHistory returns the item with id, or ErrNotFound.
func (s *Store) GetHistory(ctx context.Context, id int64) (HistoryItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+historyColumns+` FROM history WHERE id = ?`, id)
	item, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return HistoryItem{}, ErrNotFound
	}
	if err != nil {
		return HistoryItem{}, fmt.Errorf("store: get history %d: %w", id, err)
	}
	return item, nil
}

// ListHistory returns all items, newest first.
func (s *Store) ListHistory(ctx context.Context) ([]HistoryItem, error) {
	return s.queryHistory(ctx, `SELECT `+historyColumns+` FROM history ORDER BY id DESC`)
}

// SearchHistory returns items whose original or translated text contains keyword, newest first.
func (s *Store) SearchHistory(ctx context.Context, keyword string) ([]HistoryItem, error) {
	pattern := likePattern(keyword)
	return s.queryHistory(ctx,
		`SELECT `+historyColumns+` FROM history WHERE original_text LIKE ? ESCAPE '\' OR translated_text LIKE ? ESCAPE '\' ORDER BY id DESC`,
		pattern, pattern)
}

// DeleteHistory deletes the item with id and reports whether it existed.
func (s *Store) DeleteHistory(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("store: delete history %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteAllHistory deletes every item.
func (s *Store) DeleteAllHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("store: delete all history: %w", err)
	}
	s.logger.Info().Msg("history cleared")
	return nil
}

func (s *Store) queryHistory(ctx context.Context, query string, args ...any) ([]HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query history: %w", err)
	}
	defer rows.Close()

	items := []HistoryItem{}
	for rows.Next() {
		item, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan history: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate history: %w", err)
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(sc scanner) (HistoryItem, error) {
	var item HistoryItem
	var created sql.NullString
	if err := sc.Scan(&item.ID, &item.OriginalText, &item.TranslatedText, &item.SourceLang, &item.TargetLang, &created); err != nil {
		return HistoryItem{}, err
	}
	if created.Valid && created.String != "" {
		t, err := parseTimestamp(created.String)
		if err != nil {
			return HistoryItem{}, err
		}
		item.CreatedAt = t
	}
	return item, nil
}
