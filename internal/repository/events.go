package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ButtonEvent records one button tap.
type ButtonEvent struct {
	ChatID       int64
	UserID       int64
	Username     string
	Token        string
	LanguageCode string
}

// AlbumEvent records one photo album sent for a product.
type AlbumEvent struct {
	ChatID     int64
	UserID     int64
	Username   string
	ProductID  string
	PhotoCount int
}

// EventJournal persists interaction events. Writes are best-effort: the
// controller logs journal failures and keeps serving.
type EventJournal interface {
	RecordButton(ctx context.Context, event ButtonEvent) error
	RecordAlbum(ctx context.Context, event AlbumEvent) error
}

type pgEventJournal struct {
	db *pgxpool.Pool
}

func NewEventJournal(db *pgxpool.Pool) EventJournal {
	return &pgEventJournal{db: db}
}

func (j *pgEventJournal) RecordButton(ctx context.Context, event ButtonEvent) error {
	query := `
	INSERT INTO button_events (chat_id, user_id, username, token, language_code, created_at)
	VALUES ($1, $2, $3, $4, $5, now())`
	_, err := j.db.Exec(ctx, query, event.ChatID, event.UserID, event.Username, event.Token, event.LanguageCode)
	if err != nil {
		return fmt.Errorf("failed to record button event: %w", err)
	}
	return nil
}

func (j *pgEventJournal) RecordAlbum(ctx context.Context, event AlbumEvent) error {
	query := `
	INSERT INTO album_events (chat_id, user_id, username, product_id, photo_count, created_at)
	VALUES ($1, $2, $3, $4, $5, now())`
	_, err := j.db.Exec(ctx, query, event.ChatID, event.UserID, event.Username, event.ProductID, event.PhotoCount)
	if err != nil {
		return fmt.Errorf("failed to record album event: %w", err)
	}
	return nil
}

type noopJournal struct{}

// NewNoopJournal returns a journal that discards events, used when the
// database is disabled.
func NewNoopJournal() EventJournal {
	return noopJournal{}
}

func (noopJournal) RecordButton(context.Context, ButtonEvent) error { return nil }
func (noopJournal) RecordAlbum(context.Context, AlbumEvent) error   { return nil }
