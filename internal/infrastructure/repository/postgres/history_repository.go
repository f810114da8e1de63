package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

// HistoryRepository keeps the most recent decks. Concurrent appends from
// several processes are serialized by a transaction-scoped advisory lock, and
// recency is insertion order (seq), never the caller's clock.
type HistoryRepository struct {
	db       *sql.DB
	capacity int
}

func NewHistoryRepository(db *sql.DB, capacity int) *HistoryRepository {
	if capacity <= 0 {
		capacity = domain.HistoryCapacity
	}
	return &HistoryRepository{db: db, capacity: capacity}
}

// Append inserts the deck and evicts everything beyond capacity in one
// transaction.
func (r *HistoryRepository) Append(ctx context.Context, deck domain.Deck) error {
	slidesJSON, err := json.Marshal(nonNilSlides(deck.Slides))
	if err != nil {
		return fmt.Errorf("marshal slides: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, historyLockKey); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO decks (id, presentation_title, theme, slides, created_at)
VALUES ($1,$2,$3,$4,$5)
`, deck.ID, deck.PresentationTitle, string(deck.Theme), slidesJSON, deck.CreatedAt); err != nil {
		return fmt.Errorf("insert deck: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
DELETE FROM decks
WHERE id NOT IN (
	SELECT id FROM decks ORDER BY seq DESC LIMIT $1
)
`, r.capacity); err != nil {
		return fmt.Errorf("evict decks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// List returns decks most recent first.
func (r *HistoryRepository) List(ctx context.Context) ([]domain.Deck, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, presentation_title, theme, slides, created_at
FROM decks
ORDER BY seq DESC
LIMIT $1
`, r.capacity)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Deck, 0, r.capacity)
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decks: %w", err)
	}
	return out, nil
}

func (r *HistoryRepository) Get(ctx context.Context, id string) (*domain.Deck, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, presentation_title, theme, slides, created_at
FROM decks
WHERE id = $1
`, id)

	deck, err := scanDeck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrDeckNotFound, "get deck", err)
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	return requireAffected(result, domain.ErrDeckNotFound, "delete deck")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (domain.Deck, error) {
	var (
		deck       domain.Deck
		theme      string
		slidesJSON []byte
	)
	if err := row.Scan(&deck.ID, &deck.PresentationTitle, &theme, &slidesJSON, &deck.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Deck{}, err
		}
		return domain.Deck{}, fmt.Errorf("scan deck: %w", err)
	}
	if err := json.Unmarshal(slidesJSON, &deck.Slides); err != nil {
		return domain.Deck{}, fmt.Errorf("decode deck slides: %w", err)
	}
	deck.Theme = domain.Theme(theme)
	deck.CreatedAt = deck.CreatedAt.UTC()
	return deck, nil
}

func nonNilSlides(slides []domain.Slide) []domain.Slide {
	if slides == nil {
		return []domain.Slide{}
	}
	return slides
}
