package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lintahlo/potential-backend/internal/model"
)

// ErrCardNotFound is returned when no flashcard matches.
var ErrCardNotFound = errors.New("vocabulary card not found")

// VocabularyRepository handles flashcard and review data access.
type VocabularyRepository struct {
	pool *pgxpool.Pool
}

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(pool *pgxpool.Pool) *VocabularyRepository {
	return &VocabularyRepository{pool: pool}
}

// ListCards retrieves all cards alphabetically.
func (r *VocabularyRepository) ListCards(ctx context.Context) ([]model.VocabularyCard, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, word, definition, example, created_at FROM vocabulary_cards ORDER BY word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCards(rows)
}

// DueCards retrieves cards due for review at the given time. Each card's
// latest attempt decides: never-reviewed cards are due, cards last marked
// "easy" are completed and excluded, failed cards are due once their
// scheduled date has passed. The decision lives in model.AttemptDue so the
// scheduler and this query cannot drift apart.
func (r *VocabularyRepository) DueCards(ctx context.Context, now time.Time) ([]model.VocabularyCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.word, c.definition, c.example, c.created_at, a.result, a.due_at
		FROM vocabulary_cards c
		LEFT JOIN LATERAL (
			SELECT result, due_at FROM vocabulary_attempts
			WHERE card_id = c.id
			ORDER BY created_at DESC
			LIMIT 1
		) a ON TRUE
		ORDER BY c.word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.VocabularyCard
	for rows.Next() {
		var (
			c      model.VocabularyCard
			result *string
			dueAt  *time.Time
		)
		if err := rows.Scan(&c.ID, &c.Word, &c.Definition, &c.Example, &c.CreatedAt, &result, &dueAt); err != nil {
			return nil, err
		}
		latest := ""
		if result != nil {
			latest = *result
		}
		if model.AttemptDue(latest, dueAt, now) {
			cards = append(cards, c)
		}
	}
	return cards, rows.Err()
}

// GetCard retrieves one card by ID.
func (r *VocabularyRepository) GetCard(ctx context.Context, id uuid.UUID) (*model.VocabularyCard, error) {
	var c model.VocabularyCard
	err := r.pool.QueryRow(ctx,
		`SELECT id, word, definition, example, created_at FROM vocabulary_cards WHERE id = $1`, id,
	).Scan(&c.ID, &c.Word, &c.Definition, &c.Example, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCard inserts a card, ignoring words that already exist.
func (r *VocabularyRepository) CreateCard(ctx context.Context, word, definition, example string) (*model.VocabularyCard, error) {
	var c model.VocabularyCard
	c.Word = word
	c.Definition = definition
	c.Example = example
	err := r.pool.QueryRow(ctx, `
		INSERT INTO vocabulary_cards (word, definition, example)
		VALUES ($1, $2, $3)
		ON CONFLICT (word) DO UPDATE SET definition = EXCLUDED.definition, example = EXCLUDED.example
		RETURNING id, created_at`,
		word, definition, example,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LatestAttempt retrieves the most recent attempt for a card, or nil when the
// card was never reviewed.
func (r *VocabularyRepository) LatestAttempt(ctx context.Context, cardID uuid.UUID) (*model.VocabularyAttempt, error) {
	var a model.VocabularyAttempt
	err := r.pool.QueryRow(ctx, `
		SELECT id, card_id, result, failure_count, interval_days, due_at, created_at
		FROM vocabulary_attempts
		WHERE card_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, cardID,
	).Scan(&a.ID, &a.CardID, &a.Result, &a.FailureCount, &a.IntervalDays, &a.DueAt, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAttempt records one review. DueAt is nil for completed cards.
func (r *VocabularyRepository) CreateAttempt(ctx context.Context, a *model.VocabularyAttempt) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO vocabulary_attempts (card_id, result, failure_count, interval_days, due_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		a.CardID, a.Result, a.FailureCount, a.IntervalDays, a.DueAt,
	).Scan(&a.ID, &a.CreatedAt)
}

// Stats returns study progress counters. The due count goes through DueCards
// so it matches what the study endpoint serves.
func (r *VocabularyRepository) Stats(ctx context.Context, now time.Time) (*model.VocabularyStats, error) {
	stats := &model.VocabularyStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM vocabulary_cards),
			(SELECT COUNT(*) FROM vocabulary_cards c
			 JOIN LATERAL (
				SELECT result FROM vocabulary_attempts
				WHERE card_id = c.id
				ORDER BY created_at DESC
				LIMIT 1
			 ) a ON TRUE
			 WHERE a.result = $1),
			(SELECT COUNT(*) FROM vocabulary_attempts)`, model.ReviewEasy,
	).Scan(&stats.TotalCards, &stats.CompletedCards, &stats.TotalAttempts)
	if err != nil {
		return nil, err
	}
	due, err := r.DueCards(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.DueCards = len(due)
	return stats, nil
}

func scanCards(rows pgx.Rows) ([]model.VocabularyCard, error) {
	var cards []model.VocabularyCard
	for rows.Next() {
		var c model.VocabularyCard
		if err := rows.Scan(&c.ID, &c.Word, &c.Definition, &c.Example, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
