package model

import (
	"time"

	"github.com/google/uuid"
)

// Review results accepted by the flashcard scheduler.
const (
	ReviewAgain = "again"
	ReviewEasy  = "easy"
)

// VocabularyCard is one word flashcard.
type VocabularyCard struct {
	ID         uuid.UUID `json:"id"`
	Word       string    `json:"word"`
	Definition string    `json:"definition"`
	Example    string    `json:"example,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// VocabularyAttempt is one review of a card. The latest attempt per card is
// authoritative: an "easy" result marks the card completed (no DueAt), an
// "again" result carries the running failure count and the next review date.
type VocabularyAttempt struct {
	ID           uuid.UUID  `json:"id"`
	CardID       uuid.UUID  `json:"card_id"`
	Result       string     `json:"result"`
	FailureCount int        `json:"failure_count"`
	IntervalDays int        `json:"interval_days"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AttemptDue reports whether a card with the given latest-attempt state is
// due for review. Never-reviewed cards are due immediately, completed cards
// ("easy") are never due again, failed cards come due once their scheduled
// date passes. An empty result means no attempt exists.
func AttemptDue(result string, dueAt *time.Time, now time.Time) bool {
	if result == "" {
		return true
	}
	if result == ReviewEasy {
		return false
	}
	return dueAt != nil && !dueAt.After(now)
}

// VocabularyStats summarizes study progress.
type VocabularyStats struct {
	TotalCards     int `json:"total_cards"`
	DueCards       int `json:"due_cards"`
	CompletedCards int `json:"completed_cards"`
	TotalAttempts  int `json:"total_attempts"`
}

// ReviewRequest is the payload for submitting a card review.
type ReviewRequest struct {
	Result string `json:"result" binding:"required,oneof=again easy"`
}

// CreateCardRequest is the payload for adding a flashcard.
type CreateCardRequest struct {
	Word       string `json:"word" binding:"required,max=100"`
	Definition string `json:"definition" binding:"required"`
	Example    string `json:"example"`
}
