package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lintahlo/potential-backend/internal/model"
	"github.com/lintahlo/potential-backend/internal/repository"
)

// reviewIntervals is the spaced-repetition ladder in days, indexed by the
// card's failure count and capped at the last rung.
var reviewIntervals = []int{1, 3, 7, 14, 30}

// VocabularyService handles flashcards and review scheduling.
type VocabularyService struct {
	cards *repository.VocabularyRepository
	log   zerolog.Logger
	now   func() time.Time
}

// NewVocabularyService creates a new VocabularyService.
func NewVocabularyService(cards *repository.VocabularyRepository, log zerolog.Logger) *VocabularyService {
	return &VocabularyService{
		cards: cards,
		log:   log.With().Str("component", "vocabulary_service").Logger(),
		now:   time.Now,
	}
}

// AllCards retrieves every flashcard.
func (s *VocabularyService) AllCards(ctx context.Context) ([]model.VocabularyCard, error) {
	return s.cards.ListCards(ctx)
}

// DueCards retrieves the cards due for review now.
func (s *VocabularyService) DueCards(ctx context.Context) ([]model.VocabularyCard, error) {
	return s.cards.DueCards(ctx, s.now())
}

// Stats retrieves study progress counters.
func (s *VocabularyService) Stats(ctx context.Context) (*model.VocabularyStats, error) {
	return s.cards.Stats(ctx, s.now())
}

// CreateCard adds or refreshes a flashcard.
func (s *VocabularyService) CreateCard(ctx context.Context, req model.CreateCardRequest) (*model.VocabularyCard, error) {
	return s.cards.CreateCard(ctx, req.Word, req.Definition, req.Example)
}

// Review records one review. An "easy" result completes the card: the
// failure count resets and no next review is scheduled. An "again" result
// bumps the failure count and schedules the next review up the ladder.
func (s *VocabularyService) Review(ctx context.Context, cardID uuid.UUID, result string) (*model.VocabularyAttempt, error) {
	if _, err := s.cards.GetCard(ctx, cardID); err != nil {
		return nil, err
	}
	last, err := s.cards.LatestAttempt(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("load latest attempt: %w", err)
	}

	previous := 0
	if last != nil {
		previous = last.FailureCount
	}
	failures, interval, completed := NextReview(previous, result)

	attempt := &model.VocabularyAttempt{
		CardID:       cardID,
		Result:       result,
		FailureCount: failures,
		IntervalDays: interval,
	}
	if !completed {
		due := s.now().Add(time.Duration(interval) * 24 * time.Hour)
		attempt.DueAt = &due
	}
	if err := s.cards.CreateAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}
	s.log.Debug().Str("card_id", cardID.String()).Str("result", result).
		Int("failure_count", failures).Int("interval_days", interval).
		Bool("completed", completed).Msg("card reviewed")
	return attempt, nil
}

// NextReview applies the scheduling rule to one review. "easy" completes the
// card: the failure count resets and the interval is zero. "again" increments
// the failure count, which indexes the interval ladder, capped at its last
// rung.
func NextReview(previousFailures int, result string) (failureCount, intervalDays int, completed bool) {
	if result == model.ReviewEasy {
		return 0, 0, true
	}
	failureCount = previousFailures + 1
	idx := failureCount
	if idx >= len(reviewIntervals) {
		idx = len(reviewIntervals) - 1
	}
	return failureCount, reviewIntervals[idx], false
}
