package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lintahlo/potential-backend/internal/config"
	"github.com/lintahlo/potential-backend/internal/model"
	"github.com/lintahlo/potential-backend/internal/record"
	"github.com/lintahlo/potential-backend/internal/repository"
)

// filtersCacheKey stores the serialized distinct filter values.
const filtersCacheKey = "questions:filters"

// ErrInvalidQuestion wraps the record contract failure for manual creation.
var ErrInvalidQuestion = errors.New("invalid question")

// QuestionService handles question reads and admin writes.
type QuestionService struct {
	cfg       *config.Config
	questions *repository.QuestionRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(cfg *config.Config, questions *repository.QuestionRepository, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{cfg: cfg, questions: questions, rdb: rdb, log: log.With().Str("component", "question_service").Logger()}
}

// List retrieves questions matching the filter.
func (s *QuestionService) List(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	return s.questions.List(ctx, filter)
}

// Count retrieves the total number of questions matching the filter.
func (s *QuestionService) Count(ctx context.Context, filter model.QuestionFilter) (int, error) {
	return s.questions.Count(ctx, filter)
}

// Random retrieves one random question matching the filter.
func (s *QuestionService) Random(ctx context.Context, filter model.QuestionFilter) (*model.Question, error) {
	return s.questions.Random(ctx, filter)
}

// Filters retrieves the distinct filter values, served from Redis when fresh.
// Cache failures fall through to the database.
func (s *QuestionService) Filters(ctx context.Context) (*model.FilterValues, error) {
	if cached, err := s.rdb.Get(ctx, filtersCacheKey).Result(); err == nil {
		values := &model.FilterValues{}
		if err := json.Unmarshal([]byte(cached), values); err == nil {
			return values, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("filters cache read failed")
	}

	values, err := s.questions.DistinctValues(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(values); err == nil {
		if err := s.rdb.Set(ctx, filtersCacheKey, payload, s.cfg.FiltersCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("filters cache write failed")
		}
	}
	return values, nil
}

// Create inserts a manually authored question after running it through the
// same contract the bulk importer enforces. The filters cache is invalidated
// because a new domain/skill/difficulty value may have appeared.
func (s *QuestionService) Create(ctx context.Context, req model.CreateQuestionRequest) (*model.Question, error) {
	rec := req.ToRecord()
	if err := record.Validate(rec); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuestion, err.Error())
	}
	if err := s.questions.Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.rdb.Del(ctx, filtersCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("filters cache invalidation failed")
	}
	return s.questions.GetByQuestionID(ctx, rec.QuestionID)
}
