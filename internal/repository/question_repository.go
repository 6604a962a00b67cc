package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lintahlo/potential-backend/internal/importer"
	"github.com/lintahlo/potential-backend/internal/model"
	"github.com/lintahlo/potential-backend/internal/record"
)

// ErrQuestionNotFound is returned when no question matches.
var ErrQuestionNotFound = errors.New("question not found")

const questionColumns = `id, question_id, domain, skill, difficulty, passage, question_text,
	choice_a, choice_b, choice_c, choice_d, correct_answer,
	rationale_a, rationale_b, rationale_c, rationale_d, has_image, created_at`

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// List retrieves questions matching the filter, newest first. Empty or "Any"
// filter fields match everything.
func (r *QuestionRepository) List(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	query, args := listQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Random retrieves one random question matching the filter.
func (r *QuestionRepository) Random(ctx context.Context, filter model.QuestionFilter) (*model.Question, error) {
	where, args := buildFilter(filter)
	query := fmt.Sprintf(`SELECT %s FROM questions %s ORDER BY RANDOM() LIMIT 1`, questionColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrQuestionNotFound
	}
	q, err := scanQuestion(rows)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetByQuestionID retrieves a question by its natural key.
func (r *QuestionRepository) GetByQuestionID(ctx context.Context, questionID string) (*model.Question, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM questions WHERE question_id = $1`, questionColumns), questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrQuestionNotFound
	}
	q, err := scanQuestion(rows)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// DistinctValues retrieves the distinct domain/skill/difficulty values present.
func (r *QuestionRepository) DistinctValues(ctx context.Context) (*model.FilterValues, error) {
	values := &model.FilterValues{}
	for _, col := range []struct {
		name string
		dst  *[]string
	}{
		{"domain", &values.Domains},
		{"skill", &values.Skills},
		{"difficulty", &values.Difficulties},
	} {
		rows, err := r.pool.Query(ctx,
			fmt.Sprintf(`SELECT DISTINCT %s FROM questions WHERE %s <> '' ORDER BY %s`, col.name, col.name, col.name))
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, err
			}
			*col.dst = append(*col.dst, v)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Create inserts one validated record outside any import batch.
func (r *QuestionRepository) Create(ctx context.Context, rec *record.QuestionRecord) error {
	_, err := r.pool.Exec(ctx, insertQuestionSQL, insertQuestionArgs(rec)...)
	return err
}

// Count returns the number of questions matching the filter. Limit and
// Offset are ignored; the count covers the whole filtered set.
func (r *QuestionRepository) Count(ctx context.Context, filter model.QuestionFilter) (int, error) {
	where, args := buildFilter(filter)
	var n int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions "+where, args...).Scan(&n)
	return n, err
}

// Begin opens an import transaction, satisfying importer.Store.
func (r *QuestionRepository) Begin(ctx context.Context) (importer.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &importTx{tx: tx}, nil
}

// importTx adapts a pgx transaction to importer.Tx. Exists runs inside the
// transaction, so duplicates inserted earlier in the same batch are visible.
type importTx struct {
	tx pgx.Tx
}

func (t *importTx) Exists(ctx context.Context, questionID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM questions WHERE question_id = $1)`, questionID).Scan(&exists)
	return exists, err
}

func (t *importTx) Insert(ctx context.Context, rec *record.QuestionRecord) error {
	_, err := t.tx.Exec(ctx, insertQuestionSQL, insertQuestionArgs(rec)...)
	return err
}

func (t *importTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *importTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

const insertQuestionSQL = `INSERT INTO questions
	(question_id, domain, skill, difficulty, passage, question_text,
	 choice_a, choice_b, choice_c, choice_d, correct_answer,
	 rationale_a, rationale_b, rationale_c, rationale_d, has_image)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

func insertQuestionArgs(rec *record.QuestionRecord) []any {
	return []any{
		rec.QuestionID, rec.Domain, rec.Skill, rec.Difficulty, rec.Passage, rec.QuestionText,
		rec.AnswerOptions[0], rec.AnswerOptions[1], rec.AnswerOptions[2], rec.AnswerOptions[3],
		rec.CorrectChoice,
		rec.Rationales["A"], rec.Rationales["B"], rec.Rationales["C"], rec.Rationales["D"],
		rec.HasImage,
	}
}

// listQuery renders the listing SELECT with filter, ordering, and paging.
func listQuery(filter model.QuestionFilter) (string, []any) {
	where, args := buildFilter(filter)
	query := fmt.Sprintf(`SELECT %s FROM questions %s ORDER BY created_at DESC`, questionColumns, where)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

// buildFilter renders the WHERE clause for a question filter.
func buildFilter(filter model.QuestionFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(col, val string) {
		if val == "" || val == model.FilterAny {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("domain", filter.Domain)
	add("skill", filter.Skill)
	add("difficulty", filter.Difficulty)

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanQuestion(rows pgx.Rows) (model.Question, error) {
	var q model.Question
	err := rows.Scan(
		&q.ID, &q.QuestionID, &q.Domain, &q.Skill, &q.Difficulty, &q.Passage, &q.QuestionText,
		&q.ChoiceA, &q.ChoiceB, &q.ChoiceC, &q.ChoiceD, &q.CorrectAnswer,
		&q.RationaleA, &q.RationaleB, &q.RationaleC, &q.RationaleD, &q.HasImage, &q.CreatedAt,
	)
	return q, err
}
