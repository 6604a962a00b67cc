// Package importer loads validated question records into the store in
// batches, skipping questions that were imported before. A batch is tried as
// one transaction first; when anything in it fails the batch is rolled back
// and its records are retried one at a time so a single bad record cannot
// sink its nine neighbors.
package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lintahlo/potential-backend/internal/record"
	"github.com/lintahlo/potential-backend/internal/textutil"
)

// DefaultBatchSize is the number of records committed per transaction.
const DefaultBatchSize = 10

// Store opens import transactions. The pgx-backed question repository
// satisfies it; tests use an in-memory fake.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one import transaction. Exists must see rows inserted earlier in the
// same transaction so duplicate IDs inside one input file are skipped, not
// double-inserted.
type Tx interface {
	Exists(ctx context.Context, questionID string) (bool, error)
	Insert(ctx context.Context, rec *record.QuestionRecord) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Options tune a run. Zero values mean DefaultBatchSize and no resume offset.
type Options struct {
	BatchSize int
	Offset    int
}

// RecordError names one rejected record and why.
type RecordError struct {
	QuestionID string
	Reason     string
}

// Summary is the outcome of a run. Imported + Skipped + Errored equals the
// number of records processed after the resume offset.
type Summary struct {
	Imported int
	Skipped  int
	Errored  int
	Errors   []RecordError
}

type Importer struct {
	store     Store
	log       zerolog.Logger
	batchSize int
	offset    int
}

func New(store Store, log zerolog.Logger, opts Options) *Importer {
	size := opts.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	return &Importer{store: store, log: log, batchSize: size, offset: offset}
}

// Run imports records and reports the per-record outcome. Validation failures
// and insert failures are recorded in the summary, never returned as the run
// error; only an unusable store aborts the run.
func (im *Importer) Run(ctx context.Context, records []*record.QuestionRecord) (*Summary, error) {
	summary := &Summary{}

	if im.offset >= len(records) {
		im.log.Warn().Int("offset", im.offset).Int("total", len(records)).
			Msg("resume offset beyond input, nothing to import")
		return summary, nil
	}
	records = records[im.offset:]
	for _, rec := range records {
		truncateFields(rec)
	}

	for start := 0; start < len(records); start += im.batchSize {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		end := start + im.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		imported, skipped, err := im.importBatch(ctx, batch)
		if err == nil {
			summary.Imported += imported
			summary.Skipped += skipped
			im.log.Debug().Int("imported", imported).Int("skipped", skipped).
				Msg("batch committed")
			continue
		}

		im.log.Warn().Err(err).Int("batch_size", len(batch)).
			Msg("batch failed, retrying records individually")
		for _, rec := range batch {
			imported, skipped, err := im.importBatch(ctx, []*record.QuestionRecord{rec})
			if err != nil {
				summary.Errored++
				summary.Errors = append(summary.Errors, RecordError{QuestionID: rec.QuestionID, Reason: err.Error()})
				im.log.Error().Err(err).Str("question_id", rec.QuestionID).
					Msg("record import failed")
				continue
			}
			summary.Imported += imported
			summary.Skipped += skipped
		}
	}

	im.log.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("errored", summary.Errored).
		Msg("import complete")
	return summary, nil
}

// importBatch runs one transaction over the given records, validating each
// one inside it. Any failure, a contract violation included, rolls the whole
// transaction back and reports zero progress; the retry pass then charges the
// failure to the one record that caused it.
func (im *Importer) importBatch(ctx context.Context, batch []*record.QuestionRecord) (imported, skipped int, err error) {
	tx, err := im.store.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin import transaction: %w", err)
	}

	for _, rec := range batch {
		// Returned bare so the per-record retry surfaces the contract
		// reason verbatim in the summary.
		if err := record.Validate(rec); err != nil {
			_ = tx.Rollback(ctx)
			return 0, 0, err
		}
		exists, err := tx.Exists(ctx, rec.QuestionID)
		if err != nil {
			_ = tx.Rollback(ctx)
			return 0, 0, fmt.Errorf("check question %s: %w", rec.QuestionID, err)
		}
		if exists {
			skipped++
			continue
		}
		if err := tx.Insert(ctx, rec); err != nil {
			_ = tx.Rollback(ctx)
			return 0, 0, fmt.Errorf("insert question %s: %w", rec.QuestionID, err)
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return 0, 0, fmt.Errorf("commit import transaction: %w", err)
	}
	return imported, skipped, nil
}

// truncateFields caps every free-text field before validation so oversized
// OCR output is stored truncated instead of rejected.
func truncateFields(rec *record.QuestionRecord) {
	rec.Passage = textutil.Truncate(rec.Passage)
	rec.QuestionText = textutil.Truncate(rec.QuestionText)
	for i, opt := range rec.AnswerOptions {
		rec.AnswerOptions[i] = textutil.Truncate(opt)
	}
	for letter, rationale := range rec.Rationales {
		rec.Rationales[letter] = textutil.Truncate(rationale)
	}
}
