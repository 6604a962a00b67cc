// import-questions loads extracted question records into PostgreSQL. Input is
// either a JSON records file produced by parse-ocr, or a directory of
// downloaded viewer pages which are run through the HTML extractor first.
// Import is idempotent: question IDs already in the database are skipped.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lintahlo/potential-backend/internal/config"
	"github.com/lintahlo/potential-backend/internal/database"
	"github.com/lintahlo/potential-backend/internal/extractor/htmlq"
	"github.com/lintahlo/potential-backend/internal/importer"
	"github.com/lintahlo/potential-backend/internal/logger"
	"github.com/lintahlo/potential-backend/internal/record"
	"github.com/lintahlo/potential-backend/internal/repository"
)

func main() {
	var (
		jsonPath string
		pagesDir string
		offset   int
	)
	flag.StringVar(&jsonPath, "json", "", "Path to a JSON records file (parse-ocr output)")
	flag.StringVar(&pagesDir, "pages", "", "Directory of downloaded viewer pages (*.html)")
	flag.IntVar(&offset, "offset", 0, "Skip this many records before importing (resume)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if (jsonPath == "") == (pagesDir == "") {
		log.Fatal().Msg("Exactly one of -json or -pages is required")
	}

	var records []*record.QuestionRecord
	var err error
	if jsonPath != "" {
		records, err = loadJSONRecords(jsonPath)
	} else {
		records, err = extractPages(pagesDir, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load records")
	}
	if len(records) == 0 {
		log.Fatal().Msg("No records to import")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	store := repository.NewQuestionRepository(pool)
	im := importer.New(store, log, importer.Options{
		BatchSize: cfg.ImportBatchSize,
		Offset:    offset,
	})

	summary, err := im.Run(ctx, records)
	if err != nil {
		log.Fatal().Err(err).Msg("Import aborted")
	}
	for _, e := range summary.Errors {
		log.Warn().Str("question_id", e.QuestionID).Str("reason", e.Reason).Msg("Record rejected")
	}
	log.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("errored", summary.Errored).
		Msg("Import finished")
}

func loadJSONRecords(path string) ([]*record.QuestionRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []*record.QuestionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// extractPages runs the HTML extractor over every page in dir. Policy
// rejections (question not found, contains a figure) are logged and skipped;
// malformed pages are logged and skipped too, so one bad download never
// blocks the batch.
func extractPages(dir string, log zerolog.Logger) ([]*record.QuestionRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var records []*record.QuestionRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		rec, err := htmlq.Extract(string(raw))
		switch {
		case errors.Is(err, htmlq.ErrNotFound), errors.Is(err, htmlq.ErrHasImage):
			log.Debug().Str("page", entry.Name()).Err(err).Msg("Page rejected by policy")
		case err != nil:
			log.Warn().Str("page", entry.Name()).Err(err).Msg("Page extraction failed")
		default:
			records = append(records, rec)
		}
	}
	log.Info().Str("dir", dir).Int("records", len(records)).Msg("Pages extracted")
	return records, nil
}
