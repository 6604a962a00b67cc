// parse-ocr splits an OCR text dump into question blocks, extracts a record
// from each, and writes the records as a JSON array for import-questions.
// Extraction is best-effort; records that fail the contract are still written
// and rejected later by the importer, so nothing is silently lost here.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/lintahlo/potential-backend/internal/config"
	"github.com/lintahlo/potential-backend/internal/extractor/ocr"
	"github.com/lintahlo/potential-backend/internal/logger"
	"github.com/lintahlo/potential-backend/internal/record"
)

func main() {
	var (
		inPath  string
		outPath string
	)
	flag.StringVar(&inPath, "in", "", "Path to the OCR text dump")
	flag.StringVar(&outPath, "out", "questions.json", "Output JSON file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if inPath == "" {
		log.Fatal().Msg("-in is required")
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", inPath).Msg("Failed to read OCR dump")
	}

	blocks := ocr.SegmentText(string(raw))
	if len(blocks) == 0 {
		log.Fatal().Str("path", inPath).Msg("No question blocks found")
	}

	records := make([]*record.QuestionRecord, 0, len(blocks))
	complete := 0
	for _, b := range blocks {
		rec := ocr.ParseBlock(b)
		if err := record.Validate(rec); err == nil {
			complete++
		} else {
			log.Debug().Str("question_id", b.ID).Str("reason", err.Error()).
				Msg("Record incomplete after extraction")
		}
		records = append(records, rec)
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode records")
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("Failed to write records")
	}

	log.Info().Int("blocks", len(blocks)).Int("complete", complete).
		Str("out", outPath).Msg("OCR parse written")
}
