// seed-vocabulary loads flashcards from a JSON word list into PostgreSQL.
// Words are cleaned before insert: surrounding whitespace, stray punctuation,
// and list numbering stripped; entries without a word or definition skipped.
// Existing words are updated in place, so reseeding is safe.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"regexp"
	"strings"

	"github.com/lintahlo/potential-backend/internal/config"
	"github.com/lintahlo/potential-backend/internal/database"
	"github.com/lintahlo/potential-backend/internal/logger"
	"github.com/lintahlo/potential-backend/internal/repository"
)

type seedEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// wordCruft strips leading list numbering and any non-letter noise around the
// word itself (OCR'd word lists carry both).
var wordCruft = regexp.MustCompile(`^[\d.\s)]+|[^a-zA-Z'\- ]+`)

func cleanWord(raw string) string {
	return strings.TrimSpace(wordCruft.ReplaceAllString(raw, ""))
}

func main() {
	var inPath string
	flag.StringVar(&inPath, "in", "vocabulary.json", "Path to the JSON word list")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	raw, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", inPath).Msg("Failed to read word list")
	}
	var entries []seedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatal().Err(err).Str("path", inPath).Msg("Failed to parse word list")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	repo := repository.NewVocabularyRepository(pool)

	var seeded, skipped int
	for _, entry := range entries {
		word := cleanWord(entry.Word)
		definition := strings.TrimSpace(entry.Definition)
		if word == "" || definition == "" {
			skipped++
			log.Debug().Str("word", entry.Word).Msg("Entry skipped by cleanup")
			continue
		}
		if _, err := repo.CreateCard(ctx, word, definition, strings.TrimSpace(entry.Example)); err != nil {
			log.Fatal().Err(err).Str("word", word).Msg("Failed to seed card")
		}
		seeded++
	}

	log.Info().Int("seeded", seeded).Int("skipped", skipped).Msg("Vocabulary seed finished")
}
