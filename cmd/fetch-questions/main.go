// fetch-questions downloads question-viewer pages for a list of question IDs
// and saves each page as <out>/<id>.html. IDs whose page already exists are
// skipped, so an interrupted run can simply be restarted.
package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lintahlo/potential-backend/internal/config"
	"github.com/lintahlo/potential-backend/internal/fetch"
	"github.com/lintahlo/potential-backend/internal/logger"
)

func main() {
	var (
		idsPath string
		outDir  string
	)
	flag.StringVar(&idsPath, "ids", "question_ids.txt", "Path to a file of question IDs, one per line")
	flag.StringVar(&outDir, "out", "pages", "Directory for downloaded pages")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ids, err := readLines(idsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", idsPath).Msg("Failed to read ID list")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", outDir).Msg("Failed to create output directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetch.New(fetch.Options{PerRequestTimeout: cfg.FetchTimeout})

	var fetched, skipped, failed int
	for _, id := range ids {
		path := filepath.Join(outDir, id+".html")
		if _, err := os.Stat(path); err == nil {
			skipped++
			continue
		}

		body, err := client.GetPolite(ctx, fetch.QuestionURL(cfg.QuestionBaseURL, id))
		if err != nil {
			if ctx.Err() != nil {
				log.Warn().Int("fetched", fetched).Msg("Interrupted, restart to resume")
				return
			}
			failed++
			log.Warn().Err(err).Str("question_id", id).Msg("Page fetch failed")
			continue
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to write page")
		}
		fetched++
		if fetched%50 == 0 {
			log.Info().Int("fetched", fetched).Int("total", len(ids)).Msg("Progress")
		}
	}

	log.Info().Int("fetched", fetched).Int("skipped", skipped).Int("failed", failed).
		Msg("Fetch complete")
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
