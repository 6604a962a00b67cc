// scan-ids discovers question IDs by scanning a list of page URLs in
// parallel and writes the unique IDs to a file, one per line.
package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"strings"

	"github.com/lintahlo/potential-backend/internal/config"
	"github.com/lintahlo/potential-backend/internal/fetch"
	"github.com/lintahlo/potential-backend/internal/logger"
	"github.com/lintahlo/potential-backend/internal/scanner"
)

func main() {
	var (
		urlsPath string
		outPath  string
	)
	flag.StringVar(&urlsPath, "urls", "", "Path to a file of page URLs, one per line")
	flag.StringVar(&outPath, "out", "question_ids.txt", "Output file for discovered IDs")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if urlsPath == "" {
		log.Fatal().Msg("-urls is required")
	}
	urls, err := readLines(urlsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", urlsPath).Msg("Failed to read URL list")
	}
	if len(urls) == 0 {
		log.Fatal().Str("path", urlsPath).Msg("URL list is empty")
	}

	client := fetch.New(fetch.Options{PerRequestTimeout: cfg.FetchTimeout})
	s := scanner.New(client, log, cfg.ScanWorkers)

	ids, err := s.Scan(context.Background(), urls)
	if err != nil {
		log.Fatal().Err(err).Msg("Scan failed")
	}

	if err := os.WriteFile(outPath, []byte(strings.Join(ids, "\n")+"\n"), 0o644); err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("Failed to write ID list")
	}
	log.Info().Int("ids", len(ids)).Str("out", outPath).Msg("ID scan written")
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
