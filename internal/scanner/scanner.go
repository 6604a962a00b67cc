// Package scanner discovers question IDs by scanning a set of pages in
// parallel. Pages may repeat IDs, so results are deduplicated behind a mutex
// and returned sorted for stable output.
package scanner

import (
	"context"
	"regexp"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultWorkers is the fetch concurrency when none is configured.
const DefaultWorkers = 20

var questionIDPattern = regexp.MustCompile(`(?i)Question ID\s+(\w+)`)

// Fetcher pulls one page body. Satisfied by fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Scanner struct {
	fetcher Fetcher
	log     zerolog.Logger
	workers int
}

func New(fetcher Fetcher, log zerolog.Logger, workers int) *Scanner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scanner{fetcher: fetcher, log: log, workers: workers}
}

// ExtractIDs returns the unique question IDs in text, in order of first
// appearance.
func ExtractIDs(text string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, m := range questionIDPattern.FindAllStringSubmatch(text, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		ids = append(ids, m[1])
	}
	return ids
}

// Scan fetches every URL with a bounded worker pool and returns the sorted
// set of question IDs found across all pages. A page that fails to fetch is
// logged and skipped; only context cancellation aborts the scan.
func (s *Scanner) Scan(ctx context.Context, urls []string) ([]string, error) {
	jobs := make(chan string)
	var wg sync.WaitGroup

	var mu sync.Mutex
	found := map[string]bool{}

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobs {
				body, err := s.fetcher.Get(ctx, url)
				if err != nil {
					s.log.Warn().Err(err).Str("url", url).Msg("page scan failed")
					continue
				}
				ids := ExtractIDs(string(body))
				mu.Lock()
				for _, id := range ids {
					found[id] = true
				}
				mu.Unlock()
				s.log.Debug().Str("url", url).Int("ids", len(ids)).Msg("page scanned")
			}
		}()
	}

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			close(jobs)
			wg.Wait()
			return nil, err
		}
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- url:
		}
	}
	close(jobs)
	wg.Wait()

	ids := make([]string, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	s.log.Info().Int("pages", len(urls)).Int("ids", len(ids)).Msg("scan complete")
	return ids, nil
}
