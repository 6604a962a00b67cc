package scanner

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls int
}

func (f *fakeFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	body, ok := f.pages[url]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(body), nil
}

func TestExtractIDs(t *testing.T) {
	text := "noise Question ID abc123 more\nQuestion ID 789xyz\nQuestion ID abc123 again"
	got := ExtractIDs(text)
	if !reflect.DeepEqual(got, []string{"abc123", "789xyz"}) {
		t.Errorf("got %v", got)
	}
}

func TestExtractIDsCaseInsensitive(t *testing.T) {
	got := ExtractIDs("QUESTION ID a1b2")
	if !reflect.DeepEqual(got, []string{"a1b2"}) {
		t.Errorf("got %v", got)
	}
}

func TestExtractIDsNone(t *testing.T) {
	if got := ExtractIDs("nothing to see"); got != nil {
		t.Errorf("got %v", got)
	}
}

func TestScanDeduplicatesAcrossPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"p1": "Question ID abc123\nQuestion ID 789xyz",
		"p2": "Question ID abc123\nQuestion ID def456",
	}}
	s := New(f, zerolog.Nop(), 4)

	got, err := s.Scan(context.Background(), []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"789xyz", "abc123", "def456"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanSkipsFailedPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"good": "Question ID abc123",
	}}
	s := New(f, zerolog.Nop(), 2)

	got, err := s.Scan(context.Background(), []string{"good", "missing"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"abc123"}) {
		t.Errorf("got %v", got)
	}
}

func TestScanManyPagesWithBoundedWorkers(t *testing.T) {
	pages := map[string]string{}
	urls := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		url := fmt.Sprintf("page-%d", i)
		pages[url] = fmt.Sprintf("Question ID id%03d", i%40)
		urls = append(urls, url)
	}
	f := &fakeFetcher{pages: pages}
	s := New(f, zerolog.Nop(), 0) // default pool size

	got, err := s.Scan(context.Background(), urls)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 40 {
		t.Errorf("got %d ids, want 40", len(got))
	}
	if f.calls != 100 {
		t.Errorf("calls = %d, want 100", f.calls)
	}
}

func TestScanCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{pages: map[string]string{"p1": "Question ID abc123"}}
	if _, err := New(f, zerolog.Nop(), 1).Scan(ctx, []string{"p1", "p2"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
