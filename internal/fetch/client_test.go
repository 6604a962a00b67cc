package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "question-fetcher/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := New(Options{UserAgent: "question-fetcher/1.0"})
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := New(Options{MaxAttempts: 3})
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "recovered" {
		t.Errorf("body = %q", body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d", got)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{MaxAttempts: 3})
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("want error for 404")
	} else if !strings.Contains(err.Error(), "404") {
		t.Errorf("err = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Options{MaxAttempts: 2})
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("want error")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestNextDelayPacing(t *testing.T) {
	c := New(Options{
		MinDelay:       10 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		LongPauseEvery: 3,
		LongPause:      time.Second,
	})

	if d := c.nextDelay(); d != 0 {
		t.Errorf("first request delay = %v, want 0", d)
	}
	for _, want := range []struct {
		long bool
	}{{false}, {false}, {true}, {false}, {false}, {true}} {
		d := c.nextDelay()
		if want.long {
			if d != time.Second {
				t.Errorf("delay = %v, want long pause", d)
			}
			continue
		}
		if d < 10*time.Millisecond || d >= 20*time.Millisecond {
			t.Errorf("delay = %v, want within [10ms, 20ms)", d)
		}
	}
}

func TestGetPoliteHonorsCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(Options{MinDelay: time.Minute, MaxDelay: 2 * time.Minute})
	ctx, cancel := context.WithCancel(context.Background())

	// First request is immediate.
	if _, err := c.GetPolite(ctx, srv.URL); err != nil {
		t.Fatalf("first GetPolite: %v", err)
	}

	cancel()
	if _, err := c.GetPolite(ctx, srv.URL); err == nil {
		t.Fatal("want context error while pacing")
	}
}

func TestQuestionURL(t *testing.T) {
	got := QuestionURL("https://example.com/question/module:english-group", "abc123")
	want := "https://example.com/question/module:english-group/abc123"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
