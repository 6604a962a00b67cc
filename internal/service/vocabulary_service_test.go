package service

import (
	"testing"

	"github.com/lintahlo/potential-backend/internal/model"
)

func TestNextReviewFailureLadder(t *testing.T) {
	tests := []struct {
		previous     int
		result       string
		wantFailures int
		wantInterval int
	}{
		{0, model.ReviewAgain, 1, 3},
		{1, model.ReviewAgain, 2, 7},
		{2, model.ReviewAgain, 3, 14},
		{3, model.ReviewAgain, 4, 30},
		{4, model.ReviewAgain, 5, 30}, // stays on the last rung
		{9, model.ReviewAgain, 10, 30},
	}
	for _, tt := range tests {
		failures, interval, completed := NextReview(tt.previous, tt.result)
		if completed {
			t.Errorf("NextReview(%d, %q) completed, want scheduled", tt.previous, tt.result)
		}
		if failures != tt.wantFailures || interval != tt.wantInterval {
			t.Errorf("NextReview(%d, %q) = (%d, %d), want (%d, %d)",
				tt.previous, tt.result, failures, interval, tt.wantFailures, tt.wantInterval)
		}
	}
}

func TestNextReviewEasyCompletes(t *testing.T) {
	for _, previous := range []int{0, 1, 4, 9} {
		failures, interval, completed := NextReview(previous, model.ReviewEasy)
		if !completed {
			t.Errorf("NextReview(%d, easy) not completed", previous)
		}
		if failures != 0 || interval != 0 {
			t.Errorf("NextReview(%d, easy) = (%d, %d), want (0, 0)", previous, failures, interval)
		}
	}
}

func TestNextReviewEasyResetsLadder(t *testing.T) {
	// A card failed repeatedly, then marked easy, then failed again starts
	// over at the bottom of the ladder.
	failures, _, _ := NextReview(3, model.ReviewEasy)
	failures, interval, completed := NextReview(failures, model.ReviewAgain)
	if completed {
		t.Fatal("again after easy should reschedule")
	}
	if failures != 1 || interval != 3 {
		t.Errorf("got (%d, %d), want (1, 3)", failures, interval)
	}
}
