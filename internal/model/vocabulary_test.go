package model

import (
	"testing"
	"time"
)

func TestAttemptDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		result string
		dueAt  *time.Time
		want   bool
	}{
		{"never reviewed", "", nil, true},
		{"completed card excluded", ReviewEasy, nil, false},
		{"failed card past due", ReviewAgain, &past, true},
		{"failed card due exactly now", ReviewAgain, &now, true},
		{"failed card not yet due", ReviewAgain, &future, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttemptDue(tt.result, tt.dueAt, now); got != tt.want {
				t.Errorf("AttemptDue(%q, %v, now) = %v, want %v", tt.result, tt.dueAt, got, tt.want)
			}
		})
	}
}
