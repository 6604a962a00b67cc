package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{120, 50, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestPageFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=1", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/api/v1/questions?"+tt.query, nil)
		if got := pageFromQuery(c); got != tt.want {
			t.Errorf("page query %q = %d, want %d", tt.query, got, tt.want)
		}
	}
}
