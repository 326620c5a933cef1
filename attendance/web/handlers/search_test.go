package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name     string
		limit    string
		offset   string
		expLimit int
		expOff   int
	}{
		{"Defaults when absent", "", "", maxSearchLimit, 0},
		{"Valid values", "50", "100", 50, 100},
		{"Negative limit falls back", "-1", "0", maxSearchLimit, 0},
		{"Negative offset falls back", "20", "-5", 20, 0},
		{"Zero limit falls back", "0", "", maxSearchLimit, 0},
		{"Over the cap falls back", "100000", "", maxSearchLimit, 0},
		{"Garbage falls back", "abc", "xyz", maxSearchLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := clampPage(tt.limit, tt.offset)
			assert.Equal(t, tt.expLimit, limit)
			assert.Equal(t, tt.expOff, offset)
		})
	}
}
