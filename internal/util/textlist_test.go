package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name   string
		items  []string
		expect string
	}{
		{"empty", nil, ""},
		{"one", []string{"A"}, "A"},
		{"two", []string{"A", "B"}, "A and B"},
		{"three", []string{"A", "B", "C"}, "A, B, and C"},
		{"four", []string{"A", "B", "C", "D"}, "A, B, C, and D"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, MakeTextList(tc.items))
		})
	}
}
