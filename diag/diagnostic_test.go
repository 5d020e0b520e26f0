package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Diagnostic_String(t *testing.T) {
	testCases := []struct {
		name   string
		diag   Diagnostic
		expect string
	}{
		{
			name:   "message only",
			diag:   Error("", "something broke", nil),
			expect: "error: something broke",
		},
		{
			name:   "with code",
			diag:   Error("E001", "something broke", nil),
			expect: "[E001] error: something broke",
		},
		{
			name:   "with location",
			diag:   Warning("", "unreachable rule orphan", &Location{File: "t.g4", Line: 3, Column: 1}),
			expect: "warning: unreachable rule orphan at t.g4:3:1",
		},
		{
			name:   "with code and location",
			diag:   Warning("W010", "unreachable rule orphan", &Location{File: "t.g4", Line: 3, Column: 1}),
			expect: "[W010] warning: unreachable rule orphan at t.g4:3:1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.diag.String())
		})
	}
}

func Test_HasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Diagnostic{Warning("", "w", nil)}))
	assert.True(t, HasErrors([]Diagnostic{Warning("", "w", nil), Error("", "e", nil)}))
}

func Test_CountBySeverity(t *testing.T) {
	diags := []Diagnostic{
		Error("", "e1", nil),
		Error("", "e2", nil),
		Warning("", "w1", nil),
	}
	counts := CountBySeverity(diags)
	assert.Equal(t, 2, counts[SeverityError])
	assert.Equal(t, 1, counts[SeverityWarning])
	assert.Equal(t, 0, counts[SeverityInfo])
}
