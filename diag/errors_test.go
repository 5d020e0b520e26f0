package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Kinds(t *testing.T) {
	testCases := []struct {
		name    string
		err     *Error
		wantStr string
	}{
		{"parse", NewParseError("unexpected token", &Location{File: "a.g4", Line: 2, Column: 1}), "parse error: unexpected token at a.g4:2:1"},
		{"invalid grammar", NewInvalidGrammarError("grammar has no rules"), "invalid grammar: grammar has no rules"},
		{"codegen", NewCodeGenError("unsupported target"), "code generation error: unsupported target"},
		{"internal", NewInternalError("unreachable switch arm"), "internal error: unreachable switch arm"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStr, tc.err.Error())
		})
	}
}

func Test_NewIoError_Unwraps(t *testing.T) {
	wrapped := errors.New("file not found")
	err := NewIoError(wrapped)
	assert.ErrorIs(t, err, wrapped)
	assert.Contains(t, err.Error(), "i/o failure")
	assert.Contains(t, err.Error(), "file not found")
}
