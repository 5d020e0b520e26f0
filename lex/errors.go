package lex

import "errors"

var (
	errTrailingBackslash = errors.New("trailing backslash with nothing to escape")
	errBadUnicodeEscape  = errors.New("malformed \\u escape: expected four hex digits forming a valid code point")
	errNotAnEscape       = errors.New("internal: DecodeOneEscape called at a non-backslash position")
)
