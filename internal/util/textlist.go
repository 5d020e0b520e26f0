package util

import "strings"

// MakeTextList joins items into a human-readable, Oxford-comma list, for
// diagnostic messages that name more than one rule (e.g. "left recursion
// detected in A, B, and C").
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	withOxfordComma := make([]string, len(items))
	copy(withOxfordComma, items)
	withOxfordComma[len(withOxfordComma)-1] = "and " + withOxfordComma[len(withOxfordComma)-1]
	return strings.Join(withOxfordComma, ", ")
}
