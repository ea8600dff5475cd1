// Package normalize defines the naming policy that makes heterogeneous model
// elements comparable. Every class name, relationship endpoint, attribute
// owner/name and terminology term goes through Key before any set membership
// test, on both the candidate and the reference side, so the policy is the
// single source of truth for equivalence.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// PolicyVersion identifies the current folding rules. Changing Key changes
// every reported metric, so cached extractions are keyed on this value and
// must be invalidated when it bumps.
const PolicyVersion uint16 = 1

// Func is the policy signature injected into the comparators. Implementations
// must be pure and total: same input, same key, never an error.
type Func func(string) string

// Key converts a raw identifier into its canonical comparison form:
//   - surrounding whitespace and quoting is trimmed
//   - every rune that is not a letter or digit is dropped (spaces, underscores,
//     hyphens, visibility marks, punctuation all act as separators)
//   - the remainder is Unicode case-folded
//
// "Vector DB", "vector_db" and "VectorDB" all map to "vectordb". No synonym
// resolution happens here: "Memory" and "Storage" stay distinct keys.
func Key(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	// cases.Caser is stateful, so it is built per call rather than shared.
	return cases.Fold().String(b.String())
}
