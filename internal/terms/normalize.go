// Package terms tokenizes and normalizes text into comparable term
// frequency sets. Normalization is deterministic and idempotent: text
// that is already lower-cased, stop-word free, and stemmed maps to the
// same set again.
package terms

import (
	"strings"
	"unicode"

	"github.com/jonathan/job-application-assistant/internal/types"
)

// Common English stop words. Kept as a fixed list so scoring is
// reproducible across runs and environments.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true, "which": true,
	"why": true, "how": true, "all": true, "any": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true, "such": true,
	"no": true, "nor": true, "not": true, "only": true, "own": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "can": true, "did": true,
	"do": true, "does": true, "done": true, "our": true, "we": true, "you": true,
	"your": true, "or": true, "their": true, "them": true,
}

// Normalize tokenizes text on word boundaries, lower-cases tokens,
// strips punctuation, drops stop words, applies light suffix stemming,
// and counts frequencies.
func Normalize(text string) types.TermSet {
	// "%" is meaningful in resumes ("grew revenue by 20%") and must
	// collide with the spelled-out form.
	text = strings.ReplaceAll(text, "%", " percent ")

	set := make(types.TermSet)
	for _, token := range tokenize(text) {
		token = strings.ToLower(token)
		token = strings.Trim(token, ".,!?()[]{}:;\"'`/\\|-")
		if token == "" || stopWords[token] {
			continue
		}
		set[stem(token)]++
	}
	return set
}

// tokenize splits text on any rune that is neither a letter, a digit,
// nor an intra-word connector. Connectors (., -, +, #) are kept so
// terms like "node.js", "ci-cd", "c++" and "c#" survive as one token;
// stray leading/trailing punctuation is trimmed afterwards by Normalize.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		switch r {
		case '.', '-', '+', '#':
			return false
		}
		return true
	})
}

// stem strips common English suffixes until the word stops changing.
// Running to a fixpoint keeps Normalize idempotent: a stem fed back in
// comes out unchanged. It is intentionally shallower than a full Porter
// stemmer; the goal is only that "migrating", "migrated" and "migrates"
// collide, not linguistically correct stems.
func stem(word string) string {
	for {
		next := stemPass(word)
		if next == word {
			return word
		}
		word = next
	}
}

// stemPass applies one round of suffix stripping.
func stemPass(word string) string {
	if len(word) < 4 {
		return word
	}

	switch {
	case strings.HasSuffix(word, "sses"):
		word = word[:len(word)-2]
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		word = word[:len(word)-3] + "i"
	case strings.HasSuffix(word, "ss"):
		// keep: "process", "assess"
	case strings.HasSuffix(word, "s"):
		word = word[:len(word)-1]
	}

	switch {
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		word = word[:len(word)-3]
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		word = word[:len(word)-2]
	}

	// Final-e deletion makes inflected and base forms meet:
	// "migrated" -> "migrat" and "migrates" -> "migrate" -> "migrat".
	if strings.HasSuffix(word, "e") && len(word) > 4 {
		word = word[:len(word)-1]
	}

	return word
}
