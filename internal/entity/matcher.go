package entity

import (
	"sort"
	"strings"
)

// FindEntities returns the sorted set of vocabulary symbols mentioned in
// normalized text.
//
// A single-token entity matches as a whole whitespace-delimited token, or
// wherever "$ENTITY" occurs in the upper-cased text. A multi-word entity
// matches as a contiguous run of tokens (so "AXIS BLUECHIP" does not match
// inside "TAXIS BLUECHIPS"), or via the same cashtag rule.
func FindEntities(normalizedText string, vocab *Vocabulary) []string {
	if normalizedText == "" || vocab == nil {
		return []string{}
	}

	upper := strings.ToUpper(normalizedText)
	tokens := strings.Fields(upper)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	found := make([]string, 0)
	for _, term := range vocab.terms {
		if matches(term, upper, tokens, tokenSet) {
			found = append(found, term.Symbol)
		}
	}

	sort.Strings(found)
	return found
}

func matches(term Term, upper string, tokens []string, tokenSet map[string]struct{}) bool {
	if term.MultiWord() {
		if containsRun(tokens, term.Tokens) {
			return true
		}
	} else if _, ok := tokenSet[term.Tokens[0]]; ok {
		return true
	}
	return strings.Contains(upper, "$"+term.Key())
}

// containsRun reports whether needle occurs as a contiguous subsequence of tokens
func containsRun(tokens, needle []string) bool {
	n := len(needle)
	for i := 0; i+n <= len(tokens); i++ {
		match := true
		for j := 0; j < n; j++ {
			if tokens[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
