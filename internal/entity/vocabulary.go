package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"forum-sentiment/internal/textnorm"
)

// DefaultEntities is the tracked universe when the config names none:
// Nifty 50 constituents, a few popular mutual funds, indices and issue types.
var DefaultEntities = []string{
	"RELIANCE", "TCS", "INFY", "HDFCBANK", "ICICIBANK", "HINDUNILVR",
	"ITC", "SBIN", "BAJFINANCE", "BHARTIARTL", "KOTAKBANK", "LT",
	"ASIANPAINT", "AXISBANK", "MARUTI", "TITAN", "WIPRO", "ULTRACEMCO",
	"ADANIENT", "ADANIPORTS", "NESTLEIND", "POWERGRID", "NTPC",
	"TATAMOTORS", "TATASTEEL", "JSWSTEEL", "SUNPHARMA", "ONGC",
	"INDUSINDBK", "CIPLA", "DRREDDY", "DIVISLAB", "HCLTECH",
	"HDFCLIFE", "SBILIFE", "BAJAJFINSV", "TECHM", "GRASIM", "BPCL",
	"SHREECEM", "HEROMOTOCO", "EICHERMOT", "COALINDIA", "BRITANNIA",
	"UPL", "APOLLOHOSP", "HINDALCO", "BAJAJ-AUTO",
	"PARAG PARIKH FLEXI CAP", "AXIS BLUECHIP", "MIRAE ASSET LARGE CAP",
	"NIFTY", "BANKNIFTY", "SENSEX", "IPO", "FPO",
}

// Term is one vocabulary entry: the symbol as configured plus the token
// sequence it is matched by after normalization.
type Term struct {
	Symbol string
	Tokens []string
}

// Key is the uppercase normalized form used for matching
func (t Term) Key() string {
	return strings.Join(t.Tokens, " ")
}

// MultiWord reports whether the term spans more than one token
func (t Term) MultiWord() bool {
	return len(t.Tokens) > 1
}

// Vocabulary is a fixed, duplicate-free set of tracked symbols.
// Comparison is uppercase-exact on the normalized form.
type Vocabulary struct {
	terms []Term
	byKey map[string]int
}

var ErrEmptyVocabulary = errors.New("entity vocabulary is empty")

// NewVocabulary builds a vocabulary from configured symbols. Symbols are
// upper-cased; an entry whose normalized form is empty, or which collides
// with an earlier entry, is an error.
func NewVocabulary(symbols []string) (*Vocabulary, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyVocabulary
	}

	v := &Vocabulary{
		terms: make([]Term, 0, len(symbols)),
		byKey: make(map[string]int, len(symbols)),
	}

	for _, raw := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		tokens := strings.Fields(strings.ToUpper(textnorm.Normalize(symbol)))
		if len(tokens) == 0 {
			return nil, fmt.Errorf("entity %q has no matchable letters", raw)
		}

		term := Term{Symbol: symbol, Tokens: tokens}
		if idx, dup := v.byKey[term.Key()]; dup {
			return nil, fmt.Errorf("duplicate entity %q (same as %q)", raw, v.terms[idx].Symbol)
		}

		v.byKey[term.Key()] = len(v.terms)
		v.terms = append(v.terms, term)
	}

	return v, nil
}

// MustVocabulary is NewVocabulary for static lists known to be valid
func MustVocabulary(symbols []string) *Vocabulary {
	v, err := NewVocabulary(symbols)
	if err != nil {
		panic(err)
	}
	return v
}

// Terms returns the entries in configuration order
func (v *Vocabulary) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Symbols returns the configured symbols sorted ascending
func (v *Vocabulary) Symbols() []string {
	out := make([]string, 0, len(v.terms))
	for _, t := range v.terms {
		out = append(out, t.Symbol)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether symbol (any case) is tracked
func (v *Vocabulary) Contains(symbol string) bool {
	key := strings.Join(strings.Fields(strings.ToUpper(textnorm.Normalize(symbol))), " ")
	_, ok := v.byKey[key]
	return ok
}

func (v *Vocabulary) Len() int {
	return len(v.terms)
}
