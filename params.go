package fzmatch

import (
	"fmt"
	"unicode"
)

// ScoringParams tunes the alignment scoring. All penalties are magnitudes
// (subtracted during scoring) and must be non-negative; MatchBonus must be
// positive so that a genuine character match always beats the empty
// alignment. Invalid values are rejected by NewMatcher, never mid-scan.
type ScoringParams struct {
	// MatchBonus is added when a needle character matches a haystack
	// character (case-folded comparison).
	MatchBonus int

	// MismatchPenalty is subtracted when the alignment substitutes a
	// haystack character for a needle character.
	MismatchPenalty int

	// GapOpenPenalty is subtracted when a gap starts; GapExtendPenalty is
	// subtracted for every further character the same gap spans.
	GapOpenPenalty   int
	GapExtendPenalty int

	// Delimiters is the set of characters treated as word delimiters.
	// DelimiterBonus is added when a match immediately follows one of them.
	Delimiters     string
	DelimiterBonus int

	// CapitalizationBonus is added when the matched haystack character is an
	// uppercase word start (position 0, or preceded by a non-uppercase rune).
	CapitalizationBonus int

	// ExactMatchBonus is added once, after the alignment, iff the haystack
	// equals the needle exactly.
	ExactMatchBonus int
}

// DefaultParams returns the scoring configuration used by the interactive
// pickers this engine was tuned for.
func DefaultParams() ScoringParams {
	return ScoringParams{
		MatchBonus:          16,
		MismatchPenalty:     4,
		GapOpenPenalty:      3,
		GapExtendPenalty:    1,
		Delimiters:          " /._-:",
		DelimiterBonus:      8,
		CapitalizationBonus: 4,
		ExactMatchBonus:     16,
	}
}

func (p ScoringParams) validate() error {
	if p.MatchBonus <= 0 {
		return fmt.Errorf("fzmatch: MatchBonus must be positive, got %d", p.MatchBonus)
	}
	if p.MismatchPenalty < 0 {
		return fmt.Errorf("fzmatch: MismatchPenalty must be non-negative, got %d", p.MismatchPenalty)
	}
	if p.GapOpenPenalty < 0 {
		return fmt.Errorf("fzmatch: GapOpenPenalty must be non-negative, got %d", p.GapOpenPenalty)
	}
	if p.GapExtendPenalty < 0 {
		return fmt.Errorf("fzmatch: GapExtendPenalty must be non-negative, got %d", p.GapExtendPenalty)
	}
	if p.DelimiterBonus < 0 {
		return fmt.Errorf("fzmatch: DelimiterBonus must be non-negative, got %d", p.DelimiterBonus)
	}
	if p.DelimiterBonus > 0 && p.Delimiters == "" {
		return fmt.Errorf("fzmatch: DelimiterBonus set but Delimiters is empty")
	}
	if p.CapitalizationBonus < 0 {
		return fmt.Errorf("fzmatch: CapitalizationBonus must be non-negative, got %d", p.CapitalizationBonus)
	}
	if p.ExactMatchBonus < 0 {
		return fmt.Errorf("fzmatch: ExactMatchBonus must be non-negative, got %d", p.ExactMatchBonus)
	}
	return nil
}

// delimSet answers membership queries without rescanning the Delimiters
// string. ASCII delimiters hit a flat table; anything else falls back to a
// map lookup.
type delimSet struct {
	ascii [128]bool
	wide  map[rune]bool
}

func newDelimSet(delims string) delimSet {
	var ds delimSet
	for _, r := range delims {
		if r < 128 {
			ds.ascii[r] = true
			continue
		}
		if ds.wide == nil {
			ds.wide = make(map[rune]bool)
		}
		ds.wide[r] = true
	}
	return ds
}

func (ds *delimSet) contains(r rune) bool {
	if r >= 0 && r < 128 {
		return ds.ascii[r]
	}
	return ds.wide[r]
}

// Matcher holds validated scoring parameters and needle-independent derived
// state. A Matcher is immutable after construction and safe for concurrent
// use by any number of goroutines.
type Matcher struct {
	params ScoringParams
	delims delimSet
}

// NewMatcher validates params eagerly and returns a ready Matcher.
func NewMatcher(params ScoringParams) (*Matcher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Matcher{
		params: params,
		delims: newDelimSet(params.Delimiters),
	}, nil
}

// contextBonus is the per-position bonus added to a genuine character match
// ending at rune index idx of the original-case haystack. It depends only on
// the haystack, so callers precompute it once per haystack.
func (m *Matcher) contextBonus(orig []rune, idx int) int {
	bonus := 0
	if idx > 0 && m.delims.contains(orig[idx-1]) {
		bonus += m.params.DelimiterBonus
	}
	if unicode.IsUpper(orig[idx]) {
		if idx == 0 || !unicode.IsUpper(orig[idx-1]) {
			bonus += m.params.CapitalizationBonus
		}
	}
	return bonus
}
