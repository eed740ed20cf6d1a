package fzmatch

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// runeSeq is the per-string working form: NFC-normalized code points in both
// original case (for context bonuses and exact-match checks) and folded case
// (for character comparison), plus the precomputed per-position context
// bonus.
//
// A runeSeq is immutable once built. Needle sequences live for a whole query
// session; haystack sequences are scoped to one match call.
type runeSeq struct {
	raw    string // NFC-normalized text
	orig   []rune
	folded []rune
	bonus  []int
}

func (m *Matcher) prepareRunes(s string) *runeSeq {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	n := utf8.RuneCountInString(s)
	seq := &runeSeq{
		raw:    s,
		orig:   make([]rune, n),
		folded: make([]rune, n),
		bonus:  make([]int, n),
	}
	i := 0
	for _, r := range s {
		seq.orig[i] = r
		seq.folded[i] = foldRune(r)
		i++
	}
	for j := range seq.orig {
		seq.bonus[j] = m.contextBonus(seq.orig, j)
	}
	return seq
}

func (s *runeSeq) len() int { return len(s.folded) }

func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	return unicode.ToLower(r)
}

// charMask folds each rune into one of 64 classes. Used by the prefilter:
// equal runes always share a bit, so a missing bit proves a missing rune.
func charMask(folded []rune) uint64 {
	var mask uint64
	for _, r := range folded {
		mask |= 1 << (uint(r) % 64)
	}
	return mask
}

// needleSeq carries the query-session precomputation shared read-only across
// all haystacks and workers of a query.
type needleSeq struct {
	runeSeq
	mask uint64
}

func (m *Matcher) prepareNeedle(needle string) *needleSeq {
	seq := m.prepareRunes(needle)
	return &needleSeq{
		runeSeq: *seq,
		mask:    charMask(seq.folded),
	}
}
