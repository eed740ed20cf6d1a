package fzmatch

import (
	"slices"
	"strings"
)

// IncrementalMatcher reuses lightweight per-prefix state across successive
// queries over one fixed haystack list. It is a pure performance
// optimization: Update output is always identical to running
// Matcher.MatchList fresh with the same needle.
//
// Pruning needs a quantity that survives needle extension, and the typo
// count the matcher reports is not it: that count is the minimum over
// max-score paths, and appending a rune can move the score optimum to an
// alignment that matches more of the needle, so a haystack gate-rejected
// for a prefix can match the extended needle. What does survive extension
// is the typo floor m - maxMatchedInOrder(needle, haystack): no alignment
// of any extension can leave fewer needle runes unmatched, and every path
// (exact gate, greedy gate, prefilter) rejects once the floor exceeds the
// budget. A narrowing update therefore recomputes exactly the candidates
// whose stored floor is within budget.
//
// Only the per-haystack floors persist between calls; no matrices or
// traceback memos survive a call.
type IncrementalMatcher struct {
	m         *Matcher
	haystacks []string
	maxTypos  int

	lastNeedle string
	started    bool
	typoFloors []int
	results    []MatchResult
}

// NewIncrementalMatcher creates an incremental matcher over a fixed
// haystack list.
func (m *Matcher) NewIncrementalMatcher(haystacks []string, maxTypos int) *IncrementalMatcher {
	return &IncrementalMatcher{
		m:          m,
		haystacks:  haystacks,
		maxTypos:   maxTypos,
		typoFloors: make([]int, len(haystacks)),
		results:    make([]MatchResult, len(haystacks)),
	}
}

// Update sets the current needle and returns the order-aligned results,
// exactly as MatchList would produce them.
func (im *IncrementalMatcher) Update(needle string) []MatchResult {
	if im.started && needle == im.lastNeedle {
		return slices.Clone(im.results)
	}

	narrowing := im.started &&
		im.maxTypos >= 0 &&
		im.lastNeedle != "" &&
		strings.HasPrefix(needle, im.lastNeedle)

	nd := im.m.prepareNeedle(needle)
	if !narrowing {
		im.m.matchRange(nd, im.haystacks, im.maxTypos, im.results, 0, len(im.haystacks))
		for i := range im.haystacks {
			im.typoFloors[i] = 0
			if !im.results[i].Matched {
				im.typoFloors[i] = im.m.typoFloor(nd, im.haystacks[i])
			}
		}
		im.lastNeedle = needle
		im.started = true
		return slices.Clone(im.results)
	}

	for i := range im.haystacks {
		if im.typoFloors[i] > im.maxTypos {
			// The floor only grows as the needle extends; the stale value
			// stays a valid bound for the rest of this narrowing session.
			im.results[i] = MatchResult{Index: i}
			continue
		}
		r := im.m.matchPrepared(nd, im.haystacks[i], im.maxTypos)
		r.Index = i
		im.results[i] = r
		if !r.Matched {
			im.typoFloors[i] = im.m.typoFloor(nd, im.haystacks[i])
		}
	}
	im.lastNeedle = needle
	return slices.Clone(im.results)
}

// typoFloor is a lower bound on the typo count of the needle, and of every
// extension of it, against the haystack, independent of which alignment the
// scoring DP prefers. Haystacks routed to the greedy fallback return 0 (no
// pruning): the floor costs a full DP, which their routing exists to avoid.
func (m *Matcher) typoFloor(nd *needleSeq, haystack string) int {
	hay := m.prepareRunes(haystack)
	if useGreedy(nd.len(), hay.len(), true) {
		return 0
	}
	return nd.len() - maxMatchedInOrder(nd.folded, hay.folded)
}

// maxMatchedInOrder is the most needle runes any in-order alignment can
// match, regardless of score: the longest common subsequence count of the
// folded rune sequences.
func maxMatchedInOrder(needle, hay []rune) int {
	prev := make([]int, len(hay)+1)
	cur := make([]int, len(hay)+1)
	for i := 1; i <= len(needle); i++ {
		for j := 1; j <= len(hay); j++ {
			switch {
			case needle[i-1] == hay[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(hay)]
}
