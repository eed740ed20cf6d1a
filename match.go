package fzmatch

import (
	"slices"
	"sync"
)

// UnlimitedTypos disables the typo gate: typos are still computed and
// reported, but never cause rejection.
const UnlimitedTypos = -1

// MatchResult is the per-haystack outcome. Unmatched results are zero
// except for Index, so outputs from the serial, parallel, and incremental
// paths compare equal field-for-field.
type MatchResult struct {
	Index   int
	Score   int
	Typos   int
	Matched bool
}

// Score is the score-only fast path: a single-haystack streaming kernel
// run with no typo tracking, for cheap first-phase ranking scans.
// ok reports whether the haystack matches at all.
func (m *Matcher) Score(needle, haystack string) (int, bool) {
	nd := m.prepareNeedle(needle)
	hay := m.prepareRunes(haystack)
	if nd.len() == 0 {
		score := 0
		if hay.raw == nd.raw {
			score += m.params.ExactMatchBonus
		}
		return score, true
	}
	if !m.shouldConsider(nd, hay.folded, UnlimitedTypos) {
		return 0, false
	}
	if useGreedy(nd.len(), hay.len(), false) {
		r := m.greedyMatch(nd, hay, UnlimitedTypos)
		return r.Score, r.Matched
	}
	w, _ := bucketFor(hay.len())
	var g laneGroup
	g.width = w
	g.add(hay)
	scores := m.laneScores(nd, &g)
	if scores[0] <= 0 {
		return 0, false
	}
	return scores[0], true
}

// MatchOne matches a single haystack with typo tracking.
func (m *Matcher) MatchOne(needle, haystack string, maxTypos int) (MatchResult, bool) {
	nd := m.prepareNeedle(needle)
	r := m.matchPrepared(nd, haystack, maxTypos)
	return r, r.Matched
}

// matchPrepared runs prefilter -> dispatch -> kernel-or-fallback for one
// haystack.
func (m *Matcher) matchPrepared(nd *needleSeq, haystack string, maxTypos int) MatchResult {
	hay := m.prepareRunes(haystack)
	if nd.len() == 0 {
		score := 0
		if hay.raw == nd.raw {
			score += m.params.ExactMatchBonus
		}
		return MatchResult{Score: score, Typos: 0, Matched: true}
	}
	if !m.shouldConsider(nd, hay.folded, maxTypos) {
		return MatchResult{}
	}
	if useGreedy(nd.len(), hay.len(), true) {
		return m.greedyMatch(nd, hay, maxTypos)
	}
	w, _ := bucketFor(hay.len())
	var g laneGroup
	g.width = w
	g.add(hay)
	res := m.laneScoresTypos(nd, &g, maxTypos)
	return res[0]
}

// MatchList ranks every haystack against the needle: per haystack,
// prefilter -> bucket dispatch -> kernel (lanes batched per bucket) or
// greedy fallback. The result slice is preallocated to len(haystacks) and
// order-aligned with the input.
func (m *Matcher) MatchList(needle string, haystacks []string, maxTypos int) []MatchResult {
	nd := m.prepareNeedle(needle)
	results := make([]MatchResult, len(haystacks))
	m.matchRange(nd, haystacks, maxTypos, results, 0, len(haystacks))
	return results
}

// MatchListParallel partitions the haystack list across workers and returns
// results identical to MatchList per haystack, order-aligned. Workers share
// only the read-only needle and parameters; each owns its result range and
// its own lane-batching scratch, so completion order is irrelevant.
func (m *Matcher) MatchListParallel(needle string, haystacks []string, maxTypos, workers int) []MatchResult {
	nd := m.prepareNeedle(needle)
	results := make([]MatchResult, len(haystacks))
	if workers < 1 {
		workers = 1
	}
	if workers > len(haystacks) {
		workers = len(haystacks)
	}
	if workers <= 1 {
		m.matchRange(nd, haystacks, maxTypos, results, 0, len(haystacks))
		return results
	}

	chunk := (len(haystacks) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(haystacks) {
			end = len(haystacks)
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			m.matchRange(nd, haystacks, maxTypos, results, start, end)
		}(start, end)
	}
	wg.Wait()
	return results
}

// matchRange processes haystacks[start:end], writing results by original
// index.
func (m *Matcher) matchRange(nd *needleSeq, haystacks []string, maxTypos int, results []MatchResult, start, end int) {
	groups := make(map[int]*laneGroup)
	groupIdx := make(map[int]*[laneCount]int)

	flush := func(w int) {
		g := groups[w]
		if g == nil || g.n == 0 {
			return
		}
		idxs := groupIdx[w]
		res := m.laneScoresTypos(nd, g, maxTypos)
		for lane := 0; lane < g.n; lane++ {
			i := idxs[lane]
			r := res[lane]
			r.Index = i
			results[i] = r
		}
		g.reset()
	}

	for i := start; i < end; i++ {
		results[i] = MatchResult{Index: i}
		hay := m.prepareRunes(haystacks[i])

		if nd.len() == 0 {
			score := 0
			if hay.raw == nd.raw {
				score += m.params.ExactMatchBonus
			}
			results[i] = MatchResult{Index: i, Score: score, Typos: 0, Matched: true}
			continue
		}
		if !m.shouldConsider(nd, hay.folded, maxTypos) {
			continue
		}
		if useGreedy(nd.len(), hay.len(), true) {
			r := m.greedyMatch(nd, hay, maxTypos)
			if r.Matched {
				r.Index = i
				results[i] = r
			}
			continue
		}

		w, _ := bucketFor(hay.len())
		g := groups[w]
		if g == nil {
			g = &laneGroup{width: w}
			groups[w] = g
			groupIdx[w] = new([laneCount]int)
		}
		groupIdx[w][g.n] = i
		if g.add(hay) {
			flush(w)
		}
	}

	for _, w := range bucketWidths {
		flush(w)
	}
}

// MatchIndices recovers the exact matched rune positions for highlighting:
// ascending indices into the NFC-normalized haystack, one per matched
// needle rune (len == needle length − typos). This runs the reference
// matrix path and is intended for small, already-ranked subsets, not bulk
// scanning.
func (m *Matcher) MatchIndices(needle, haystack string) (int, []int, bool) {
	nd := m.prepareNeedle(needle)
	hay := m.prepareRunes(haystack)
	r, mx := m.referenceScore(nd, hay, UnlimitedTypos)
	if !r.Matched {
		return 0, nil, false
	}
	if nd.len() == 0 {
		return r.Score, []int{}, true
	}
	_, bestCol := mx.bestLastRow()
	positions := m.recoverIndices(&nd.runeSeq, hay, mx, bestCol)
	return r.Score, positions, true
}

// SortResults orders results for display: score descending, original index
// ascending for determinism.
func SortResults(results []MatchResult) {
	slices.SortFunc(results, func(a, b MatchResult) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return a.Index - b.Index
	})
}
