package fzmatch

// greedyMatch is the O(n) approximate matcher for haystacks too large for
// any kernel bucket or over the typo-mode cell ceiling. One left-to-right
// scan consuming the needle as a subsequence; when the next haystack rune
// misses the current needle rune but hits the one after it, a single needle
// rune is skipped against the typo budget (a cheap stand-in for the DP's
// substitution handling). Context bonuses are applied where locally
// computable; gaps are priced open+extend like the precise path.
//
// Deliberately approximate: the score is not guaranteed optimal and the
// typo count may exceed the exact path's minimum (it never undercounts a
// perfect subsequence as having typos). Inputs this size never reach the
// parity-tested kernels, and results remain gated by maxTypos.
func (m *Matcher) greedyMatch(needle *needleSeq, hay *runeSeq, maxTypos int) MatchResult {
	mLen := needle.len()
	n := hay.len()
	if mLen == 0 {
		score := 0
		if hay.raw == needle.raw {
			score += m.params.ExactMatchBonus
		}
		return MatchResult{Score: score, Typos: 0, Matched: true}
	}
	if mLen > n {
		return MatchResult{}
	}

	score := 0
	i := 0
	typos := 0
	lastMatch := -1
	for j := 0; j < n && i < mLen; j++ {
		c := hay.folded[j]
		switch {
		case c == needle.folded[i]:
			// direct match
		case i+1 < mLen && c == needle.folded[i+1] &&
			(maxTypos < 0 || typos < maxTypos):
			// skip one needle rune, charge a typo
			typos++
			i++
		default:
			continue
		}
		// Delimiter lookback is guarded: position 0 has no previous rune.
		score += m.params.MatchBonus + hay.bonus[j]
		if lastMatch >= 0 && j > lastMatch+1 {
			gap := j - lastMatch - 1
			score -= m.params.GapOpenPenalty + (gap-1)*m.params.GapExtendPenalty
		}
		lastMatch = j
		i++
	}

	typos += mLen - i
	if maxTypos >= 0 && typos > maxTypos {
		return MatchResult{}
	}
	if score <= 0 {
		return MatchResult{}
	}
	if hay.raw == needle.raw {
		score += m.params.ExactMatchBonus
	}
	return MatchResult{Score: score, Typos: typos, Matched: true}
}
