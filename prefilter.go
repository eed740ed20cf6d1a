package fzmatch

import "math/bits"

// The prefilter is a necessary-condition check run before any DP: false
// positives cost a kernel invocation, false negatives would be a
// correctness bug. Two signals, both cheap and both provably necessary:
//
//   - length: a match must consume the whole needle and never skips forward
//     past the haystack, so n >= m is required for any typo budget;
//   - rune classes: equal runes always share a 64-bit mask class, so every
//     needle class absent from the haystack forces at least one distinct
//     unmatched needle rune, i.e. at least one typo.
func (m *Matcher) shouldConsider(needle *needleSeq, hayFolded []rune, maxTypos int) bool {
	mLen := needle.len()
	if mLen == 0 {
		return true
	}
	if len(hayFolded) < mLen {
		return false
	}
	missing := needle.mask &^ charMask(hayFolded)
	if missing == 0 {
		return true
	}
	if maxTypos < 0 {
		// No typo gate: a match only needs score > 0, which requires at
		// least one diagonal match, hence at least one shared rune class.
		return needle.mask&^missing != 0
	}
	return bits.OnesCount64(missing) <= maxTypos
}
