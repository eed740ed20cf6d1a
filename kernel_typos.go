package fzmatch

// Score+typo kernel. Typos are metadata of the scoring DP, never a
// separately derived pass: the kernel materializes, per lane, the exact
// matrix the reference scorer would produce (same cellUpdate, same winner
// ties), then counts typos with a traceback provably consistent with those
// recorded winners. A prior streaming-only typo design that skipped the
// matrix diverged from the scoring DP under ties; this layout is the fix.
//
// Per lane, typo counting is adaptive:
//
//  1. budgeted scalar traceback (cheap on typical inputs);
//  2. if the lane's visit budget blows — tie-heavy plateaus, repeated
//     characters, delimiter runs — abandon the traceback for that lane and
//     patch it from a forward matched-count DP whose cost is O(m·width)
//     regardless of tie density. Lanes that stayed within budget keep
//     their traceback results.

// laneScoresTypos fills all lane matrices in lockstep and resolves
// (score, typos, matched) per lane under the given typo budget.
func (m *Matcher) laneScoresTypos(needle *needleSeq, g *laneGroup, maxTypos int) [laneCount]MatchResult {
	var out [laneCount]MatchResult
	mLen := needle.len()
	if mLen == 0 {
		for lane := 0; lane < g.n; lane++ {
			score := 0
			if g.hays[lane].raw == needle.raw {
				score += m.params.ExactMatchBonus
			}
			out[lane] = MatchResult{Score: score, Typos: 0, Matched: true}
		}
		return out
	}

	var mats [laneCount]*scoreMatrix
	for lane := 0; lane < g.n; lane++ {
		if g.hays[lane].len() >= mLen {
			mats[lane] = newScoreMatrix(mLen, g.hays[lane].len())
		}
	}

	// Forward DP, all lanes in lockstep.
	for i := 1; i <= mLen; i++ {
		nc := needle.folded[i-1]
		for j := 1; j <= g.width; j++ {
			for lane := 0; lane < g.n; lane++ {
				mx := mats[lane]
				if mx == nil || j >= mx.cols {
					continue
				}
				hay := g.hays[lane]
				var delta int
				if nc == hay.folded[j-1] {
					delta = m.params.MatchBonus + hay.bonus[j-1]
				} else {
					delta = -m.params.MismatchPenalty
				}
				base := i * mx.cols
				prevBase := base - mx.cols
				diag := mx.cells[prevBase+j-1] + delta
				up := mx.cells[prevBase+j] - m.gapPenalty(mx.upGap[prevBase+j])
				left := mx.cells[base+j-1] - m.gapPenalty(mx.leftGap[base+j-1])
				score, win := cellUpdate(diag, up, left)
				mx.cells[base+j] = score
				mx.upGap[base+j] = win == moveUp
				mx.leftGap[base+j] = win == moveLeft
			}
		}
	}

	// Phase 1: budgeted scalar traceback per lane.
	budget := effectiveTypoBudget(mLen, g.width)
	var bestCols [laneCount]int
	var needDP [laneCount]bool
	for lane := 0; lane < g.n; lane++ {
		mx := mats[lane]
		if mx == nil {
			continue
		}
		score, bestCol := mx.bestLastRow()
		bestCols[lane] = bestCol
		if score <= 0 {
			continue
		}
		hay := g.hays[lane]
		typos, ok := m.minTypos(&needle.runeSeq, hay, mx, bestCol, budget)
		if !ok {
			needDP[lane] = true
			continue
		}
		out[lane] = m.finishLane(needle, hay, score, typos, maxTypos)
	}

	// Phase 2: bounded forward DP pass; only bailed lanes are patched.
	for lane := 0; lane < g.n; lane++ {
		if !needDP[lane] {
			continue
		}
		debugf("lane %d exceeded visit budget %d, running matched-count DP", lane, budget)
		hay := g.hays[lane]
		mx := mats[lane]
		score, _ := mx.bestLastRow()
		typos := mLen - m.maxMatchedDP(&needle.runeSeq, hay, mx, bestCols[lane])
		out[lane] = m.finishLane(needle, hay, score, typos, maxTypos)
	}

	return out
}

// finishLane applies the exact-match bonus and the typo gate, normalizing
// rejected lanes to the zero result so serial, parallel, and incremental
// outputs compare equal byte-for-byte.
func (m *Matcher) finishLane(needle *needleSeq, hay *runeSeq, score, typos, maxTypos int) MatchResult {
	if maxTypos >= 0 && typos > maxTypos {
		return MatchResult{}
	}
	if hay.raw == needle.raw {
		score += m.params.ExactMatchBonus
	}
	return MatchResult{Score: score, Typos: typos, Matched: true}
}
