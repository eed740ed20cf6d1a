package fzmatch

// Typo counting. A typo is a needle rune not consumed by a diagonal match
// step on the winning path; multiple paths can tie for the best score, and
// the reported count is the minimum across all of them. The traceback
// explores every predecessor consistent with the recorded cell score — not
// just the tie-break winner the forward pass happened to pick — so the
// (score, typos) pair always describes one real optimal path.

const unsetTypos = -1

// tbState is the per-call traceback scratch: a flat memo of
// (row, column) -> min typos to reach that cell via any optimal-consistent
// path, plus the probe counter charged against the visit budget.
type tbState struct {
	mx     *scoreMatrix
	needle *runeSeq
	hay    *runeSeq
	memo   []int32
	visits int
	budget int
}

func (m *Matcher) newTBState(needle, hay *runeSeq, mx *scoreMatrix, budget int) *tbState {
	memo := make([]int32, mx.rows*mx.cols)
	for i := range memo {
		memo[i] = unsetTypos
	}
	return &tbState{mx: mx, needle: needle, hay: hay, memo: memo, budget: budget}
}

// value returns min typos to reach (i, j), using the closed forms for row 0
// and dead (score-zero) cells: a path entering a zero cell starts there, so
// all i needle runes above it are unmatched.
func (m *Matcher) tbValue(st *tbState, i, j int) (int, bool) {
	if i == 0 {
		return 0, true
	}
	if st.mx.at(i, j) == 0 {
		return i, true
	}
	idx := i*st.mx.cols + j
	if v := st.memo[idx]; v != unsetTypos {
		return int(v), true
	}
	st.visits++
	if st.visits > st.budget {
		return 0, false
	}

	s := st.mx.at(i, j)
	best := i + 1 // any reachable cell beats this
	// Diagonal (match or mismatch).
	if dv := st.mx.at(i-1, j-1) + m.diagDelta(st.needle, st.hay, i, j); dv == s {
		sub, ok := m.tbValue(st, i-1, j-1)
		if !ok {
			return 0, false
		}
		cost := 1
		if st.needle.folded[i-1] == st.hay.folded[j-1] {
			cost = 0
		}
		if sub+cost < best {
			best = sub + cost
		}
	}
	// Up: gap in haystack, skipping a needle rune.
	if uv := st.mx.at(i-1, j) - m.gapPenalty(st.mx.isUpGap(i-1, j)); uv == s {
		sub, ok := m.tbValue(st, i-1, j)
		if !ok {
			return 0, false
		}
		if sub+1 < best {
			best = sub + 1
		}
	}
	// Left: gap in needle, skipping a haystack rune. No needle rune consumed.
	if lv := st.mx.at(i, j-1) - m.gapPenalty(st.mx.isLeftGap(i, j-1)); lv == s {
		sub, ok := m.tbValue(st, i, j-1)
		if !ok {
			return 0, false
		}
		if sub < best {
			best = sub
		}
	}

	st.memo[idx] = int32(best)
	return best, true
}

// minTypos runs the budgeted tie-aware traceback from the winning cell.
// ok == false means the visit budget was exhausted (tie-heavy region) and
// the caller must fall back to the bounded forward DP.
func (m *Matcher) minTypos(needle, hay *runeSeq, mx *scoreMatrix, bestCol, budget int) (int, bool) {
	st := m.newTBState(needle, hay, mx, budget)
	return m.tbValue(st, mx.rows-1, bestCol)
}

// maxMatchedDP recomputes, in one bounded forward pass over the already
// materialized matrix, the maximum number of diagonal match steps across all
// max-score paths: per cell, among the predecessors consistent with the
// recorded score, take the best matched count. min typos == m − max matched,
// so this is exactly the traceback's answer, at a fixed O(m·n) cost
// regardless of tie density.
func (m *Matcher) maxMatchedDP(needle, hay *runeSeq, mx *scoreMatrix, bestCol int) int {
	matched := make([]int32, mx.rows*mx.cols)
	for i := 1; i < mx.rows; i++ {
		base := i * mx.cols
		prevBase := base - mx.cols
		for j := 1; j < mx.cols; j++ {
			s := mx.cells[base+j]
			if s == 0 {
				continue
			}
			best := int32(-1)
			if dv := mx.cells[prevBase+j-1] + m.diagDelta(needle, hay, i, j); dv == s {
				cand := matched[prevBase+j-1]
				if needle.folded[i-1] == hay.folded[j-1] {
					cand++
				}
				if cand > best {
					best = cand
				}
			}
			if uv := mx.cells[prevBase+j] - m.gapPenalty(mx.upGap[prevBase+j]); uv == s {
				if cand := matched[prevBase+j]; cand > best {
					best = cand
				}
			}
			if lv := mx.cells[base+j-1] - m.gapPenalty(mx.leftGap[base+j-1]); lv == s {
				if cand := matched[base+j-1]; cand > best {
					best = cand
				}
			}
			if best > 0 {
				matched[base+j] = best
			}
		}
	}
	return int(matched[(mx.rows-1)*mx.cols+bestCol])
}

// typosFromMatrix is the adaptive two-phase strategy: budgeted scalar
// traceback first, bounded forward DP when the budget blows.
func (m *Matcher) typosFromMatrix(needle *needleSeq, hay *runeSeq, mx *scoreMatrix, bestCol, budget int) int {
	if typos, ok := m.minTypos(&needle.runeSeq, hay, mx, bestCol, budget); ok {
		return typos
	}
	debugf("traceback budget %d exceeded (m=%d n=%d), patching from forward DP", budget, mx.rows-1, mx.cols-1)
	return (mx.rows - 1) - m.maxMatchedDP(&needle.runeSeq, hay, mx, bestCol)
}

// recoverIndices reconstructs the matched haystack positions along one
// minimal-typo optimal path. Positions are ascending rune indices, one per
// matched needle rune.
func (m *Matcher) recoverIndices(needle, hay *runeSeq, mx *scoreMatrix, bestCol int) []int {
	st := m.newTBState(needle, hay, mx, mx.rows*mx.cols+1)
	total, _ := m.tbValue(st, mx.rows-1, bestCol)

	positions := make([]int, 0, mx.rows-1)
	i, j := mx.rows-1, bestCol
	cur := total
	for i > 0 {
		s := mx.at(i, j)
		if s == 0 {
			break
		}
		dv := mx.at(i-1, j-1) + m.diagDelta(needle, hay, i, j)
		isMatch := needle.folded[i-1] == hay.folded[j-1]
		if isMatch && dv == s {
			if sub, ok := m.tbValue(st, i-1, j-1); ok && sub == cur {
				positions = append(positions, j-1)
				i, j = i-1, j-1
				continue
			}
		}
		if lv := mx.at(i, j-1) - m.gapPenalty(mx.isLeftGap(i, j-1)); lv == s {
			if sub, ok := m.tbValue(st, i, j-1); ok && sub == cur {
				j--
				continue
			}
		}
		if !isMatch && dv == s {
			if sub, ok := m.tbValue(st, i-1, j-1); ok && sub+1 == cur {
				i, j = i-1, j-1
				cur = sub
				continue
			}
		}
		if uv := mx.at(i-1, j) - m.gapPenalty(mx.isUpGap(i-1, j)); uv == s {
			if sub, ok := m.tbValue(st, i-1, j); ok && sub+1 == cur {
				i--
				cur = sub
				continue
			}
		}
		// Unreachable if the matrix and memo agree; bail rather than loop.
		break
	}

	// Reverse into ascending order.
	for a, b := 0, len(positions)-1; a < b; a, b = a+1, b-1 {
		positions[a], positions[b] = positions[b], positions[a]
	}
	return positions
}
