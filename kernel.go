package fzmatch

// Lane kernels process up to laneCount haystacks per call against one
// needle, stepping all lanes through the same DP in lockstep. Every lane is
// padded (logically) to the group's bucket width; padded columns never
// match and never feed back into real columns, and the per-lane score is
// read only from real columns of the last needle row.
//
// The cell recurrence is cellUpdate — the same function the reference
// scalar scorer uses — so kernel/reference score parity holds by
// construction for every parameter configuration, including which
// predecessor wins under ties.

// laneGroup collects haystacks routed to one width bucket.
type laneGroup struct {
	width int
	n     int
	hays  [laneCount]*runeSeq
}

func (g *laneGroup) add(hay *runeSeq) bool {
	g.hays[g.n] = hay
	g.n++
	return g.n == laneCount
}

func (g *laneGroup) reset() {
	for i := range g.hays {
		g.hays[i] = nil
	}
	g.n = 0
}

// laneRow is one DP row across all lanes of a group.
type laneRow struct {
	score   [][laneCount]int
	upGap   [][laneCount]bool
	leftGap [][laneCount]bool
}

func newLaneRow(width int) *laneRow {
	return &laneRow{
		score:   make([][laneCount]int, width+1),
		upGap:   make([][laneCount]bool, width+1),
		leftGap: make([][laneCount]bool, width+1),
	}
}

// laneScores is the streaming score-only kernel: row-by-row over the
// needle, O(width) working state, no matrices. Returns the raw alignment
// score per lane (exact-match bonus included); zero means no match.
func (m *Matcher) laneScores(needle *needleSeq, g *laneGroup) [laneCount]int {
	var out [laneCount]int
	mLen := needle.len()
	if mLen == 0 {
		for lane := 0; lane < g.n; lane++ {
			if g.hays[lane].raw == needle.raw {
				out[lane] = m.params.ExactMatchBonus
			}
		}
		return out
	}

	prev := newLaneRow(g.width)
	cur := newLaneRow(g.width)

	for i := 1; i <= mLen; i++ {
		nc := needle.folded[i-1]
		for j := 1; j <= g.width; j++ {
			for lane := 0; lane < g.n; lane++ {
				hay := g.hays[lane]
				if j > hay.len() {
					continue
				}
				var delta int
				if nc == hay.folded[j-1] {
					delta = m.params.MatchBonus + hay.bonus[j-1]
				} else {
					delta = -m.params.MismatchPenalty
				}
				diag := prev.score[j-1][lane] + delta
				up := prev.score[j][lane] - m.gapPenalty(prev.upGap[j][lane])
				left := cur.score[j-1][lane] - m.gapPenalty(cur.leftGap[j-1][lane])
				score, win := cellUpdate(diag, up, left)
				cur.score[j][lane] = score
				cur.upGap[j][lane] = win == moveUp
				cur.leftGap[j][lane] = win == moveLeft
			}
		}
		prev, cur = cur, prev
		for j := range cur.score {
			cur.score[j] = [laneCount]int{}
			cur.upGap[j] = [laneCount]bool{}
			cur.leftGap[j] = [laneCount]bool{}
		}
	}

	for lane := 0; lane < g.n; lane++ {
		hay := g.hays[lane]
		if mLen > hay.len() {
			continue
		}
		best := 0
		for j := 0; j <= hay.len(); j++ {
			if v := prev.score[j][lane]; v > best {
				best = v
			}
		}
		if best <= 0 {
			continue
		}
		if hay.raw == needle.raw {
			best += m.params.ExactMatchBonus
		}
		out[lane] = best
	}
	return out
}
