package fzmatch

// move identifies the predecessor a DP cell chose. The fixed tie-break
// priority is diag > up > left; score depends on the winner because gap
// extension and context bonuses differ by move.
type move uint8

const (
	moveNone move = iota
	moveDiag      // consume needle + haystack rune (match or mismatch)
	moveUp        // gap in haystack: skip a needle rune
	moveLeft      // gap in needle: skip a haystack rune
)

// cellUpdate picks the winning predecessor for one cell given the three
// candidate totals, applying the local-alignment floor and the fixed
// tie-break priority. Every scoring path in the engine funnels through this
// function; scalar/kernel parity is structural, not coincidental.
func cellUpdate(diag, up, left int) (int, move) {
	best, win := diag, moveDiag
	if up > best {
		best, win = up, moveUp
	}
	if left > best {
		best, win = left, moveLeft
	}
	if best <= 0 {
		return 0, moveNone
	}
	return best, win
}

func (m *Matcher) gapPenalty(extending bool) int {
	if extending {
		return m.params.GapExtendPenalty
	}
	return m.params.GapOpenPenalty
}

// diagDelta is the score contribution of a diagonal move into needle row i,
// haystack column j (both 1-based matrix coordinates).
func (m *Matcher) diagDelta(needle, hay *runeSeq, i, j int) int {
	if needle.folded[i-1] == hay.folded[j-1] {
		return m.params.MatchBonus + hay.bonus[j-1]
	}
	return -m.params.MismatchPenalty
}

// scoreMatrix is the fully materialized DP grid: cell scores plus, per cell,
// whether its winner was an up or left gap (needed to price gap extension
// and to replay winner decisions during traceback). Row 0 and column 0 stay
// zero. Allocated fresh per call; the backing arrays are never reused across
// calls.
type scoreMatrix struct {
	rows, cols int // rows = m+1, cols = n+1
	cells      []int
	upGap      []bool
	leftGap    []bool
}

func newScoreMatrix(m, n int) *scoreMatrix {
	size := (m + 1) * (n + 1)
	return &scoreMatrix{
		rows:    m + 1,
		cols:    n + 1,
		cells:   make([]int, size),
		upGap:   make([]bool, size),
		leftGap: make([]bool, size),
	}
}

func (mx *scoreMatrix) at(i, j int) int         { return mx.cells[i*mx.cols+j] }
func (mx *scoreMatrix) isUpGap(i, j int) bool   { return mx.upGap[i*mx.cols+j] }
func (mx *scoreMatrix) isLeftGap(i, j int) bool { return mx.leftGap[i*mx.cols+j] }

// fillScoreMatrix runs the reference row/column DP. This is the canonical
// scoring definition; every kernel must reproduce it exactly, including
// which predecessor wins under ties.
func (m *Matcher) fillScoreMatrix(needle, hay *runeSeq) *scoreMatrix {
	mRows := needle.len()
	n := hay.len()
	mx := newScoreMatrix(mRows, n)
	for i := 1; i <= mRows; i++ {
		base := i * mx.cols
		prevBase := base - mx.cols
		for j := 1; j <= n; j++ {
			diag := mx.cells[prevBase+j-1] + m.diagDelta(needle, hay, i, j)
			up := mx.cells[prevBase+j] - m.gapPenalty(mx.upGap[prevBase+j])
			left := mx.cells[base+j-1] - m.gapPenalty(mx.leftGap[base+j-1])
			score, win := cellUpdate(diag, up, left)
			mx.cells[base+j] = score
			mx.upGap[base+j] = win == moveUp
			mx.leftGap[base+j] = win == moveLeft
		}
	}
	return mx
}

// bestLastRow returns the reported score under the full-needle contract:
// the maximum over the last needle row, not any local matrix peak. The
// column of the first maximum is returned for traceback.
func (mx *scoreMatrix) bestLastRow() (int, int) {
	last := mx.rows - 1
	best, bestCol := 0, -1
	base := last * mx.cols
	for j := 0; j < mx.cols; j++ {
		if v := mx.cells[base+j]; v > best {
			best, bestCol = v, j
		}
	}
	return best, bestCol
}

// referenceScore computes (score, typos, matched) via the materialized
// matrix and tie-aware traceback. It is the ground truth the kernels are
// tested against, and the path used when exact matched positions are needed.
func (m *Matcher) referenceScore(needle *needleSeq, hay *runeSeq, maxTypos int) (MatchResult, *scoreMatrix) {
	mLen := needle.len()
	n := hay.len()
	if mLen == 0 {
		score := 0
		if hay.raw == needle.raw {
			score += m.params.ExactMatchBonus
		}
		return MatchResult{Score: score, Typos: 0, Matched: true}, nil
	}
	if mLen > n {
		return MatchResult{}, nil
	}

	mx := m.fillScoreMatrix(&needle.runeSeq, hay)
	score, bestCol := mx.bestLastRow()
	if score <= 0 {
		return MatchResult{}, mx
	}

	typos := m.typosFromMatrix(needle, hay, mx, bestCol, mLen*n+1)
	if hay.raw == needle.raw {
		score += m.params.ExactMatchBonus
	}
	if maxTypos >= 0 && typos > maxTypos {
		return MatchResult{}, mx
	}
	return MatchResult{Score: score, Typos: typos, Matched: true}, mx
}
