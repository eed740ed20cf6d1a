package fzmatch

// Kernel dispatch works over a small closed set of fixed widths so each
// kernel instantiation runs with a compile-time-known column count. A
// haystack is routed to the smallest bucket that fits it; anything wider
// than the largest bucket — or, in typo mode, anything whose matrix would
// exceed the cell ceiling — goes to the greedy fallback instead.

const laneCount = 8

var bucketWidths = [...]int{8, 16, 32, 64, 128, 256, 512}

// maxKernelWidth bounds score-only dispatch; typo mode is additionally
// bounded by typoCellCeiling because it materializes m×W matrices per lane,
// which is strictly more expensive per cell than the streaming score pass.
const maxKernelWidth = 512
const typoCellCeiling = 16 * 1024

// bucketFor returns the smallest supported width >= n.
func bucketFor(n int) (int, bool) {
	for _, w := range bucketWidths {
		if n <= w {
			return w, true
		}
	}
	return 0, false
}

// useGreedy reports whether (m, n) is too large for the precise path.
func useGreedy(m, n int, typoMode bool) bool {
	w, ok := bucketFor(n)
	if !ok {
		return true
	}
	if typoMode && m*w > typoCellCeiling {
		return true
	}
	return false
}

// typoVisitBudget is the per-lane cap on scalar traceback memo probes before
// bailing to the bounded forward DP. End-tie counting is not a usable
// heuristic here: internal plateau density, not end-position ties, drives
// the combinatorial blowup, so the budget measures the actual work done.
func typoVisitBudget(m, width int) int {
	b := m * width / 4
	if b < 128 {
		b = 128
	}
	if b > 256 {
		b = 256
	}
	return b
}

// typoBudgetOverride lets tests force the bailout path; zero means disabled.
var typoBudgetOverride int

func effectiveTypoBudget(m, width int) int {
	if typoBudgetOverride > 0 {
		return typoBudgetOverride
	}
	return typoVisitBudget(m, width)
}
