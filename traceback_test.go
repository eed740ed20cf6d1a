package fzmatch

import (
	"math/rand"
	"testing"
)

func TestTypoCounts(t *testing.T) {
	m := newTestMatcher(t)

	tests := []struct {
		needle    string
		haystack  string
		wantTypos int
	}{
		{"abc", "abc", 0},
		{"abc", "axbycz", 0},
		{"fb", "foo_bar", 0},
		{"abc", "abx", 1},
		{"abc", "ayx", 2},
		{"ab", "ba", 1}, // only one rune can align in order
	}

	for _, tt := range tests {
		r, _ := m.referenceScore(m.prepareNeedle(tt.needle), m.prepareRunes(tt.haystack), UnlimitedTypos)
		if !r.Matched {
			t.Errorf("referenceScore(%q, %q): no match, want typos %d", tt.needle, tt.haystack, tt.wantTypos)
			continue
		}
		if r.Typos != tt.wantTypos {
			t.Errorf("referenceScore(%q, %q) typos = %d, want %d (score %d)",
				tt.needle, tt.haystack, r.Typos, tt.wantTypos, r.Score)
		}
	}
}

// Mixed delimiters, repeated characters and case flips produce a tie-heavy
// matrix; the reported count must be the minimum across all max-score paths,
// not whatever count the forward pass's tie-break winner happens to carry.
func TestTypoMinimalityTieHeavyInput(t *testing.T) {
	m := newTestMatcher(t)

	r, ok := m.MatchOne("Dd/aAd", "da--aD-ca/c-", 3)
	if !ok {
		t.Fatalf("expected a match within 3 typos, got %+v", r)
	}
	if r.Score != 69 || r.Typos != 2 {
		t.Fatalf("got (score %d, typos %d), want (score 69, typos 2)", r.Score, r.Typos)
	}

	// The same input must be rejected one typo below its minimum.
	if r, ok := m.MatchOne("Dd/aAd", "da--aD-ca/c-", 1); ok {
		t.Fatalf("expected rejection at maxTypos 1, got %+v", r)
	}
}

func TestTypoGateBoundary(t *testing.T) {
	m := newTestMatcher(t)

	// "abx" needs exactly one typo for needle "abc".
	if _, ok := m.MatchOne("abc", "abx", 0); ok {
		t.Error("maxTypos 0 must reject a 1-typo haystack")
	}
	if r, ok := m.MatchOne("abc", "abx", 1); !ok || r.Typos != 1 {
		t.Errorf("maxTypos 1 must accept a 1-typo haystack, got %+v", r)
	}
	if r, ok := m.MatchOne("abc", "abx", UnlimitedTypos); !ok || r.Typos != 1 {
		t.Errorf("unlimited typos must accept and still report the count, got %+v", r)
	}
}

// The forward matched-count DP must agree with the unbounded traceback on
// every input: both compute the minimum typo count over max-score paths.
func TestMaxMatchedDPAgreesWithTraceback(t *testing.T) {
	m := newTestMatcher(t)
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("aab_cAB/ xy")

	randString := func(n int) string {
		out := make([]rune, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(out)
	}

	for iter := 0; iter < 400; iter++ {
		needle := randString(1 + rng.Intn(6))
		haystack := randString(1 + rng.Intn(24))
		nd := m.prepareNeedle(needle)
		hay := m.prepareRunes(haystack)
		if nd.len() > hay.len() {
			continue
		}
		mx := m.fillScoreMatrix(&nd.runeSeq, hay)
		score, bestCol := mx.bestLastRow()
		if score <= 0 {
			continue
		}
		tb, ok := m.minTypos(&nd.runeSeq, hay, mx, bestCol, nd.len()*hay.len()*8+1)
		if !ok {
			t.Fatalf("unbounded traceback exhausted its budget for %q vs %q", needle, haystack)
		}
		dp := nd.len() - m.maxMatchedDP(&nd.runeSeq, hay, mx, bestCol)
		if tb != dp {
			t.Fatalf("traceback and matched-count DP disagree for %q vs %q: %d vs %d",
				needle, haystack, tb, dp)
		}
	}
}
