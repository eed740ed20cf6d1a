package fzmatch

import (
	"math/rand"
	"testing"
)

// corpusStrings generates a deterministic pseudo-random corpus over an
// alphabet dense enough to produce ties, delimiters, and case bonuses.
func corpusStrings(seed int64, count, maxLen int) []string {
	rng := rand.New(rand.NewSource(seed))
	alphabet := []rune("abcABC_./ xyz")
	out := make([]string, count)
	for i := range out {
		n := 1 + rng.Intn(maxLen)
		rs := make([]rune, n)
		for j := range rs {
			rs[j] = alphabet[rng.Intn(len(alphabet))]
		}
		out[i] = string(rs)
	}
	return out
}

// Score-only kernel vs reference matrix, across inputs spanning every bucket
// width. Parity must be exact, including which haystacks fail to match.
func TestLaneScoresMatchesReference(t *testing.T) {
	m := newTestMatcher(t)
	needles := []string{"a", "abc", "cba", "A_b", "xyz", "ax c"}

	var haystacks []string
	for _, maxLen := range []int{8, 16, 33, 70, 130, 260, 512} {
		haystacks = append(haystacks, corpusStrings(int64(maxLen), 20, maxLen)...)
	}

	for _, needle := range needles {
		nd := m.prepareNeedle(needle)
		for _, haystack := range haystacks {
			hay := m.prepareRunes(haystack)
			ref, _ := m.referenceScore(nd, hay, UnlimitedTypos)

			got, ok := m.Score(needle, haystack)
			if ok != ref.Matched {
				t.Fatalf("Score(%q, %q) matched = %v, reference = %v", needle, haystack, ok, ref.Matched)
			}
			if ok && got != ref.Score {
				t.Fatalf("Score(%q, %q) = %d, reference = %d", needle, haystack, got, ref.Score)
			}
		}
	}
}

// Score+typo kernel vs reference, across typo budgets. (Score, Typos,
// Matched) must be identical triples.
func TestLaneScoresTyposMatchesReference(t *testing.T) {
	m := newTestMatcher(t)
	needles := []string{"abc", "A_b", "ccc", "ax c"}
	haystacks := corpusStrings(99, 120, 48)
	haystacks = append(haystacks, corpusStrings(100, 10, 400)...)

	for _, needle := range needles {
		nd := m.prepareNeedle(needle)
		for _, haystack := range haystacks {
			for _, maxTypos := range []int{0, 1, 3, UnlimitedTypos} {
				ref, _ := m.referenceScore(nd, m.prepareRunes(haystack), maxTypos)

				got, _ := m.MatchOne(needle, haystack, maxTypos)
				if got != ref {
					t.Fatalf("MatchOne(%q, %q, %d) = %+v, reference = %+v",
						needle, haystack, maxTypos, got, ref)
				}
			}
		}
	}
}

// MatchList batches haystacks into full lanes per bucket; its output must be
// indistinguishable from matching each haystack alone.
func TestMatchListEqualsMatchOne(t *testing.T) {
	m := newTestMatcher(t)
	haystacks := corpusStrings(3, 200, 80)

	for _, maxTypos := range []int{0, 2, UnlimitedTypos} {
		results := m.MatchList("abc", haystacks, maxTypos)
		if len(results) != len(haystacks) {
			t.Fatalf("got %d results for %d haystacks", len(results), len(haystacks))
		}
		for i, r := range results {
			if r.Index != i {
				t.Fatalf("result %d carries index %d", i, r.Index)
			}
			single, _ := m.MatchOne("abc", haystacks[i], maxTypos)
			single.Index = i
			if r != single {
				t.Fatalf("haystack %d (%q): MatchList = %+v, MatchOne = %+v",
					i, haystacks[i], r, single)
			}
		}
	}
}

// Forcing a tiny visit budget drives every lane through the forward-DP patch;
// results must not change.
func TestTypoBudgetBailoutEqualsUnbounded(t *testing.T) {
	m := newTestMatcher(t)
	haystacks := corpusStrings(11, 150, 60)

	baseline := m.MatchList("aAa_b", haystacks, 3)

	typoBudgetOverride = 1
	defer func() { typoBudgetOverride = 0 }()

	forced := m.MatchList("aAa_b", haystacks, 3)
	for i := range baseline {
		if baseline[i] != forced[i] {
			t.Fatalf("haystack %d (%q): budget bailout changed the result: %+v vs %+v",
				i, haystacks[i], baseline[i], forced[i])
		}
	}
}
