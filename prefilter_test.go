package fzmatch

import "testing"

func TestShouldConsider(t *testing.T) {
	m := newTestMatcher(t)

	tests := []struct {
		needle   string
		haystack string
		maxTypos int
		want     bool
	}{
		{"", "", 0, true},
		{"", "anything", 0, true},
		{"abc", "ab", 0, false}, // haystack shorter than needle
		{"abc", "ab", UnlimitedTypos, false},
		{"abc", "abc", 0, true},
		{"abc", "xxaxbxcxx", 0, true},
		{"abc", "abz", 0, false}, // class of 'c' missing, no budget
		{"abc", "abz", 1, true},  // one missing class fits the budget
		{"abc", "azz", 1, false}, // two missing classes exceed it
		{"abc", "azz", 2, true},
		{"abc", "zzz", UnlimitedTypos, false}, // no shared class at all
		{"abc", "azz", UnlimitedTypos, true},  // one shared class suffices
	}

	for _, tt := range tests {
		nd := m.prepareNeedle(tt.needle)
		hay := m.prepareRunes(tt.haystack)
		if got := m.shouldConsider(nd, hay.folded, tt.maxTypos); got != tt.want {
			t.Errorf("shouldConsider(%q, %q, %d) = %v, want %v",
				tt.needle, tt.haystack, tt.maxTypos, got, tt.want)
		}
	}
}

// Safety property: the prefilter may pass junk through, but it must never
// reject a haystack the full matcher would accept.
func TestShouldConsiderNoFalseNegatives(t *testing.T) {
	m := newTestMatcher(t)
	needles := []string{"a", "abc", "A_b", "ccx"}
	haystacks := corpusStrings(42, 300, 40)

	for _, needle := range needles {
		nd := m.prepareNeedle(needle)
		for _, haystack := range haystacks {
			hay := m.prepareRunes(haystack)
			for _, maxTypos := range []int{0, 1, 3, UnlimitedTypos} {
				ref, _ := m.referenceScore(nd, hay, maxTypos)
				if ref.Matched && !m.shouldConsider(nd, hay.folded, maxTypos) {
					t.Fatalf("prefilter rejected %q vs %q (maxTypos %d) but the matcher accepts it",
						needle, haystack, maxTypos)
				}
			}
		}
	}
}
