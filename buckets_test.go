package fzmatch

import "testing"

func TestBucketFor(t *testing.T) {
	tests := []struct {
		n      int
		want   int
		wantOK bool
	}{
		{0, 8, true},
		{1, 8, true},
		{8, 8, true},
		{9, 16, true},
		{16, 16, true},
		{17, 32, true},
		{64, 64, true},
		{65, 128, true},
		{512, 512, true},
		{513, 0, false},
	}

	for _, tt := range tests {
		w, ok := bucketFor(tt.n)
		if w != tt.want || ok != tt.wantOK {
			t.Errorf("bucketFor(%d) = (%d, %v), want (%d, %v)", tt.n, w, ok, tt.want, tt.wantOK)
		}
	}
}

func TestUseGreedy(t *testing.T) {
	tests := []struct {
		m, n     int
		typoMode bool
		want     bool
	}{
		{4, 100, false, false},
		{4, 513, false, true}, // wider than the largest bucket
		{4, 513, true, true},
		{32, 500, true, false},  // 32*512 == cell ceiling exactly
		{33, 500, true, true},   // one row over
		{33, 500, false, false}, // score-only mode has no cell ceiling
		{1000, 512, false, false},
	}

	for _, tt := range tests {
		if got := useGreedy(tt.m, tt.n, tt.typoMode); got != tt.want {
			t.Errorf("useGreedy(%d, %d, %v) = %v, want %v", tt.m, tt.n, tt.typoMode, got, tt.want)
		}
	}
}

func TestTypoVisitBudgetClamps(t *testing.T) {
	tests := []struct {
		m, width int
		want     int
	}{
		{1, 8, 128},    // 2 clamps up
		{4, 128, 128},  // exactly the floor
		{8, 128, 256},  // 256 sits on the ceiling
		{32, 512, 256}, // 4096 clamps down
	}

	for _, tt := range tests {
		if got := typoVisitBudget(tt.m, tt.width); got != tt.want {
			t.Errorf("typoVisitBudget(%d, %d) = %d, want %d", tt.m, tt.width, got, tt.want)
		}
	}
}
