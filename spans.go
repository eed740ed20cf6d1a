package fzmatch

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Highlight helpers for Phase-2 consumers. MatchIndices reports individual
// rune positions; renderers usually want contiguous [Start, End] spans,
// snapped so no grapheme cluster is split, and terminal UIs want display
// columns rather than rune indices.

// MatchSpan is an inclusive [Start, End] range of rune indexes into the
// NFC-normalized haystack.
type MatchSpan struct {
	Start int
	End   int
}

// SpansFromIndices converts ascending matched rune indices into merged
// spans: adjacent or overlapping indices collapse into one span.
func SpansFromIndices(indices []int) []MatchSpan {
	if len(indices) == 0 {
		return nil
	}
	spans := make([]MatchSpan, 0, len(indices))
	current := MatchSpan{Start: indices[0], End: indices[0]}
	for _, idx := range indices[1:] {
		if idx <= current.End+1 {
			if idx > current.End {
				current.End = idx
			}
			continue
		}
		spans = append(spans, current)
		current = MatchSpan{Start: idx, End: idx}
	}
	spans = append(spans, current)
	return spans
}

// MergeMatchSpans merges sorted, possibly overlapping spans.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// SnapSpansToGraphemes widens each span so it never starts or ends inside a
// grapheme cluster of the haystack. Matching operates per code point, so a
// matched combining mark or a rune inside an emoji sequence would otherwise
// produce a span a renderer cannot highlight cleanly.
func SnapSpansToGraphemes(haystack string, spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	s := norm.NFC.String(haystack)

	// Cluster index per rune position.
	var clusterStart []int // rune index where each cluster begins
	runeToCluster := make([]int, 0, len(s))
	gr := uniseg.NewGraphemes(s)
	runePos := 0
	for gr.Next() {
		start := runePos
		clusterStart = append(clusterStart, start)
		n := len(gr.Runes())
		for k := 0; k < n; k++ {
			runeToCluster = append(runeToCluster, len(clusterStart)-1)
			runePos++
		}
	}
	if len(runeToCluster) == 0 {
		return nil
	}

	clusterEnd := func(c int) int {
		if c+1 < len(clusterStart) {
			return clusterStart[c+1] - 1
		}
		return len(runeToCluster) - 1
	}

	snapped := make([]MatchSpan, 0, len(spans))
	for _, sp := range spans {
		start, end := sp.Start, sp.End
		if start < 0 || end < start || start >= len(runeToCluster) {
			continue
		}
		if end >= len(runeToCluster) {
			end = len(runeToCluster) - 1
		}
		snapped = append(snapped, MatchSpan{
			Start: clusterStart[runeToCluster[start]],
			End:   clusterEnd(runeToCluster[end]),
		})
	}
	return MergeMatchSpans(snapped)
}

// SpanDisplayColumns maps a rune-index span to terminal display columns
// [startCol, endCol) within the haystack, accounting for wide characters.
func SpanDisplayColumns(haystack string, span MatchSpan) (int, int) {
	s := norm.NFC.String(haystack)
	col := 0
	idx := 0
	startCol, endCol := 0, 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if idx == span.Start {
			startCol = col
		}
		col += w
		if idx == span.End {
			endCol = col
		}
		idx++
	}
	if span.Start >= idx {
		startCol = col
	}
	if span.End >= idx {
		endCol = col
	}
	return startCol, endCol
}
