// Package fzmatch ranks candidate strings ("haystacks") against a query
// ("needle") for interactive search, completion, and selection UIs.
//
// The engine is a local sequence-alignment scorer (Smith-Waterman style)
// with context bonuses for delimiters and capitalization, an optional typo
// budget, and two execution strategies: a reference scalar path that
// materializes the score matrix, and streaming width-bucketed lane kernels
// that compute scores for several haystacks at once. Both paths produce
// identical results; the reference path is the correctness oracle and the
// only one used for recovering matched character positions.
//
// Intended usage is two-phase: rank the full candidate set with Score or
// MatchList, then call MatchIndices only for the visible top-K entries to
// obtain highlight positions.
//
// Text is normalized to NFC and matched per code point, case-insensitively.
// All indices reported by MatchIndices are rune indices into the normalized
// haystack.
package fzmatch
