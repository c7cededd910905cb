// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"reflect"
	"testing"
)

func mkRuns(symbols []string, lengths []int) []Run {
	runs := make([]Run, len(symbols))
	for i, s := range symbols {
		runs[i] = Run{Partner: s, Length: lengths[i]}
	}
	return runs
}

// TestSolveLRSNestedSymbol pins the DP transition decision recorded in
// SPEC_FULL.md / DESIGN.md (decision 3): extending a run with its own
// current symbol never introduces a new symbol into the reached
// subalphabet, while extending from a distinct prior symbol's best
// subalphabet does add one. a b a should keep both a-runs (contiguous once
// b is excluded) over keeping b alone.
func TestSolveLRSNestedSymbol(t *testing.T) {
	runs := mkRuns([]string{"a", "b", "a"}, []int{10, 5, 10})
	selected, err := SolveLRS(runs)
	if err != nil {
		t.Fatalf("SolveLRS: %v", err)
	}
	want := []int{0, 2}
	if !reflect.DeepEqual(selected, want) {
		t.Errorf("selected = %v, want %v", selected, want)
	}
}

// TestSolveLRSAllDistinct exercises the concat rule: every symbol unique,
// so the whole sequence is already a valid run-subsequence.
func TestSolveLRSAllDistinct(t *testing.T) {
	runs := mkRuns([]string{"a", "b", "c"}, []int{10, 20, 30})
	selected, err := SolveLRS(runs)
	if err != nil {
		t.Fatalf("SolveLRS: %v", err)
	}
	want := []int{0, 1, 2}
	if !reflect.DeepEqual(selected, want) {
		t.Errorf("selected = %v, want %v", selected, want)
	}
}

// TestSolveLRSConcatSplit exercises the concat rule partitioning two
// independent instances joined end to end: a,b,a (contained) followed by
// c,d,c (contained) must not interact.
func TestSolveLRSConcatSplit(t *testing.T) {
	runs := mkRuns(
		[]string{"a", "b", "a", "c", "d", "c"},
		[]int{10, 1, 10, 10, 1, 10},
	)
	selected, err := SolveLRS(runs)
	if err != nil {
		t.Fatalf("SolveLRS: %v", err)
	}
	want := []int{0, 2, 3, 5}
	if !reflect.DeepEqual(selected, want) {
		t.Errorf("selected = %v, want %v", selected, want)
	}
}

// TestSolveLRSValidRunSubsequence is a property check (§8): for a handful
// of synthetic inputs, the selected output always forms contiguous blocks
// per symbol when read in the original order.
func TestSolveLRSValidRunSubsequence(t *testing.T) {
	cases := [][]string{
		{"a", "b", "a", "b", "a"},
		{"a", "a", "b", "c", "b", "d", "c"},
		{"x", "y", "x", "y", "x", "y"},
	}
	for _, symbols := range cases {
		lengths := make([]int, len(symbols))
		for i := range lengths {
			lengths[i] = i + 1
		}
		runs := mkRuns(symbols, lengths)
		selected, err := SolveLRS(runs)
		if err != nil {
			t.Fatalf("SolveLRS(%v): %v", symbols, err)
		}
		assertContiguousBlocks(t, runs, selected)
	}
}

func assertContiguousBlocks(t *testing.T, runs []Run, selected []int) {
	t.Helper()
	seen := make(map[string]bool)
	var lastPartner string
	for i, idx := range selected {
		if i > 0 && idx <= selected[i-1] {
			t.Fatalf("selected indices not ascending: %v", selected)
		}
		p := runs[idx].Partner
		if p != lastPartner && seen[p] {
			t.Fatalf("symbol %q reappears non-contiguously in selection %v", p, selected)
		}
		seen[p] = true
		lastPartner = p
	}
}

func TestSolveLRSEmpty(t *testing.T) {
	selected, err := SolveLRS(nil)
	if err != nil {
		t.Fatalf("SolveLRS(nil): %v", err)
	}
	if len(selected) != 0 {
		t.Errorf("selected = %v, want empty", selected)
	}
}
