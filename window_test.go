// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"reflect"
	"testing"
)

func TestBinWindowsSingleContig(t *testing.T) {
	cfg := Config{WindowSize: 100}
	lengths := map[string]int{"r1": 300}
	alignments := []Alignment{
		{RefChr: "r1", RefStart: 0, RefEnd: 250, QryChr: "q1", QryStart: 0, QryEnd: 250},
	}
	got := BinWindows(cfg, Ref, lengths, alignments)
	want := map[string][]WindowAssignment{
		"r1": {{Window: 0, Partner: "q1"}, {Window: 100, Partner: "q1"}, {Window: 200, Partner: "q1"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BinWindows() = %+v, want %+v", got, want)
	}
}

func TestBinWindowsEmptyWindowOmitted(t *testing.T) {
	cfg := Config{WindowSize: 100}
	lengths := map[string]int{"r1": 300}
	alignments := []Alignment{
		{RefChr: "r1", RefStart: 0, RefEnd: 50, QryChr: "q1", QryStart: 0, QryEnd: 50},
		{RefChr: "r1", RefStart: 250, RefEnd: 300, QryChr: "q2", QryStart: 0, QryEnd: 50},
	}
	got := BinWindows(cfg, Ref, lengths, alignments)
	assignments := got["r1"]
	if len(assignments) != 2 {
		t.Fatalf("got %d window assignments, want 2 (middle window should be omitted): %+v", len(assignments), assignments)
	}
	if assignments[0].Window != 0 || assignments[1].Window != 200 {
		t.Errorf("windows = %+v, want windows 0 and 200", assignments)
	}
}

func TestBinWindowsBestCoverageWins(t *testing.T) {
	cfg := Config{WindowSize: 100}
	lengths := map[string]int{"r1": 100}
	alignments := []Alignment{
		{RefChr: "r1", RefStart: 0, RefEnd: 90, QryChr: "qbig", QryStart: 0, QryEnd: 90},
		{RefChr: "r1", RefStart: 0, RefEnd: 10, QryChr: "qsmall", QryStart: 0, QryEnd: 10},
	}
	got := BinWindows(cfg, Ref, lengths, alignments)
	assignments := got["r1"]
	if len(assignments) != 1 || assignments[0].Partner != "qbig" {
		t.Errorf("assignments = %+v, want single window assigned to qbig", assignments)
	}
}

func TestMergedCoverage(t *testing.T) {
	cases := []struct {
		name string
		ivs  [][2]int
		want int
	}{
		{"single", [][2]int{{0, 10}}, 10},
		{"disjoint", [][2]int{{0, 10}, {20, 30}}, 20},
		{"overlapping", [][2]int{{0, 10}, {5, 15}}, 15},
		{"contained", [][2]int{{0, 20}, {5, 10}}, 20},
		{"adjacent merges", [][2]int{{0, 10}, {10, 20}}, 20},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ivs := append([][2]int(nil), c.ivs...)
			if got := mergedCoverage(ivs); got != c.want {
				t.Errorf("mergedCoverage(%v) = %d, want %d", c.ivs, got, c.want)
			}
		})
	}
}
