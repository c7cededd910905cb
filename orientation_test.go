// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import "testing"

func TestEstimateOrientationsForward(t *testing.T) {
	alignments := []Alignment{
		{RefChr: "r1", QryChr: "q1", RefStart: 0, RefEnd: 100, QryStart: 0, QryEnd: 100, QryDir: Forward},
	}
	got := EstimateOrientations(Ref, alignments)
	if got["r1"]["q1"] != Forward {
		t.Errorf("orientation = %v, want Forward", got["r1"]["q1"])
	}
}

// TestEstimateOrientationsInvertedWins pins the majority rule from §4.2:
// when inverted intervals cover more bases than forward ones (80 vs 10),
// the pair is oriented Reverse. The tie case is covered by
// TestEstimateOrientationsTieGoesForward.
func TestEstimateOrientationsInvertedWins(t *testing.T) {
	alignments := []Alignment{
		{RefChr: "r1", QryChr: "q1", RefStart: 0, RefEnd: 10, QryStart: 0, QryEnd: 10, QryDir: Forward},
		{RefChr: "r1", QryChr: "q1", RefStart: 20, RefEnd: 100, QryStart: 20, QryEnd: 100, QryDir: Reverse},
	}
	got := EstimateOrientations(Ref, alignments)
	if got["r1"]["q1"] != Reverse {
		t.Errorf("orientation = %v, want Reverse", got["r1"]["q1"])
	}
}

func TestEstimateOrientationsTieGoesForward(t *testing.T) {
	alignments := []Alignment{
		{RefChr: "r1", QryChr: "q1", RefStart: 0, RefEnd: 50, QryStart: 0, QryEnd: 50, QryDir: Forward},
		{RefChr: "r1", QryChr: "q1", RefStart: 100, RefEnd: 150, QryStart: 100, QryEnd: 150, QryDir: Reverse},
	}
	got := EstimateOrientations(Ref, alignments)
	if got["r1"]["q1"] != Forward {
		t.Errorf("orientation = %v, want Forward (tie favors forward)", got["r1"]["q1"])
	}
}

func TestSideIntervalSwapsReversedQuery(t *testing.T) {
	a := Alignment{QryStart: 100, QryEnd: 50, QryDir: Reverse}
	start, end := sideInterval(Qry, a)
	if start != 50 || end != 100 {
		t.Errorf("sideInterval() = (%d, %d), want (50, 100)", start, end)
	}
}
