// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"reflect"
	"testing"
)

// TestBuildPlanOneToOne exercises the simplest concrete scenario from §8:
// a single ref contig and a single qry contig mapped end to end, forward.
func TestBuildPlanOneToOne(t *testing.T) {
	ref, qry := oneToOneTables(Forward)
	refLen := map[string]int{"r1": 1000}
	qryLen := map[string]int{"q1": 2000}

	plans := BuildPlan(Config{}, ref, qry, refLen, qryLen, nil)
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1: %+v", len(plans), plans)
	}
	p := plans[0]
	if p.ID != "r1" {
		t.Errorf("ID = %q, want %q (seeded from the sole ref contig)", p.ID, "r1")
	}
	if !reflect.DeepEqual(p.RefContigs, []string{"r1"}) || !reflect.DeepEqual(p.RefOrientations, []Direction{Forward}) {
		t.Errorf("ref side = %v/%v, want [r1]/[Forward]", p.RefContigs, p.RefOrientations)
	}
	if !reflect.DeepEqual(p.QryContigs, []string{"q1"}) || !reflect.DeepEqual(p.QryOrientations, []Direction{Forward}) {
		t.Errorf("qry side = %v/%v, want [q1]/[Forward]", p.QryContigs, p.QryOrientations)
	}
}

// TestBuildPlanNoRefNaming pins the §4.8 naming rule: with NoRef set,
// pseudochromosomes are named Pseudochrom1, Pseudochrom2, ... in discovery
// order rather than after a ref contig.
func TestBuildPlanNoRefNaming(t *testing.T) {
	ref, qry := oneToOneTables(Forward)
	refLen := map[string]int{"r1": 1000}
	qryLen := map[string]int{"q1": 2000}

	plans := BuildPlan(Config{NoRef: true}, ref, qry, refLen, qryLen, nil)
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	if plans[0].ID != "Pseudochrom1" {
		t.Errorf("ID = %q, want Pseudochrom1", plans[0].ID)
	}
}

// TestBuildPlanMultipleComponents checks that two disjoint one-to-one
// components each yield their own pseudochromosome, in component
// discovery order.
func TestBuildPlanMultipleComponents(t *testing.T) {
	ref := MappingTable{
		"r1": {"q1": Mapping{Partner: "q1", Start: 0, Direction: Forward}},
		"r2": {"q2": Mapping{Partner: "q2", Start: 0, Direction: Forward}},
	}
	qry := MappingTable{
		"q1": {"r1": Mapping{Partner: "r1", Start: 0, Direction: Forward}},
		"q2": {"r2": Mapping{Partner: "r2", Start: 0, Direction: Forward}},
	}
	refLen := map[string]int{"r1": 1000, "r2": 2000}
	qryLen := map[string]int{"q1": 1000, "q2": 2000}

	plans := BuildPlan(Config{}, ref, qry, refLen, qryLen, nil)
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2: %+v", len(plans), plans)
	}
	if plans[0].ID != "r1" || plans[1].ID != "r2" {
		t.Errorf("IDs = %q, %q, want r1, r2 in discovery order", plans[0].ID, plans[1].ID)
	}
}

// TestBuildPlanTwoRefOneQry exercises the §8 scenario of two ref contigs
// scaffolding onto a single qry contig (e.g. under NoRef, neither assembly
// chromosome-scale): both ref contigs should land in one pseudochromosome,
// ordered ra before rb by ascending mapping Start.
func TestBuildPlanTwoRefOneQry(t *testing.T) {
	ref := MappingTable{
		"ra": {"qc": Mapping{Partner: "qc", Start: 0, Direction: Forward}},
		"rb": {"qc": Mapping{Partner: "qc", Start: 0, Direction: Forward}},
	}
	qry := MappingTable{
		"qc": {
			"ra": Mapping{Partner: "ra", Start: 0, Direction: Forward},
			"rb": Mapping{Partner: "rb", Start: 50000, Direction: Forward},
		},
	}
	refLen := map[string]int{"ra": 100, "rb": 100}
	qryLen := map[string]int{"qc": 100}

	plans := BuildPlan(Config{NoRef: true}, ref, qry, refLen, qryLen, nil)
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1: %+v", len(plans), plans)
	}
	p := plans[0]
	if !reflect.DeepEqual(p.RefContigs, []string{"ra", "rb"}) {
		t.Errorf("RefContigs = %v, want [ra rb]", p.RefContigs)
	}
	if !reflect.DeepEqual(p.QryContigs, []string{"qc"}) {
		t.Errorf("QryContigs = %v, want [qc]", p.QryContigs)
	}
}

// TestBuildPlanIdempotent pins the round-trip property from §8: running
// BuildPlan twice on identical inputs yields identical plans.
func TestBuildPlanIdempotent(t *testing.T) {
	ref, qry := oneToOneTables(Forward)
	refLen := map[string]int{"r1": 1000}
	qryLen := map[string]int{"q1": 2000}

	first := BuildPlan(Config{}, ref, qry, refLen, qryLen, nil)
	second := BuildPlan(Config{}, ref, qry, refLen, qryLen, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildPlan is not idempotent: %+v != %+v", first, second)
	}
}
