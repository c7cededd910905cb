// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chroder reconciles pairwise contig alignments between two genome
// assemblies into chromosome-scale pseudomolecules: it orders and orients
// the contigs of a reference assembly and a query assembly so that
// homologous contigs line up, resolving repetitive noise with a longest-run
// subsequence solver and branching ambiguity with a bipartite adjacency
// graph traversal.
//
// The package consumes a normalized table of alignment intervals (built by
// an input adapter, not by chroder itself) and produces an assembly plan: a
// set of pseudochromosomes, each an ordered, oriented list of contigs from
// both assemblies.
package chroder

import "fmt"

// Side identifies which assembly a contig belongs to.
type Side int

const (
	Ref Side = iota
	Qry
)

func (s Side) String() string {
	if s == Ref {
		return "ref"
	}
	return "qry"
}

// Direction is a contig or alignment orientation.
type Direction int

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// WindowSize is the fixed window width used by the window binner (§4.1).
const WindowSize = 10000

// Alignment is a single pairwise alignment interval between a ref contig
// and a qry contig, normalized by an input adapter from whatever wire
// format (TSV, SAM, BAM) the caller's alignments arrived in.
//
// RefStart <= RefEnd always holds. QryDir of -1 indicates the alignment is
// inverted relative to RefStart..RefEnd; QryStart/QryEnd are given in the
// query's own forward coordinate frame regardless of QryDir.
type Alignment struct {
	RefChr, QryChr             string
	RefStart, RefEnd           int
	QryStart, QryEnd           int
	RefLen, QryLen             int
	Identity                   float64
	RefDir, QryDir             Direction
}

func (a Alignment) String() string {
	return fmt.Sprintf("%s:%d-%d <-> %s:%d-%d (dir %d, iden %.2f)",
		a.RefChr, a.RefStart, a.RefEnd, a.QryChr, a.QryStart, a.QryEnd, a.QryDir, a.Identity)
}

// Config holds the tunable parameters of a chroder run. Window size and
// the sliding-window denoise parameters are fixed by the spec but exposed
// here so tests can exercise boundary behaviour without relying on package
// constants.
type Config struct {
	// NCount is the number of N bases the plan writer inserts between
	// concatenated contigs. It is not consulted by the core itself.
	NCount int

	// NoRef is true when neither assembly is chromosome-scale. It changes
	// conflict resolution (§4.6) and pseudochromosome naming (§4.8).
	NoRef bool

	// WindowSize is the fixed bin width for the window binner. Defaults to
	// chroder.WindowSize (10000) when zero.
	WindowSize int

	// SlidingWindow and SlidingThreshold are the run-extractor denoise
	// parameters (§4.3). Default to 5 and 3 when zero.
	SlidingWindow    int
	SlidingThreshold int

	// DenoiseThreshold is the window-count above which a contig is
	// subjected to sliding-window denoising (§4.3). Defaults to 50 when
	// zero.
	DenoiseThreshold int
}

// normalized returns c with all zero-valued tunables replaced by their
// spec-mandated defaults.
func (c Config) normalized() Config {
	if c.WindowSize == 0 {
		c.WindowSize = WindowSize
	}
	if c.SlidingWindow == 0 {
		c.SlidingWindow = 5
	}
	if c.SlidingThreshold == 0 {
		c.SlidingThreshold = 3
	}
	if c.DenoiseThreshold == 0 {
		c.DenoiseThreshold = 50
	}
	return c
}

// Pseudochromosome is one output record of the plan writer (§4.8): an
// ordered, oriented list of contigs from each assembly that chroder has
// decided belong to the same chromosome-scale scaffold.
type Pseudochromosome struct {
	ID string

	RefContigs      []string
	RefOrientations []Direction

	QryContigs      []string
	QryOrientations []Direction
}
