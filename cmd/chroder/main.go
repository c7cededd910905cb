// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// chroder reconciles pairwise contig alignments between two genome
// assemblies into chromosome-scale pseudomolecules.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/chroder"
	"github.com/kortschak/chroder/input"
	"github.com/kortschak/chroder/plan"
)

var (
	coords = flag.String("coords", "", "alignment coordinate file (required)")
	ftype  = flag.String("ftype", "T", "coordinate file type: T (table), S (sam), B (bam)")
	ref    = flag.String("ref", "", "reference assembly fasta (required)")
	qry    = flag.String("qry", "", "query assembly fasta (required)")
	ncount = flag.Int("n", 500, "number of N bases to insert between concatenated contigs")
	out    = flag.String("out", "out", "output file prefix")
	noref  = flag.Bool("noref", false, "use this when neither assembly is chromosome-scale")
)

func main() {
	flag.Parse()
	if *coords == "" || *ref == "" || *qry == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: coords, ref and qry are required")
		flag.Usage()
		os.Exit(1)
	}

	log.Printf("reading alignments from %q", *coords)
	alignments, err := input.ReadAlignments(*coords, input.FileType((*ftype)[0]))
	if err != nil {
		log.Fatalf("failed to read alignments: %v", err)
	}

	log.Printf("reading reference assembly %q", *ref)
	refLen, err := input.ContigLengths(*ref, "ref")
	if err != nil {
		log.Fatalf("failed to read reference assembly: %v", err)
	}
	log.Printf("reading query assembly %q", *qry)
	qryLen, err := input.ContigLengths(*qry, "qry")
	if err != nil {
		log.Fatalf("failed to read query assembly: %v", err)
	}

	cfg := chroder.Config{NCount: *ncount, NoRef: *noref}

	refMappings, err := buildMappings(cfg, chroder.Ref, refLen, alignments)
	if err != nil {
		log.Fatalf("%v", err)
	}
	qryMappings, err := buildMappings(cfg, chroder.Qry, qryLen, alignments)
	if err != nil {
		log.Fatalf("%v", err)
	}

	refTable := chroder.BuildMappingTable(refMappings)
	qryTable := chroder.BuildMappingTable(qryMappings)

	logger := log.New(os.Stderr, "", log.LstdFlags)
	refTable, qryTable = chroder.ResolveConflicts(refTable, qryTable, *noref, logger)

	plans := chroder.BuildPlan(cfg, refTable, qryTable, refLen, qryLen, logger)
	log.Printf("assembled %d pseudochromosome(s)", len(plans))

	if err := plan.WriteAnnotation(*out, plans); err != nil {
		log.Fatalf("failed to write annotation: %v", err)
	}

	log.Printf("reading reference sequences for output")
	refSeqs, err := input.Sequences(*ref, "ref")
	if err != nil {
		log.Fatalf("failed to read reference assembly: %v", err)
	}
	qrySeqs, err := input.Sequences(*qry, "qry")
	if err != nil {
		log.Fatalf("failed to read query assembly: %v", err)
	}
	if err := plan.WriteFASTA(*out, plans, refSeqs, qrySeqs, *ncount); err != nil {
		log.Fatalf("failed to write fasta output: %v", err)
	}
}

// buildMappings runs the window binner, orientation estimator, run
// extractor and LRS solver for one side, producing the per-contig mapping
// lists the conflict resolver and locus graph consume.
func buildMappings(cfg chroder.Config, side chroder.Side, lengths map[string]int, alignments []chroder.Alignment) (map[string][]chroder.Mapping, error) {
	windows := chroder.BinWindows(cfg, side, lengths, alignments)
	orientations := chroder.EstimateOrientations(side, alignments)

	result := make(map[string][]chroder.Mapping, len(windows))
	for contig, ws := range windows {
		runs, err := chroder.ExtractRuns(cfg, side, contig, ws)
		if err != nil {
			return nil, err
		}

		selected, err := chroder.SolveLRS(runs)
		if err != nil {
			return nil, &chroder.LrsFailureError{Side: side, Contig: contig, Len: len(runs), Err: err}
		}

		result[contig] = chroder.SummarizeMapping(runs, selected, orientations[contig])
	}
	return result, nil
}
