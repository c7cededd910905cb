// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// chroder-plot renders a synteny dot plot (ref position vs. qry position)
// for each pseudochromosome in a chroder plan, colored by alignment
// orientation. It visualizes a plan chroder has already computed; it
// performs no analysis of its own.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kortschak/chroder"
	"github.com/kortschak/chroder/input"
)

var (
	anno   = flag.String("anno", "", "chroder .anno plan file (required)")
	coords = flag.String("coords", "", "alignment coordinate file used to build the plan (required)")
	ftype  = flag.String("ftype", "T", "coordinate file type: T (table), S (sam), B (bam)")
	out    = flag.String("out", "synteny", "output file prefix")
	format = flag.String("format", "svg", "output format: eps, jpg, jpeg, pdf, png, svg, tiff")
)

func main() {
	flag.Parse()
	if *anno == "" || *coords == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: anno and coords are required")
		flag.Usage()
		os.Exit(1)
	}

	chrs, err := readAnnotation(*anno)
	if err != nil {
		log.Fatalf("failed to read plan: %v", err)
	}

	alignments, err := input.ReadAlignments(*coords, input.FileType((*ftype)[0]))
	if err != nil {
		log.Fatalf("failed to read alignments: %v", err)
	}

	for _, c := range chrs {
		if err := plotOne(c, alignments); err != nil {
			log.Printf("failed to plot %s: %v", c.ID, err)
		}
	}
}

// annoRecord is one pseudochromosome record as written by plan.WriteAnnotation.
type annoRecord struct {
	chroder.Pseudochromosome
}

func readAnnotation(path string) ([]annoRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var chrs []annoRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		header := sc.Text()
		if !strings.HasPrefix(header, ">") {
			return nil, fmt.Errorf("chroder-plot: expected header, got %q", header)
		}
		id := strings.TrimPrefix(header, ">")

		lines := make([]string, 4)
		for i := range lines {
			if !sc.Scan() {
				return nil, fmt.Errorf("chroder-plot: truncated record for %q", id)
			}
			lines[i] = sc.Text()
		}

		rec := annoRecord{chroder.Pseudochromosome{ID: id}}
		rec.RefContigs = splitNonEmpty(lines[0])
		rec.RefOrientations = splitDirections(lines[1])
		rec.QryContigs = splitNonEmpty(lines[2])
		rec.QryOrientations = splitDirections(lines[3])
		chrs = append(chrs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return chrs, nil
}

func splitNonEmpty(line string) []string {
	if line == "" {
		return nil
	}
	return strings.Split(line, "\t")
}

func splitDirections(line string) []chroder.Direction {
	fields := splitNonEmpty(line)
	dirs := make([]chroder.Direction, len(fields))
	for i, f := range fields {
		if f == "-1" {
			dirs[i] = chroder.Reverse
		} else {
			dirs[i] = chroder.Forward
		}
	}
	return dirs
}

// plotOne renders one pseudochromosome's retained alignments as a scatter
// of (ref position, qry position) points, split into forward- and
// reverse-oriented series, following carta.go's plot.New/p.Save pipeline.
func plotOne(c annoRecord, alignments []chroder.Alignment) error {
	refSet := toSet(c.RefContigs)
	qrySet := toSet(c.QryContigs)

	var fwd, rev plotter.XYs
	for _, a := range alignments {
		if !refSet[a.RefChr] || !qrySet[a.QryChr] {
			continue
		}
		pt := plotter.XY{X: float64(a.RefStart), Y: float64(a.QryStart)}
		if a.QryDir == chroder.Reverse {
			rev = append(rev, pt)
		} else {
			fwd = append(fwd, pt)
		}
	}
	if len(fwd) == 0 && len(rev) == 0 {
		return nil
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = c.ID
	p.X.Label.Text = "ref position"
	p.Y.Label.Text = "qry position"

	if len(fwd) > 0 {
		s, err := plotter.NewScatter(fwd)
		if err != nil {
			return err
		}
		s.Color = color.RGBA{R: 0, G: 0, B: 200, A: 255}
		p.Add(s)
	}
	if len(rev) > 0 {
		s, err := plotter.NewScatter(rev)
		if err != nil {
			return err
		}
		s.Color = color.RGBA{R: 200, G: 0, B: 0, A: 255}
		p.Add(s)
	}

	path := filepath.Join(".", fmt.Sprintf("%s.%s.%s", *out, c.ID, *format))
	return p.Save(15*vg.Centimeter, 15*vg.Centimeter, path)
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
