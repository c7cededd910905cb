// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input adapts external alignment and assembly file formats into
// the normalized types chroder's core operates on. None of this package's
// logic is part of the reconciliation algorithm itself — it is the
// "external collaborator" the core specification assumes already ran.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/kortschak/chroder"
)

// FileType selects the wire format a coordinate file is read with.
type FileType byte

const (
	Table FileType = 'T'
	SAM   FileType = 'S'
	BAM   FileType = 'B'
)

// NumericContigError is returned when a contig identifier consists only of
// digits: chroder's plan output distinguishes pseudochromosome IDs from
// original contig IDs by convention, which numeric-only names would make
// ambiguous downstream, so the adapter rejects them at the boundary (§6).
type NumericContigError struct {
	Contig string
}

func (e *NumericContigError) Error() string {
	return fmt.Sprintf("chroder: contig identifier %q is numeric-only, which is not permitted", e.Contig)
}

// ReadAlignments reads a coordinate file of the given type and returns
// chroder.Alignment records with contig identifiers prefixed "ref"/"qry"
// so the two assemblies' namespaces never collide, matching the
// convention the original collaborator script used (`"ref"+id`).
func ReadAlignments(path string, ft FileType) ([]chroder.Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ft {
	case Table:
		return readTable(f)
	case SAM, BAM:
		return readSAMBAM(f, ft)
	default:
		return nil, fmt.Errorf("chroder: unknown alignment file type %q", ft)
	}
}

func readTable(r io.Reader) ([]chroder.Alignment, error) {
	var aligns []chroder.Alignment
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 11 {
			return nil, fmt.Errorf("chroder: malformed coordinate row (want 11 columns, got %d): %q", len(fields), line)
		}

		a, err := tableRow(fields)
		if err != nil {
			return nil, err
		}
		aligns = append(aligns, a)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return aligns, nil
}

func tableRow(f []string) (chroder.Alignment, error) {
	var a chroder.Alignment
	var err error
	ints := []*int{&a.RefStart, &a.RefEnd, &a.QryStart, &a.QryEnd, &a.RefLen, &a.QryLen}
	for i, p := range ints {
		*p, err = strconv.Atoi(f[i])
		if err != nil {
			return a, fmt.Errorf("chroder: bad integer field %d (%q): %w", i, f[i], err)
		}
	}
	a.Identity, err = strconv.ParseFloat(f[6], 64)
	if err != nil {
		return a, fmt.Errorf("chroder: bad identity field (%q): %w", f[6], err)
	}
	refDir, err := strconv.Atoi(f[7])
	if err != nil {
		return a, fmt.Errorf("chroder: bad direction field (%q): %w", f[7], err)
	}
	qryDir, err := strconv.Atoi(f[8])
	if err != nil {
		return a, fmt.Errorf("chroder: bad direction field (%q): %w", f[8], err)
	}
	a.RefDir = chroder.Direction(refDir)
	a.QryDir = chroder.Direction(qryDir)

	refChr, err := prefixed("ref", f[9])
	if err != nil {
		return a, err
	}
	qryChr, err := prefixed("qry", f[10])
	if err != nil {
		return a, err
	}
	a.RefChr, a.QryChr = refChr, qryChr
	return a, nil
}

func readSAMBAM(f *os.File, ft FileType) ([]chroder.Alignment, error) {
	var sr interface {
		Read() (*sam.Record, error)
	}
	switch ft {
	case SAM:
		r, err := sam.NewReader(f)
		if err != nil {
			return nil, err
		}
		sr = r
	case BAM:
		r, err := bam.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		sr = r
	}

	var aligns []chroder.Alignment
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if rec.Ref == nil {
			continue // unmapped record, no alignment footprint
		}

		refChr, err := prefixed("ref", rec.Ref.Name())
		if err != nil {
			return nil, err
		}
		qryChr, err := prefixed("qry", rec.Name)
		if err != nil {
			return nil, err
		}

		refStart, refEnd, qryStart, qryEnd := recordSpan(rec)
		qryDir := chroder.Forward
		if rec.Flags&sam.Reverse != 0 {
			qryDir = chroder.Reverse
		}

		aligns = append(aligns, chroder.Alignment{
			RefChr:   refChr,
			QryChr:   qryChr,
			RefStart: refStart,
			RefEnd:   refEnd,
			QryStart: qryStart,
			QryEnd:   qryEnd,
			RefLen:   rec.Ref.Len(),
			QryLen:   rec.Len(),
			// Percent identity isn't recoverable from CIGAR/flags alone
			// (it needs the MD tag or NM/edit-distance aux fields) and
			// the core never consults it, so it is left unset here.
			Identity: 0,
			RefDir:   chroder.Forward,
			QryDir:   qryDir,
		})
	}
	return aligns, nil
}

// recordSpan walks a record's CIGAR, in the manner of reefer.go's
// per-operation reference/query consumption walk, to find the reference
// and query spans actually covered by aligned (non-clipped) bases.
func recordSpan(rec *sam.Record) (refStart, refEnd, qryStart, qryEnd int) {
	refStart = rec.Start()
	ref, qry := refStart, 0
	seenAligned := false
	for _, co := range rec.Cigar {
		consume := co.Type().Consumes()
		n := co.Len()
		if consume.Reference > 0 && consume.Query > 0 {
			if !seenAligned {
				qryStart = qry
				seenAligned = true
			}
			ref += consume.Reference * n
			qry += consume.Query * n
			refEnd, qryEnd = ref, qry
			continue
		}
		ref += consume.Reference * n
		qry += consume.Query * n
	}
	return refStart, refEnd, qryStart, qryEnd
}

func prefixed(prefix, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("chroder: empty contig identifier")
	}
	if isNumeric(id) {
		return "", &NumericContigError{Contig: id}
	}
	return prefix + id, nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
