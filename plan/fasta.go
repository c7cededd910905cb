// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan renders chroder's assembly plan to the collaborator-facing
// output formats: concatenated pseudochromosome FASTA and a tab-separated
// annotation table. Neither file format is part of the core
// reconciliation algorithm; both are the "plan-file formatting" the core
// leaves to its caller.
package plan

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/chroder"
)

// WriteFASTA concatenates each pseudochromosome's oriented contigs (
// reverse-complementing via (*linear.Seq).RevComp when the orientation is
// -1), separated by ncount N bases, into "<out>.ref.fasta" and
// "<out>.qry.fasta".
func WriteFASTA(out string, chrs []chroder.Pseudochromosome, refSeqs, qrySeqs map[string]*linear.Seq, ncount int) error {
	refFile, err := os.Create(out + ".ref.fasta")
	if err != nil {
		return err
	}
	defer refFile.Close()
	qryFile, err := os.Create(out + ".qry.fasta")
	if err != nil {
		return err
	}
	defer qryFile.Close()

	spacer := strings.Repeat("N", ncount)
	for _, p := range chrs {
		if err := writeConcatenated(refFile, p.ID, p.RefContigs, p.RefOrientations, refSeqs, spacer); err != nil {
			return err
		}
		if err := writeConcatenated(qryFile, p.ID, p.QryContigs, p.QryOrientations, qrySeqs, spacer); err != nil {
			return err
		}
	}
	return nil
}

func writeConcatenated(w io.Writer, id string, contigs []string, dirs []chroder.Direction, seqs map[string]*linear.Seq, spacer string) error {
	if _, err := fmt.Fprintf(w, ">%s\n", id); err != nil {
		return err
	}
	for i, c := range contigs {
		if i > 0 {
			if _, err := io.WriteString(w, spacer); err != nil {
				return err
			}
		}
		s, ok := seqs[c]
		if !ok {
			return fmt.Errorf("chroder: no sequence loaded for contig %q", c)
		}
		if dirs[i] == chroder.Reverse {
			rc, err := s.RevComp()
			if err != nil {
				return fmt.Errorf("chroder: reverse-complementing %q: %w", c, err)
			}
			s = rc.(*linear.Seq)
		}
		if _, err := w.Write(letterBytes(s)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteAnnotation writes one ">id" block per pseudochromosome, each
// followed by four tab-separated lines: ref contig order, ref
// orientations, qry contig order, qry orientations — the Go translation
// of the original's fout writing tail.
func WriteAnnotation(out string, chrs []chroder.Pseudochromosome) error {
	f, err := os.Create(out + ".anno")
	if err != nil {
		return err
	}
	defer f.Close()

	for _, p := range chrs {
		if _, err := fmt.Fprintf(f, ">%s\n", p.ID); err != nil {
			return err
		}
		if err := writeRow(f, p.RefContigs); err != nil {
			return err
		}
		if err := writeDirRow(f, p.RefOrientations); err != nil {
			return err
		}
		if err := writeRow(f, p.QryContigs); err != nil {
			return err
		}
		if err := writeDirRow(f, p.QryOrientations); err != nil {
			return err
		}
	}
	return nil
}

// letterBytes copies a sequence's raw letters into a plain byte slice;
// alphabet.Letters is a named byte-element slice so is not itself directly
// writable.
func letterBytes(s *linear.Seq) []byte {
	b := make([]byte, s.Len())
	for i, l := range s.Seq {
		b[i] = byte(l)
	}
	return b
}

func writeRow(w io.Writer, vals []string) error {
	_, err := fmt.Fprintln(w, strings.Join(vals, "\t"))
	return err
}

func writeDirRow(w io.Writer, dirs []chroder.Direction) error {
	strs := make([]string, len(dirs))
	for i, d := range dirs {
		strs[i] = fmt.Sprintf("%d", d)
	}
	_, err := fmt.Fprintln(w, strings.Join(strs, "\t"))
	return err
}
