// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ContigLengths reads a multi-FASTA assembly and returns each sequence's
// length keyed by its contig ID, prefixed as ReadAlignments prefixes the
// corresponding side of the coordinate file, so the two maps index the
// same namespace the core operates in.
func ContigLengths(path, prefix string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lengths := make(map[string]int)
	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		id, err := prefixed(prefix, s.ID)
		if err != nil {
			return nil, err
		}
		lengths[id] = s.Len()
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return lengths, nil
}

// Sequences reads a multi-FASTA assembly into memory, keyed the same way
// as ContigLengths, for use by the plan writer's FASTA output.
func Sequences(path, prefix string) (map[string]*linear.Seq, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seqs := make(map[string]*linear.Seq)
	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		id, err := prefixed(prefix, s.ID)
		if err != nil {
			return nil, err
		}
		seqs[id] = s
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return seqs, nil
}
