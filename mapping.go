// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

// Mapping is one contiguous block of a contig matched to a single partner,
// after LRS selection has collapsed possibly-several input runs of that
// partner into one entry (§4.5).
type Mapping struct {
	Partner   string
	Start     int
	End       int
	Length    int
	Direction Direction
}

// SummarizeMapping walks runs in LRS-selected order and merges adjacent
// selected runs that share a partner into single Mapping entries (§4.5).
// Adjacent runs of the same partner can arise even though ExtractRuns never
// emits two adjacent runs with the same partner itself: selection can drop
// the differently-labelled runs that originally separated them, bringing
// two same-partner runs together in the output order.
//
// orientations is the contig's row of the table returned by
// EstimateOrientations for this side; a partner absent from it (no
// alignment ever observed) defaults to Forward.
func SummarizeMapping(runs []Run, selected []int, orientations map[string]Direction) []Mapping {
	var mappings []Mapping
	for _, idx := range selected {
		r := runs[idx]
		if n := len(mappings); n > 0 && mappings[n-1].Partner == r.Partner {
			mappings[n-1].End = r.EndWindow
			mappings[n-1].Length = mappings[n-1].End - mappings[n-1].Start + WindowSize
			continue
		}
		dir, ok := orientations[r.Partner]
		if !ok {
			dir = Forward
		}
		mappings = append(mappings, Mapping{
			Partner:   r.Partner,
			Start:     r.StartWindow,
			End:       r.EndWindow,
			Length:    r.EndWindow - r.StartWindow + WindowSize,
			Direction: dir,
		})
	}
	return mappings
}

// MappingTable is the per-contig, per-partner mapping set used by the
// conflict resolver and the locus graph builder: table[contig][partner] is
// the single Mapping between them (runs are already merged by
// SummarizeMapping, so there is at most one entry per pair).
type MappingTable map[string]map[string]Mapping

// BuildMappingTable indexes a side's per-contig mapping lists by contig and
// partner.
func BuildMappingTable(byContig map[string][]Mapping) MappingTable {
	t := make(MappingTable, len(byContig))
	for contig, ms := range byContig {
		row := make(map[string]Mapping, len(ms))
		for _, m := range ms {
			row[m.Partner] = m
		}
		t[contig] = row
	}
	return t
}
