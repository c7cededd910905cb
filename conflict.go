// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"log"
	"sort"
)

// ResolveConflicts runs the two-pass conflict resolver over a pair of
// mapping tables (§4.6), mutating neither input but returning pruned
// copies. ref and qry must be each other's mirror: ref[r][q] exists iff
// qry[q][r] is meant to be its reciprocal. logger may be nil.
func ResolveConflicts(ref, qry MappingTable, noref bool, logger *log.Logger) (MappingTable, MappingTable) {
	ref, qry = cloneTable(ref), cloneTable(qry)

	pruneNonReciprocal(ref, qry)
	pruneNonReciprocal(qry, ref)

	resolveMiddlePartners(ref, qry, noref)
	if noref {
		resolveMiddlePartners(qry, ref, noref)
	}

	dropEmpty(ref)
	dropEmpty(qry)

	if !noref && logger != nil {
		for _, qid := range sortedKeys(qry) {
			if len(qry[qid]) > 1 {
				logBranchingUnresolved(logger, qid, sortedKeys(qry[qid]))
			}
		}
	}

	return ref, qry
}

func cloneTable(t MappingTable) MappingTable {
	out := make(MappingTable, len(t))
	for contig, row := range t {
		r := make(map[string]Mapping, len(row))
		for partner, m := range row {
			r[partner] = m
		}
		out[contig] = r
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pruneNonReciprocal is Pass 1 (§4.6): for each (a, b) in from, if the
// reciprocal entry is missing on the other side, drop b from from[a].
func pruneNonReciprocal(from, to MappingTable) {
	for _, a := range sortedKeys(from) {
		for _, b := range sortedKeys(from[a]) {
			row, ok := to[b]
			if !ok || row == nil {
				delete(from[a], b)
				continue
			}
			if _, ok := row[a]; !ok {
				delete(from[a], b)
			}
		}
	}
}

// resolveMiddlePartners is Pass 2 (§4.6). from is the side being swept
// (e.g. ref, resolving which qry partners each ref contig keeps); to is
// the other side's table, consulted and mutated symmetrically.
//
// When noref, only "middle" partners (excluding the earliest-start and
// latest-end partner of each "from" contig) are candidates; otherwise
// every partner is a candidate.
func resolveMiddlePartners(from, to MappingTable, noref bool) {
	for _, a := range sortedKeys(from) {
		row := from[a]
		if len(row) == 0 {
			continue
		}

		var candidates []string
		if noref {
			candidates = middlePartners(row)
		} else {
			candidates = sortedKeys(row)
		}

		for _, b := range candidates {
			if _, ok := row[b]; !ok {
				continue // already pruned by an earlier candidate's resolution
			}
			otherRow, ok := to[b]
			if !ok || len(otherRow) <= 1 {
				continue
			}

			mine := otherRow[a].Length
			rest := 0
			for _, other := range sortedKeys(otherRow) {
				if other != a {
					rest += otherRow[other].Length
				}
			}

			if mine > rest {
				for _, other := range sortedKeys(otherRow) {
					if other == a {
						continue
					}
					delete(otherRow, other)
					if r, ok := from[other]; ok {
						delete(r, b)
					}
				}
			} else {
				delete(row, b)
				delete(otherRow, a)
			}
		}
	}
}

// middlePartners returns row's keys excluding the one with the earliest
// Start and the one with the latest End (the two "edge" partners), in
// deterministic (sorted) order. If a single partner is both edges, only
// that one is excluded.
func middlePartners(row map[string]Mapping) []string {
	keys := sortedKeys(row)
	if len(keys) == 0 {
		return nil
	}
	startKey, endKey := keys[0], keys[0]
	for _, k := range keys[1:] {
		if row[k].Start < row[startKey].Start {
			startKey = k
		}
		if row[k].End > row[endKey].End {
			endKey = k
		}
	}
	exclude := map[string]bool{startKey: true, endKey: true}
	var out []string
	for _, k := range keys {
		if !exclude[k] {
			out = append(out, k)
		}
	}
	return out
}

func dropEmpty(t MappingTable) {
	for contig, row := range t {
		if len(row) == 0 {
			delete(t, contig)
		}
	}
}
