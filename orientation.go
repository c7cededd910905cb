// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import "sort"

// sideContigs returns the (contig, partner) pair an alignment contributes
// when viewed from the given side: the contig under examination and the
// contig on the other side it aligns to.
func sideContigs(side Side, a Alignment) (contig, partner string) {
	if side == Ref {
		return a.RefChr, a.QryChr
	}
	return a.QryChr, a.RefChr
}

// sideInterval returns the alignment's footprint on the contig under
// examination, in the inversion-corrected (ascending) coordinate frame
// §3 specifies for window binning: ref coordinates are used as-is (RefDir
// is always +1); qry coordinates have QryStart/QryEnd swapped when
// QryDir is -1, restoring the ascending order the windowing and
// orientation-estimation sweeps both require.
func sideInterval(side Side, a Alignment) (start, end int) {
	if side == Ref {
		start, end = a.RefStart, a.RefEnd
	} else {
		start, end = a.QryStart, a.QryEnd
		if a.QryDir == Reverse {
			start, end = end, start
		}
	}
	if start > end {
		start, end = end, start
	}
	return start, end
}

// EstimateOrientations computes, for every (contig, partner) pair observed
// when viewing alignments from the given side, the direction that
// maximizes merged alignment length: +1 if the forward (QryDir == +1)
// intervals cover at least as many bases as the inverted ones, else -1
// (§4.2).
func EstimateOrientations(side Side, alignments []Alignment) map[string]map[string]Direction {
	type key struct{ contig, partner string }
	forward := make(map[key][][2]int)
	inverted := make(map[key][][2]int)
	seen := make(map[key]bool)
	var order []key

	for _, a := range alignments {
		contig, partner := sideContigs(side, a)
		k := key{contig, partner}
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
		start, end := sideInterval(side, a)
		if a.QryDir == Forward {
			forward[k] = append(forward[k], [2]int{start, end})
		} else {
			inverted[k] = append(inverted[k], [2]int{start, end})
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].contig != order[j].contig {
			return order[i].contig < order[j].contig
		}
		return order[i].partner < order[j].partner
	})

	result := make(map[string]map[string]Direction)
	for _, k := range order {
		fwd := mergedCoverage(append([][2]int(nil), forward[k]...))
		inv := mergedCoverage(append([][2]int(nil), inverted[k]...))
		dir := Forward
		if inv > fwd {
			dir = Reverse
		}
		m, ok := result[k.contig]
		if !ok {
			m = make(map[string]Direction)
			result[k.contig] = m
		}
		m[k.partner] = dir
	}
	return result
}
