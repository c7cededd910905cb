// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Component is one connected group of mutually-mapped ref and qry contigs
// (§4.7 "Component discovery"), with contigs sorted for deterministic
// downstream processing.
type Component struct {
	RefContigs []string
	QryContigs []string
}

// nodeIndex assigns a stable int64 node ID to every contig referenced by
// either table, ref contigs first then qry contigs, so a single
// simple.UndirectedGraph can hold both sides of the bipartite mapping.
type nodeIndex struct {
	id     map[string]int64
	contig map[int64]string
	side   map[int64]Side
}

func newNodeIndex(ref, qry MappingTable) *nodeIndex {
	idx := &nodeIndex{
		id:     make(map[string]int64),
		contig: make(map[int64]string),
		side:   make(map[int64]Side),
	}
	var next int64
	add := func(contig string, side Side) {
		if _, ok := idx.id[contig]; ok {
			return
		}
		idx.id[contig] = next
		idx.contig[next] = contig
		idx.side[next] = side
		next++
	}
	for _, c := range sortedKeys(ref) {
		add(c, Ref)
	}
	for _, c := range sortedKeys(qry) {
		add(c, Qry)
	}
	return idx
}

// DiscoverComponents builds the bipartite contig-adjacency graph implied by
// a pair of (already conflict-resolved) mapping tables and splits it into
// connected components via BFS/union-find over reciprocal mappings (§4.7).
func DiscoverComponents(ref, qry MappingTable) []Component {
	idx := newNodeIndex(ref, qry)

	g := simple.NewUndirectedGraph()
	for id := range idx.contig {
		g.AddNode(simple.Node(id))
	}
	for _, rid := range sortedKeys(ref) {
		ru := idx.id[rid]
		for _, qid := range sortedKeys(ref[rid]) {
			qu := idx.id[qid]
			if g.HasEdgeBetween(ru, qu) {
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(ru), T: simple.Node(qu)})
		}
	}

	var components []Component
	for _, cc := range topo.ConnectedComponents(g) {
		var refs, qrys []string
		for _, n := range cc {
			id := n.ID()
			if idx.side[id] == Ref {
				refs = append(refs, idx.contig[id])
			} else {
				qrys = append(qrys, idx.contig[id])
			}
		}
		sort.Strings(refs)
		sort.Strings(qrys)
		components = append(components, Component{RefContigs: refs, QryContigs: qrys})
	}

	sort.Slice(components, func(i, j int) bool {
		a, b := components[i], components[j]
		switch {
		case len(a.RefContigs) > 0 && len(b.RefContigs) > 0:
			return a.RefContigs[0] < b.RefContigs[0]
		case len(a.RefContigs) > 0:
			return true
		case len(b.RefContigs) > 0:
			return false
		default:
			return a.QryContigs[0] < b.QryContigs[0]
		}
	})
	return components
}

// locus is one node of a component's locus graph (§4.7): a (contig,
// position) pair with up to two self-neighbors (adjacent positions within
// the same contig) and zero or more alignment neighbors on the other side.
type locus struct {
	contig string
	side   Side
	pos    int
	up     int // index into the component's locus slice, or -1
	down   int // index into the component's locus slice, or -1
	align  []int
}

func (l locus) isEnd() bool { return l.up == -1 || l.down == -1 }

// locusGraph is the fully-built locus graph for one component, ready for
// path enumeration.
type locusGraph struct {
	loci []locus
}

// buildLocusGraph lays out positionIndex nodes for every contig in the
// component (ordered by ascending mapping Start per §4.7 "Locus layout"),
// links self-neighbors within each contig, and wires alignment-neighbor
// edges between corresponding ref/qry positions according to each
// mapping's recorded direction.
func buildLocusGraph(c Component, ref, qry MappingTable) locusGraph {
	refOrder := partnerOrder(c.RefContigs, ref)
	qryOrder := partnerOrder(c.QryContigs, qry)

	var loci []locus
	refHead := make(map[string]int, len(c.RefContigs))
	for _, rid := range c.RefContigs {
		refHead[rid] = len(loci)
		for pos := range refOrder[rid] {
			loci = append(loci, locus{contig: rid, side: Ref, pos: pos})
		}
		loci = append(loci, locus{contig: rid, side: Ref, pos: len(refOrder[rid])})
	}

	qryHead := make(map[string]int, len(c.QryContigs))
	for _, qid := range c.QryContigs {
		qryHead[qid] = len(loci)
		for pos := range qryOrder[qid] {
			loci = append(loci, locus{contig: qid, side: Qry, pos: pos})
		}
		loci = append(loci, locus{contig: qid, side: Qry, pos: len(qryOrder[qid])})
	}

	for i := range loci {
		loci[i].up, loci[i].down = -1, -1
	}
	linkSelfNeighbors := func(head, n int) {
		for i := 0; i < n; i++ {
			idx := head + i
			if i > 0 {
				loci[idx].up = idx - 1
			}
			if i < n-1 {
				loci[idx].down = idx + 1
			}
		}
	}
	for _, rid := range c.RefContigs {
		linkSelfNeighbors(refHead[rid], len(refOrder[rid])+1)
	}
	for _, qid := range c.QryContigs {
		linkSelfNeighbors(qryHead[qid], len(qryOrder[qid])+1)
	}

	indexOf := func(order []string, id string) int {
		for i, v := range order {
			if v == id {
				return i
			}
		}
		return -1
	}

	for _, rid := range c.RefContigs {
		rh := refHead[rid]
		for _, qid := range refOrder[rid] {
			qh := qryHead[qid] + indexOf(qryOrder[qid], rid)
			m := ref[rid][qid]
			if m.Direction == Forward {
				loci[rh].align = append(loci[rh].align, qh)
				loci[rh+1].align = append(loci[rh+1].align, qh+1)
			} else {
				loci[rh].align = append(loci[rh].align, qh+1)
				loci[rh+1].align = append(loci[rh+1].align, qh)
			}
			rh = loci[rh].down
		}
	}
	for _, qid := range c.QryContigs {
		qh := qryHead[qid]
		for _, rid := range qryOrder[qid] {
			rh := refHead[rid] + indexOf(refOrder[rid], qid)
			m := qry[qid][rid]
			if m.Direction == Forward {
				loci[qh].align = append(loci[qh].align, rh)
				loci[qh+1].align = append(loci[qh+1].align, rh+1)
			} else {
				loci[qh].align = append(loci[qh].align, rh+1)
				loci[qh+1].align = append(loci[qh+1].align, rh)
			}
			qh = loci[qh].down
		}
	}

	return locusGraph{loci: loci}
}

// partnerOrder returns, for each contig in contigs, its partner contigs
// ordered by ascending mapping Start (§4.7 "Partners are ordered by
// ascending start").
func partnerOrder(contigs []string, table MappingTable) map[string][]string {
	order := make(map[string][]string, len(contigs))
	for _, c := range contigs {
		row := table[c]
		partners := sortedKeys(row)
		sort.Slice(partners, func(i, j int) bool { return row[partners[i]].Start < row[partners[j]].Start })
		order[c] = partners
	}
	return order
}
