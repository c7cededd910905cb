// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"log"
	"sort"
)

// tracedPath is one complete traversal of a component's locus graph: the
// sequence of ref-side and qry-side locus indices visited, in lockstep
// (§4.7 "Path enumeration").
type tracedPath struct {
	refPath []int
	qryPath []int
}

// pathFrame is a saved branch point: a snapshot of the in-progress path to
// resume, together with the alternate (ref, qry) locus pair it should
// resume from.
type pathFrame struct {
	rout, qout []int
	rdir       int
	pendingRef int
	pendingQry int
}

// EnumeratePaths walks every valid starting endpoint of a component's locus
// graph and returns every complete, self-consistent path found (§4.7).
// Invalid traversal states are logged via logger (may be nil) and end the
// tracing from that starting endpoint, pending branches included, rather
// than aborting the whole component.
func EnumeratePaths(lg locusGraph, logger *log.Logger) []tracedPath {
	endpoints := startingEndpoints(lg)
	if len(endpoints) == 0 {
		if logger != nil {
			logCircularComponent(logger, contigsOnSide(lg, Ref), contigsOnSide(lg, Qry))
		}
		return nil
	}

	var paths []tracedPath
	for _, e := range endpoints {
		paths = append(paths, tracePathsFrom(lg, e, logger)...)
	}
	return dedupReversePaths(dropNonUnique(paths))
}

func contigsOnSide(lg locusGraph, side Side) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lg.loci {
		if l.side == side && !seen[l.contig] {
			seen[l.contig] = true
			out = append(out, l.contig)
		}
	}
	sort.Strings(out)
	return out
}

type endpoint struct{ ref, qry int }

// startingEndpoints finds every (refLocus, qryLocus) pair that are both
// contig ends and mutual alignment neighbors (§4.7 "End identification").
func startingEndpoints(lg locusGraph) []endpoint {
	loci := lg.loci
	seen := make(map[endpoint]bool)
	var out []endpoint
	for k, v := range loci {
		if !v.isEnd() || len(v.align) == 0 {
			continue
		}
		partner := v.align[0]
		if !loci[partner].isEnd() {
			continue
		}
		var e endpoint
		if v.side == Ref {
			e = endpoint{ref: k, qry: partner}
		} else {
			e = endpoint{ref: partner, qry: k}
		}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ref != out[j].ref {
			return out[i].ref < out[j].ref
		}
		return out[i].qry < out[j].qry
	})
	return out
}

func dirOf(up int) int {
	if up == -1 {
		return 1
	}
	return -1
}

func firstOtherThan(xs []int, not int) (int, bool) {
	for _, x := range xs {
		if x != not {
			return x, true
		}
	}
	return 0, false
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// tracePathsFrom runs the alternating self-edge traversal from a single
// starting endpoint, exploring every branch via an explicit stack, exactly
// mirroring the original divide between "current path" and "pending
// alternatives" (§4.7 "Path enumeration").
func tracePathsFrom(lg locusGraph, start endpoint, logger *log.Logger) []tracedPath {
	loci := lg.loci

	ends := [2]int{start.ref, start.qry}
	rdir := dirOf(loci[ends[0]].up)
	qdir := dirOf(loci[ends[1]].up)

	rout := []int{ends[0]}
	qout := []int{ends[1]}

	var stack []pathFrame
	var paths []tracedPath

	for {
		if rdir != 0 {
			if rdir == 1 {
				ends[0] = loci[ends[0]].down
			} else {
				ends[0] = loci[ends[0]].up
			}
		}
		if qdir != 0 {
			if qdir == 1 {
				ends[1] = loci[ends[1]].down
			} else {
				ends[1] = loci[ends[1]].up
			}
		}
		if rdir == 0 {
			if contains(loci[ends[1]].align, loci[ends[0]].up) {
				ends[0] = loci[ends[0]].up
			} else {
				ends[0] = loci[ends[0]].down
			}
		}
		if qdir == 0 {
			if contains(loci[ends[0]].align, loci[ends[1]].up) {
				ends[1] = loci[ends[1]].up
			} else {
				ends[1] = loci[ends[1]].down
			}
		}

		rout = append(rout, ends[0])
		qout = append(qout, ends[1])

		if !contains(loci[ends[0]].align, ends[1]) || !contains(loci[ends[1]].align, ends[0]) {
			if logger != nil {
				logTraversalError(logger, 0, "locus %d and %d are not mutual alignment neighbors", ends[0], ends[1])
			}
			break
		}

		if len(loci[ends[0]].align) > 1 && len(loci[ends[1]].align) > 1 {
			altQry, _ := firstOtherThan(loci[ends[0]].align, ends[1])
			stack = append(stack, pathFrame{
				rout:       append([]int(nil), rout...),
				qout:       append([]int(nil), qout...),
				rdir:       rdir,
				pendingRef: ends[0],
				pendingQry: altQry,
			})
			altRef, _ := firstOtherThan(loci[ends[1]].align, ends[0])
			ends[0] = altRef
			rout = append(rout, ends[0])
			if len(loci[ends[0]].align) == 1 {
				rdir = dirOf(loci[ends[0]].up)
			} else {
				rdir = 0
			}
			continue
		}

		if len(loci[ends[0]].align) == 1 && len(loci[ends[1]].align) == 1 {
			paths = append(paths, tracedPath{refPath: rout, qryPath: qout})
			if len(stack) > 0 {
				f := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				ends[0] = f.pendingRef
				ends[1] = f.pendingQry
				rout = f.rout
				qout = append(f.qout, ends[1])
				rdir = f.rdir
				if len(loci[ends[1]].align) == 1 {
					qdir = dirOf(loci[ends[1]].up)
				} else {
					qdir = 0
				}
				continue
			}
			break
		}

		if loci[ends[0]].isEnd() {
			alt, _ := firstOtherThan(loci[ends[1]].align, ends[0])
			ends[0] = alt
			rout = append(rout, ends[0])
			if len(loci[ends[0]].align) == 1 {
				rdir = dirOf(loci[ends[0]].up)
			} else {
				rdir = 0
			}
			continue
		}

		if loci[ends[1]].isEnd() {
			alt, _ := firstOtherThan(loci[ends[0]].align, ends[1])
			ends[1] = alt
			qout = append(qout, ends[1])
			if len(loci[ends[1]].align) == 1 {
				qdir = dirOf(loci[ends[1]].up)
			} else {
				qdir = 0
			}
			continue
		}

		// No recognized transition applies; the graph is malformed.
		if logger != nil {
			logTraversalError(logger, 0, "no valid transition from locus %d/%d", ends[0], ends[1])
		}
		break
	}

	return paths
}

// dropNonUnique discards any path that visits a locus more than once
// (§4.7 invariant, §7 NonUniquePath).
func dropNonUnique(paths []tracedPath) []tracedPath {
	var out []tracedPath
	for _, p := range paths {
		if hasDuplicate(p.refPath) || hasDuplicate(p.qryPath) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasDuplicate(xs []int) bool {
	seen := make(map[int]bool, len(xs))
	for _, x := range xs {
		if seen[x] {
			return true
		}
		seen[x] = true
	}
	return false
}

// dedupReversePaths discards any path whose ref- or qry-side sequence is
// the exact reverse of one already kept (§4.7 "Path deduplication").
func dedupReversePaths(paths []tracedPath) []tracedPath {
	var kept []tracedPath
	for _, p := range paths {
		dup := false
		for _, k := range kept {
			if equalReversed(p.refPath, k.refPath) || equalReversed(p.qryPath, k.qryPath) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, p)
		}
	}
	return kept
}

func equalReversed(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[len(b)-1-i] {
			return false
		}
	}
	return true
}

// scoredPath pairs a traced path with its deduplicated (first-occurrence
// order) contig lists and its selection score.
type scoredPath struct {
	path  tracedPath
	rids  []string
	qids  []string
	score float64
}

// BestPath scores every candidate path as the mean of (total ref contig
// length, total qry contig length) and returns the highest-scoring one,
// ties broken by insertion order (§4.7 "Best path selection").
func BestPath(lg locusGraph, paths []tracedPath, refLen, qryLen map[string]int) (scoredPath, bool) {
	var best scoredPath
	found := false
	for _, p := range paths {
		rids := uniqueContigsInOrder(lg, p.refPath)
		qids := uniqueContigsInOrder(lg, p.qryPath)
		var rsum, qsum int
		for _, r := range rids {
			rsum += refLen[r]
		}
		for _, q := range qids {
			qsum += qryLen[q]
		}
		score := float64(rsum+qsum) / 2
		if !found || score > best.score {
			best = scoredPath{path: p, rids: rids, qids: qids, score: score}
			found = true
		}
	}
	return best, found
}

func uniqueContigsInOrder(lg locusGraph, locusPath []int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, idx := range locusPath {
		c := lg.loci[idx].contig
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// AssignOrientations walks a chosen side-path and assigns each contig's
// orientation the first time it is seen, deferring contigs whose head
// locus had two alignment neighbors (an ambiguous branch point) until the
// following contig resolves it via the "last" flag (§4.7 "Orientation
// assignment").
func AssignOrientations(lg locusGraph, locusPath []int) map[string]Direction {
	dirs := make(map[string]Direction)
	last := ""
	for _, idx := range locusPath {
		l := lg.loci[idx]
		if _, ok := dirs[l.contig]; ok {
			continue
		}
		if len(l.align) == 2 {
			last = l.contig
			continue
		}
		switch {
		case l.up == -1:
			if last != "" {
				dirs[l.contig] = Reverse
			} else {
				dirs[l.contig] = Forward
			}
		case l.down == -1:
			if last != "" {
				dirs[l.contig] = Forward
			} else {
				dirs[l.contig] = Reverse
			}
		}
		last = ""
	}
	return dirs
}
