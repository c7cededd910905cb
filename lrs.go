// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"fmt"
	"sort"
)

// SolveLRS returns the indices (into runs, ascending) of the longest run
// subsequence of runs: the maximum-total-length subset of runs, selected
// in order, such that every distinct partner appears as a single
// contiguous block in the result (§4.4).
//
// The solver never panics outward: any internal invariant violation is
// recovered and returned as an error, matching the "bubble as LrsFailure"
// policy of §7 (the caller attaches contig/side context).
func SolveLRS(runs []Run) (selected []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("lrs: %v", r)
			}
		}
	}()

	if len(runs) == 0 {
		return nil, nil
	}

	symOf := make(map[string]int, len(runs))
	nodes := make([]lrsNode, len(runs))
	for i, r := range runs {
		sym, ok := symOf[r.Partner]
		if !ok {
			sym = len(symOf)
			symOf[r.Partner] = sym
		}
		nodes[i] = lrsNode{sym: sym, length: r.Length, leaf: i}
	}

	sol := reduceConcat(nodes)
	sort.Ints(sol.selected)
	return sol.selected, nil
}

// lrsNode is one element of a run sequence at some level of the
// concat/nested recursion. A genuine input run has leaf set to its index
// in the original top-level Run slice; a placeholder introduced by the
// nested rule has leaf == -1 and sub set to the (already fully expanded,
// in terms of original indices) solution it stands for.
type lrsNode struct {
	sym    int
	length int
	leaf   int
	sub    *lrsSolution
}

// lrsSolution is one optimal solution to an LRS (sub-)instance: its total
// selected length, and the selected original-level indices in ascending
// order. Only one optimal solution is tracked per instance (the original
// Python implementation tracks every tied optimum but only ever consumes
// the first; chroder only ever needs one valid optimum too).
type lrsSolution struct {
	size     int
	selected []int
}

// occurrences returns, for every distinct symbol in s, the first and last
// local position (0-indexed) at which it occurs.
func occurrences(s []lrsNode) (first, last map[int]int) {
	first = make(map[int]int)
	last = make(map[int]int)
	for i, n := range s {
		if _, ok := first[n.sym]; !ok {
			first[n.sym] = i
		}
		last[n.sym] = i
	}
	return first, last
}

// reduceConcat partitions s into maximal intervals such that every symbol
// occurring inside an interval has all of its occurrences within that
// same interval, solves each interval independently via the nested rule,
// and concatenates the results (§4.4 "Concat rule").
func reduceConcat(s []lrsNode) lrsSolution {
	_, last := occurrences(s)

	var size int
	var selected []int
	pos := 0
	for pos < len(s) {
		start := pos
		end := last[s[start].sym] + 1
		p := start + 1
		for p < end {
			if last[s[p].sym]+1 > end {
				end = last[s[p].sym] + 1
			}
			p++
		}

		sub := reduceNested(s[start:end])
		size += sub.size
		selected = append(selected, sub.selected...)
		pos = end
	}

	return lrsSolution{size: size, selected: selected}
}

// reduceNested looks for symbols whose span is nested strictly inside s,
// solves those sub-instances independently, compresses s by replacing
// each with a placeholder run, and solves the compressed instance with
// the base DP, expanding placeholders back out of the result (§4.4
// "Nested rule").
func reduceNested(s []lrsNode) lrsSolution {
	if len(s) == 0 {
		return lrsSolution{}
	}

	first, last := occurrences(s)

	sigma := make([]int, 0, len(first))
	for sym := range first {
		sigma = append(sigma, sym)
	}
	// Widest spread first, to avoid finding "nested" independent
	// intervals before their containing interval. Ties break on the
	// lower first-occurrence position: deterministic, unlike the
	// Python reference's reliance on set iteration order.
	sort.Slice(sigma, func(i, j int) bool {
		si, sj := sigma[i], sigma[j]
		spreadI := last[si] - first[si]
		spreadJ := last[sj] - first[sj]
		if spreadI != spreadJ {
			return spreadI > spreadJ
		}
		return first[si] < first[sj]
	})

	checked := make(map[int]bool)
	type span struct{ start, end int }
	var independent []span

	for _, sym := range sigma {
		if checked[sym] {
			continue
		}

		leftBound := first[sym]
		rightBound := last[sym] + 1
		charsIn := map[int]bool{sym: true}

		left := leftBound - 1
		right := leftBound + 1
		for left > leftBound || right < rightBound-1 {
			var c int
			if right < rightBound-1 {
				c = s[right].sym
				right++
			} else {
				c = s[left].sym
				left--
			}
			charsIn[c] = true
			if first[c] < leftBound {
				leftBound = first[c]
			}
			if last[c]+1 > rightBound {
				rightBound = last[c] + 1
			}
		}

		if leftBound > 0 || rightBound < len(s) {
			independent = append(independent, span{leftBound, rightBound})
			for c := range charsIn {
				checked[c] = true
			}
		}
	}

	if len(independent) == 0 {
		return expandSolution(s, dpBase(s))
	}

	sort.Slice(independent, func(i, j int) bool { return independent[i].start < independent[j].start })

	type solved struct {
		span span
		sol  lrsSolution
	}
	var groups []solved
	gLeft, gRight := independent[0].start, independent[0].start
	flush := func() {
		if gRight-gLeft >= 2 {
			groups = append(groups, solved{span{gLeft, gRight}, reduceConcat(s[gLeft:gRight])})
		}
	}
	for _, iv := range independent {
		if iv.start == gRight {
			gRight = iv.end
			continue
		}
		flush()
		gLeft, gRight = iv.start, iv.end
	}
	flush()

	if len(groups) == 0 {
		return expandSolution(s, dpBase(s))
	}

	var s0 []lrsNode
	pos := 0
	for i, g := range groups {
		s0 = append(s0, s[pos:g.span.start]...)
		sub := g.sol.clone()
		s0 = append(s0, lrsNode{
			sym:    -(i + 1), // unique placeholder symbol, never collides with a real (>=0) symbol
			length: g.sol.size,
			leaf:   -1,
			sub:    &sub,
		})
		pos = g.span.end
	}
	s0 = append(s0, s[pos:]...)

	return expandSolution(s0, dpBase(s0))
}

// expandSolution translates a dpBase result — local indices into nodes —
// into original-level indices, resolving each selected node to its own
// leaf index or (if it is a placeholder) splicing in its sub-solution's
// already-expanded selection (§4.4 "expand any placeholder").
func expandSolution(nodes []lrsNode, sol lrsSolution) lrsSolution {
	var out []int
	for _, idx := range sol.selected {
		n := nodes[idx]
		if n.leaf >= 0 {
			out = append(out, n.leaf)
		} else {
			out = append(out, n.sub.selected...)
		}
	}
	return lrsSolution{size: sol.size, selected: out}
}

// clone returns a copy of a solution so each placeholder node owns its
// own solution value rather than aliasing the loop variable.
func (s lrsSolution) clone() lrsSolution {
	return lrsSolution{size: s.size, selected: append([]int(nil), s.selected...)}
}

// backPtr is a DP backtracking pointer: the predecessor column and the
// subalphabet bitset reached there.
type backPtr struct {
	col  int
	mask uint64
}

// dpBase is the bitset DP base case (§4.4): D[col][A] is the maximum total
// length of a valid subsequence ending at position col (1-indexed,
// inclusive) whose set of distinct symbols equals the bitset A.
func dpBase(s []lrsNode) lrsSolution {
	if len(s) == 0 {
		return lrsSolution{}
	}

	symIdx := make(map[int]int)
	for _, n := range s {
		if _, ok := symIdx[n.sym]; !ok {
			symIdx[n.sym] = len(symIdx)
		}
	}
	m := len(symIdx)
	if m > 63 {
		panic(fmt.Errorf("lrs: local alphabet too large for bitset dp (%d symbols)", m))
	}

	n := len(s)
	// pred[col][c] = largest 1-indexed position < col whose symbol index
	// is c, or 0 if none.
	pred := make([][]int, n+1)
	for i := range pred {
		pred[i] = make([]int, m)
	}
	lastSeen := make([]int, m)
	for col := 1; col <= n; col++ {
		copy(pred[col], lastSeen)
		lastSeen[symIdx[s[col-1].sym]] = col
	}

	D := make([]map[uint64]int, n+1)
	B := make([]map[uint64]backPtr, n+1)
	for i := range D {
		D[i] = make(map[uint64]int)
		B[i] = make(map[uint64]backPtr)
	}
	D[0][0] = 0
	B[0][0] = backPtr{-1, 0}

	bestCol, bestMask, bestSize := 0, uint64(0), 0

	for col := 1; col <= n; col++ {
		length := s[col-1].length
		sIdx := symIdx[s[col-1].sym]

		for c := 0; c < m; c++ {
			pr := pred[col][c]
			if c == sIdx && pr > 0 {
				for mask, val := range D[pr] {
					if cand := val + length; cand > D[col][mask] {
						D[col][mask] = cand
						B[col][mask] = backPtr{pr, mask}
					}
				}
				continue
			}
			for mask, val := range D[pr] {
				if mask&(1<<uint(sIdx)) != 0 {
					continue
				}
				newMask := mask | (1 << uint(sIdx))
				if cand := val + length; cand > D[col][newMask] {
					D[col][newMask] = cand
					B[col][newMask] = backPtr{pr, mask}
				}
			}
		}

		masks := make([]uint64, 0, len(D[col]))
		for mask := range D[col] {
			masks = append(masks, mask)
		}
		sort.Slice(masks, func(i, j int) bool { return masks[i] < masks[j] })
		for _, mask := range masks {
			if D[col][mask] > bestSize {
				bestSize = D[col][mask]
				bestCol = col
				bestMask = mask
			}
		}
	}

	// selected holds positions local to s (0-indexed); the caller expands
	// each position to original-level indices via expandSolution, since
	// dpBase has no notion of placeholder vs. leaf nodes.
	var selected []int
	col, mask := bestCol, bestMask
	for col > 0 {
		selected = append(selected, col-1)
		bp := B[col][mask]
		col, mask = bp.col, bp.mask
	}
	for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
		selected[i], selected[j] = selected[j], selected[i]
	}
	return lrsSolution{size: bestSize, selected: selected}
}
