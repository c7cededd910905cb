// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"sort"

	"github.com/biogo/store/interval"
)

// WindowAssignment is the partner contig assigned to a single window of a
// contig (§4.1). Windows with no overlapping alignment are omitted from
// the result entirely, as the spec requires.
type WindowAssignment struct {
	Window  int
	Partner string
}

// contigInterval is one alignment's footprint on a single contig, tagged
// with the partner contig on the other side and its original order of
// appearance (used to break overlap-length ties deterministically).
type contigInterval struct {
	start, end int
	partner    string
	order      int
}

func (c contigInterval) Range() interval.IntRange {
	return interval.IntRange{Start: c.start, End: c.end}
}

func (c contigInterval) Overlap(b interval.IntRange) bool {
	return c.end > b.Start && c.start < b.End
}

func (c contigInterval) ID() uintptr { return uintptr(c.order) + 1 }

// windowQuery is a bare interval used only to drive IntTree.Get lookups.
// IntTree.Get selects intervals with the query's Overlap method, and this
// one accepts every range, so Get returns every interval in the tree;
// BinWindows drops the ones that do not reach the window when it clips them.
type windowQuery struct{ start, end int }

func (q windowQuery) Range() interval.IntRange {
	return interval.IntRange{Start: q.start, End: q.end}
}
func (q windowQuery) Overlap(interval.IntRange) bool { return true }
func (q windowQuery) ID() uintptr                    { return 0 }

// BinWindows quantizes alignments into fixed-size windows per contig on
// the given side, assigning each window to the partner contig on the
// other side that covers the most bases within it (§4.1). Contigs are
// visited in sorted order so that the result is independent of map
// iteration order, per the idempotence requirement in §8.
func BinWindows(cfg Config, side Side, lengths map[string]int, alignments []Alignment) map[string][]WindowAssignment {
	cfg = cfg.normalized()
	ws := cfg.WindowSize

	byContig := make(map[string][]contigInterval)
	for i, a := range alignments {
		contig, partner := sideContigs(side, a)
		start, end := sideInterval(side, a)
		byContig[contig] = append(byContig[contig], contigInterval{
			start: start, end: end, partner: partner, order: i,
		})
	}

	contigs := make([]string, 0, len(lengths))
	for c := range lengths {
		contigs = append(contigs, c)
	}
	sort.Strings(contigs)

	result := make(map[string][]WindowAssignment, len(contigs))
	for _, contig := range contigs {
		ivs := byContig[contig]
		if len(ivs) == 0 {
			continue
		}
		t := &interval.IntTree{}
		for _, iv := range ivs {
			t.Insert(iv, true)
		}
		t.AdjustRanges()

		length := lengths[contig]
		var assignments []WindowAssignment
		for w := 0; w < length; w += ws {
			wEnd := w + ws
			hits := t.Get(windowQuery{start: w, end: wEnd})
			if len(hits) == 0 {
				continue
			}

			type partnerHits struct {
				intervals  [][2]int
				firstOrder int
			}
			byPartner := make(map[string]*partnerHits)
			var order []string
			for _, h := range hits {
				ci := h.(contigInterval)
				ph, ok := byPartner[ci.partner]
				if !ok {
					ph = &partnerHits{firstOrder: ci.order}
					byPartner[ci.partner] = ph
					order = append(order, ci.partner)
				} else if ci.order < ph.firstOrder {
					ph.firstOrder = ci.order
				}
				start, end := ci.start, ci.end
				if start < w {
					start = w
				}
				if end > wEnd {
					end = wEnd
				}
				if end > start {
					ph.intervals = append(ph.intervals, [2]int{start, end})
				}
			}

			var (
				best      string
				bestLen   = -1
				bestOrder = int(^uint(0) >> 1)
			)
			for _, partner := range order {
				ph := byPartner[partner]
				covered := mergedCoverage(ph.intervals)
				if covered > bestLen || (covered == bestLen && ph.firstOrder < bestOrder) {
					best = partner
					bestLen = covered
					bestOrder = ph.firstOrder
				}
			}
			if bestLen > 0 {
				assignments = append(assignments, WindowAssignment{Window: w, Partner: best})
			}
		}
		if assignments != nil {
			result[contig] = assignments
		}
	}
	return result
}

// mergedCoverage sorts and coalesces overlapping intervals, returning the
// total covered length — the Go equivalent of the original's mergeRanges
// followed by a sum of (end-start).
func mergedCoverage(ivs [][2]int) int {
	if len(ivs) == 0 {
		return 0
	}
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i][0] != ivs[j][0] {
			return ivs[i][0] < ivs[j][0]
		}
		return ivs[i][1] < ivs[j][1]
	})

	total := 0
	curStart, curEnd := ivs[0][0], ivs[0][1]
	for _, iv := range ivs[1:] {
		if iv[0] <= curEnd {
			if iv[1] > curEnd {
				curEnd = iv[1]
			}
			continue
		}
		total += curEnd - curStart
		curStart, curEnd = iv[0], iv[1]
	}
	total += curEnd - curStart
	return total
}
