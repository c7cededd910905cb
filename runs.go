// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import "sort"

// Run is a maximal stretch of consecutive (post-denoise) windows assigned
// to the same partner contig (§3, §4.3). StartWindow/EndWindow are the
// window indices of the first and last window folded into the run; Length
// is always a multiple of the window size.
type Run struct {
	Partner     string
	Length      int
	StartWindow int
	EndWindow   int
}

// ExtractRuns applies the sliding-window majority denoise rule to a
// contig's window assignments and run-length-encodes the surviving
// sequence (§4.3). Contigs with more than cfg.DenoiseThreshold windows are
// denoised with a majority filter of size cfg.SlidingWindow requiring at
// least cfg.SlidingThreshold occurrences; smaller contigs keep every
// distinct assigned partner. If no partner survives, NoMatchingContigError
// is returned naming the contig.
func ExtractRuns(cfg Config, side Side, contig string, windows []WindowAssignment) ([]Run, error) {
	cfg = cfg.normalized()

	kept := make(map[string]bool)
	if len(windows) > cfg.DenoiseThreshold {
		counts := make(map[string]int)
		for i := 0; i+cfg.SlidingWindow <= len(windows); i++ {
			for k := range counts {
				delete(counts, k)
			}
			for j := i; j < i+cfg.SlidingWindow; j++ {
				counts[windows[j].Partner]++
			}
			for partner, n := range counts {
				if n >= cfg.SlidingThreshold {
					kept[partner] = true
				}
			}
		}
	} else {
		for _, w := range windows {
			kept[w.Partner] = true
		}
	}
	if len(kept) == 0 {
		return nil, &NoMatchingContigError{Side: side, Contig: contig}
	}

	var filtered []WindowAssignment
	for _, w := range windows {
		if kept[w.Partner] {
			filtered = append(filtered, w)
		}
	}

	var runs []Run
	for _, w := range filtered {
		if n := len(runs); n > 0 && runs[n-1].Partner == w.Partner {
			runs[n-1].EndWindow = w.Window
			runs[n-1].Length += cfg.WindowSize
			continue
		}
		runs = append(runs, Run{
			Partner:     w.Partner,
			Length:      cfg.WindowSize,
			StartWindow: w.Window,
			EndWindow:   w.Window,
		})
	}
	return runs, nil
}

// keptPartners is a small test helper exposing the denoise kept-set logic
// in isolation from run construction.
func keptPartners(cfg Config, windows []WindowAssignment) []string {
	cfg = cfg.normalized()
	kept := make(map[string]bool)
	if len(windows) > cfg.DenoiseThreshold {
		counts := make(map[string]int)
		for i := 0; i+cfg.SlidingWindow <= len(windows); i++ {
			for k := range counts {
				delete(counts, k)
			}
			for j := i; j < i+cfg.SlidingWindow; j++ {
				counts[windows[j].Partner]++
			}
			for partner, n := range counts {
				if n >= cfg.SlidingThreshold {
					kept[partner] = true
				}
			}
		}
	} else {
		for _, w := range windows {
			kept[w.Partner] = true
		}
	}
	out := make([]string, 0, len(kept))
	for p := range kept {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
