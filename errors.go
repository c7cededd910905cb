// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"fmt"
	"log"
)

// NoMatchingContigError is returned when a contig has no candidate partner
// left after sliding-window denoising (§4.3). It is a structural input
// error and is fatal: the caller should halt the run.
type NoMatchingContigError struct {
	Side   Side
	Contig string
}

func (e *NoMatchingContigError) Error() string {
	return fmt.Sprintf("chroder: no matching contig found for %s %q; "+
		"this could be a result of incorrect assembly, extensive repeats, "+
		"or a novel region not present in the other assembly", e.Side, e.Contig)
}

// LrsFailureError wraps an internal error raised by the LRS solver with the
// contig and sequence length it was solving for, so a caller can report
// which contig's run sequence triggered the failure.
type LrsFailureError struct {
	Side   Side
	Contig string
	Len    int
	Err    error
}

func (e *LrsFailureError) Error() string {
	return fmt.Sprintf("chroder: lrs solver failed for %s %q (sequence length %d): %v",
		e.Side, e.Contig, e.Len, e.Err)
}

func (e *LrsFailureError) Unwrap() error { return e.Err }

// logTraversalError logs a non-fatal traversal failure (§7
// TraversalError): an unexpected missing edge was found while enumerating
// paths through a component. Tracing from the current starting endpoint
// stops there, including any branches still pending from it; the component
// is not skipped, and paths already found from it, or from its other
// endpoints, are still used.
func logTraversalError(logger *log.Logger, componentID int, format string, args ...interface{}) {
	logger.Printf("chroder: traversal error in component %d, skipping: "+format, append([]interface{}{componentID}, args...)...)
}

// logCircularComponent logs that a component had no valid starting
// endpoint and was therefore skipped (§4.7 "Circular components").
func logCircularComponent(logger *log.Logger, refContigs, qryContigs []string) {
	logger.Printf("chroder: circular configuration; skipped (ref contigs %v, qry contigs %v)", refContigs, qryContigs)
}

// logBranchingUnresolved logs that, with NoRef false, a query contig still
// maps to multiple ref contigs after conflict resolution (§4.6, §7
// BranchingUnresolved). Processing continues.
func logBranchingUnresolved(logger *log.Logger, qryContig string, refContigs []string) {
	logger.Printf("chroder: branching found for query scaffold %s (maps to %v)", qryContig, refContigs)
}
