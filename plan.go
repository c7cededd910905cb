// Copyright ©2024 The chroder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chroder

import (
	"fmt"
	"log"
)

// BuildPlan runs component discovery, locus-graph construction, path
// enumeration and orientation assignment over a pair of conflict-resolved
// mapping tables, emitting one Pseudochromosome per component that yields
// at least one valid path (§4.7, §4.8). logger receives non-fatal
// diagnostics (circular components, traversal errors) and may be nil.
func BuildPlan(cfg Config, ref, qry MappingTable, refLen, qryLen map[string]int, logger *log.Logger) []Pseudochromosome {
	cfg = cfg.normalized()

	var plans []Pseudochromosome
	chrID := 1
	for _, c := range DiscoverComponents(ref, qry) {
		seedRef := ""
		if len(c.RefContigs) > 0 {
			seedRef = c.RefContigs[0]
		}
		lg := buildLocusGraph(c, ref, qry)

		paths := EnumeratePaths(lg, logger)
		if len(paths) == 0 {
			continue
		}

		best, ok := BestPath(lg, paths, refLen, qryLen)
		if !ok {
			continue
		}

		refDirs := AssignOrientations(lg, best.path.refPath)
		qryDirs := AssignOrientations(lg, best.path.qryPath)

		id := seedRef
		if cfg.NoRef {
			id = fmt.Sprintf("Pseudochrom%d", chrID)
		}

		p := Pseudochromosome{ID: id}
		for _, r := range best.rids {
			p.RefContigs = append(p.RefContigs, r)
			p.RefOrientations = append(p.RefOrientations, refDirs[r])
		}
		for _, q := range best.qids {
			p.QryContigs = append(p.QryContigs, q)
			p.QryOrientations = append(p.QryOrientations, qryDirs[q])
		}
		plans = append(plans, p)
		chrID++
	}
	return plans
}
