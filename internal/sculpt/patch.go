package sculpt

import "github.com/OCharnyshevich/terracegen/internal/grid"

func (r *run) createLand(res *Result) {
	budget := res.LandBudget
	for budget > 0 {
		if r.cfg.PatchLimit > 0 && res.Patches >= r.cfg.PatchLimit {
			r.log.Warn("patch limit reached", "limit", r.cfg.PatchLimit, "budget", budget)
			return
		}
		size := r.rng.Range(r.cfg.PatchSizeMin, r.cfg.PatchSizeMax+1)
		res.Patches++
		if r.rng.Chance(r.cfg.SinkProbability) {
			budget = r.sink(size, budget)
			res.Sunk++
		} else {
			budget = r.raise(size, budget)
			res.Raised++
		}
	}
}

// raise lifts up to size cells around a random seed cell. Cells that
// would exceed the maximum are skipped and not grown from. Every cell that
// surfaces spends one unit of budget; the patch ends as soon as the
// budget runs out.
func (r *run) raise(size, budget int) int {
	center := r.startPatch()
	rise := r.patchStep()
	changeTerrain := r.rng.Chance(r.cfg.ChangeTerrainProbability)
	growFeature := r.rng.Chance(r.cfg.GrowFeatureProbability)
	defer r.frontier.Clear()

	for n := 0; n < size && r.frontier.Count() > 0; {
		cur, _ := r.frontier.Dequeue()
		from := cur.Elevation()
		to := from + rise
		if to > r.cfg.ElevationMaximum {
			continue
		}
		cur.SetElevation(to)
		r.assign(cur, changeTerrain, growFeature)

		if from < r.cfg.WaterLevel && to >= r.cfg.WaterLevel {
			budget--
			if budget == 0 {
				break
			}
		}
		n++
		r.grow(cur, center)
	}
	r.log.Debug("raise patch", "center", center, "size", size, "budget", budget)
	return budget
}

// sink lowers up to size cells. Cells that would drop below the minimum
// are skipped; every cell that goes under returns one unit of budget.
func (r *run) sink(size, budget int) int {
	center := r.startPatch()
	drop := r.patchStep()
	changeTerrain := r.rng.Chance(r.cfg.ChangeTerrainProbability)
	growFeature := r.rng.Chance(r.cfg.GrowFeatureProbability)
	defer r.frontier.Clear()

	for n := 0; n < size && r.frontier.Count() > 0; {
		cur, _ := r.frontier.Dequeue()
		from := cur.Elevation()
		to := from - drop
		if to < r.cfg.ElevationMinimum {
			continue
		}
		cur.SetElevation(to)
		r.assign(cur, changeTerrain, growFeature)

		if from >= r.cfg.WaterLevel && to < r.cfg.WaterLevel {
			budget++
		}
		n++
		r.grow(cur, center)
	}
	r.log.Debug("sink patch", "center", center, "size", size, "budget", budget)
	return budget
}

// startPatch opens a new search phase and queues a random seed cell.
func (r *run) startPatch() grid.Coordinates {
	r.phase++
	first := r.randomCell()
	first.SearchPhase = r.phase
	first.Distance = 0
	first.SearchHeuristic = 0
	r.frontier.Enqueue(first)
	return first.Coordinates()
}

func (r *run) patchStep() int {
	if r.rng.Chance(r.cfg.HighRiseProbability) {
		return 2
	}
	return 1
}

// grow queues the neighbours of cur not yet seen in this phase. A jitter
// heuristic breaks up otherwise diamond-shaped patches.
func (r *run) grow(cur *grid.Cell, center grid.Coordinates) {
	for _, d := range grid.Directions {
		n := cur.Neighbor(d)
		if n == nil || n.SearchPhase >= r.phase {
			continue
		}
		n.SearchPhase = r.phase
		n.Distance = n.Coordinates().DistanceTo(center)
		n.SearchHeuristic = 0
		if r.rng.Chance(r.cfg.JitterProbability) {
			n.SearchHeuristic = 1
		}
		r.frontier.Enqueue(n)
	}
}

// assign updates terrain from the elevation table and rolls a feature for
// dry cells when the patch grows features.
func (r *run) assign(c *grid.Cell, changeTerrain, growFeature bool) {
	if !changeTerrain {
		return
	}
	c.SetTerrainType(r.cfg.TerrainMap[c.Elevation()-r.cfg.ElevationMinimum])
	if c.IsUnderwater() || !growFeature {
		c.SetFeatureType(grid.FeatureNone)
		return
	}
	c.SetFeatureType(pickFeature(c.TerrainType(), r.rng.Value()))
}

// pickFeature maps a uniform draw to a feature for the given terrain.
func pickFeature(terrain int, v float64) int {
	switch terrain {
	case grid.TerrainSand:
		switch {
		case v < 0.07:
			return grid.FeatureTank
		case v < 0.10:
			return grid.FeatureBoard
		case v < 0.12:
			return grid.FeatureTable
		}
	case grid.TerrainGrass:
		switch {
		case v < 0.2:
			return grid.FeatureTree
		case v < 0.22:
			return grid.FeatureTable
		}
	}
	return grid.FeatureNone
}
