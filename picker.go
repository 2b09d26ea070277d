package driftgrid

// mediaPicker assigns catalog entries to grid coordinates. The starting
// candidate comes from the coordinate hash alone, so a coordinate always
// probes the same sequence; the occupancy map only steers the probe away
// from the four orthogonal neighbors' current assignments.
type mediaPicker struct {
	catalog  *Catalog
	attempts int
}

// pick returns a catalog index for the given coordinate, or -1 when the
// catalog is empty. It walks forward from the hashed start index, skipping
// unusable entries and entries matching an orthogonal neighbor, for at most
// the configured number of attempts. When the budget runs out the last
// probed candidate is returned; a tiny catalog cannot satisfy four distinct
// neighbors and must still produce something.
func (p *mediaPicker) pick(at Coord, occupied map[Coord]int) int {
	n := p.catalog.Len()
	if n == 0 {
		return -1
	}
	if n == 1 {
		return 0
	}

	var taken [4]int
	neighbors := 0
	for _, nc := range [4]Coord{
		{at.Col - 1, at.Row},
		{at.Col + 1, at.Row},
		{at.Col, at.Row - 1},
		{at.Col, at.Row + 1},
	} {
		if idx, ok := occupied[nc]; ok {
			taken[neighbors] = idx
			neighbors++
		}
	}

	skipUnusable := p.catalog.UsableLen() > 0
	start := hashCoord(at.Col, at.Row, n)
	cand := start
	for i := 0; i < p.attempts; i++ {
		cand = (start + i) % n
		if skipUnusable && !p.catalog.Usable(cand) {
			continue
		}
		conflict := false
		for j := 0; j < neighbors; j++ {
			if taken[j] == cand {
				conflict = true
				break
			}
		}
		if !conflict {
			return cand
		}
	}
	return cand
}
