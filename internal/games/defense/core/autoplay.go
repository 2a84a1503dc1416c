package core

// AutoPlay takes at most one player action and reports whether it did
// anything. An eligible, affordable upgrade is preferred (cheapest first);
// otherwise the cheapest affordable tower is built on the spot that covers
// the most path cells, ties going to the spot reaching furthest upstream.
func AutoPlay(s *Simulation) bool {
	if s.progress.Over() {
		return false
	}
	money := s.progress.Money()

	var upgrade *Tower
	for _, t := range s.towers {
		if !t.UpgradeEnabled() || t.UpgradeCost() > money {
			continue
		}
		if upgrade == nil || t.UpgradeCost() < upgrade.UpgradeCost() {
			upgrade = t
		}
	}
	if upgrade != nil {
		_, err := s.UpgradeTower(upgrade.ID)
		return err == nil
	}

	var kind *TowerKind
	for i := range s.cfg.Towers {
		k := &s.cfg.Towers[i]
		if k.Cost > money {
			continue
		}
		if kind == nil || k.Cost < kind.Cost {
			kind = k
		}
	}
	if kind == nil {
		return false
	}
	c, ok := BestSpot(s.board, kind.Range)
	if !ok {
		return false
	}
	_, err := s.PlaceTower(kind.ID, c)
	return err == nil
}

// BestSpot returns the buildable cell whose range covers the most path cells.
// Among equal coverage the cell reaching the earliest path index wins, then
// row-major order.
func BestSpot(b *Board, radius float64) (Coord, bool) {
	path := b.Path()
	best, bestCover, bestFirst := Coord{}, 0, len(path)
	for _, cell := range b.cells {
		if !cell.Buildable() {
			continue
		}
		pos := cell.Coord.Center()
		cover, first := 0, len(path)
		for i, p := range path {
			if pos.Dist(p.Center()) <= radius {
				cover++
				first = min(first, i)
			}
		}
		if cover > bestCover || (cover == bestCover && cover > 0 && first < bestFirst) {
			best, bestCover, bestFirst = cell.Coord, cover, first
		}
	}
	return best, bestCover > 0
}
