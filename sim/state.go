package sim

// SimulationState is the only data that survives across simulated years:
// installed capacity per region, cumulative capacity per technology (global
// and per-region), and current regional demand. It is owned by the Engine
// and mutated only in the apply phase of each year.
type SimulationState struct {
	// InstalledKW[region][tech] is capacity connected in that region.
	InstalledKW map[string]map[string]float64
	// GlobalCumulativeKW[tech] drives global-scope learning curves. Seeded
	// with the variant's InitialGlobalKW plus all regions' initial capacity.
	GlobalCumulativeKW map[string]float64
	// RegionalCumulativeKW[region][tech] drives regional-scope learning
	// curves. Equal to InstalledKW absent retirements, tracked separately
	// because the invariants differ.
	RegionalCumulativeKW map[string]map[string]float64
	// DemandGWh[region] is current-year demand, grown at each year boundary.
	DemandGWh map[string]float64
}

// NewSimulationState builds the year-zero state from a validated scenario.
func NewSimulationState(sc *Scenario) *SimulationState {
	st := &SimulationState{
		InstalledKW:          make(map[string]map[string]float64, len(sc.Regions)),
		GlobalCumulativeKW:   make(map[string]float64, len(sc.Technologies)),
		RegionalCumulativeKW: make(map[string]map[string]float64, len(sc.Regions)),
		DemandGWh:            make(map[string]float64, len(sc.Regions)),
	}
	for _, t := range sc.Technologies {
		st.GlobalCumulativeKW[t.ID] = t.InitialGlobalKW
	}
	for _, r := range sc.Regions {
		installed := make(map[string]float64, len(sc.Technologies))
		regional := make(map[string]float64, len(sc.Technologies))
		for _, t := range sc.Technologies {
			kw := r.InitialCapacityKW[t.ID]
			installed[t.ID] = kw
			regional[t.ID] = kw
			st.GlobalCumulativeKW[t.ID] += kw
		}
		st.InstalledKW[r.ID] = installed
		st.RegionalCumulativeKW[r.ID] = regional
		st.DemandGWh[r.ID] = r.DemandGWh
	}
	return st
}

// CumulativeKW returns the counter the given variant learns from in the
// given region: the global counter for global-scope variants, the regional
// one otherwise.
func (st *SimulationState) CumulativeKW(t *TechnologyConfig, regionID string) float64 {
	if t.LearningScope == ScopeRegional {
		return st.RegionalCumulativeKW[regionID][t.ID]
	}
	return st.GlobalCumulativeKW[t.ID]
}

// CostSnapshot freezes pre-year unit costs so every region evaluated in a
// year sees identical prices regardless of iteration order. This is the
// read half of the snapshot/collect-then-apply discipline; the write half
// is GridCapacityModel.Apply, which runs only after all regions have been
// evaluated.
type CostSnapshot struct {
	// costs[region][tech]; for global-scope variants every region holds the
	// same value.
	costs map[string]map[string]float64
}

// SnapshotCosts captures unit costs for all region/technology pairs from
// the current cumulative-capacity counters.
func SnapshotCosts(sc *Scenario, st *SimulationState) *CostSnapshot {
	snap := &CostSnapshot{costs: make(map[string]map[string]float64, len(sc.Regions))}
	for _, r := range sc.Regions {
		byTech := make(map[string]float64, len(sc.Technologies))
		for i := range sc.Technologies {
			t := &sc.Technologies[i]
			byTech[t.ID] = UnitCost(t, st.CumulativeKW(t, r.ID), sc.CostFloorUSDkW)
		}
		snap.costs[r.ID] = byTech
	}
	return snap
}

// UnitCost returns the frozen pre-year cost for a technology in a region.
func (cs *CostSnapshot) UnitCost(regionID, techID string) float64 {
	return cs.costs[regionID][techID]
}
