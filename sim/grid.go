package sim

// headroomSlack absorbs float accumulation when re-checking the headroom
// invariant against a sum the selection phase already bounded.
const headroomSlack = 1e-6

// ApplyProjects commits one region's funded projects for a year: installed
// capacity, the regional cumulative counter, and the global cumulative
// counter all grow by each project's capacity. This is the only place
// SimulationState is mutated during a run.
//
// The grid headroom bound was already enforced during selection; it is
// re-asserted here as a hard invariant because a violation means the
// selection logic is broken, and the engine must stop rather than clamp.
func ApplyProjects(st *SimulationState, sc *Scenario, region *RegionConfig, year int, funded []Project) error {
	totalKW := 0.0
	for _, p := range funded {
		if p.CapacityKW < 0 {
			return &ConsistencyError{
				Region: region.ID,
				Year:   year,
				Reason: "funded project with negative capacity",
			}
		}
		totalKW += p.CapacityKW
	}
	if totalKW > region.GridHeadroomKW+headroomSlack {
		return &ConsistencyError{
			Region: region.ID,
			Year:   year,
			Reason: "funded capacity exceeds grid headroom",
		}
	}

	for _, p := range funded {
		st.InstalledKW[region.ID][p.Tech] += p.CapacityKW
		st.RegionalCumulativeKW[region.ID][p.Tech] += p.CapacityKW
		st.GlobalCumulativeKW[p.Tech] += p.CapacityKW
	}
	return nil
}
