package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSimulationState_SeedsCounters(t *testing.T) {
	sc := validScenario()
	sc.Technologies[0].InitialGlobalKW = 100000
	sc.Regions[0].InitialCapacityKW = map[string]float64{"topcon": 20000}

	st := NewSimulationState(sc)
	assert.Equal(t, 20000.0, st.InstalledKW["west"]["topcon"])
	assert.Equal(t, 20000.0, st.RegionalCumulativeKW["west"]["topcon"])
	// Global counter includes deployment outside the simulated regions.
	assert.Equal(t, 120000.0, st.GlobalCumulativeKW["topcon"])
	assert.Equal(t, 1000.0, st.DemandGWh["west"])
}

func TestCumulativeKW_RespectsLearningScope(t *testing.T) {
	sc := validScenario()
	sc.Technologies[0].InitialGlobalKW = 100000
	sc.Regions[0].InitialCapacityKW = map[string]float64{"topcon": 20000}
	st := NewSimulationState(sc)

	tech := &sc.Technologies[0]
	assert.Equal(t, 120000.0, st.CumulativeKW(tech, "west"))

	tech.LearningScope = ScopeRegional
	assert.Equal(t, 20000.0, st.CumulativeKW(tech, "west"))
}

func TestSnapshotCosts_GlobalScopeSameAcrossRegions(t *testing.T) {
	sc := validScenario()
	east := sc.Regions[0]
	east.ID = "east"
	east.InitialCapacityKW = map[string]float64{"topcon": 300000}
	sc.Regions = append(sc.Regions, east)

	st := NewSimulationState(sc)
	snap := SnapshotCosts(sc, st)
	assert.Equal(t, snap.UnitCost("west", "topcon"), snap.UnitCost("east", "topcon"))
}

func TestSnapshotCosts_RegionalScopeDiffersByRegion(t *testing.T) {
	sc := validScenario()
	sc.Technologies[0].LearningScope = ScopeRegional
	east := sc.Regions[0]
	east.ID = "east"
	east.InitialCapacityKW = map[string]float64{"topcon": 400000}
	sc.Regions = append(sc.Regions, east)

	st := NewSimulationState(sc)
	snap := SnapshotCosts(sc, st)
	// West sits at the reference capacity; east has two doublings on it.
	assert.InDelta(t, 1000, snap.UnitCost("west", "topcon"), 1e-9)
	assert.InDelta(t, 640, snap.UnitCost("east", "topcon"), 1e-9)
}
