package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyProjects_UpdatesAllCounters(t *testing.T) {
	sc := validScenario()
	st := NewSimulationState(sc)
	region := &sc.Regions[0]

	funded := []Project{
		{Region: region.ID, Tech: "topcon", CapacityKW: 10000},
		{Region: region.ID, Tech: "topcon", CapacityKW: 5000},
	}
	require.NoError(t, ApplyProjects(st, sc, region, 2025, funded))

	assert.Equal(t, 15000.0, st.InstalledKW[region.ID]["topcon"])
	assert.Equal(t, 15000.0, st.RegionalCumulativeKW[region.ID]["topcon"])
	assert.Equal(t, 15000.0, st.GlobalCumulativeKW["topcon"])
}

func TestApplyProjects_GlobalCounterAccumulatesAcrossRegions(t *testing.T) {
	sc := validScenario()
	east := sc.Regions[0]
	east.ID = "east"
	sc.Regions = append(sc.Regions, east)
	st := NewSimulationState(sc)

	require.NoError(t, ApplyProjects(st, sc, &sc.Regions[0], 2025, []Project{{Tech: "topcon", CapacityKW: 10000}}))
	require.NoError(t, ApplyProjects(st, sc, &sc.Regions[1], 2025, []Project{{Tech: "topcon", CapacityKW: 20000}}))

	assert.Equal(t, 30000.0, st.GlobalCumulativeKW["topcon"])
	assert.Equal(t, 10000.0, st.RegionalCumulativeKW["west"]["topcon"])
	assert.Equal(t, 20000.0, st.RegionalCumulativeKW["east"]["topcon"])
}

func TestApplyProjects_HeadroomOverrunIsConsistencyError(t *testing.T) {
	sc := validScenario()
	st := NewSimulationState(sc)
	region := &sc.Regions[0]

	// 6 blocks of 10000 kW against 50000 kW headroom: the selection layer
	// should never produce this, so apply must refuse it.
	var funded []Project
	for i := 0; i < 6; i++ {
		funded = append(funded, Project{Tech: "topcon", CapacityKW: 10000})
	}
	err := ApplyProjects(st, sc, region, 2026, funded)
	require.Error(t, err)
	var cerr *ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "west", cerr.Region)
	assert.Equal(t, 2026, cerr.Year)

	// State must be untouched after a refused apply.
	assert.Zero(t, st.InstalledKW[region.ID]["topcon"])
}

func TestApplyProjects_NegativeCapacityIsConsistencyError(t *testing.T) {
	sc := validScenario()
	st := NewSimulationState(sc)

	err := ApplyProjects(st, sc, &sc.Regions[0], 2025, []Project{{Tech: "topcon", CapacityKW: -1}})
	var cerr *ConsistencyError
	require.ErrorAs(t, err, &cerr)
}

func TestApplyProjects_EmptyFundingIsFine(t *testing.T) {
	sc := validScenario()
	st := NewSimulationState(sc)
	assert.NoError(t, ApplyProjects(st, sc, &sc.Regions[0], 2025, nil))
}
