package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTech() *TechnologyConfig {
	return &TechnologyConfig{
		ID:             "topcon",
		Kind:           KindSolar,
		BaseCostUSDkW:  1000,
		RefCapacityKW:  100000,
		LearningRate:   0.2,
		CapacityFactor: 0.2,
		LifetimeYears:  20,
		OpexFraction:   0.01,
		LearningScope:  ScopeGlobal,
	}
}

func TestUnitCost_AtReferenceCapacity(t *testing.T) {
	tech := testTech()
	assert.InDelta(t, 1000, UnitCost(tech, 100000, 0), 1e-9)
}

func TestUnitCost_OneDoublingCutsCostByLearningRate(t *testing.T) {
	tech := testTech()
	// 20% learning rate: one doubling leaves 80% of the cost.
	assert.InDelta(t, 800, UnitCost(tech, 200000, 0), 1e-9)
	assert.InDelta(t, 640, UnitCost(tech, 400000, 0), 1e-9)
}

func TestUnitCost_NonIncreasingInCumulativeCapacity(t *testing.T) {
	tech := testTech()
	prev := UnitCost(tech, 1, 0)
	for _, cum := range []float64{100, 1e4, 1e5, 3e5, 1e6, 1e7, 1e9} {
		cost := UnitCost(tech, cum, 0)
		assert.LessOrEqual(t, cost, prev, "cost must not increase at cum=%v", cum)
		prev = cost
	}
}

func TestUnitCost_ClampsBelowReference(t *testing.T) {
	tech := testTech()
	// Near-zero cumulative capacity must not blow the cost up past base.
	assert.InDelta(t, 1000, UnitCost(tech, 0, 0), 1e-9)
	assert.InDelta(t, 1000, UnitCost(tech, 50, 0), 1e-9)
}

func TestUnitCost_RespectsScenarioFloor(t *testing.T) {
	tech := testTech()
	assert.Equal(t, 500.0, UnitCost(tech, 1e12, 500))
}

func TestUnitCost_VariantFloorOverridesScenarioFloor(t *testing.T) {
	tech := testTech()
	tech.CostFloorUSDkW = 700
	assert.Equal(t, 700.0, UnitCost(tech, 1e12, 100))
}

func TestAnnualEnergyGWh(t *testing.T) {
	tech := testTech()
	// 10 MW at CF 0.2: 10000 kW * 8760 h * 0.2 / 1e6 = 17.52 GWh
	assert.InDelta(t, 17.52, AnnualEnergyGWh(tech, 10000), 1e-9)
}
