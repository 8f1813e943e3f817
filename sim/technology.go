package sim

import "math"

// UnitCost computes the current cost per kW for a technology variant under
// the power-law experience curve: each doubling of cumulative capacity cuts
// cost by the learning rate. Pure; cumulative capacity is owned by
// SimulationState and passed in.
//
//	cost = base * (cum / ref)^log2(1 - LR)
//
// Cumulative capacity below the reference is clamped to the reference, so
// cost never exceeds the base cost. The result is clamped to the variant's
// cost floor (or the scenario-wide floor) so learning never drives cost to
// zero.
func UnitCost(t *TechnologyConfig, cumulativeKW, floorUSDkW float64) float64 {
	ref := t.RefCapacityKW
	cum := cumulativeKW
	if cum < ref {
		cum = ref
	}
	exponent := math.Log2(1 - t.LearningRate) // negative for LR in (0,1)
	cost := t.BaseCostUSDkW * math.Pow(cum/ref, exponent)

	floor := floorUSDkW
	if t.CostFloorUSDkW > 0 {
		floor = t.CostFloorUSDkW
	}
	if cost < floor {
		return floor
	}
	return cost
}

// AnnualEnergyGWh converts installed kW into expected yearly energy in GWh
// using the variant's effective capacity factor. For storage variants the
// factor already folds in round-trip efficiency.
func AnnualEnergyGWh(t *TechnologyConfig, capacityKW float64) float64 {
	return capacityKW * 8760 * t.CapacityFactor / 1e6
}
