package sim

import "math"

// MarketResult is the per-region outcome of one year's market clearing.
// Consumed by the investment model; never written back to region state.
type MarketResult struct {
	DemandGWh   float64
	ServedGWh   float64 // expected output of already-installed capacity
	HeadroomGWh float64 // demand left over for new builds

	// Per-technology clearing price and the slice of demand headroom each
	// technology can address this year.
	PriceUSDMWh    map[string]float64
	AddressableGWh map[string]float64
}

// ClearMarket computes a single-clearing-price approximation for one region
// and year. Demand not already served by installed capacity is allocated
// across technologies by inverse-cost weighting: weight_i = (1/cost_i)^γ,
// normalized. Cheaper technologies capture superlinearly more of the
// addressable demand as γ grows; shares always sum to 1 of the headroom.
//
// Storage variants clear at the base price plus the scenario's arbitrage
// premium. A region with no remaining demand headroom yields zero
// addressable volume for every technology; that is a degenerate market, not
// an error.
func ClearMarket(sc *Scenario, region *RegionConfig, st *SimulationState, snap *CostSnapshot) MarketResult {
	res := MarketResult{
		DemandGWh:      st.DemandGWh[region.ID],
		PriceUSDMWh:    make(map[string]float64, len(sc.Technologies)),
		AddressableGWh: make(map[string]float64, len(sc.Technologies)),
	}

	for i := range sc.Technologies {
		t := &sc.Technologies[i]
		res.ServedGWh += AnnualEnergyGWh(t, st.InstalledKW[region.ID][t.ID])
		price := region.BasePriceUSDMWh
		if t.Kind == KindStorage {
			price *= 1 + sc.StoragePremium
		}
		res.PriceUSDMWh[t.ID] = price
		res.AddressableGWh[t.ID] = 0
	}

	res.HeadroomGWh = res.DemandGWh - res.ServedGWh
	if res.HeadroomGWh <= 0 {
		res.HeadroomGWh = 0
		return res
	}

	totalWeight := 0.0
	weights := make(map[string]float64, len(sc.Technologies))
	for i := range sc.Technologies {
		t := &sc.Technologies[i]
		w := math.Pow(1/snap.UnitCost(region.ID, t.ID), sc.Elasticity)
		weights[t.ID] = w
		totalWeight += w
	}
	if totalWeight == 0 {
		return res
	}
	for id, w := range weights {
		res.AddressableGWh[id] = res.HeadroomGWh * w / totalWeight
	}
	return res
}
