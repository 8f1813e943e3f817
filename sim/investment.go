package sim

import (
	"math"
	"sort"
)

// Project is one candidate capacity addition in one region-year. Candidates
// are built fresh each year, funded or rejected within that year, and never
// persist beyond it.
type Project struct {
	Region     string
	Tech       string
	CapacityKW float64

	CapexUSD          float64
	AnnualEnergyGWh   float64 // expected sellable output, capped at addressable volume
	AnnualCashFlowUSD float64 // revenue minus operating cost, per year of lifetime

	NPVUSD float64
	// Attractiveness is NPV per dollar of capital, so candidates of
	// different sizes rank comparably.
	Attractiveness float64
}

// BuildCandidates assembles the candidate projects for one region-year
// against a frozen cost snapshot and the year's market result. In fixed
// mode each technology proposes as many whole blocks as the grid headroom
// allows (bounded by MaxBlocksPerTech); in continuous mode it proposes a
// single candidate sized to the full headroom. Blocks of the same
// technology share its addressable volume, so later blocks see what the
// earlier ones left.
func BuildCandidates(sc *Scenario, region *RegionConfig, snap *CostSnapshot, market MarketResult) []Project {
	var candidates []Project
	for i := range sc.Technologies {
		t := &sc.Technologies[i]
		cost := snap.UnitCost(region.ID, t.ID)
		price := market.PriceUSDMWh[t.ID]
		remainingGWh := market.AddressableGWh[t.ID]

		var sizesKW []float64
		switch sc.Increment.Mode {
		case IncrementContinuous:
			if region.GridHeadroomKW > 0 {
				sizesKW = []float64{region.GridHeadroomKW}
			}
		default: // IncrementFixed
			n := int(region.GridHeadroomKW / sc.Increment.BlockKW)
			if max := sc.Increment.MaxBlocksPerTech; max > 0 && n > max {
				n = max
			}
			for b := 0; b < n; b++ {
				sizesKW = append(sizesKW, sc.Increment.BlockKW)
			}
		}

		for _, kw := range sizesKW {
			energy := AnnualEnergyGWh(t, kw)
			if energy > remainingGWh {
				energy = remainingGWh
			}
			remainingGWh -= energy
			candidates = append(candidates, evaluateProject(t, region, kw, cost, price, energy))
		}
	}
	return candidates
}

// evaluateProject prices one candidate: upfront capital from the current
// unit cost, then NPV as the discounted sum of lifetime net cash flows.
func evaluateProject(t *TechnologyConfig, region *RegionConfig, capacityKW, unitCost, priceUSDMWh, energyGWh float64) Project {
	capex := unitCost * capacityKW
	revenue := energyGWh * 1000 * priceUSDMWh * region.Incentive // GWh -> MWh
	opex := capex * t.OpexFraction
	cashFlow := revenue - opex

	npv := cashFlow*annuityFactor(region.DiscountRate, t.LifetimeYears) - capex

	p := Project{
		Region:            region.ID,
		Tech:              t.ID,
		CapacityKW:        capacityKW,
		CapexUSD:          capex,
		AnnualEnergyGWh:   energyGWh,
		AnnualCashFlowUSD: cashFlow,
		NPVUSD:            npv,
	}
	if capex > 0 {
		p.Attractiveness = npv / capex
	}
	return p
}

// annuityFactor is the present value of 1 received at the end of each of n
// years at discount rate r.
func annuityFactor(r float64, n int) float64 {
	if r == 0 {
		return float64(n)
	}
	return (1 - math.Pow(1+r, -float64(n))) / r
}

// SelectProjects picks the funded subset for one region-year: candidates
// ranked by attractiveness descending (ties keep insertion order), funded
// greedily while the capital budget and grid headroom both hold. A
// candidate that does not fit whole is skipped, never split, and a negative
// NPV is never funded no matter how much budget remains.
func SelectProjects(candidates []Project, capitalBudgetUSD, gridHeadroomKW float64) (funded []Project, capitalSpentUSD float64) {
	ranked := make([]Project, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Attractiveness > ranked[j].Attractiveness
	})

	remainingBudget := capitalBudgetUSD
	remainingHeadroom := gridHeadroomKW
	for _, p := range ranked {
		if p.NPVUSD < 0 {
			continue
		}
		if p.CapexUSD > remainingBudget || p.CapacityKW > remainingHeadroom {
			continue
		}
		remainingBudget -= p.CapexUSD
		remainingHeadroom -= p.CapacityKW
		capitalSpentUSD += p.CapexUSD
		funded = append(funded, p)
	}
	return funded, capitalSpentUSD
}
