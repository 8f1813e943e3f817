package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/solarsim/solarsim/sim/report"
)

// Engine states. An engine is single-use: Configured at construction,
// Running during Run, Completed after (even on cancellation or error).
const (
	StateConfigured = "configured"
	StateRunning    = "running"
	StateCompleted  = "completed"
)

// Engine orchestrates the annual loop: cost snapshot, market clearing,
// investment selection, and capacity commit, for every region over
// [StartYear, EndYear]. It owns the only cross-year state.
type Engine struct {
	scenario *Scenario
	state    *SimulationState
	status   string
	records  []report.ResultRecord
}

// NewEngine validates the scenario and builds a Configured engine.
func NewEngine(sc *Scenario) (*Engine, error) {
	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		scenario: sc,
		state:    NewSimulationState(sc),
		status:   StateConfigured,
	}, nil
}

// Status reports the engine's lifecycle state.
func (e *Engine) Status() string { return e.status }

// Records returns the ordered result sequence accumulated so far: one
// record per (year, region), years ascending, regions in scenario order.
func (e *Engine) Records() []report.ResultRecord { return e.records }

// regionOutcome collects one region's evaluation for a year. Evaluation
// only reads the pre-year cost snapshot and state, so outcomes are
// identical whatever order (or parallelism) regions are evaluated in; all
// mutation is deferred to the apply phase.
type regionOutcome struct {
	market       MarketResult
	funded       []Project
	capitalSpent float64
}

// Run executes the year loop and returns the full ordered result sequence.
// Cancelling ctx stops the run at the next year boundary; the records
// accumulated so far are returned with a nil error, since a truncated run
// is a valid partial result. A ConsistencyError aborts the run.
func (e *Engine) Run(ctx context.Context) ([]report.ResultRecord, error) {
	if e.status != StateConfigured {
		return nil, fmt.Errorf("engine already ran (state %s)", e.status)
	}
	e.status = StateRunning
	sc := e.scenario
	logrus.Infof("starting simulation %d-%d: %d regions, %d technologies",
		sc.StartYear, sc.EndYear, len(sc.Regions), len(sc.Technologies))

	for year := sc.StartYear; year <= sc.EndYear; year++ {
		if ctx.Err() != nil {
			logrus.Infof("run cancelled before year %d; returning %d records", year, len(e.records))
			e.status = StateCompleted
			return e.records, nil
		}
		logrus.Debugf("[year %d] snapshotting unit costs", year)
		snap := SnapshotCosts(sc, e.state)

		outcomes := e.evaluateRegions(snap)

		// Apply phase: the single synchronization point where funded
		// capacity lands in state. Regions commit in scenario order.
		for i := range sc.Regions {
			region := &sc.Regions[i]
			out := outcomes[i]
			if err := ApplyProjects(e.state, sc, region, year, out.funded); err != nil {
				e.status = StateCompleted
				return e.records, err
			}
			e.records = append(e.records, e.buildRecord(year, region, snap, out))
			logrus.Debugf("[year %d] region %s: funded %d projects, %.0f kW, $%.0f",
				year, region.ID, len(out.funded), fundedKW(out.funded), out.capitalSpent)
		}

		for i := range sc.Regions {
			r := &sc.Regions[i]
			e.state.DemandGWh[r.ID] *= 1 + r.DemandGrowth
		}
	}

	e.status = StateCompleted
	logrus.Infof("simulation complete: %d records", len(e.records))
	return e.records, nil
}

// evaluateRegions runs the read-only half of a year for every region
// against the same snapshot. With Workers > 1 regions are evaluated
// concurrently; outcomes land in pre-indexed slots, so the apply phase sees
// the same inputs either way.
func (e *Engine) evaluateRegions(snap *CostSnapshot) []regionOutcome {
	sc := e.scenario
	outcomes := make([]regionOutcome, len(sc.Regions))

	workers := sc.Workers
	if workers > len(sc.Regions) {
		workers = len(sc.Regions)
	}
	if workers <= 1 {
		for i := range sc.Regions {
			outcomes[i] = e.evaluateRegion(&sc.Regions[i], snap)
		}
		return outcomes
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				outcomes[i] = e.evaluateRegion(&sc.Regions[i], snap)
			}
		}()
	}
	for i := range sc.Regions {
		indices <- i
	}
	close(indices)
	wg.Wait()
	return outcomes
}

// evaluateRegion sequences market clearing, candidate assembly, and
// selection for one region. Pure with respect to engine state.
func (e *Engine) evaluateRegion(region *RegionConfig, snap *CostSnapshot) regionOutcome {
	market := ClearMarket(e.scenario, region, e.state, snap)
	candidates := BuildCandidates(e.scenario, region, snap, market)
	funded, spent := SelectProjects(candidates, region.CapitalBudgetUSD, region.GridHeadroomKW)
	return regionOutcome{market: market, funded: funded, capitalSpent: spent}
}

// buildRecord flattens one region-year into the report's column contract.
// Called after the apply phase, so cumulative capacity reflects this year's
// builds.
func (e *Engine) buildRecord(year int, region *RegionConfig, snap *CostSnapshot, out regionOutcome) report.ResultRecord {
	sc := e.scenario

	newKW := make(map[string]float64, len(sc.Technologies))
	for _, p := range out.funded {
		newKW[p.Tech] += p.CapacityKW
	}

	techs := make([]report.TechOutcome, 0, len(sc.Technologies))
	for i := range sc.Technologies {
		t := &sc.Technologies[i]
		techs = append(techs, report.TechOutcome{
			Tech:          t.ID,
			UnitCostUSDkW: snap.UnitCost(region.ID, t.ID),
			PriceUSDMWh:   out.market.PriceUSDMWh[t.ID],
			NewKW:         newKW[t.ID],
			CumulativeKW:  e.state.InstalledKW[region.ID][t.ID],
		})
	}

	rec := report.ResultRecord{
		Year:            year,
		Region:          region.ID,
		DemandGWh:       out.market.DemandGWh,
		Technologies:    techs,
		CapitalSpentUSD: out.capitalSpent,
		FundedProjects:  len(out.funded),
	}
	if len(out.funded) > 0 {
		sum := 0.0
		for _, p := range out.funded {
			sum += p.Attractiveness
		}
		rec.MeanAttractiveness = sum / float64(len(out.funded))
	}
	return rec
}

// TechnologyIDs returns the scenario's technology order for the CSV
// column contract.
func (e *Engine) TechnologyIDs() []string {
	ids := make([]string, len(e.scenario.Technologies))
	for i, t := range e.scenario.Technologies {
		ids[i] = t.ID
	}
	return ids
}

func fundedKW(projects []Project) float64 {
	total := 0.0
	for _, p := range projects {
		total += p.CapacityKW
	}
	return total
}
