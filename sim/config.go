package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Candidate sizing policies for yearly project generation.
const (
	IncrementFixed      = "fixed"      // whole blocks of BlockKW, as many as headroom allows
	IncrementContinuous = "continuous" // one candidate per technology sized to remaining headroom
)

// Learning-curve scopes. Global variants share one cumulative-capacity
// counter across all regions; regional variants learn from their own
// region's deployment only.
const (
	ScopeGlobal   = "global"
	ScopeRegional = "regional"
)

// Technology kinds. Storage earns the scenario's arbitrage premium on top
// of the regional base price.
const (
	KindSolar   = "solar"
	KindStorage = "storage"
)

// TechnologyConfig defines one technology variant (a PV cell type or a
// storage chemistry). Immutable after Load; cumulative-capacity counters
// live in SimulationState.
type TechnologyConfig struct {
	ID              string  `yaml:"id" json:"id"`
	Kind            string  `yaml:"kind" json:"kind"`                                   // "solar" (default) or "storage"
	BaseCostUSDkW   float64 `yaml:"base_cost_usd_per_kw" json:"base_cost_usd_per_kw"`   // unit cost at RefCapacityKW
	RefCapacityKW   float64 `yaml:"ref_capacity_kw" json:"ref_capacity_kw"`             // cumulative capacity at which BaseCostUSDkW holds
	LearningRate    float64 `yaml:"learning_rate" json:"learning_rate"`                 // cost reduction per doubling, strictly in (0,1)
	CapacityFactor  float64 `yaml:"capacity_factor" json:"capacity_factor"`             // effective annual utilization, in (0,1]
	LifetimeYears   int     `yaml:"lifetime_years" json:"lifetime_years"`
	OpexFraction    float64 `yaml:"opex_fraction" json:"opex_fraction"`                 // annual operating cost as a fraction of capex
	LearningScope   string  `yaml:"learning_scope" json:"learning_scope"`               // "global" (default) or "regional"
	CostFloorUSDkW  float64 `yaml:"cost_floor_usd_per_kw" json:"cost_floor_usd_per_kw"` // overrides Scenario.CostFloorUSDkW when > 0
	InitialGlobalKW float64 `yaml:"initial_global_kw" json:"initial_global_kw"`         // deployment outside the simulated regions
}

// RegionConfig defines one region. Demand and installed capacity evolve
// during a run; everything else is fixed.
type RegionConfig struct {
	ID                string             `yaml:"id" json:"id"`
	DemandGWh         float64            `yaml:"demand_gwh" json:"demand_gwh"`
	DemandGrowth      float64            `yaml:"demand_growth" json:"demand_growth"`             // fractional growth per year, may be 0
	GridHeadroomKW    float64            `yaml:"grid_headroom_kw" json:"grid_headroom_kw"`       // max new capacity per year
	DiscountRate      float64            `yaml:"discount_rate" json:"discount_rate"`
	CapitalBudgetUSD  float64            `yaml:"capital_budget_usd" json:"capital_budget_usd"`   // per year
	BasePriceUSDMWh   float64            `yaml:"base_price_usd_per_mwh" json:"base_price_usd_per_mwh"`
	Incentive         float64            `yaml:"incentive" json:"incentive"`                     // exogenous policy multiplier on revenue, 0 = unset (1.0)
	InitialCapacityKW map[string]float64 `yaml:"initial_capacity_kw" json:"initial_capacity_kw"` // technology ID -> installed kW
}

// IncrementConfig selects how candidate projects are sized each year.
type IncrementConfig struct {
	Mode             string  `yaml:"mode" json:"mode"` // "fixed" (default) or "continuous"
	BlockKW          float64 `yaml:"block_kw" json:"block_kw"`
	MaxBlocksPerTech int     `yaml:"max_blocks_per_tech" json:"max_blocks_per_tech"` // 0 = unlimited
}

// Scenario is the full simulation configuration loaded from YAML.
type Scenario struct {
	StartYear int `yaml:"start_year" json:"start_year"`
	EndYear   int `yaml:"end_year" json:"end_year"`

	Regions      []RegionConfig     `yaml:"regions" json:"regions"`
	Technologies []TechnologyConfig `yaml:"technologies" json:"technologies"`

	// Market knobs.
	Elasticity     float64 `yaml:"elasticity" json:"elasticity"`           // inverse-cost share exponent, > 0 (default 2)
	StoragePremium float64 `yaml:"storage_premium" json:"storage_premium"` // arbitrage premium on storage price (default 0.2)

	CostFloorUSDkW float64         `yaml:"cost_floor_usd_per_kw" json:"cost_floor_usd_per_kw"` // manufacturing asymptote, >= 0
	Increment      IncrementConfig `yaml:"increment" json:"increment"`

	// Workers bounds parallel region evaluation within a year. 0 or 1 means
	// sequential. Results are identical either way.
	Workers int `yaml:"workers" json:"workers"`
}

const (
	defaultElasticity     = 2.0
	defaultStoragePremium = 0.2
	defaultBlockKW        = 10000
)

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ApplyDefaults fills zero-valued knobs with their documented defaults.
// Called by LoadScenario; callers constructing a Scenario in code should
// call it before Validate.
func (sc *Scenario) ApplyDefaults() {
	if sc.Elasticity == 0 {
		sc.Elasticity = defaultElasticity
	}
	if sc.StoragePremium == 0 {
		sc.StoragePremium = defaultStoragePremium
	}
	if sc.Increment.Mode == "" {
		sc.Increment.Mode = IncrementFixed
	}
	if sc.Increment.Mode == IncrementFixed && sc.Increment.BlockKW == 0 {
		sc.Increment.BlockKW = defaultBlockKW
	}
	for i := range sc.Technologies {
		t := &sc.Technologies[i]
		if t.Kind == "" {
			t.Kind = KindSolar
		}
		if t.LearningScope == "" {
			t.LearningScope = ScopeGlobal
		}
	}
	for i := range sc.Regions {
		if sc.Regions[i].Incentive == 0 {
			sc.Regions[i].Incentive = 1.0
		}
	}
}

// Validate checks the scenario against the configuration contract. All
// violations are ConfigError.
func (sc *Scenario) Validate() error {
	if sc.EndYear < sc.StartYear {
		return configErrf("end_year", "must be >= start_year (%d < %d)", sc.EndYear, sc.StartYear)
	}
	if len(sc.Regions) == 0 {
		return configErrf("regions", "at least one region is required")
	}
	if len(sc.Technologies) == 0 {
		return configErrf("technologies", "at least one technology is required")
	}
	if sc.Elasticity <= 0 {
		return configErrf("elasticity", "must be > 0, got %v", sc.Elasticity)
	}
	if sc.StoragePremium < 0 {
		return configErrf("storage_premium", "must be >= 0, got %v", sc.StoragePremium)
	}
	if sc.CostFloorUSDkW < 0 {
		return configErrf("cost_floor_usd_per_kw", "must be >= 0, got %v", sc.CostFloorUSDkW)
	}
	if sc.Workers < 0 {
		return configErrf("workers", "must be >= 0, got %d", sc.Workers)
	}
	switch sc.Increment.Mode {
	case IncrementFixed:
		if sc.Increment.BlockKW <= 0 {
			return configErrf("increment.block_kw", "must be > 0 in fixed mode, got %v", sc.Increment.BlockKW)
		}
	case IncrementContinuous:
	default:
		return configErrf("increment.mode", "must be %q or %q, got %q", IncrementFixed, IncrementContinuous, sc.Increment.Mode)
	}
	if sc.Increment.MaxBlocksPerTech < 0 {
		return configErrf("increment.max_blocks_per_tech", "must be >= 0, got %d", sc.Increment.MaxBlocksPerTech)
	}

	techIDs := make(map[string]bool, len(sc.Technologies))
	for i, t := range sc.Technologies {
		field := fmt.Sprintf("technologies[%d]", i)
		if t.ID == "" {
			return configErrf(field+".id", "must not be empty")
		}
		if techIDs[t.ID] {
			return configErrf(field+".id", "duplicate technology %q", t.ID)
		}
		techIDs[t.ID] = true
		if t.Kind != KindSolar && t.Kind != KindStorage {
			return configErrf(field+".kind", "must be %q or %q, got %q", KindSolar, KindStorage, t.Kind)
		}
		if t.BaseCostUSDkW <= 0 {
			return configErrf(field+".base_cost_usd_per_kw", "must be > 0, got %v", t.BaseCostUSDkW)
		}
		if t.RefCapacityKW <= 0 {
			return configErrf(field+".ref_capacity_kw", "must be > 0, got %v", t.RefCapacityKW)
		}
		// A rate of 0 yields no learning and a rate of 1 collapses cost to
		// the floor immediately; both are configuration mistakes.
		if t.LearningRate <= 0 || t.LearningRate >= 1 {
			return configErrf(field+".learning_rate", "must be strictly between 0 and 1, got %v", t.LearningRate)
		}
		if t.CapacityFactor <= 0 || t.CapacityFactor > 1 {
			return configErrf(field+".capacity_factor", "must be in (0, 1], got %v", t.CapacityFactor)
		}
		if t.LifetimeYears < 1 {
			return configErrf(field+".lifetime_years", "must be >= 1, got %d", t.LifetimeYears)
		}
		if t.OpexFraction < 0 {
			return configErrf(field+".opex_fraction", "must be >= 0, got %v", t.OpexFraction)
		}
		if t.LearningScope != ScopeGlobal && t.LearningScope != ScopeRegional {
			return configErrf(field+".learning_scope", "must be %q or %q, got %q", ScopeGlobal, ScopeRegional, t.LearningScope)
		}
		if t.CostFloorUSDkW < 0 {
			return configErrf(field+".cost_floor_usd_per_kw", "must be >= 0, got %v", t.CostFloorUSDkW)
		}
		if t.InitialGlobalKW < 0 {
			return configErrf(field+".initial_global_kw", "must be >= 0, got %v", t.InitialGlobalKW)
		}
	}

	regionIDs := make(map[string]bool, len(sc.Regions))
	for i, r := range sc.Regions {
		field := fmt.Sprintf("regions[%d]", i)
		if r.ID == "" {
			return configErrf(field+".id", "must not be empty")
		}
		if regionIDs[r.ID] {
			return configErrf(field+".id", "duplicate region %q", r.ID)
		}
		regionIDs[r.ID] = true
		if r.DemandGWh < 0 {
			return configErrf(field+".demand_gwh", "must be >= 0, got %v", r.DemandGWh)
		}
		if r.DemandGrowth < -1 {
			return configErrf(field+".demand_growth", "must be >= -1, got %v", r.DemandGrowth)
		}
		if r.GridHeadroomKW < 0 {
			return configErrf(field+".grid_headroom_kw", "must be >= 0, got %v", r.GridHeadroomKW)
		}
		if r.DiscountRate < 0 {
			return configErrf(field+".discount_rate", "must be >= 0, got %v", r.DiscountRate)
		}
		if r.CapitalBudgetUSD < 0 {
			return configErrf(field+".capital_budget_usd", "must be >= 0, got %v", r.CapitalBudgetUSD)
		}
		if r.BasePriceUSDMWh < 0 {
			return configErrf(field+".base_price_usd_per_mwh", "must be >= 0, got %v", r.BasePriceUSDMWh)
		}
		if r.Incentive < 0 {
			return configErrf(field+".incentive", "must be >= 0, got %v", r.Incentive)
		}
		for techID, kw := range r.InitialCapacityKW {
			if !techIDs[techID] {
				return configErrf(field+".initial_capacity_kw", "unknown technology %q", techID)
			}
			if kw < 0 {
				return configErrf(field+".initial_capacity_kw", "capacity for %q must be >= 0, got %v", techID, kw)
			}
		}
	}
	return nil
}

// Technology returns the variant with the given ID, or nil.
func (sc *Scenario) Technology(id string) *TechnologyConfig {
	for i := range sc.Technologies {
		if sc.Technologies[i].ID == id {
			return &sc.Technologies[i]
		}
	}
	return nil
}
