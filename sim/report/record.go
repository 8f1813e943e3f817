// Package report holds the result records a simulation run emits and their
// tabular serialization. It has no dependency on sim/ — it stores pure data
// types, so the reporting layer can consume it without pulling in the
// engine.
package report

// TechOutcome is the per-technology slice of one region-year result.
type TechOutcome struct {
	Tech          string  `json:"tech"`
	UnitCostUSDkW float64 `json:"unit_cost_usd_per_kw"` // pre-year snapshot cost the region traded at
	PriceUSDMWh   float64 `json:"price_usd_per_mwh"`
	NewKW         float64 `json:"new_kw"`
	CumulativeKW  float64 `json:"cumulative_kw"` // region installed capacity after the apply phase
}

// ResultRecord is one (year, region) row of simulation output. Records are
// append-only and ordered: by year, then by scenario region order.
type ResultRecord struct {
	Year      int     `json:"year"`
	Region    string  `json:"region"`
	DemandGWh float64 `json:"demand_gwh"`

	// Technologies is in scenario order, matching the CSV column contract.
	Technologies []TechOutcome `json:"technologies"`

	CapitalSpentUSD    float64 `json:"capital_spent_usd"`
	FundedProjects     int     `json:"funded_projects"`
	MeanAttractiveness float64 `json:"mean_attractiveness"` // over funded projects; 0 when none funded
}
