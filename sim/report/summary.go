package report

import "gonum.org/v1/gonum/stat"

// RunSummary aggregates statistics over a completed (or cancelled) run.
type RunSummary struct {
	Records int `json:"records"`
	Years   int `json:"years"`
	Regions int `json:"regions"`

	TotalNewKW           float64 `json:"total_new_kw"`
	TotalCapitalSpentUSD float64 `json:"total_capital_spent_usd"`

	// FinalCumulativeKW is per-technology installed capacity summed over
	// regions, taken from each region's last record.
	FinalCumulativeKW map[string]float64 `json:"final_cumulative_kw"`

	MeanPriceUSDMWh  float64 `json:"mean_price_usd_per_mwh"`
	StdevPriceUSDMWh float64 `json:"stdev_price_usd_per_mwh"`

	// MeanAttractiveness averages over region-years that funded at least
	// one project.
	MeanAttractiveness float64 `json:"mean_attractiveness"`
}

// Summarize computes aggregate statistics from an ordered result sequence.
// Safe for empty input (returns zero-value fields).
func Summarize(records []ResultRecord) *RunSummary {
	s := &RunSummary{FinalCumulativeKW: make(map[string]float64)}
	if len(records) == 0 {
		return s
	}
	s.Records = len(records)

	years := make(map[int]bool)
	lastByRegion := make(map[string]ResultRecord)
	var prices, attractiveness []float64
	for _, rec := range records {
		years[rec.Year] = true
		lastByRegion[rec.Region] = rec
		s.TotalCapitalSpentUSD += rec.CapitalSpentUSD
		for _, to := range rec.Technologies {
			s.TotalNewKW += to.NewKW
			prices = append(prices, to.PriceUSDMWh)
		}
		if rec.FundedProjects > 0 {
			attractiveness = append(attractiveness, rec.MeanAttractiveness)
		}
	}
	s.Years = len(years)
	s.Regions = len(lastByRegion)

	for _, rec := range lastByRegion {
		for _, to := range rec.Technologies {
			s.FinalCumulativeKW[to.Tech] += to.CumulativeKW
		}
	}

	if len(prices) > 0 {
		s.MeanPriceUSDMWh = stat.Mean(prices, nil)
	}
	if len(prices) > 1 {
		s.StdevPriceUSDMWh = stat.StdDev(prices, nil)
	}
	if len(attractiveness) > 0 {
		s.MeanAttractiveness = stat.Mean(attractiveness, nil)
	}
	return s
}
