package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Header returns the CSV column names for the given technology order. The
// column set and order are a compatibility contract with downstream report
// tooling: fixed leading columns, four columns per technology in scenario
// order, fixed trailing columns.
func Header(techIDs []string) []string {
	cols := []string{"year", "region", "demand_gwh"}
	for _, id := range techIDs {
		cols = append(cols,
			id+"_unit_cost_usd_per_kw",
			id+"_price_usd_per_mwh",
			id+"_new_kw",
			id+"_cumulative_kw",
		)
	}
	return append(cols, "capital_spent_usd", "mean_attractiveness")
}

// Row serializes one record against the same technology order used for
// Header. Returns an error if the record's technology list does not match.
func Row(rec ResultRecord, techIDs []string) ([]string, error) {
	if len(rec.Technologies) != len(techIDs) {
		return nil, fmt.Errorf("record for %s/%d has %d technologies, header has %d",
			rec.Region, rec.Year, len(rec.Technologies), len(techIDs))
	}
	row := []string{
		strconv.Itoa(rec.Year),
		rec.Region,
		formatFloat(rec.DemandGWh),
	}
	for i, id := range techIDs {
		to := rec.Technologies[i]
		if to.Tech != id {
			return nil, fmt.Errorf("record for %s/%d has technology %q at position %d, header has %q",
				rec.Region, rec.Year, to.Tech, i, id)
		}
		row = append(row,
			formatFloat(to.UnitCostUSDkW),
			formatFloat(to.PriceUSDMWh),
			formatFloat(to.NewKW),
			formatFloat(to.CumulativeKW),
		)
	}
	return append(row, formatFloat(rec.CapitalSpentUSD), formatFloat(rec.MeanAttractiveness)), nil
}

// WriteCSV writes the full result sequence with a header row.
func WriteCSV(w io.Writer, techIDs []string, records []ResultRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(techIDs)); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, rec := range records {
		row, err := Row(rec, techIDs)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s/%d: %w", rec.Region, rec.Year, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
