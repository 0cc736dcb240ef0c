package procurement

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"steel-procurement/internal/model"
)

// MillionsFunc formats a raw currency amount as $ millions.
type MillionsFunc func(float64) string

// WriteSummaryCSV writes one row per strategy in $ millions.
func WriteSummaryCSV(path string, res *Result, millions MillionsFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"strategy",
		"mean_musd",
		"p05_musd",
		"p95_musd",
		"std_musd",
		"rank",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	ranks := make(map[model.Strategy]int, len(res.Ranking))
	for _, r := range res.Ranking {
		ranks[r.Strategy] = r.Rank
	}
	for _, s := range model.Strategies() {
		sum, ok := res.Summaries[s]
		if !ok {
			continue
		}
		row := []string{
			s.Label(),
			millions(sum.Mean),
			millions(sum.P05),
			millions(sum.P95),
			millions(sum.StdDev),
			strconv.Itoa(ranks[s]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteRawCostsCSV writes one row per trial and one column per strategy, in USD.
func WriteRawCostsCSV(path string, res *Result) error {
	if res.RawCosts == nil {
		return fmt.Errorf("result has no raw costs")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	strategies := model.Strategies()
	header := []string{"trial"}
	for _, s := range strategies {
		header = append(header, s.Label())
	}
	if err := w.Write(header); err != nil {
		return err
	}

	trials := len(res.RawCosts[strategies[0]])
	row := make([]string, len(header))
	for t := 0; t < trials; t++ {
		row[0] = strconv.Itoa(t)
		for i, s := range strategies {
			row[i+1] = fmtFloat(res.RawCosts[s][t])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteBaselineCSV writes the forecast the run was simulated around.
func WriteBaselineCSV(path string, points []model.ForecastPoint, prices []float64) error {
	if len(points) != len(prices) {
		return fmt.Errorf("points/prices length mismatch: %d vs %d", len(points), len(prices))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"year", "month", "steel_price_index", "price_per_ton"}); err != nil {
		return err
	}
	for i, p := range points {
		row := []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.Month),
			fmtFloat(p.Index),
			fmtFloat(prices[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
