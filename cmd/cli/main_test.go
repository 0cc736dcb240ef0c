package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steel-procurement/internal/forecast"
	"steel-procurement/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeIndexCSV(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Month,Year,Steel_Price_Index_(1982=100)\n")
	for _, m := range []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"} {
		b.WriteString(m + ",2024,100\n")
	}
	p := filepath.Join(dir, "index.csv")
	require.NoError(t, os.WriteFile(p, []byte(b.String()), 0o644))
	return p
}

func TestAnalyzeFromCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeIndexCSV(t, dir)
	outdir := filepath.Join(dir, "out")

	out, err := execute(t, "analyze", "--csv", csvPath, "--sims", "20", "--vol", "0", "--demand", "1000", "--outdir", outdir, "--raw")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Spot Now")
	assert.Contains(t, out, "0.700")

	for _, name := range []string{"baseline_prices.csv", "strategy_summary.csv", "strategy_raw_costs.csv"} {
		_, err := os.Stat(filepath.Join(outdir, name))
		assert.NoError(t, err, name)
	}
	summary, err := os.ReadFile(filepath.Join(outdir, "strategy_summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Hedge,0.700,0.700,0.700,0.000,")
}

func TestAnalyzeFromScenarioFile(t *testing.T) {
	dir := t.TempDir()
	idx := make([]float64, model.Horizon)
	for i := range idx {
		idx[i] = 100
	}
	baselinePath := filepath.Join(dir, "baseline.yaml")
	require.NoError(t, forecast.SaveFile(baselinePath, forecast.Baseline{StartYear: 2025, StartMonth: 9, Index: idx}))
	t.Setenv("PROCURE_FORECAST_FILE", baselinePath)

	out, err := execute(t, "analyze", "--scenario", "tariffs", "--sims", "10", "--vol", "0", "--demand", "1000", "--outdir", dir)
	require.NoError(t, err, out)
	// 1000 t x 700 $/t x 1.12
	assert.Contains(t, out, "0.784")
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "analyze", "--csv", writeIndexCSV(t, dir), "--sims", "0", "--outdir", dir)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = execute(t, "analyze", "--scenario", "moon_base", "--outdir", dir)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = execute(t, "analyze", "--csv", writeIndexCSV(t, dir), "--sims", "100001", "--outdir", dir)
	require.ErrorIs(t, err, model.ErrInvalidParameter)
	field, _ := model.FieldOf(err)
	assert.Equal(t, "sims", field)
}

func TestScenariosCmd(t *testing.T) {
	out, err := execute(t, "scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "green_steel")
	assert.Contains(t, out, "1.150")
}

func TestSyncForecastCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Months int `json:"months"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		data := make([]model.ForecastPoint, req.Months)
		for i := range data {
			data[i] = model.ForecastPoint{Year: 2025 + (8+i)/12, Month: (8+i)%12 + 1, Index: 100 + float64(i)}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"scenario": "baseline", "months": req.Months, "data": data})
	}))
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "snap", "baseline.yaml")
	out, err := execute(t, "sync-forecast", "--url", srv.URL, "--out", outPath, "--months", "18")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Saved 18 months starting 2025-09")

	src, err := forecast.LoadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, src.Baseline().Index, 18)
}

func TestSuppliersCmd(t *testing.T) {
	dir := t.TempDir()
	sheet := "Company,Country,Latitude,Longitude,Cost of steel (USD/ton),Carbon Emitted (Ton CO2/ton steel)\n" +
		"Lakeside,United States of America,41.8781,-87.6298,800,0.5\n" +
		"Gulf Import,Mexico,29.717,-95.250,600,2.0\n"
	path := filepath.Join(dir, "mills.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0o644))

	out, err := execute(t, "suppliers", "--file", path, "--city", "Chicago", "--state", "Illinois")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Lakeside")
	assert.Contains(t, out, "Houston")
	assert.NotContains(t, out, "Trade-off menu")
	assert.Less(t, strings.Index(out, "Lakeside"), strings.Index(out, "Gulf Import"))

	out, err = execute(t, "suppliers", "--file", path, "--lat", "41.8781", "--lon", "-87.6298", "--demand", "1000", "--budget", "1000000")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Trade-off menu")
	assert.Contains(t, out, "Min-CO2")
	assert.Contains(t, out, "Lakeside=1000.0")

	_, err = execute(t, "suppliers", "--file", path, "--city", "Atlantis", "--state", "Ocean")
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}
