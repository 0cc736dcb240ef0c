package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steel-procurement/internal/config"
	"steel-procurement/internal/model"
)

func baseline() Baseline {
	idx := make([]float64, 18)
	for i := range idx {
		idx[i] = 100 + float64(i)
	}
	return Baseline{Model: "ARIMA(3,1,3)", StartYear: 2025, StartMonth: 9, Index: idx}
}

func TestFileSourceScenarioMultiplier(t *testing.T) {
	src, err := NewFileSource(baseline())
	require.NoError(t, err)

	base, err := src.Forecast(context.Background(), model.ScenarioBaseline, 12)
	require.NoError(t, err)
	require.Len(t, base, 12)
	assert.Equal(t, model.ForecastPoint{Month: 9, Year: 2025, Index: 100}, base[0])
	assert.Equal(t, model.ForecastPoint{Month: 1, Year: 2026, Index: 104}, base[4])
	assert.Equal(t, model.ForecastPoint{Month: 8, Year: 2026, Index: 111}, base[11])

	tariffs, err := src.Forecast(context.Background(), model.ScenarioTariffs, 12)
	require.NoError(t, err)
	for i := range tariffs {
		assert.InDelta(t, base[i].Index*1.12, tariffs[i].Index, 1e-9)
		assert.Equal(t, base[i].Month, tariffs[i].Month)
	}
}

func TestFileSourceRejects(t *testing.T) {
	src, err := NewFileSource(baseline())
	require.NoError(t, err)

	_, err = src.Forecast(context.Background(), model.Scenario("meteor"), 12)
	field, _ := model.FieldOf(err)
	assert.Equal(t, "scenario", field)

	_, err = src.Forecast(context.Background(), model.ScenarioBaseline, 24)
	field, _ = model.FieldOf(err)
	assert.Equal(t, "months", field)

	_, err = src.Forecast(context.Background(), model.ScenarioBaseline, 0)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = NewFileSource(Baseline{StartYear: 2025, StartMonth: 13, Index: []float64{100}})
	assert.Error(t, err)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "baseline.yaml")
	require.NoError(t, SaveFile(path, baseline()))

	src, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, baseline(), src.Baseline())

	assert.Error(t, SaveFile(path, Baseline{}))
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBaselineFromPoints(t *testing.T) {
	src, _ := NewFileSource(baseline())
	points, err := src.Forecast(context.Background(), model.ScenarioBaseline, 6)
	require.NoError(t, err)

	b, err := BaselineFromPoints("remote", points)
	require.NoError(t, err)
	assert.Equal(t, 2025, b.StartYear)
	assert.Equal(t, 9, b.StartMonth)
	assert.Equal(t, []float64{100, 101, 102, 103, 104, 105}, b.Index)

	points[3].Month = 7
	_, err = BaselineFromPoints("remote", points)
	assert.Error(t, err)

	_, err = BaselineFromPoints("remote", nil)
	assert.ErrorIs(t, err, model.ErrEmptyInput)
}

func TestAllScenarios(t *testing.T) {
	src, _ := NewFileSource(baseline())
	all, err := AllScenarios(context.Background(), src, 12)
	require.NoError(t, err)
	assert.Len(t, all, len(model.Scenarios()))
	assert.InDelta(t, 85.0, all[model.ScenarioRecession][0].Index, 1e-9)
}

func TestToPrices(t *testing.T) {
	prices, err := ToPrices([]model.ForecastPoint{{Index: 100}, {Index: 150}}, 700)
	require.NoError(t, err)
	assert.Equal(t, []float64{700, 1050}, prices)

	_, err = ToPrices([]model.ForecastPoint{{Index: 100}}, 0)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
	_, err = ToPrices([]model.ForecastPoint{{Index: -3}}, 700)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestReadIndexCSV(t *testing.T) {
	var b strings.Builder
	b.WriteString("Month,Year,Steel_Price_Index_(1982=100)\n")
	// 14 rows, out of order, to check sorting and tail selection.
	rows := []string{
		"Feb,2024,302.1", "Jan,2024,300.0", "Mar,2024,305.5", "Apr,2024,310",
		"May,2024,312", "Jun,2024,315", "Jul,2024,318", "Aug,2024,320",
		"Sep,2024,322", "Oct,2024,325", "Nov,2024,327", "Dec,2024,330",
		"1,2025,333", "February,2025,336",
	}
	for _, r := range rows {
		b.WriteString(r + "\n")
	}

	points, err := ReadIndexCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, points, model.Horizon)
	assert.Equal(t, model.ForecastPoint{Month: 3, Year: 2024, Index: 305.5}, points[0])
	assert.Equal(t, model.ForecastPoint{Month: 2, Year: 2025, Index: 336}, points[11])
}

func TestReadIndexCSVErrors(t *testing.T) {
	_, err := ReadIndexCSV(strings.NewReader("Month,Year,Price\nJan,2024,1\n"))
	assert.ErrorContains(t, err, "must contain")

	_, err = ReadIndexCSV(strings.NewReader("Month,Year,Steel_Price_Index_(1982=100)\nJan,2024,300\n"))
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = ReadIndexCSV(strings.NewReader("Month,Year,Steel_Price_Index_(1982=100)\nSmarch,2024,300\n"))
	assert.ErrorContains(t, err, "invalid month")
}

func TestLoadIndexCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	require.NoError(t, os.WriteFile(path, []byte(validCSV()), 0o644))

	points, err := LoadIndexCSV(path)
	require.NoError(t, err)
	assert.Len(t, points, 12)
	assert.Equal(t, 12, points[11].Month)
}

func validCSV() string {
	var b strings.Builder
	b.WriteString("Year,Month,Steel_Price_Index_(1982=100)\n")
	for _, m := range []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"} {
		b.WriteString("2023," + m + ",200\n")
	}
	return b.String()
}

func TestCacheHitAndExpiry(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	pts := []model.ForecastPoint{{Month: 1, Year: 2025, Index: 100}}
	c.Set("k", pts)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, pts, got)

	got[0].Index = 1
	again, _ := c.Get("k")
	assert.Equal(t, 100.0, again[0].Index)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)

	c.purgeExpired()
	assert.Equal(t, 0, c.Len())
}

func TestNilCache(t *testing.T) {
	c := NewCache(0)
	assert.Nil(t, c)
	c.Set("k", nil)
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Clear()
	c.Close()
	assert.Equal(t, 0, c.Len())
}

func forecastServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "/api/steel-forecast", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var req forecastRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		data := make([]model.ForecastPoint, req.Months)
		for i := range data {
			y, m := addMonths(2025, 9, i)
			data[i] = model.ForecastPoint{Year: y, Month: m, Index: 100}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(forecastResponse{Scenario: req.Scenario, Months: req.Months, Data: data})
	}))
}

func TestClientForecastUsesCache(t *testing.T) {
	var hits int32
	srv := forecastServer(t, &hits)
	defer srv.Close()

	cache := NewCache(time.Hour)
	defer cache.Close()
	client := NewClient(srv.URL+"/", "", 5*time.Second, cache)

	points, err := client.Forecast(context.Background(), model.ScenarioGreenSteel, 12)
	require.NoError(t, err)
	require.Len(t, points, 12)
	assert.Equal(t, 9, points[0].Month)

	_, err = client.Forecast(context.Background(), model.ScenarioGreenSteel, 12)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err = client.Forecast(context.Background(), model.ScenarioGreenSteel, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
	}{
		{"unauthorized", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"rate limited", http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"server error", http.StatusInternalServerError, "API_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "30")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "key", time.Second, nil).Forecast(context.Background(), model.ScenarioBaseline, 12)
			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.status, se.StatusCode)
			if tt.status == http.StatusTooManyRequests {
				assert.Equal(t, "30", se.RetryAfter)
			}
		})
	}
}

func TestClientShortResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(forecastResponse{Data: []model.ForecastPoint{{Month: 1, Year: 2025, Index: 1}}})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second, nil).Forecast(context.Background(), model.ScenarioBaseline, 12)
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "BAD_RESPONSE", se.Code)
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", time.Second, nil).Forecast(context.Background(), model.ScenarioBaseline, 12)
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "UNREACHABLE", se.Code)
}

func TestClientValidatesBeforeCalling(t *testing.T) {
	var hits int32
	srv := forecastServer(t, &hits)
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second, nil).Forecast(context.Background(), model.Scenario("nope"), 12)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.yaml")
	require.NoError(t, SaveFile(path, baseline()))

	src, closeFn, err := Open(config.ForecastConfig{Source: config.SourceFile, File: path})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &FileSource{}, src)

	src, closeFn, err = Open(config.ForecastConfig{Source: config.SourceRemote, BaseURL: "http://localhost:1", TimeoutSeconds: 1, CacheTTLSeconds: 60})
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &Client{}, src)

	_, _, err = Open(config.ForecastConfig{Source: "ftp"})
	assert.Error(t, err)
}
