package forecast

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"steel-procurement/internal/model"
)

// Column names of the historical index export.
const (
	ColMonth = "Month"
	ColYear  = "Year"
	ColIndex = "Steel_Price_Index_(1982=100)"
)

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// LoadIndexCSV reads a monthly index history and returns its last Horizon months in date order.
func LoadIndexCSV(path string) ([]model.ForecastPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	points, err := ReadIndexCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

func ReadIndexCSV(r io.Reader) ([]model.ForecastPoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, want := range []string{ColMonth, ColYear, ColIndex} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("CSV must contain %s, %s, %s columns", ColMonth, ColYear, ColIndex)
		}
	}

	var points []model.ForecastPoint
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		month, err := parseMonth(rec[cols[ColMonth]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[cols[ColYear]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid year: %w", line, err)
		}
		index, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[ColIndex]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid index: %w", line, err)
		}
		points = append(points, model.ForecastPoint{Month: month, Year: year, Index: index})
	}

	if len(points) < model.Horizon {
		return nil, model.InvalidParam("forecast", fmt.Sprintf("need at least %d monthly rows, got %d", model.Horizon, len(points)))
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
	return points[len(points)-model.Horizon:], nil
}

// parseMonth accepts "Jan", "January" or "1".
func parseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range", n)
		}
		return n, nil
	}
	if len(s) >= 3 {
		if n, ok := monthNames[strings.ToLower(s[:3])]; ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}
