package supplier

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"steel-procurement/internal/model"
)

// Column names of the manufacturer sheet.
const (
	ColCompany   = "Company"
	ColCountry   = "Country"
	ColLatitude  = "Latitude"
	ColLongitude = "Longitude"
	ColCost      = "Cost of steel (USD/ton)"
	ColCarbon    = "Carbon Emitted (Ton CO2/ton steel)"
)

// Manufacturer is one steel mill with its ex-works price and production footprint.
// Overseas mills ship through their nearest US port, resolved at load time.
type Manufacturer struct {
	Company      string  `json:"company"`
	Country      string  `json:"country"`
	Location     Coord   `json:"location"`
	CostPerTon   float64 `json:"cost_per_ton_usd"`
	CarbonPerTon float64 `json:"carbon_per_ton"` // t CO2 per t steel

	Port  string  `json:"nearest_port,omitempty"`
	SeaKm float64 `json:"sea_km,omitempty"`
}

func (m Manufacturer) Domestic() bool {
	return m.Country == domesticCountryName
}

// Validate checks a manufacturer's numbers are usable.
func (m Manufacturer) Validate() error {
	if strings.TrimSpace(m.Company) == "" {
		return model.InvalidParam("company", "must not be empty")
	}
	if err := m.Location.Validate(); err != nil {
		return err
	}
	if !(m.CostPerTon > 0) || math.IsInf(m.CostPerTon, 0) {
		return model.InvalidParam("cost_per_ton", fmt.Sprintf("%s: must be a finite value > 0", m.Company))
	}
	if !(m.CarbonPerTon >= 0) || math.IsInf(m.CarbonPerTon, 0) {
		return model.InvalidParam("carbon_per_ton", fmt.Sprintf("%s: must be a finite value >= 0", m.Company))
	}
	return nil
}

// withPort fills the sea leg for overseas mills.
func (m Manufacturer) withPort() Manufacturer {
	if m.Domestic() {
		m.Port, m.SeaKm = "", 0
		return m
	}
	port, km := NearestPort(m.Location)
	m.Port, m.SeaKm = port.Name, km*SeaDetourFactor
	return m
}

func LoadManufacturersCSV(path string) ([]Manufacturer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mfrs, err := ReadManufacturersCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mfrs, nil
}

// ReadManufacturersCSV parses the manufacturer sheet. Columns are found by name.
func ReadManufacturersCSV(r io.Reader) ([]Manufacturer, error) {
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
	required := []string{ColCompany, ColCountry, ColLatitude, ColLongitude, ColCost, ColCarbon}
	for _, want := range required {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("CSV must contain %q column", want)
		}
	}

	var out []Manufacturer
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		num := func(col string) (float64, error) {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[col]]), 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: invalid %s: %w", line, col, err)
			}
			return v, nil
		}
		m := Manufacturer{
			Company: strings.TrimSpace(rec[cols[ColCompany]]),
			Country: strings.TrimSpace(rec[cols[ColCountry]]),
		}
		if m.Location.Lat, err = num(ColLatitude); err != nil {
			return nil, err
		}
		if m.Location.Lon, err = num(ColLongitude); err != nil {
			return nil, err
		}
		if m.CostPerTon, err = num(ColCost); err != nil {
			return nil, err
		}
		if m.CarbonPerTon, err = num(ColCarbon); err != nil {
			return nil, err
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no manufacturers: %w", model.ErrEmptyInput)
	}
	return out, nil
}
