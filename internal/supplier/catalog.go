package supplier

import (
	"fmt"
	"sort"

	"steel-procurement/internal/logger"
	"steel-procurement/internal/model"
)

// Catalog is the read-only set of manufacturers a project can buy from.
type Catalog struct {
	manufacturers []Manufacturer
}

// NewCatalog validates mfrs and resolves each overseas mill's port once.
func NewCatalog(mfrs []Manufacturer) (*Catalog, error) {
	if len(mfrs) == 0 {
		return nil, fmt.Errorf("no manufacturers: %w", model.ErrEmptyInput)
	}
	seen := make(map[string]bool, len(mfrs))
	out := make([]Manufacturer, 0, len(mfrs))
	for _, m := range mfrs {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if seen[m.Company] {
			return nil, model.InvalidParam("company", fmt.Sprintf("duplicate manufacturer %q", m.Company))
		}
		seen[m.Company] = true
		out = append(out, m.withPort())
	}
	return &Catalog{manufacturers: out}, nil
}

func LoadCatalog(path string) (*Catalog, error) {
	mfrs, err := LoadManufacturersCSV(path)
	if err != nil {
		return nil, err
	}
	c, err := NewCatalog(mfrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Log.Debug().Str("file", path).Int("manufacturers", c.Len()).Msg("loaded supplier catalog")
	return c, nil
}

func (c *Catalog) Len() int { return len(c.manufacturers) }

// Manufacturers returns a copy of the catalog in file order.
func (c *Catalog) Manufacturers() []Manufacturer {
	return append([]Manufacturer(nil), c.manufacturers...)
}

// Offer is one manufacturer's delivered price and footprint at a project site.
type Offer struct {
	Manufacturer        string  `json:"manufacturer"`
	Country             string  `json:"country"`
	Port                string  `json:"nearest_port,omitempty"`
	LandKm              float64 `json:"land_km"`
	SeaKm               float64 `json:"sea_km"`
	SteelCostPerTon     float64 `json:"steel_cost_per_ton_usd"`
	TransportCostPerTon float64 `json:"transport_cost_per_ton_usd"`
	CostPerTon          float64 `json:"cost_per_ton_usd"`
	CarbonPerTon        float64 `json:"carbon_per_ton"`
}

// LandedCosts prices every manufacturer delivered to site, cheapest first.
// Domestic mills truck straight to site; overseas mills ship to their port
// and truck from there.
func (c *Catalog) LandedCosts(site Coord) ([]Offer, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	offers := make([]Offer, 0, len(c.manufacturers))
	for _, m := range c.manufacturers {
		o := Offer{
			Manufacturer:    m.Company,
			Country:         m.Country,
			SteelCostPerTon: m.CostPerTon,
		}
		if m.Domestic() {
			o.LandKm = RoadKm(m.Location, site)
		} else {
			port := portByName(m.Port)
			o.Port = port.Name
			o.LandKm = RoadKm(port.Coord, site)
			o.SeaKm = m.SeaKm
		}
		o.TransportCostPerTon = o.LandKm*LandCostPerTonKm + o.SeaKm*SeaCostPerTonKm
		o.CostPerTon = o.SteelCostPerTon + o.TransportCostPerTon
		transportCarbon := (o.LandKm*LandCarbonPerTonKm + o.SeaKm*SeaCarbonPerTonKm) / 1000
		o.CarbonPerTon = m.CarbonPerTon + transportCarbon
		offers = append(offers, o)
	}
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].CostPerTon != offers[j].CostPerTon {
			return offers[i].CostPerTon < offers[j].CostPerTon
		}
		return offers[i].Manufacturer < offers[j].Manufacturer
	})
	return offers, nil
}

func portByName(name string) Port {
	for _, p := range Ports {
		if p.Name == name {
			return p
		}
	}
	return Ports[0]
}
