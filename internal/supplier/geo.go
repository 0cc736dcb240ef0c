package supplier

import (
	"fmt"
	"math"
	"strings"

	"steel-procurement/internal/model"
)

// Transport factors per ton-km.
const (
	LandCostPerTonKm   = 0.15  // USD, trucking
	SeaCostPerTonKm    = 0.02  // USD, shipping
	LandCarbonPerTonKm = 0.062 // kg CO2, trucking
	SeaCarbonPerTonKm  = 0.008 // kg CO2, shipping
)

const (
	// RoadDetourFactor turns a great-circle distance into a road distance.
	RoadDetourFactor = 1.3
	// SeaDetourFactor turns a great-circle distance into a shipping lane.
	SeaDetourFactor = 1.15

	earthRadiusKm       = 6371.0088
	domesticCountryName = "United States of America"
)

// Coord is a WGS84 latitude/longitude pair in degrees.
type Coord struct {
	Lat float64 `json:"latitude" yaml:"latitude"`
	Lon float64 `json:"longitude" yaml:"longitude"`
}

func (c Coord) Validate() error {
	if !(c.Lat >= -90 && c.Lat <= 90) {
		return model.InvalidParam("latitude", fmt.Sprintf("must be in [-90, 90], got %v", c.Lat))
	}
	if !(c.Lon >= -180 && c.Lon <= 180) {
		return model.InvalidParam("longitude", fmt.Sprintf("must be in [-180, 180], got %v", c.Lon))
	}
	return nil
}

// DistanceKm is the great-circle (haversine) distance between a and b.
func DistanceKm(a, b Coord) float64 {
	lat1, lat2 := a.Lat*math.Pi/180, b.Lat*math.Pi/180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// RoadKm approximates driving distance from the great-circle distance.
func RoadKm(a, b Coord) float64 {
	return DistanceKm(a, b) * RoadDetourFactor
}

// Port is a US import port for overseas steel.
type Port struct {
	Name  string
	Coord Coord
}

var Ports = []Port{
	{"Mobile", Coord{30.7122, -88.0433}},
	{"Houston", Coord{29.717, -95.250}},
	{"New Orleans", Coord{29.9355, -90.0572}},
	{"Los Angeles", Coord{33.73, -118.2625}},
	{"Long Beach", Coord{33.7549, -118.2143}},
}

// NearestPort returns the port closest to c and the great-circle distance to it.
func NearestPort(c Coord) (Port, float64) {
	best, bestKm := Ports[0], DistanceKm(c, Ports[0].Coord)
	for _, p := range Ports[1:] {
		if d := DistanceKm(c, p.Coord); d < bestKm {
			best, bestKm = p, d
		}
	}
	return best, bestKm
}

type cityKey struct{ city, state string }

var cities = map[cityKey]Coord{
	{"phoenix", "arizona"}:           {33.4484, -112.0740},
	{"los angeles", "california"}:    {34.0522, -118.2437},
	{"san francisco", "california"}:  {37.7749, -122.4194},
	{"san diego", "california"}:      {32.7157, -117.1611},
	{"new york", "new york"}:         {40.7128, -74.0060},
	{"chicago", "illinois"}:          {41.8781, -87.6298},
	{"houston", "texas"}:             {29.7604, -95.3698},
	{"dallas", "texas"}:              {32.7767, -96.7970},
	{"austin", "texas"}:              {30.2672, -97.7431},
	{"seattle", "washington"}:        {47.6062, -122.3321},
	{"portland", "oregon"}:           {45.5152, -122.6784},
	{"denver", "colorado"}:           {39.7392, -104.9903},
	{"miami", "florida"}:             {25.7617, -80.1918},
	{"atlanta", "georgia"}:           {33.7490, -84.3880},
	{"boston", "massachusetts"}:      {42.3601, -71.0589},
	{"detroit", "michigan"}:          {42.3314, -83.0458},
	{"ann arbor", "michigan"}:        {42.2808, -83.7430},
	{"philadelphia", "pennsylvania"}: {39.9526, -75.1652},
	{"minneapolis", "minnesota"}:     {44.9778, -93.2650},
	{"las vegas", "nevada"}:          {36.1699, -115.1398},
}

// LookupCity resolves a project city from the built-in table. Matching ignores case.
func LookupCity(city, state string) (Coord, bool) {
	c, ok := cities[cityKey{strings.ToLower(strings.TrimSpace(city)), strings.ToLower(strings.TrimSpace(state))}]
	return c, ok
}

// ResolveSite picks explicit coordinates when given, otherwise the city table.
func ResolveSite(city, state string, lat, lon *float64) (Coord, error) {
	if lat != nil || lon != nil {
		if lat == nil || lon == nil {
			return Coord{}, model.InvalidParam("latitude", "latitude and longitude must be given together")
		}
		c := Coord{Lat: *lat, Lon: *lon}
		return c, c.Validate()
	}
	if city == "" {
		return Coord{}, model.InvalidParam("city", "city and state, or latitude and longitude, are required")
	}
	c, ok := LookupCity(city, state)
	if !ok {
		return Coord{}, model.InvalidParam("city", fmt.Sprintf("unknown location %s, %s; pass latitude and longitude", city, state))
	}
	return c, nil
}
