package model

import "fmt"

// Strategy names one of the four fixed purchasing strategies.
// Keep these values stable; they are used as JSON keys and CSV headers.
type Strategy string

const (
	SpotNow   Strategy = "spot_now"
	SpotLater Strategy = "spot_later"
	Ladder    Strategy = "ladder"
	Hedge     Strategy = "hedge"
)

// Strategies returns every strategy in reporting order.
func Strategies() []Strategy {
	return []Strategy{SpotNow, SpotLater, Ladder, Hedge}
}

// Label is the human-facing name used in tables and charts.
func (s Strategy) Label() string {
	switch s {
	case SpotNow:
		return "Spot Now"
	case SpotLater:
		return "Spot Later"
	case Ladder:
		return "Ladder"
	case Hedge:
		return "Hedge"
	default:
		return string(s)
	}
}

func (s Strategy) Valid() bool {
	switch s {
	case SpotNow, SpotLater, Ladder, Hedge:
		return true
	default:
		return false
	}
}

// ParseStrategy accepts either the stable name ("spot_now") or the label ("Spot Now").
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if name == string(s) || name == s.Label() {
			return s, nil
		}
	}
	return "", InvalidParam("strategy", fmt.Sprintf("unknown strategy %q", name))
}
