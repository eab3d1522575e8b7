package gateway

import (
	"strings"
	"unicode"
)

// LocationKind tells how upstream will interpret a location query.
type LocationKind int

const (
	LocationPlaceName LocationKind = iota
	LocationCoordinates
)

func (k LocationKind) String() string {
	if k == LocationCoordinates {
		return "coordinates"
	}
	return "place_name"
}

// Location is a resolved location query. Query is always the caller's string,
// unmodified.
type Location struct {
	Query string
	Kind  LocationKind
}

// ResolveLocation classifies query as a "lat,lon" pair when it contains a comma
// and at least one digit, and as free text otherwise.
func ResolveLocation(query string) Location {
	kind := LocationPlaceName
	if strings.Contains(query, ",") && strings.IndexFunc(query, unicode.IsDigit) >= 0 {
		kind = LocationCoordinates
	}
	return Location{Query: query, Kind: kind}
}

const (
	MinForecastDays     = 1
	MaxForecastDays     = 14
	DefaultForecastDays = 7
)

// ClampDays resets any value outside [MinForecastDays, MaxForecastDays] to
// DefaultForecastDays.
func ClampDays(days int) int {
	if days < MinForecastDays || days > MaxForecastDays {
		return DefaultForecastDays
	}
	return days
}
