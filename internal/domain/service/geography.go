package service

import (
	"math"
	"strings"
)

// ---------------------------------------------------------------------------
// Geographic suitability tables
// ---------------------------------------------------------------------------

// Coordinates is a WGS84 point supplied by the applicant or a geocoder.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// knownStates lists every state the rule tables reference. Free-text
// locations are matched against this list by case-insensitive substring.
var knownStates = []string{
	"Andhra Pradesh",
	"Assam",
	"Bihar",
	"Delhi",
	"Gujarat",
	"Haryana",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Tamil Nadu",
	"Telangana",
	"Uttar Pradesh",
	"West Bengal",
}

// favoredStatesByCategory maps a green objective to the states where that
// kind of project is most viable. Waste projects are viable everywhere and
// are handled separately.
var favoredStatesByCategory = map[string][]string{
	"solar":             {"Rajasthan", "Gujarat", "Madhya Pradesh", "Maharashtra", "Karnataka", "Telangana", "Andhra Pradesh"},
	"wind":              {"Tamil Nadu", "Gujarat", "Karnataka", "Maharashtra", "Rajasthan"},
	"ev":                {"Delhi", "Maharashtra", "Karnataka", "Telangana", "Tamil Nadu", "Gujarat"},
	"energy_efficiency": {"Delhi", "Maharashtra", "Karnataka", "Telangana", "Tamil Nadu", "Gujarat"},
	"agriculture":       {"Punjab", "Haryana", "Uttar Pradesh", "Madhya Pradesh", "Maharashtra"},
	"water":             {"Punjab", "Haryana", "Uttar Pradesh", "Madhya Pradesh", "Maharashtra"},
}

type stateCentroid struct {
	state string
	lat   float64
	lng   float64
}

// stateCentroids is a sparse table used for nearest-centroid state lookup
// when the applicant supplies coordinates instead of a usable location.
var stateCentroids = []stateCentroid{
	{"Rajasthan", 26.9124, 73.8406},
	{"Gujarat", 22.6708, 71.5724},
	{"Maharashtra", 19.6633, 75.3003},
	{"Karnataka", 14.7937, 75.8382},
	{"Tamil Nadu", 11.0590, 78.3875},
	{"Delhi", 28.6448, 77.2167},
	{"Punjab", 30.8408, 75.4083},
	{"Assam", 26.2445, 92.5378},
}

// maxCentroidDistanceKM bounds the nearest-centroid lookup. Coordinates
// farther than this from every listed centroid resolve to an unknown state
// instead of snapping to a far-away one.
const maxCentroidDistanceKM = 500.0

const earthRadiusKM = 6371.0

// StateFromLocation resolves a free-text location to a canonical state name,
// or "" when no known state is mentioned.
func StateFromLocation(location string) string {
	lowered := strings.ToLower(location)
	for _, state := range knownStates {
		if strings.Contains(lowered, strings.ToLower(state)) {
			return state
		}
	}
	return ""
}

// StateFromCoordinates resolves coordinates to the nearest listed state
// centroid, or "" when every centroid is beyond the distance cutoff.
func StateFromCoordinates(c Coordinates) string {
	best := ""
	bestDist := math.MaxFloat64
	for _, sc := range stateCentroids {
		d := haversineKM(c.Lat, c.Lng, sc.lat, sc.lng)
		if d < bestDist {
			bestDist = d
			best = sc.state
		}
	}
	if bestDist > maxCentroidDistanceKM {
		return ""
	}
	return best
}

func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

func stateListed(state string, list []string) bool {
	for _, s := range list {
		if s == state {
			return true
		}
	}
	return false
}
