package adapter

import (
	"context"
	"strings"

	"github.com/consolevik/TerraLend/internal/domain/service"
)

// StaticGeocoder is a development/test adapter that resolves well-known city
// and state names to fixed coordinates. It implements port.GeocodingClient.
type StaticGeocoder struct{}

// NewStaticGeocoder creates a new static adapter.
func NewStaticGeocoder() *StaticGeocoder {
	return &StaticGeocoder{}
}

type knownPlace struct {
	name string
	lat  float64
	lng  float64
}

// knownPlaces covers the cities and states the verification rules reference.
// Cities precede states so a city hit wins over its state centroid.
var knownPlaces = []knownPlace{
	{"jodhpur", 26.2389, 73.0243},
	{"jaipur", 26.9124, 75.7873},
	{"ahmedabad", 23.0225, 72.5714},
	{"mumbai", 19.0760, 72.8777},
	{"pune", 18.5204, 73.8567},
	{"bengaluru", 12.9716, 77.5946},
	{"chennai", 13.0827, 80.2707},
	{"hyderabad", 17.3850, 78.4867},
	{"kochi", 9.9312, 76.2673},
	{"guwahati", 26.1445, 91.7362},
	{"rajasthan", 26.9124, 73.8406},
	{"gujarat", 22.6708, 71.5724},
	{"maharashtra", 19.6633, 75.3003},
	{"karnataka", 14.7937, 75.8382},
	{"tamil nadu", 11.0590, 78.3875},
	{"delhi", 28.6448, 77.2167},
	{"punjab", 30.8408, 75.4083},
	{"assam", 26.2445, 92.5378},
	{"kerala", 10.8505, 76.2711},
}

// Geocode resolves a free-text location. Unknown locations return nil without
// an error so callers can degrade to text-only matching.
func (g *StaticGeocoder) Geocode(_ context.Context, location string) (*service.Coordinates, error) {
	lowered := strings.ToLower(location)
	for _, place := range knownPlaces {
		if strings.Contains(lowered, place.name) {
			return &service.Coordinates{Lat: place.lat, Lng: place.lng}, nil
		}
	}
	return nil, nil
}
