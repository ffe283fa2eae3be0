package geocoding

import (
	"context"
	"distance-service/internal/ports"
	"strings"
)

type MockPlace struct {
	Name     string
	Lat, Lon string
}

// DefaultMockPlaces backs GEOCODER=mock for local runs without network access.
var DefaultMockPlaces = []MockPlace{
	{Name: "New York", Lat: "40.7128", Lon: "-74.0060"},
	{Name: "Los Angeles", Lat: "34.0522", Lon: "-118.2437"},
	{Name: "Chicago", Lat: "41.8781", Lon: "-87.6298"},
	{Name: "Houston", Lat: "29.7604", Lon: "-95.3698"},
	{Name: "Phoenix", Lat: "33.4484", Lon: "-112.0740"},
	{Name: "London", Lat: "51.5074", Lon: "-0.1278"},
	{Name: "Paris", Lat: "48.8566", Lon: "2.3522"},
}

// MockGeocoder answers from a fixed place table. A query matches every place
// whose name it contains, case-insensitively, in table order.
type MockGeocoder struct {
	places []MockPlace
}

func NewMockGeocoder(places []MockPlace) *MockGeocoder {
	return &MockGeocoder{places: places}
}

func (m *MockGeocoder) Search(ctx context.Context, query string, limit int) ([]ports.GeocodeResult, error) {
	q := strings.ToLower(query)

	out := make([]ports.GeocodeResult, 0)
	for _, p := range m.places {
		if !strings.Contains(q, strings.ToLower(p.Name)) {
			continue
		}
		out = append(out, ports.GeocodeResult{DisplayName: p.Name, Lat: p.Lat, Lon: p.Lon})
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}
