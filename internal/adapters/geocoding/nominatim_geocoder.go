package geocoding

import (
	"context"
	"distance-service/internal/platform/obs"
	"distance-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	userAgent           = "DistanceCalculator/1.0"
)

// NominatimGeocoder implements Geocoder using the OpenStreetMap Nominatim
// search API. Failures are returned immediately; there is no retry.
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session *http.Client
	baseURL string
}

func NewNominatimGeocoder(baseURL string, timeout time.Duration) (*NominatimGeocoder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("nominatim base url %q must be http(s)", baseURL)
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &NominatimGeocoder{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

// nominatim returns lat/lon as JSON strings.
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search resolves query via /search. A limit > 0 caps the result count.
// Address details are only requested for candidate lists (limit > 1);
// a single best-match lookup does not ask for them.
func (n *NominatimGeocoder) Search(
	ctx context.Context,
	query string,
	limit int,
) (_ []ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "nominatim.Search")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("nominatim search: query must be non-empty")
	}

	req, err := n.newRequest(ctx, http.MethodGet, n.baseURL+"/search")
	if err != nil {
		return nil, fmt.Errorf("nominatim search request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if limit > 1 {
		q.Set("addressdetails", "1")
	}
	req.URL.RawQuery = q.Encode()

	resp, err := n.do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}

	out := make([]ports.GeocodeResult, 0, len(decoded))
	for _, r := range decoded {
		out = append(out, ports.GeocodeResult{
			DisplayName: r.DisplayName,
			Lat:         r.Lat,
			Lon:         r.Lon,
		})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
