package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimSearchSendsPolicyHeadersAndParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "New York, NY", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Empty(t, r.URL.Query().Get("limit"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name":"New York, United States","lat":"40.7127281","lon":"-74.0060152","place_id":1},
			{"display_name":"New York County","lat":"40.7","lon":"-74.0"}
		]`))
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, time.Second)
	require.NoError(t, err)

	results, err := g.Search(context.Background(), " New York, NY ", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "New York, United States", results[0].DisplayName)
	assert.Equal(t, "40.7127281", results[0].Lat)
	assert.Equal(t, "-74.0060152", results[0].Lon)
}

func TestNominatimSearchWithLimitAsksForDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, time.Second)
	require.NoError(t, err)

	results, err := g.Search(context.Background(), "Chicago", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNominatimSearchStatusError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = g.Search(context.Background(), "Chicago", 0)
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
	assert.Equal(t, 1, calls, "failures must not be retried")
}

func TestNominatimSearchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = g.Search(context.Background(), "Chicago", 0)
	assert.Error(t, err)
}

func TestNominatimSearchEmptyQuery(t *testing.T) {
	g, err := NewNominatimGeocoder("", time.Second)
	require.NoError(t, err)
	assert.Equal(t, DefaultNominatimURL, g.baseURL)

	_, err = g.Search(context.Background(), "   ", 0)
	assert.Error(t, err)
}

func TestNewNominatimGeocoderRejectsBadURL(t *testing.T) {
	_, err := NewNominatimGeocoder("ftp://example.com", time.Second)
	assert.Error(t, err)
}

func TestNominatimSingleMatchSkipsAddressDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.False(t, r.URL.Query().Has("addressdetails"))
		_, _ = w.Write([]byte(`[{"display_name":"Chicago","lat":"41.8781","lon":"-87.6298"}]`))
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, time.Second)
	require.NoError(t, err)

	results, err := g.Search(context.Background(), "Chicago", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
}
