package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.GeoConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
}

func TestCountries_SortedNames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/countries/positions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": false, "data": [{"name": "Spain"}, {"name": "France"}, {"name": "Andorra"}]}`))
	})

	countries, err := client.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Andorra", "France", "Spain"}, countries)
}

func TestCountries_ServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": true, "data": []}`))
	})

	_, err := client.Countries(context.Background())
	assert.Error(t, err)
}

func TestCities_PostsCountryAndSorts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/countries/cities", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Spain", body["country"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": false, "data": ["Madrid", "Barcelona", "Sevilla"]}`))
	})

	cities, err := client.Cities(context.Background(), "Spain")
	require.NoError(t, err)
	assert.Equal(t, []string{"Barcelona", "Madrid", "Sevilla"}, cities)
}

func TestCities_HTTPFailureStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Cities(context.Background(), "Spain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
