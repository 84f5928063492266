package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const providerAllPayload = `[
	{"name":{"common":"Japan"},"flags":{"png":"jp.png"},"capital":["Tokyo"],"region":"Asia","population":125000000},
	{"name":{"common":"Brazil"},"flags":{"png":"br.png"},"capital":["Brasília"],"region":"Americas","population":212000000},
	{"name":{"common":"Finland"},"flags":{"png":"fi.png"},"capital":["Helsinki"],"region":"Europe","population":5500000}
]`

func newCountriesService(upstream *httptest.Server) *CountriesService {
	return NewCountriesService(upstream.URL, 5*time.Second, nil, time.Minute, nil)
}

func TestCountries_ListSortedByName(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/all", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(providerAllPayload))
	}))
	defer upstream.Close()

	svc := newCountriesService(upstream)
	countries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 3)

	names := []string{countries[0].Name.Common, countries[1].Name.Common, countries[2].Name.Common}
	require.Equal(t, []string{"Brazil", "Finland", "Japan"}, names)
}

func TestCountries_GetByName(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/name/Finland", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("fullText"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":{"common":"Finland","official":"Republic of Finland"},"flags":{"png":"fi.png"},"capital":["Helsinki"],"region":"Europe","population":5500000}]`))
	}))
	defer upstream.Close()

	svc := newCountriesService(upstream)
	country, err := svc.GetByName(context.Background(), "Finland")
	require.NoError(t, err)
	require.Equal(t, "Finland", country.Name.Common)
	require.Equal(t, "Republic of Finland", country.Name.Official)
}

func TestCountries_UnknownNameIsNotFound(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	svc := newCountriesService(upstream)
	_, err := svc.GetByName(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrCountryNotFound)
}

func TestCountries_UpstreamErrorSurfaces(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := newCountriesService(upstream)
	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
}

func TestCountries_MalformedPayloadIsUpstreamError(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer upstream.Close()

	svc := newCountriesService(upstream)
	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
}

func TestCountries_UnreachableProvider(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // provider is down

	svc := newCountriesService(upstream)
	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
}
