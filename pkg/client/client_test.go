package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal stand-in for the server, speaking the same
// envelope format. failList forces favorites reads to fail so the
// swallow-and-keep-last-known behavior can be observed.
type fakeAPI struct {
	mu        sync.Mutex
	favorites []Favorite
	token     string
	failList  bool
}

func (f *fakeAPI) writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"success": status < 400,
		"message": message,
		"data":    data,
	})
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.writeEnvelope(w, http.StatusOK, "login successful", map[string]string{"token": f.token})
	})
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.writeEnvelope(w, http.StatusCreated, "registered", map[string]string{"token": f.token})
	})

	mux.HandleFunc("/api/favorites", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			f.writeEnvelope(w, http.StatusUnauthorized, "No token provided.", nil)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if f.failList {
				f.writeEnvelope(w, http.StatusInternalServerError, "Error fetching favorites", nil)
				return
			}
			f.writeEnvelope(w, http.StatusOK, "favorites", f.favorites)
		case http.MethodPost:
			var fav Favorite
			_ = json.NewDecoder(r.Body).Decode(&fav)
			for _, existing := range f.favorites {
				if existing.CountryName == fav.CountryName {
					f.writeEnvelope(w, http.StatusBadRequest, "Country already in favorites", nil)
					return
				}
			}
			f.favorites = append(f.favorites, fav)
			f.writeEnvelope(w, http.StatusCreated, "added to favorites", f.favorites)
		}
	})

	mux.HandleFunc("/api/favorites/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/api/favorites/")
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.favorites[:0]
		for _, fav := range f.favorites {
			if fav.CountryName != name {
				kept = append(kept, fav)
			}
		}
		f.favorites = kept
		f.writeEnvelope(w, http.StatusOK, "removed from favorites", f.favorites)
	})

	return mux
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	api := &fakeAPI{token: "test-token"}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return api, New(srv.URL, nil)
}

func TestClient_LoginRefreshesCacheOnce(t *testing.T) {
	t.Parallel()
	api, c := newFakeAPI(t)
	api.favorites = []Favorite{{CountryName: "Finland"}}

	require.False(t, c.IsAuthenticated())
	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw123456"))
	require.True(t, c.IsAuthenticated())
	require.True(t, c.IsFavorite("Finland"))
	require.False(t, c.IsFavorite("Japan"))
}

func TestClient_LogoutClearsCacheWithoutFetch(t *testing.T) {
	t.Parallel()
	api, c := newFakeAPI(t)
	api.favorites = []Favorite{{CountryName: "Finland"}}

	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw123456"))
	require.True(t, c.IsFavorite("Finland"))

	c.Logout()
	require.False(t, c.IsAuthenticated())
	require.False(t, c.IsFavorite("Finland"))
	require.Empty(t, c.FavoriteNames())
}

func TestClient_AddFavoriteReconcilesByRefetch(t *testing.T) {
	t.Parallel()
	_, c := newFakeAPI(t)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "a@x.com", "pw123456"))
	require.NoError(t, c.AddFavorite(ctx, Favorite{CountryName: "Japan", Region: "Asia"}))
	require.True(t, c.IsFavorite("Japan"))
}

func TestClient_DuplicateAddSurfacesConflict(t *testing.T) {
	t.Parallel()
	_, c := newFakeAPI(t)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "a@x.com", "pw123456"))
	require.NoError(t, c.AddFavorite(ctx, Favorite{CountryName: "Japan"}))

	err := c.AddFavorite(ctx, Favorite{CountryName: "Japan"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Country already in favorites", apiErr.Message)

	// Cache still reflects the single saved entry.
	require.True(t, c.IsFavorite("Japan"))
}

func TestClient_RemoveFavoriteIsIdempotent(t *testing.T) {
	t.Parallel()
	_, c := newFakeAPI(t)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "a@x.com", "pw123456"))
	require.NoError(t, c.AddFavorite(ctx, Favorite{CountryName: "Japan"}))

	require.NoError(t, c.RemoveFavorite(ctx, "Japan"))
	require.False(t, c.IsFavorite("Japan"))

	// Removing again still succeeds.
	require.NoError(t, c.RemoveFavorite(ctx, "Japan"))
}

func TestClient_RefreshFailureKeepsLastKnownState(t *testing.T) {
	t.Parallel()
	api, c := newFakeAPI(t)
	api.favorites = []Favorite{{CountryName: "Finland"}}
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "a@x.com", "pw123456"))
	require.True(t, c.IsFavorite("Finland"))

	// Background refresh starts failing; the cache holds its last value
	// and the mutation that triggered it still reports success.
	api.mu.Lock()
	api.failList = true
	api.mu.Unlock()

	require.NoError(t, c.RemoveFavorite(ctx, "Atlantis"))
	require.True(t, c.IsFavorite("Finland"))
}

func TestClient_AnonymousMutationRejected(t *testing.T) {
	t.Parallel()
	_, c := newFakeAPI(t)

	err := c.AddFavorite(context.Background(), Favorite{CountryName: "Japan"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
