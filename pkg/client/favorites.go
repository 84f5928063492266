package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Favorite matches the server's wire format for a saved country.
type Favorite struct {
	CountryName string `json:"countryName"`
	Flag        string `json:"flag"`
	Capital     string `json:"capital"`
	Region      string `json:"region"`
}

// Favorites fetches the authoritative list from the server.
func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/favorites", nil, true)
	if err != nil {
		return nil, err
	}
	return decodeFavorites(env.Data)
}

// AddFavorite saves a country. On success the cache is reconciled by
// re-fetching the full list; the mutation error (e.g. the duplicate
// conflict) is returned to the caller for display.
func (c *Client) AddFavorite(ctx context.Context, fav Favorite) error {
	_, err := c.do(ctx, http.MethodPost, "/api/favorites", fav, true)
	if err != nil {
		return err
	}
	c.refreshFavorites(ctx)
	return nil
}

// RemoveFavorite deletes a country from the favorites. Removal is
// idempotent server-side, so removing an absent name still succeeds.
func (c *Client) RemoveFavorite(ctx context.Context, countryName string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/favorites/"+url.PathEscape(countryName), nil, true)
	if err != nil {
		return err
	}
	c.refreshFavorites(ctx)
	return nil
}

// IsFavorite answers from the local cache only; it never hits the network.
func (c *Client) IsFavorite(countryName string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.favorites[countryName]
	return ok
}

// FavoriteNames returns the cached favorite country names.
func (c *Client) FavoriteNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.favorites))
	for name := range c.favorites {
		names = append(names, name)
	}
	return names
}

// refreshFavorites reconciles the cache with the server by a full re-fetch.
// Failures are swallowed and logged: the cache keeps its last known value
// and no error reaches the caller. This is deliberate — background sync
// failures are silent, mutation failures are not.
func (c *Client) refreshFavorites(ctx context.Context) {
	if !c.IsAuthenticated() {
		return
	}
	favs, err := c.Favorites(ctx)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("favorites refresh failed, keeping last known state")
		}
		return
	}

	next := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		next[f.CountryName] = struct{}{}
	}
	c.mu.Lock()
	c.favorites = next
	c.mu.Unlock()
}

func decodeFavorites(data json.RawMessage) ([]Favorite, error) {
	if len(data) == 0 {
		return []Favorite{}, nil
	}
	var favs []Favorite
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if favs == nil {
		favs = []Favorite{}
	}
	return favs, nil
}
