package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Country is the display subset of a country record served by the API.
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official,omitempty"`
	} `json:"name"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg,omitempty"`
		Alt string `json:"alt,omitempty"`
	} `json:"flags"`
	Capital    []string          `json:"capital,omitempty"`
	Region     string            `json:"region"`
	Languages  map[string]string `json:"languages,omitempty"`
	Population int64             `json:"population"`
}

// Countries fetches the full country list, sorted by name server-side.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/countries", nil, false)
	if err != nil {
		return nil, err
	}
	var countries []Country
	if err := json.Unmarshal(env.Data, &countries); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}
	return countries, nil
}

// Country fetches one country by its exact name.
func (c *Client) Country(ctx context.Context, name string) (*Country, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/countries/"+url.PathEscape(name), nil, false)
	if err != nil {
		return nil, err
	}
	var country Country
	if err := json.Unmarshal(env.Data, &country); err != nil {
		return nil, fmt.Errorf("decode country: %w", err)
	}
	return &country, nil
}

// FilterCountries narrows a country list the way the explorer UI does:
// case-insensitive substring match on the common name, and an exact region
// match when region is non-empty.
func FilterCountries(countries []Country, query, region string) []Country {
	q := strings.ToLower(query)
	out := make([]Country, 0, len(countries))
	for _, c := range countries {
		if q != "" && !strings.Contains(strings.ToLower(c.Name.Common), q) {
			continue
		}
		if region != "" && c.Region != region {
			continue
		}
		out = append(out, c)
	}
	return out
}
