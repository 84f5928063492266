package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/explorea/countries-api/pkg/helpers"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrUpstream        = errors.New("country data provider unavailable")
)

// Country mirrors the subset of the REST Countries v3.1 record the
// application displays.
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
	Capital    []string                   `json:"capital,omitempty"`
	Region     string                     `json:"region"`
	Subregion  string                     `json:"subregion,omitempty"`
	Languages  map[string]string          `json:"languages,omitempty"`
	Currencies map[string]CountryCurrency `json:"currencies,omitempty"`
	Population int64                      `json:"population"`
	Borders    []string                   `json:"borders,omitempty"`
	Area       float64                    `json:"area,omitempty"`
	Timezones  []string                   `json:"timezones,omitempty"`
}

type CountryCurrency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// CountriesService proxies the public country data provider. Results are
// cached in Redis with a short TTL; cache misses and cache failures fall
// through to the provider, and cache failures are never surfaced. The
// favorites invariants do not depend on this service being reachable.
type CountriesService struct {
	BaseURL  string
	HTTP     *http.Client
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewCountriesService(baseURL string, timeout time.Duration, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *CountriesService {
	return &CountriesService{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		Redis:    rdb,
		CacheTTL: cacheTTL,
		Logger:   logger,
	}
}

const cacheKeyAll = "countries:all"

func cacheKeyName(name string) string {
	return "countries:name:" + strings.ToLower(name)
}

// List returns all countries sorted by common name.
func (s *CountriesService) List(ctx context.Context) ([]Country, error) {
	if s.Redis != nil {
		var cached []Country
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, cacheKeyAll, &cached); err != nil {
			s.logCacheErr(cacheKeyAll, err)
		} else if ok {
			return cached, nil
		}
	}

	var countries []Country
	if err := s.fetch(ctx, s.BaseURL+"/all", &countries); err != nil {
		return nil, err
	}
	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Name.Common < countries[j].Name.Common
	})

	s.cacheSet(ctx, cacheKeyAll, countries)
	return countries, nil
}

// GetByName looks a country up by its exact common or official name.
func (s *CountriesService) GetByName(ctx context.Context, name string) (*Country, error) {
	key := cacheKeyName(name)
	if s.Redis != nil {
		var cached Country
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err != nil {
			s.logCacheErr(key, err)
		} else if ok {
			return &cached, nil
		}
	}

	u := s.BaseURL + "/name/" + url.PathEscape(name) + "?fullText=true"
	var countries []Country
	if err := s.fetch(ctx, u, &countries); err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, ErrCountryNotFound
	}

	s.cacheSet(ctx, key, countries[0])
	return &countries[0], nil
}

func (s *CountriesService) fetch(ctx context.Context, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.HTTP.Do(req)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("url", rawURL).Warn("country provider request failed")
		}
		return ErrUpstream
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return ErrCountryNotFound
	}
	if res.StatusCode != http.StatusOK {
		if s.Logger != nil {
			s.Logger.WithField("status", res.StatusCode).WithField("url", rawURL).Warn("country provider returned non-200")
		}
		return ErrUpstream
	}
	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("country provider returned malformed payload")
		}
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}

func (s *CountriesService) logCacheErr(key string, err error) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("countries cache read failed")
	}
}

func (s *CountriesService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, key, value, s.CacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("countries cache write failed")
	}
}
