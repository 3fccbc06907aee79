// Package registry talks to the public ClinicalTrials.gov API, caching
// responses and bounding outbound calls with an hourly fixed-window limit.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrRateLimited is returned when the hourly outbound budget is exhausted
// and no cached response is available.
var ErrRateLimited = errors.New("registry rate limit exceeded")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry status code: %d", e.Code)
}

// Query carries the filters for a trial search. All fields are optional;
// zero-valued Limit defaults to DefaultPageSize and Status is merged in by
// the caller (the service layer defaults it to "Recruiting").
type Query struct {
	Condition string
	Location  string
	Phase     string
	Status    string
	Country   string
	Limit     int
	Offset    int
}

type Config struct {
	BaseURL          string
	RateLimitPerHour int
	CacheTTL         time.Duration
	Timeout          time.Duration
	HTTPClient       *http.Client
	Logger           zerolog.Logger
}

// Client issues GET requests against the registry, consulting the Cache
// before the network and the Limiter before every real call. On failure it
// falls back to a stale cache entry when one exists.
type Client struct {
	cfg     Config
	cache   *Cache
	limiter *Limiter
	log     zerolog.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RateLimitPerHour <= 0 {
		cfg.RateLimitPerHour = DefaultRateLimitPerHour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:     cfg,
		cache:   NewCache(cfg.CacheTTL),
		limiter: NewLimiter(cfg.RateLimitPerHour, time.Hour),
		log:     cfg.Logger,
	}
}

// Search issues a list query. The upstream API is term-based, not
// structured: condition, status, country, location and phase are joined
// into a single whitespace-separated query.term string.
func (c *Client) Search(ctx context.Context, q Query) (map[string]any, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	params := map[string]string{
		"pageSize": strconv.Itoa(limit),
		"fields":   essentialFields,
	}
	if q.Offset > 0 {
		params["pageToken"] = strconv.Itoa(q.Offset)
	}

	terms := []string{}
	if q.Condition != "" {
		terms = append(terms, q.Condition)
	}
	if q.Status != "" {
		terms = append(terms, q.Status)
	}
	if q.Country != "" {
		// "united states"/"usa" collapse to the literal registry term so
		// state-level trials still match.
		lc := strings.ToLower(q.Country)
		if strings.Contains(lc, "united states") || strings.Contains(lc, "usa") {
			terms = append(terms, "United States")
		} else {
			terms = append(terms, q.Country)
		}
	}
	if q.Location != "" {
		terms = append(terms, q.Location)
	}
	if q.Phase != "" {
		terms = append(terms, q.Phase)
	}
	if len(terms) == 0 {
		terms = append(terms, defaultSearchTerm)
	}
	params["query.term"] = strings.Join(terms, " ")

	return c.get(ctx, studiesEndpoint, params)
}

// Details fetches a single study record by NCT id.
func (c *Client) Details(ctx context.Context, nctID string) (map[string]any, error) {
	return c.get(ctx, studiesEndpoint+"/"+url.PathEscape(nctID), nil)
}

// CompleteDetails fetches a single study with the exhaustive field set.
func (c *Client) CompleteDetails(ctx context.Context, nctID string) (map[string]any, error) {
	params := map[string]string{"fields": strings.Join(detailFields, ",")}
	return c.get(ctx, studiesEndpoint+"/"+url.PathEscape(nctID), params)
}

// CacheStats reports cache size and keys.
func (c *Client) CacheStats() (int, []string) { return c.cache.Stats() }

// RateLimitStatus reports the current window counter.
func (c *Client) RateLimitStatus() (count, limit int, resetAt time.Time) {
	return c.limiter.Status()
}

// ClearCache drops all cached responses.
func (c *Client) ClearCache() { c.cache.Clear() }

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) (map[string]any, error) {
	key := CacheKey(endpoint, params)
	if data, ok := c.cache.Get(key); ok {
		c.log.Debug().Str("key", key).Msg("registry cache hit")
		return data.(map[string]any), nil
	}

	if !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	parsed, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		if stale, ok := c.cache.Stale(key); ok {
			c.log.Warn().Str("key", key).Err(err).Msg("registry call failed, serving stale cache")
			return stale.(map[string]any), nil
		}
		return nil, err
	}

	c.cache.Put(key, parsed)
	return parsed, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, params map[string]string) (map[string]any, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		values := url.Values{}
		for k, v := range params {
			if v == "" {
				continue
			}
			values.Set(k, v)
		}
		if enc := values.Encode(); enc != "" {
			u += "?" + enc
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	var parsed map[string]any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, fmt.Errorf("registry response parse: %w", err)
	}
	return parsed, nil
}
