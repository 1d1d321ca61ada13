package skips

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"skiphire/models"
	"skiphire/utils"
)

// Default search location when the customer has not supplied one.
const (
	DefaultPostcode = "NR32"
	DefaultArea     = "Lowestoft"
)

// Client fetches the skip catalogue for a location from the supplier API,
// falling back to a static catalogue when the API is unreachable or empty.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
	logger  *zap.Logger
}

// catalogueCacheTTL bounds how stale a cached catalogue may get.
const catalogueCacheTTL = 10 * time.Minute

// NewClient builds a catalogue client against the configured supplier URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  utils.GetLogger().Named("skips"),
	}
}

// WithCache enables Redis caching of per-location catalogues.
func (c *Client) WithCache(cache *redis.Client) *Client {
	c.cache = cache
	return c
}

// FetchByLocation returns the skips available at the given location. It
// never fails: any supplier error or empty result yields the fallback
// catalogue so the customer can always pick a skip.
func (c *Client) FetchByLocation(ctx context.Context, postcode, area string) []models.SkipOffering {
	if postcode == "" {
		postcode = DefaultPostcode
	}
	if area == "" {
		area = DefaultArea
	}

	if cached, ok := c.fromCache(ctx, postcode, area); ok {
		return cached
	}

	offerings, err := c.fetch(ctx, postcode, area)
	if err != nil {
		c.logger.Warn("skip catalogue unavailable, using fallback",
			zap.String("postcode", postcode), zap.Error(err))
		return FallbackCatalogue()
	}
	if len(offerings) == 0 {
		c.logger.Info("no skips listed for location, using fallback",
			zap.String("postcode", postcode), zap.String("area", area))
		return FallbackCatalogue()
	}

	c.toCache(ctx, postcode, area, offerings)
	return offerings
}

func cacheKey(postcode, area string) string {
	return "skips:" + postcode + ":" + area
}

func (c *Client) fromCache(ctx context.Context, postcode, area string) ([]models.SkipOffering, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, err := c.cache.Get(ctx, cacheKey(postcode, area)).Bytes()
	if err != nil {
		return nil, false
	}
	var offerings []models.SkipOffering
	if err := json.Unmarshal(data, &offerings); err != nil {
		return nil, false
	}
	return offerings, true
}

func (c *Client) toCache(ctx context.Context, postcode, area string, offerings []models.SkipOffering) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(offerings)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(postcode, area), data, catalogueCacheTTL).Err(); err != nil {
		c.logger.Debug("failed to cache catalogue", zap.Error(err))
	}
}

func (c *Client) fetch(ctx context.Context, postcode, area string) ([]models.SkipOffering, error) {
	q := url.Values{}
	q.Set("postcode", postcode)
	q.Set("area", area)

	endpoint := c.baseURL + "/api/skips/by-location?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supplier returned status %d", resp.StatusCode)
	}

	// Either a bare array or an object wrapping a "skips" array.
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var list []models.SkipOffering
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Skips []models.SkipOffering `json:"skips"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Skips, nil
}

// FallbackCatalogue is the static offering used when the supplier cannot
// be reached.
func FallbackCatalogue() []models.SkipOffering {
	return []models.SkipOffering{
		{ID: 1, Size: 4, HirePeriodDays: 14, PriceBeforeVAT: 120, VATPercent: 20, AllowedOnRoad: true},
		{ID: 2, Size: 6, HirePeriodDays: 14, PriceBeforeVAT: 150, VATPercent: 20, AllowedOnRoad: true},
		{ID: 3, Size: 8, HirePeriodDays: 14, PriceBeforeVAT: 180, VATPercent: 20, AllowedOnRoad: true, AllowsHeavy: true},
	}
}
