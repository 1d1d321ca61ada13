package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"skiphire/models"
	"skiphire/utils"
)

var (
	// Full-postcode match used to decide whether a query is a postcode search.
	fullPostcodeRe = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9][A-Z0-9]?\s?[0-9][A-Z]{2}$`)

	// Embedded-postcode match used to split a free-text query into
	// postcode and area parts.
	embeddedPostcodeRe = regexp.MustCompile(`(?i)([A-Z]{1,2}[0-9][A-Z0-9]?\s?[0-9][A-Z]{2})`)

	// Normalised postcode shape, no spaces.
	cleanPostcodeRe = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]?[0-9][A-Z]{2}$`)
)

// Resolver looks up UK addresses through a chain of providers: the skip
// supplier's location API first, then postcodes.io, then a deterministic
// local suggestion list.
type Resolver struct {
	primaryBaseURL   string
	postcodesBaseURL string
	client           *http.Client
	logger           *zap.Logger
}

// NewResolver builds a resolver against the configured provider URLs.
func NewResolver(primaryBaseURL, postcodesBaseURL string) *Resolver {
	return &Resolver{
		primaryBaseURL:   strings.TrimRight(primaryBaseURL, "/"),
		postcodesBaseURL: strings.TrimRight(postcodesBaseURL, "/"),
		client:           &http.Client{Timeout: 10 * time.Second},
		logger:           utils.GetLogger().Named("address"),
	}
}

// ParseLocationQuery splits a free-text query into a normalised postcode
// and an area. Either part may be empty.
func ParseLocationQuery(query string) (postcode, area string) {
	if m := embeddedPostcodeRe.FindString(query); m != "" {
		postcode = strings.ToUpper(strings.ReplaceAll(m, " ", ""))
		area = strings.TrimSpace(embeddedPostcodeRe.ReplaceAllString(query, ""))
		area = strings.TrimSuffix(area, ",")
		area = strings.TrimSpace(area)
		return postcode, area
	}
	return "", strings.TrimSpace(query)
}

// ValidatePostcode reports whether the input has the shape of a UK postcode.
func ValidatePostcode(postcode string) bool {
	clean := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	return cleanPostcodeRe.MatchString(clean)
}

// Autocomplete returns live suggestions for a partial query. It never
// returns an error: every provider failure falls through to the next
// provider, ending at the local suggestion list.
func (r *Resolver) Autocomplete(ctx context.Context, query string) []models.AddressCandidate {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.AddressCandidate{}
	}

	postcode, area := ParseLocationQuery(query)

	if candidates, err := r.primaryLookup(ctx, postcode, area, query); err == nil {
		return candidates
	} else {
		r.logger.Debug("primary address lookup unavailable, using fallback",
			zap.String("query", query), zap.Error(err))
	}

	if fullPostcodeRe.MatchString(query) {
		if candidates, err := r.postcodeLookup(ctx, query); err == nil {
			return candidates
		} else {
			r.logger.Debug("postcode lookup unavailable, using local suggestions",
				zap.String("query", query), zap.Error(err))
		}
		return []models.AddressCandidate{}
	}

	return MockCandidates(query)
}

// Search resolves addresses for a confirmed postcode, optionally narrowed
// by area. Unlike Autocomplete it surfaces the failure when every provider
// is exhausted.
func (r *Resolver) Search(ctx context.Context, postcode, area string) ([]models.AddressCandidate, error) {
	if candidates, err := r.primaryLookup(ctx, postcode, area, ""); err == nil {
		return candidates, nil
	} else {
		r.logger.Debug("primary address search unavailable, using fallback",
			zap.String("postcode", postcode), zap.Error(err))
	}

	candidates, err := r.postcodeLookup(ctx, postcode)
	if err != nil {
		return nil, fmt.Errorf("no address provider could resolve postcode %q: %w", postcode, err)
	}
	return candidates, nil
}

func (r *Resolver) primaryLookup(ctx context.Context, postcode, area, rawQuery string) ([]models.AddressCandidate, error) {
	q := url.Values{}
	switch {
	case postcode != "" && area != "":
		q.Set("postcode", postcode)
		q.Set("area", area)
	case postcode != "":
		q.Set("postcode", postcode)
	case rawQuery != "":
		q.Set("area", rawQuery)
	default:
		q.Set("area", area)
	}

	endpoint := r.primaryBaseURL + "/api/skips/by-location?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("primary lookup returned status %d", resp.StatusCode)
	}

	// The endpoint returns either a bare array or an object wrapping an
	// "addresses" array.
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var list []models.AddressCandidate
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Addresses []models.AddressCandidate `json:"addresses"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Addresses == nil {
		return []models.AddressCandidate{}, nil
	}
	return wrapped.Addresses, nil
}

func (r *Resolver) postcodeLookup(ctx context.Context, postcode string) ([]models.AddressCandidate, error) {
	clean := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))

	endpoint := r.postcodesBaseURL + "/postcodes/" + url.PathEscape(clean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("postcode lookup returned status %d", resp.StatusCode)
	}

	var payload struct {
		Result struct {
			Postcode      string `json:"postcode"`
			AdminWard     string `json:"admin_ward"`
			AdminDistrict string `json:"admin_district"`
			AdminCounty   string `json:"admin_county"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	res := payload.Result
	full := strings.Join([]string{res.AdminWard, res.AdminDistrict, res.AdminCounty, res.Postcode}, ", ")

	return []models.AddressCandidate{{
		ID:          "postcode-" + clean,
		Line2:       res.AdminWard,
		Line3:       res.AdminDistrict,
		City:        res.AdminCounty,
		Postcode:    res.Postcode,
		FullAddress: full,
		Type:        "postcode_area",
	}}, nil
}
