package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/system"
)

// AtlasClient consumes the read-only upstream Trust Atlas data API.
// The wire format is owned by that service; this client only decodes
// already-shaped records.
type AtlasClient struct {
	baseURL string
	client  *http.Client
}

func NewAtlasClient(baseURL string) *AtlasClient {
	return &AtlasClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetBaseURL swaps the upstream endpoint (settings are runtime-editable).
func (a *AtlasClient) SetBaseURL(baseURL string) {
	a.baseURL = baseURL
}

// BaseURL returns the configured upstream endpoint.
func (a *AtlasClient) BaseURL() string {
	return a.baseURL
}

// FetchCountries retrieves the upstream country reference list.
func (a *AtlasClient) FetchCountries() ([]models.Country, error) {
	var countries []models.Country
	if err := a.getJSON("/countries", nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// FetchScores retrieves all observations for one country and pillar.
func (a *AtlasClient) FetchScores(iso3, pillar string) ([]models.TrustScore, error) {
	q := url.Values{}
	q.Set("iso3", iso3)
	q.Set("pillar", pillar)
	var scores []models.TrustScore
	if err := a.getJSON("/scores", q, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// TrendPoint is one year of the global aggregate trend for a pillar.
type TrendPoint struct {
	Year      int     `json:"year"`
	Average   float64 `json:"average"`
	Countries int     `json:"countries"`
}

// FetchTrend retrieves the aggregate trend series for a pillar.
func (a *AtlasClient) FetchTrend(pillar string) ([]TrendPoint, error) {
	var points []TrendPoint
	if err := a.getJSON("/trends/"+pillar, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Ping checks upstream reachability without decoding a payload.
func (a *AtlasClient) Ping() error {
	resp, err := a.client.Get(a.baseURL + "/countries")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	return nil
}

func (a *AtlasClient) getJSON(path string, q url.Values, out interface{}) error {
	endpoint := a.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	resp, err := a.client.Get(endpoint)
	if err != nil {
		system.Warn("Upstream request failed: GET %s: %v", path, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		system.Warn("Upstream request failed: GET %s: status %d", path, resp.StatusCode)
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		system.Warn("Upstream response decode failed: GET %s: %v", path, err)
		return err
	}
	return nil
}
