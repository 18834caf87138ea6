package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Country{},
		&models.TrustScore{},
		&models.ShareLink{},
		&models.Admin{},
		&models.SiteSettings{},
	))

	require.NoError(t, db.Create(&models.Country{ISO3: "USA", ISO2: "US", Name: "United States"}).Error)
	require.NoError(t, db.Create(&models.Country{ISO3: "GBR", ISO2: "GB", Name: "United Kingdom"}).Error)
	require.NoError(t, db.Create(&models.SiteSettings{ID: 1}).Error)

	scores := []models.TrustScore{
		{ISO3: "USA", Year: 2018, Pillar: "social", Source: "WVS", Score: 37.234},
		{ISO3: "USA", Year: 2022, Pillar: "social", Source: "WVS", Score: 39.891},
		{ISO3: "USA", Year: 2022, Pillar: "media", Source: "Reuters_DNR", Score: 26.0},
		{ISO3: "GBR", Year: 2022, Pillar: "social", Source: "WVS", Score: 44.5},
	}
	for _, s := range scores {
		require.NoError(t, db.Create(&s).Error)
	}

	atlas := services.NewAtlasClient("http://127.0.0.1:0")
	webhook := services.NewWebhookService()
	h := NewHandler(db, atlas, services.NewRefresher(db, atlas, webhook, 0),
		services.NewShareLinkService(db), services.NewGeoIPService(),
		webhook, services.NewHealthMonitor(atlas, webhook))

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/countries", h.GetCountries)
	api.Get("/pillars", h.GetPillars)
	api.Get("/series", h.GetSeries)
	api.Get("/trends/:pillar", h.GetTrend)
	api.Get("/export/csv", h.ExportCSV)
	api.Get("/meta/sources", h.GetSources)
	api.Get("/locate", h.Locate)
	api.Post("/share", h.CreateShareLink)
	app.Get("/s/:code", h.ResolveShareLink)
	app.Get("/grapher", h.Grapher)

	return app, h
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestGetSeries(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/series?countries=USA,GBR&pillar=social", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got struct {
		Pillar string `json:"pillar"`
		Series []struct {
			ISO3   string `json:"iso3"`
			Name   string `json:"name"`
			Points []struct {
				Year  int     `json:"year"`
				Score float64 `json:"score"`
			} `json:"points"`
		} `json:"series"`
	}
	decodeJSON(t, resp, &got)

	require.Len(t, got.Series, 2)
	assert.Equal(t, "social", got.Pillar)
	assert.Equal(t, "USA", got.Series[0].ISO3)
	assert.Equal(t, "United States", got.Series[0].Name)
	require.Len(t, got.Series[0].Points, 2)
	assert.Equal(t, 2018, got.Series[0].Points[0].Year)
	assert.Equal(t, "GBR", got.Series[1].ISO3)
}

func TestGetSeriesYearBounds(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/series?countries=USA&pillar=social&from=2020", nil))
	require.NoError(t, err)

	var got struct {
		Series []struct {
			Points []struct {
				Year int `json:"year"`
			} `json:"points"`
		} `json:"series"`
	}
	decodeJSON(t, resp, &got)

	require.Len(t, got.Series, 1)
	require.Len(t, got.Series[0].Points, 1)
	assert.Equal(t, 2022, got.Series[0].Points[0].Year)
}

func TestGetTrend(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/trends/social", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got struct {
		Pillar string `json:"pillar"`
		Trend  []struct {
			Year      int     `json:"year"`
			Average   float64 `json:"average"`
			Countries int     `json:"countries"`
		} `json:"trend"`
	}
	decodeJSON(t, resp, &got)

	assert.Equal(t, "social", got.Pillar)
	require.Len(t, got.Trend, 2)
	assert.Equal(t, 2018, got.Trend[0].Year)
	assert.Equal(t, 2022, got.Trend[1].Year)
	assert.Equal(t, 2, got.Trend[1].Countries)
	assert.InDelta(t, (39.891+44.5)/2, got.Trend[1].Average, 0.001)
}

func TestGetTrendUnknownPillarFallsBack(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/trends/governance", nil))
	require.NoError(t, err)

	var got struct {
		Pillar string `json:"pillar"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, "social", got.Pillar)
}

func TestExportCSV(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/export/csv?countries=USA&pillar=social", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, "text/csv;charset=utf-8", resp.Header.Get("Content-Type"))
	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment; filename=trust-atlas-social-USA-"), disposition)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, "# Trust Atlas data export")
	assert.Contains(t, text, "# Pillar: social")
	assert.Contains(t, text, "# Sources: WVS")
	assert.Contains(t, text, "country,iso3,year,pillar,score,source")
	assert.Contains(t, text, "United States,USA,2018,social,37.2,WVS")
	assert.Contains(t, text, "United States,USA,2022,social,39.9,WVS")
}

func TestShareLinkRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	payload := strings.NewReader(`{"query":"countries=USA,GBR&pillar=media&tab=chart"}`)
	req := httptest.NewRequest("POST", "/api/share", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var created struct {
		Code string `json:"code"`
		URL  string `json:"url"`
	}
	decodeJSON(t, resp, &created)
	require.NotEmpty(t, created.Code)
	assert.Equal(t, "/s/"+created.Code, created.URL)

	// Sharing the same view again reuses the code.
	payload2 := strings.NewReader(`{"query":"countries=USA,GBR&pillar=media"}`)
	req2 := httptest.NewRequest("POST", "/api/share", payload2)
	req2.Header.Set("Content-Type", "application/json")
	resp2, err := app.Test(req2)
	require.NoError(t, err)
	var again struct {
		Code string `json:"code"`
	}
	decodeJSON(t, resp2, &again)
	assert.Equal(t, created.Code, again.Code)

	// Resolving redirects to the canonical grapher URL.
	resp3, err := app.Test(httptest.NewRequest("GET", "/s/"+created.Code, nil))
	require.NoError(t, err)
	assert.Equal(t, 302, resp3.StatusCode)

	loc, err := url.Parse(resp3.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/grapher", loc.Path)
	q := loc.Query()
	assert.Equal(t, "USA,GBR", q.Get("countries"))
	assert.Equal(t, "media", q.Get("pillar"))
}

func TestShareLinkUnknownCode(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/s/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGrapherMutationRedirect(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/grapher?countries=USA&pillar=social&tab=map&add=FRA", nil))
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Equal(t, "USA,FRA", q.Get("countries"))
	assert.Equal(t, "social", q.Get("pillar"))
	assert.Equal(t, "map", q.Get("tab"), "unrelated params preserved")
	assert.False(t, q.Has("add"), "op keys stripped from canonical URL")
}

func TestGrapherMutationRemoveAndPillar(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/grapher?countries=USA,GBR&pillar=social&remove=USA&set_pillar=media", nil))
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Equal(t, "GBR", q.Get("countries"))
	assert.Equal(t, "media", q.Get("pillar"))
}

func TestGrapherTimeRangeMutation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/grapher?countries=USA&from=1990&to=2000&set_from=2005&set_to=", nil))
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Equal(t, "2005", q.Get("from"))
	assert.False(t, q.Has("to"), "empty set_to clears the bound")
}

func TestLocateWithoutGeoIP(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/locate", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got map[string]interface{}
	decodeJSON(t, resp, &got)
	assert.Empty(t, got)
}

func TestGetCountries(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/countries", nil))
	require.NoError(t, err)

	var got []models.Country
	decodeJSON(t, resp, &got)
	require.Len(t, got, 2)
	// Ordered by name
	assert.Equal(t, "GBR", got[0].ISO3)
	assert.Equal(t, "USA", got[1].ISO3)
}

func TestGetSources(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/meta/sources", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got struct {
		Sources []SourceInfo `json:"sources"`
		License string       `json:"license"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, "CC-BY-4.0", got.License)
	assert.NotEmpty(t, got.Sources)
}
