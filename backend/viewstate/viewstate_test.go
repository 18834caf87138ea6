package viewstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseDefaults(t *testing.T) {
	v := ParseQuery("")
	assert.Equal(t, "social", v.Pillar)
	assert.Empty(t, v.Countries)
	assert.Nil(t, v.From)
	assert.Nil(t, v.To)
	assert.Empty(t, v.Title)
}

func TestParseIsTotal(t *testing.T) {
	cases := []string{
		"pillar=bogus",
		"from=abc&to=",
		"countries=,,,",
		"%zz%%%",
		"countries=USA&countries=GBR",
	}
	for _, raw := range cases {
		v := ParseQuery(raw)
		assert.Equal(t, "social", v.Pillar, "query %q", raw)
	}
}

func TestParseCountries(t *testing.T) {
	v := ParseQuery("countries=USA,GBR,,FRA,USA")
	assert.Equal(t, []string{"USA", "GBR", "FRA"}, v.Countries)
}

func TestParsePillar(t *testing.T) {
	assert.Equal(t, "media", ParseQuery("pillar=media").Pillar)
	assert.Equal(t, "institutions", ParseQuery("pillar=institutions").Pillar)
	assert.Equal(t, "social", ParseQuery("pillar=governance").Pillar)
}

func TestParseYears(t *testing.T) {
	v := ParseQuery("from=2000&to=2024")
	require.NotNil(t, v.From)
	require.NotNil(t, v.To)
	assert.Equal(t, 2000, *v.From)
	assert.Equal(t, 2024, *v.To)

	v = ParseQuery("from=2000")
	require.NotNil(t, v.From)
	assert.Nil(t, v.To)
}

func TestRoundTrip(t *testing.T) {
	cases := []ViewState{
		{Pillar: "social"},
		{Countries: []string{"USA"}, Pillar: "media"},
		{Countries: []string{"USA", "GBR", "FRA"}, Pillar: "institutions", From: intPtr(1990), To: intPtr(2024)},
		{Countries: []string{"IRN"}, Pillar: "social", Title: "Trust in Iran", Subtitle: "WVS waves 5-7"},
	}
	for _, v := range cases {
		got := ParseQuery(v.EncodeQuery())
		assert.Equal(t, v, got)
	}
}

func TestEncodeOmitsEmptyCountries(t *testing.T) {
	v := ViewState{Countries: []string{}, Pillar: "social"}
	q := v.Encode()
	assert.False(t, q.Has("countries"))
	assert.Equal(t, "social", q.Get("pillar"))
}

func TestAddCountryIdempotent(t *testing.T) {
	q, _ := url.ParseQuery("countries=USA,GBR&pillar=social")

	once := AddCountry(q, "FRA")
	twice := AddCountry(once, "FRA")
	assert.Equal(t, "USA,GBR,FRA", once.Get("countries"))
	assert.Equal(t, once.Get("countries"), twice.Get("countries"))
}

func TestRemoveCountryAbsentIsNoop(t *testing.T) {
	q, _ := url.ParseQuery("countries=USA,GBR&pillar=social")

	got := RemoveCountry(q, "DEU")
	assert.Equal(t, "USA,GBR", got.Get("countries"))

	got = RemoveCountry(got, "USA")
	assert.Equal(t, "GBR", got.Get("countries"))
}

func TestRemoveLastCountryDropsKey(t *testing.T) {
	q, _ := url.ParseQuery("countries=USA")
	got := RemoveCountry(q, "USA")
	assert.False(t, got.Has("countries"))
}

func TestMutatorsPreserveUnrelatedParams(t *testing.T) {
	q, _ := url.ParseQuery("countries=USA&pillar=social&tab=map&utm_source=newsletter")

	got := AddCountry(q, "GBR")
	assert.Equal(t, "map", got.Get("tab"))
	assert.Equal(t, "newsletter", got.Get("utm_source"))

	got = SetPillar(got, "media")
	assert.Equal(t, "map", got.Get("tab"))
	assert.Equal(t, "media", got.Get("pillar"))
	assert.Equal(t, "USA,GBR", got.Get("countries"))
}

func TestSetPillarInvalidFallsBack(t *testing.T) {
	q, _ := url.ParseQuery("pillar=media")
	got := SetPillar(q, "governance")
	assert.Equal(t, "social", got.Get("pillar"))
}

func TestSetTimeRange(t *testing.T) {
	q, _ := url.ParseQuery("countries=USA&from=1990&to=2000")

	got := SetTimeRange(q, intPtr(2005), nil)
	assert.Equal(t, "2005", got.Get("from"))
	assert.False(t, got.Has("to"))

	got = SetTimeRange(got, nil, nil)
	assert.False(t, got.Has("from"))
	assert.False(t, got.Has("to"))
}

func TestSetCountries(t *testing.T) {
	q, _ := url.ParseQuery("countries=USA&pillar=media&tab=chart")
	got := SetCountries(q, []string{"DEU", "FRA", "DEU"})
	assert.Equal(t, "DEU,FRA", got.Get("countries"))
	assert.Equal(t, "media", got.Get("pillar"))
	assert.Equal(t, "chart", got.Get("tab"))
}

func TestSetCountriesTrimsLikeParse(t *testing.T) {
	q := url.Values{}
	got := SetCountries(q, []string{" USA ", "GBR", "\tUSA"})
	assert.Equal(t, "USA,GBR", got.Get("countries"))

	// What SetCountries stores is exactly what Parse reads back.
	assert.Equal(t, []string{"USA", "GBR"}, Parse(got).Countries)
}
