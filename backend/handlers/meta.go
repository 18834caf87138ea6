package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// SourceInfo documents one survey source feeding a pillar, for the
// methodology page and export citations.
type SourceInfo struct {
	Name     string   `json:"name"`
	FullName string   `json:"full_name"`
	Pillars  []string `json:"pillars"`
	URL      string   `json:"url"`
	Priority int      `json:"priority,omitempty"` // survey pillar priority, lower wins
	Weight   float64  `json:"weight,omitempty"`   // media pillar weight
}

// sourceCatalog mirrors the upstream ETL's source configuration.
var sourceCatalog = []SourceInfo{
	{Name: "WVS", FullName: "World Values Survey", Pillars: []string{"social", "institutions", "media"}, URL: "https://www.worldvaluessurvey.org", Priority: 1, Weight: 0.2},
	{Name: "EVS", FullName: "European Values Study", Pillars: []string{"social", "institutions"}, URL: "https://europeanvaluesstudy.eu", Priority: 2},
	{Name: "GSS", FullName: "General Social Survey", Pillars: []string{"social", "institutions"}, URL: "https://gss.norc.org", Priority: 3},
	{Name: "ANES", FullName: "American National Election Studies", Pillars: []string{"institutions"}, URL: "https://electionstudies.org", Priority: 3},
	{Name: "CES", FullName: "Canadian Election Study", Pillars: []string{"institutions"}, URL: "https://ces-eec.arts.ubc.ca", Priority: 3},
	{Name: "Afrobarometer", FullName: "Afrobarometer", Pillars: []string{"social", "institutions"}, URL: "https://www.afrobarometer.org", Priority: 4},
	{Name: "Arab Barometer", FullName: "Arab Barometer", Pillars: []string{"social", "institutions"}, URL: "https://www.arabbarometer.org", Priority: 4},
	{Name: "Asian Barometer", FullName: "Asian Barometer", Pillars: []string{"social", "institutions"}, URL: "https://www.asianbarometer.org", Priority: 4},
	{Name: "Latinobarometro", FullName: "Latinobarómetro", Pillars: []string{"social", "institutions"}, URL: "https://www.latinobarometro.org", Priority: 4},
	{Name: "CaucasusBarometer", FullName: "Caucasus Barometer", Pillars: []string{"social", "institutions"}, URL: "https://caucasusbarometer.org", Priority: 5},
	{Name: "LAPOP", FullName: "Latin American Public Opinion Project", Pillars: []string{"social", "institutions"}, URL: "https://www.vanderbilt.edu/lapop", Priority: 5},
	{Name: "LiTS", FullName: "Life in Transition Survey", Pillars: []string{"social", "institutions"}, URL: "https://www.ebrd.com", Priority: 5},
	{Name: "Reuters_DNR", FullName: "Reuters Digital News Report", Pillars: []string{"media"}, URL: "https://reutersinstitute.politics.ox.ac.uk", Weight: 0.4},
	{Name: "Eurobarometer", FullName: "Eurobarometer", Pillars: []string{"media"}, URL: "https://europa.eu/eurobarometer", Weight: 0.4},
}

// GetSources returns the source catalog and methodology notes.
// GET /api/meta/sources
func (h *Handler) GetSources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sources": sourceCatalog,
		"methodology": fiber.Map{
			"scale": "All scores are normalized to a 0-100 range",
			"media_weights": fiber.Map{
				"Reuters_DNR":   0.4,
				"Eurobarometer": 0.4,
				"WVS":           0.2,
			},
			"confidence_tiers": fiber.Map{
				"A": "Primary survey (WVS/EVS/GSS/ANES) at most 3 years old",
				"B": "Primary survey 3-5 years old, or barometer at most 3 years old",
				"C": "Any source more than 5 years old",
			},
		},
		"license":  "CC-BY-4.0",
		"citation": "Trust Atlas, https://trustatlas.org",
	})
}
