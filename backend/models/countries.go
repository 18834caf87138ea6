package models

import "strings"

// countryAliases maps common name variations used by the survey sources
// to ISO3 codes. Mirrors the upstream ETL's normalization table.
var countryAliases = map[string]string{
	"United States of America": "USA",
	"United States":            "USA",
	"US":                       "USA",
	"U.S.":                     "USA",
	"America":                  "USA",
	"United Kingdom":           "GBR",
	"UK":                       "GBR",
	"Great Britain":            "GBR",
	"Britain":                  "GBR",
	"Russian Federation":       "RUS",
	"Russia":                   "RUS",
	"Republic of Korea":        "KOR",
	"South Korea":              "KOR",
	"Korea (South)":            "KOR",
	"North Korea":              "PRK",
	"People's Republic of China": "CHN",
	"China":                    "CHN",
	"Taiwan":                   "TWN",
	"Chinese Taipei":           "TWN",
	"Hong Kong":                "HKG",
	"Viet Nam":                 "VNM",
	"Vietnam":                  "VNM",
	"Iran, Islamic Republic of": "IRN",
	"Iran":                     "IRN",
	"Venezuela":                "VEN",
	"Egypt, Arab Rep.":         "EGY",
	"Egypt":                    "EGY",
	"Czech Republic":           "CZE",
	"Czechia":                  "CZE",
	"Slovak Republic":          "SVK",
	"Slovakia":                 "SVK",
	"Ivory Coast":              "CIV",
	"Cote d'Ivoire":            "CIV",
	"Laos":                     "LAO",
	"Kyrgyzstan":               "KGZ",
	"North Macedonia":          "MKD",
	"Macedonia":                "MKD",
	"Turkiye":                  "TUR",
	"Turkey":                   "TUR",
	"Syria":                    "SYR",
	"East Timor":               "TLS",
	"Swaziland":                "SWZ",
	"Cape Verde":               "CPV",
	"Bolivia":                  "BOL",
	"Tanzania":                 "TZA",
}

// NormalizeISO3 resolves a country identifier (ISO3 code or a common
// name variation) to an uppercase ISO3 code. Returns "" when the input
// cannot be resolved to a plausible code.
func NormalizeISO3(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if iso3, ok := countryAliases[trimmed]; ok {
		return iso3
	}
	upper := strings.ToUpper(trimmed)
	if len(upper) == 3 && isAlpha(upper) {
		return upper
	}
	return ""
}

// NormalizeCodeList splits a comma-separated code list, normalizes each
// entry and drops empty or invalid tokens, preserving order and
// suppressing duplicates.
func NormalizeCodeList(csv string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range strings.Split(csv, ",") {
		code := NormalizeISO3(tok)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// SeedCountries returns the built-in reference country list used when
// the table is empty and the upstream API has not been reached yet.
func SeedCountries() []Country {
	return []Country{
		{ISO3: "USA", ISO2: "US", Name: "United States", Region: "North America", IncomeGroup: "High income"},
		{ISO3: "CAN", ISO2: "CA", Name: "Canada", Region: "North America", IncomeGroup: "High income"},
		{ISO3: "MEX", ISO2: "MX", Name: "Mexico", Region: "Latin America & Caribbean", IncomeGroup: "Upper middle income"},
		{ISO3: "BRA", ISO2: "BR", Name: "Brazil", Region: "Latin America & Caribbean", IncomeGroup: "Upper middle income"},
		{ISO3: "ARG", ISO2: "AR", Name: "Argentina", Region: "Latin America & Caribbean", IncomeGroup: "Upper middle income"},
		{ISO3: "CHL", ISO2: "CL", Name: "Chile", Region: "Latin America & Caribbean", IncomeGroup: "High income"},
		{ISO3: "COL", ISO2: "CO", Name: "Colombia", Region: "Latin America & Caribbean", IncomeGroup: "Upper middle income"},
		{ISO3: "PER", ISO2: "PE", Name: "Peru", Region: "Latin America & Caribbean", IncomeGroup: "Upper middle income"},
		{ISO3: "VEN", ISO2: "VE", Name: "Venezuela", Region: "Latin America & Caribbean", IncomeGroup: "Lower middle income"},
		{ISO3: "GBR", ISO2: "GB", Name: "United Kingdom", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "FRA", ISO2: "FR", Name: "France", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "DEU", ISO2: "DE", Name: "Germany", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "ITA", ISO2: "IT", Name: "Italy", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "ESP", ISO2: "ES", Name: "Spain", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "PRT", ISO2: "PT", Name: "Portugal", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "NLD", ISO2: "NL", Name: "Netherlands", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "BEL", ISO2: "BE", Name: "Belgium", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "CHE", ISO2: "CH", Name: "Switzerland", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "AUT", ISO2: "AT", Name: "Austria", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "SWE", ISO2: "SE", Name: "Sweden", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "NOR", ISO2: "NO", Name: "Norway", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "DNK", ISO2: "DK", Name: "Denmark", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "FIN", ISO2: "FI", Name: "Finland", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "ISL", ISO2: "IS", Name: "Iceland", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "IRL", ISO2: "IE", Name: "Ireland", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "POL", ISO2: "PL", Name: "Poland", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "CZE", ISO2: "CZ", Name: "Czechia", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "SVK", ISO2: "SK", Name: "Slovakia", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "HUN", ISO2: "HU", Name: "Hungary", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "ROU", ISO2: "RO", Name: "Romania", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "BGR", ISO2: "BG", Name: "Bulgaria", Region: "Europe & Central Asia", IncomeGroup: "Upper middle income"},
		{ISO3: "GRC", ISO2: "GR", Name: "Greece", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "TUR", ISO2: "TR", Name: "Turkey", Region: "Europe & Central Asia", IncomeGroup: "Upper middle income"},
		{ISO3: "UKR", ISO2: "UA", Name: "Ukraine", Region: "Europe & Central Asia", IncomeGroup: "Lower middle income"},
		{ISO3: "RUS", ISO2: "RU", Name: "Russia", Region: "Europe & Central Asia", IncomeGroup: "Upper middle income"},
		{ISO3: "EST", ISO2: "EE", Name: "Estonia", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "LVA", ISO2: "LV", Name: "Latvia", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "LTU", ISO2: "LT", Name: "Lithuania", Region: "Europe & Central Asia", IncomeGroup: "High income"},
		{ISO3: "CHN", ISO2: "CN", Name: "China", Region: "East Asia & Pacific", IncomeGroup: "Upper middle income"},
		{ISO3: "JPN", ISO2: "JP", Name: "Japan", Region: "East Asia & Pacific", IncomeGroup: "High income"},
		{ISO3: "KOR", ISO2: "KR", Name: "South Korea", Region: "East Asia & Pacific", IncomeGroup: "High income"},
		{ISO3: "TWN", ISO2: "TW", Name: "Taiwan", Region: "East Asia & Pacific", IncomeGroup: "High income"},
		{ISO3: "HKG", ISO2: "HK", Name: "Hong Kong", Region: "East Asia & Pacific", IncomeGroup: "High income"},
		{ISO3: "IDN", ISO2: "ID", Name: "Indonesia", Region: "East Asia & Pacific", IncomeGroup: "Upper middle income"},
		{ISO3: "MYS", ISO2: "MY", Name: "Malaysia", Region: "East Asia & Pacific", IncomeGroup: "Upper middle income"},
		{ISO3: "PHL", ISO2: "PH", Name: "Philippines", Region: "East Asia & Pacific", IncomeGroup: "Lower middle income"},
		{ISO3: "THA", ISO2: "TH", Name: "Thailand", Region: "East Asia & Pacific", IncomeGroup: "Upper middle income"},
		{ISO3: "VNM", ISO2: "VN", Name: "Vietnam", Region: "East Asia & Pacific", IncomeGroup: "Lower middle income"},
		{ISO3: "AUS", ISO2: "AU", Name: "Australia", Region: "East Asia & Pacific", IncomeGroup: "High income"},
		{ISO3: "NZL", ISO2: "NZ", Name: "New Zealand", Region: "East Asia & Pacific", IncomeGroup: "High income"},
		{ISO3: "IND", ISO2: "IN", Name: "India", Region: "South Asia", IncomeGroup: "Lower middle income"},
		{ISO3: "PAK", ISO2: "PK", Name: "Pakistan", Region: "South Asia", IncomeGroup: "Lower middle income"},
		{ISO3: "BGD", ISO2: "BD", Name: "Bangladesh", Region: "South Asia", IncomeGroup: "Lower middle income"},
		{ISO3: "IRN", ISO2: "IR", Name: "Iran", Region: "Middle East & North Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "IRQ", ISO2: "IQ", Name: "Iraq", Region: "Middle East & North Africa", IncomeGroup: "Upper middle income"},
		{ISO3: "ISR", ISO2: "IL", Name: "Israel", Region: "Middle East & North Africa", IncomeGroup: "High income"},
		{ISO3: "SAU", ISO2: "SA", Name: "Saudi Arabia", Region: "Middle East & North Africa", IncomeGroup: "High income"},
		{ISO3: "EGY", ISO2: "EG", Name: "Egypt", Region: "Middle East & North Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "MAR", ISO2: "MA", Name: "Morocco", Region: "Middle East & North Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "TUN", ISO2: "TN", Name: "Tunisia", Region: "Middle East & North Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "JOR", ISO2: "JO", Name: "Jordan", Region: "Middle East & North Africa", IncomeGroup: "Upper middle income"},
		{ISO3: "LBN", ISO2: "LB", Name: "Lebanon", Region: "Middle East & North Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "NGA", ISO2: "NG", Name: "Nigeria", Region: "Sub-Saharan Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "GHA", ISO2: "GH", Name: "Ghana", Region: "Sub-Saharan Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "KEN", ISO2: "KE", Name: "Kenya", Region: "Sub-Saharan Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "ETH", ISO2: "ET", Name: "Ethiopia", Region: "Sub-Saharan Africa", IncomeGroup: "Low income"},
		{ISO3: "TZA", ISO2: "TZ", Name: "Tanzania", Region: "Sub-Saharan Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "ZAF", ISO2: "ZA", Name: "South Africa", Region: "Sub-Saharan Africa", IncomeGroup: "Upper middle income"},
		{ISO3: "SEN", ISO2: "SN", Name: "Senegal", Region: "Sub-Saharan Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "CIV", ISO2: "CI", Name: "Cote d'Ivoire", Region: "Sub-Saharan Africa", IncomeGroup: "Lower middle income"},
		{ISO3: "GEO", ISO2: "GE", Name: "Georgia", Region: "Europe & Central Asia", IncomeGroup: "Upper middle income"},
		{ISO3: "ARM", ISO2: "AM", Name: "Armenia", Region: "Europe & Central Asia", IncomeGroup: "Upper middle income"},
		{ISO3: "AZE", ISO2: "AZ", Name: "Azerbaijan", Region: "Europe & Central Asia", IncomeGroup: "Upper middle income"},
		{ISO3: "KAZ", ISO2: "KZ", Name: "Kazakhstan", Region: "Europe & Central Asia", IncomeGroup: "Upper middle income"},
		{ISO3: "KGZ", ISO2: "KG", Name: "Kyrgyzstan", Region: "Europe & Central Asia", IncomeGroup: "Lower middle income"},
	}
}
