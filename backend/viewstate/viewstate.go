// Package viewstate encodes grapher chart configurations to and from
// URL query strings. The URL is the single source of truth for a chart
// view: shared and bookmarked links must keep working, so the key set
// (countries, pillar, from, to, title, subtitle) is a stable wire format.
package viewstate

import (
	"net/url"
	"strconv"
	"strings"

	"trust-atlas-web/backend/models"
)

// Recognized query keys.
const (
	keyCountries = "countries"
	keyPillar    = "pillar"
	keyFrom      = "from"
	keyTo        = "to"
	keyTitle     = "title"
	keySubtitle  = "subtitle"
)

// ViewState is one shareable chart configuration. Countries keep
// insertion order (= series display order) with duplicates suppressed.
type ViewState struct {
	Countries []string
	Pillar    string
	From      *int
	To        *int
	Title     string
	Subtitle  string
}

// Parse reads a ViewState from query values. It is total: malformed or
// unrecognized values degrade to defaults and no error is ever returned.
func Parse(q url.Values) ViewState {
	v := ViewState{Pillar: models.DefaultPillar}

	if raw := q.Get(keyCountries); raw != "" {
		seen := make(map[string]bool)
		for _, tok := range strings.Split(raw, ",") {
			code := strings.TrimSpace(tok)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			v.Countries = append(v.Countries, code)
		}
	}

	if p := q.Get(keyPillar); models.ValidPillar(p) {
		v.Pillar = p
	}

	v.From = parseYear(q.Get(keyFrom))
	v.To = parseYear(q.Get(keyTo))
	v.Title = q.Get(keyTitle)
	v.Subtitle = q.Get(keySubtitle)

	return v
}

// ParseQuery is Parse over a raw query string. Unparseable strings
// yield the default state.
func ParseQuery(rawQuery string) ViewState {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ViewState{Pillar: models.DefaultPillar}
	}
	return Parse(q)
}

func parseYear(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// Encode emits only the keys whose values are present. An empty country
// list is omitted entirely rather than emitted as an empty parameter.
// Parse(v.Encode()) reproduces v.
func (v ViewState) Encode() url.Values {
	q := url.Values{}
	if len(v.Countries) > 0 {
		q.Set(keyCountries, strings.Join(v.Countries, ","))
	}
	q.Set(keyPillar, v.Pillar)
	if v.From != nil {
		q.Set(keyFrom, strconv.Itoa(*v.From))
	}
	if v.To != nil {
		q.Set(keyTo, strconv.Itoa(*v.To))
	}
	if v.Title != "" {
		q.Set(keyTitle, v.Title)
	}
	if v.Subtitle != "" {
		q.Set(keySubtitle, v.Subtitle)
	}
	return q
}

// EncodeQuery returns the canonical query-string form of v.
func (v ViewState) EncodeQuery() string {
	return v.Encode().Encode()
}

// merge writes v's keys into existing query values, dropping view keys
// that v no longer carries and leaving unrelated parameters untouched.
func (v ViewState) merge(existing url.Values) url.Values {
	merged := url.Values{}
	for k, vals := range existing {
		switch k {
		case keyCountries, keyPillar, keyFrom, keyTo, keyTitle, keySubtitle:
			// replaced below
		default:
			merged[k] = vals
		}
	}
	for k, vals := range v.Encode() {
		merged[k] = vals
	}
	return merged
}

// SetCountries replaces the country list in q, preserving unrelated
// query parameters.
func SetCountries(q url.Values, codes []string) url.Values {
	v := Parse(q)
	v.Countries = nil
	seen := make(map[string]bool)
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		v.Countries = append(v.Countries, code)
	}
	return v.merge(q)
}

// AddCountry appends a country to the selection. Adding an
// already-present code is a no-op.
func AddCountry(q url.Values, code string) url.Values {
	v := Parse(q)
	for _, c := range v.Countries {
		if c == code {
			return v.merge(q)
		}
	}
	if code != "" {
		v.Countries = append(v.Countries, code)
	}
	return v.merge(q)
}

// RemoveCountry drops a country from the selection. Removing an absent
// code is a no-op.
func RemoveCountry(q url.Values, code string) url.Values {
	v := Parse(q)
	var kept []string
	for _, c := range v.Countries {
		if c != code {
			kept = append(kept, c)
		}
	}
	v.Countries = kept
	return v.merge(q)
}

// SetPillar switches the selected pillar, substituting the default for
// unrecognized values.
func SetPillar(q url.Values, pillar string) url.Values {
	v := Parse(q)
	if models.ValidPillar(pillar) {
		v.Pillar = pillar
	} else {
		v.Pillar = models.DefaultPillar
	}
	return v.merge(q)
}

// SetTimeRange updates the year bounds. A nil bound clears that end of
// the range.
func SetTimeRange(q url.Values, from, to *int) url.Values {
	v := Parse(q)
	v.From = from
	v.To = to
	return v.merge(q)
}
