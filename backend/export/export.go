// Package export renders chart data as CSV downloads with a citation
// header and spreadsheet formula-injection defenses.
package export

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProductName  = "Trust Atlas"
	FilePrefix   = "trust-atlas"
	License      = "CC-BY-4.0"
	CanonicalURL = "https://trustatlas.org"
	MIMEType     = "text/csv;charset=utf-8"
)

// Row is one CSV data row.
type Row struct {
	Country    string  `json:"country"`
	ISO3       string  `json:"iso3"`
	Year       int     `json:"year"`
	Pillar     string  `json:"pillar"`
	Score      float64 `json:"score"`
	Source     string  `json:"source"`
	Confidence string  `json:"confidence"`
}

// Metadata feeds the attribution header. The header text is part of
// the external contract: downstream consumers parse it for citations.
type Metadata struct {
	Pillar      string
	Sources     []string
	GeneratedAt time.Time
}

// formula-injection trigger characters, per OWASP CSV injection guidance
const formulaTriggers = "=@+-\t\r"

// SanitizeField applies CSV quoting, then neutralizes spreadsheet
// formula interpretation. Order matters: the injection check inspects
// the first character of the already-quoted result, so a value that
// needed quoting starts with `"` and the apostrophe guard never fires
// for it. That matches the shipped exporter byte for byte.
func SanitizeField(value string) string {
	escaped := value
	if strings.ContainsAny(escaped, ",\"\n") {
		escaped = `"` + strings.ReplaceAll(escaped, `"`, `""`) + `"`
	}
	if escaped != "" && strings.ContainsRune(formulaTriggers, rune(escaped[0])) {
		escaped = "'" + escaped
	}
	return escaped
}

// ToCSV renders rows as the canonical export payload: attribution
// comment block, blank separator, column header, then data rows with
// scores formatted to one decimal place. The confidence column is
// emitted only when at least one row carries a confidence tier, so
// tier-less exports end each row with the source field.
func ToCSV(rows []Row, meta Metadata) string {
	withConfidence := false
	for _, r := range rows {
		if r.Confidence != "" {
			withConfidence = true
			break
		}
	}

	var b strings.Builder

	b.WriteString("# " + ProductName + " data export\n")
	b.WriteString("# Pillar: " + meta.Pillar + "\n")
	b.WriteString("# Sources: " + strings.Join(meta.Sources, ", ") + "\n")
	b.WriteString("# Generated: " + meta.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("# License: " + License + "\n")
	b.WriteString("# URL: " + CanonicalURL + "\n")
	b.WriteString("# Citation: " + ProductName + " (" + meta.GeneratedAt.UTC().Format("2006") + "), " + CanonicalURL + "\n")
	b.WriteString("\n")

	header := "country,iso3,year,pillar,score,source"
	if withConfidence {
		header += ",confidence"
	}
	b.WriteString(header + "\n")

	for _, r := range rows {
		fields := []string{
			SanitizeField(r.Country),
			SanitizeField(r.ISO3),
			SanitizeField(fmt.Sprintf("%d", r.Year)),
			SanitizeField(r.Pillar),
			SanitizeField(fmt.Sprintf("%.1f", r.Score)),
			SanitizeField(r.Source),
		}
		if withConfidence {
			fields = append(fields, SanitizeField(r.Confidence))
		}
		b.WriteString(strings.Join(fields, ",") + "\n")
	}

	return b.String()
}

// Filename builds the download name: product prefix, pillar, a
// country-count-aware list, today's date and the format extension.
// Codes are joined literally when three or fewer are selected.
func Filename(countries []string, pillar, ext string, now time.Time) string {
	var list string
	switch {
	case len(countries) == 0:
		list = "all-countries"
	case len(countries) <= 3:
		list = strings.Join(countries, "-")
	default:
		list = fmt.Sprintf("%d-countries", len(countries))
	}
	return fmt.Sprintf("%s-%s-%s-%s.%s", FilePrefix, pillar, list, now.Format("2006-01-02"), ext)
}
