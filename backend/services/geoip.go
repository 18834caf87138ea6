package services

import (
	"net"
	"sync"

	"trust-atlas-web/backend/system"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves visitor IPs to country codes so the grapher
// can preselect the visitor's own country. A missing database simply
// disables the feature; lookups never fail a request.
type GeoIPService struct {
	mu     sync.RWMutex
	reader *geoip2.Reader
}

func NewGeoIPService() *GeoIPService {
	return &GeoIPService{}
}

// Open loads a MaxMind country database. Called at boot and again when
// the admin changes the configured path.
func (g *GeoIPService) Open(dbPath string) error {
	if dbPath == "" {
		return nil
	}

	reader, err := geoip2.Open(dbPath)
	if err != nil {
		system.Warn("Could not open GeoIP database %s: %v", dbPath, err)
		return err
	}

	g.mu.Lock()
	if g.reader != nil {
		g.reader.Close()
	}
	g.reader = reader
	g.mu.Unlock()

	system.Info("GeoIP database loaded: %s", dbPath)
	return nil
}

// Enabled reports whether a database is loaded.
func (g *GeoIPService) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reader != nil
}

// LookupISO2 returns the ISO 3166-1 alpha-2 country code for an IP,
// or "" when the database is missing or the IP cannot be resolved.
func (g *GeoIPService) LookupISO2(ipStr string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.reader == nil {
		return ""
	}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}
	record, err := g.reader.Country(ip)
	if err != nil {
		return ""
	}
	return record.Country.IsoCode
}

// Close releases the database reader.
func (g *GeoIPService) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reader != nil {
		g.reader.Close()
		g.reader = nil
	}
}
