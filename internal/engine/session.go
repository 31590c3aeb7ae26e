package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"fomezero/internal/models"
)

// Session is one load of the dataset. Records is the enriched table and
// must be treated as read-only by every consumer.
type Session struct {
	ID        uuid.UUID
	LoadedAt  time.Time
	Records   []Record
	Countries []string
}

// NewSession normalizes and enriches raw into a session.
func NewSession(raw []RawRecord, enricher *Enricher) (*Session, error) {
	start := time.Now()

	clean := Normalize(raw)
	log.Infof("Normalized %d -> %d rows", len(raw), len(clean))

	records, err := enricher.Enrich(clean)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.New(),
		LoadedAt:  time.Now(),
		Records:   records,
		Countries: Countries(records),
	}
	log.Infof("Session %s ready. Rows: %d. Countries: %d. Time: %v", s.ID, len(records), len(s.Countries), time.Since(start))
	return s, nil
}

// LoadSession reads the dataset at path and prepares a session from it.
func LoadSession(path string, lookups Lookups) (*Session, error) {
	raw, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewSession(raw, NewEnricher(lookups))
}

// Select applies a country selection to the session's table.
func (s *Session) Select(countries []string) []Record {
	return FilterCountries(s.Records, countries)
}

// Info describes the session for clients.
func (s *Session) Info() models.SessionInfo {
	return models.SessionInfo{
		ID:        s.ID.String(),
		LoadedAt:  s.LoadedAt,
		Rows:      len(s.Records),
		Countries: s.Countries,
	}
}
