// Package places derives the four-level place hierarchy
// (continent -> country -> state -> county) from ingested data points.
package places

import (
	"fmt"
	"log"

	"covidtrack/internal/database"
)

// Builder runs the one-shot hierarchy build pass after ingestion.
type Builder struct {
	db *database.DB
}

// NewBuilder creates a Builder over the given store.
func NewBuilder(db *database.DB) *Builder {
	return &Builder{db: db}
}

// Result summarizes a build pass.
type Result struct {
	Scanned    int
	Skipped    int
	Continents int
	Countries  int
	States     int
	Counties   int
}

// parentKey scopes a place name to its parent row, so the same name under
// two different parents stays two hierarchy nodes.
type parentKey struct {
	parentID int64
	name     string
}

// cache holds already-known hierarchy rows for one build pass. It is
// created inside Build and discarded on return, never kept as package
// state, so repeated builds start clean.
type cache struct {
	continents map[string]int64
	countries  map[string]int64
	states     map[parentKey]int64
	counties   map[parentKey]int64
}

// load primes the cache from the hierarchy tables. Without this, every
// repeated place in the distinct scan would cost an existence-check query;
// with it, repeats are O(1) map hits.
func (c *cache) load(db *database.DB) error {
	continents, err := db.AllContinents()
	if err != nil {
		return fmt.Errorf("loading continents: %w", err)
	}
	for _, ct := range continents {
		c.continents[ct.Name] = ct.ID
	}

	countries, err := db.AllCountries()
	if err != nil {
		return fmt.Errorf("loading countries: %w", err)
	}
	for _, co := range countries {
		c.countries[co.Name] = co.ID
	}

	states, err := db.AllStates()
	if err != nil {
		return fmt.Errorf("loading states: %w", err)
	}
	for _, s := range states {
		c.states[parentKey{s.CountryID, s.Name}] = s.ID
	}

	counties, err := db.AllCounties()
	if err != nil {
		return fmt.Errorf("loading counties: %w", err)
	}
	for _, co := range counties {
		c.counties[parentKey{co.StateID, co.Name}] = co.ID
	}
	return nil
}

// Build scans the distinct (country, province, county) triples in the
// canonical store and upserts the hierarchy rows they imply. The whole
// pass commits once at the end; upserts are idempotent by name, so a
// failed pass is recovered by re-running.
func (b *Builder) Build() (*Result, error) {
	c := &cache{
		continents: make(map[string]int64),
		countries:  make(map[string]int64),
		states:     make(map[parentKey]int64),
		counties:   make(map[parentKey]int64),
	}
	if err := c.load(b.db); err != nil {
		return nil, err
	}

	triples, err := b.db.DistinctPlaces()
	if err != nil {
		return nil, fmt.Errorf("scanning distinct places: %w", err)
	}

	tx, err := b.db.BeginPlaces()
	if err != nil {
		return nil, err
	}

	res := &Result{Scanned: len(triples)}
	for _, p := range triples {
		if p.Country == "" {
			// A row with no country is not placeable.
			res.Skipped++
			continue
		}

		province := p.Province
		if province != nil && *province == "Unknown" {
			province = nil
		}

		continent := ContinentOf(p.Country)
		continentID, ok := c.continents[continent]
		if !ok {
			continentID, err = tx.InsertContinent(continent)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("upserting continent %q: %w", continent, err)
			}
			c.continents[continent] = continentID
			res.Continents++
		}

		countryID, ok := c.countries[p.Country]
		if !ok {
			countryID, err = tx.InsertCountry(p.Country, continentID)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("upserting country %q: %w", p.Country, err)
			}
			c.countries[p.Country] = countryID
			res.Countries++
		}

		if province == nil {
			continue
		}

		stateID, ok := c.states[parentKey{countryID, *province}]
		if !ok {
			stateID, err = tx.InsertState(*province, countryID)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("upserting state %q: %w", *province, err)
			}
			c.states[parentKey{countryID, *province}] = stateID
			res.States++
		}

		// County detail only exists for US rows.
		if p.County == nil || p.Country != USCountry {
			continue
		}

		if _, ok := c.counties[parentKey{stateID, *p.County}]; !ok {
			countyID, err := tx.InsertCounty(*p.County, stateID)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("upserting county %q: %w", *p.County, err)
			}
			c.counties[parentKey{stateID, *p.County}] = countyID
			res.Counties++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing hierarchy: %w", err)
	}

	log.Printf("place hierarchy: %d triples scanned, +%d continents +%d countries +%d states +%d counties",
		res.Scanned, res.Continents, res.Countries, res.States, res.Counties)
	return res, nil
}
