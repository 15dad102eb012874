// Package fixtures loads the embedded restaurant data set and validates it
// against the category and feature vocabularies at load time.
package fixtures

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goccy/go-json"

	"github.com/gcbaptista/matjibmap/internal/validation"
	"github.com/gcbaptista/matjibmap/model"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	restaurantsFile = "data/restaurants.json"
	profilesFile    = "data/profiles.json"
	homeFile        = "data/home.json"
)

// Dataset is the complete read-only fixture set for a process.
type Dataset struct {
	Restaurants []model.Restaurant
	Profiles    []model.RestaurantProfile
	Home        model.HomeContent
}

// Load reads the embedded fixtures.
func Load() (*Dataset, error) {
	return LoadFS(dataFS)
}

// LoadFS reads fixtures from fsys, which must contain the data/ directory layout.
func LoadFS(fsys fs.FS) (*Dataset, error) {
	ds := &Dataset{}

	if err := decodeFile(fsys, restaurantsFile, &ds.Restaurants); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, profilesFile, &ds.Profiles); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, homeFile, &ds.Home); err != nil {
		return nil, err
	}

	if err := Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func decodeFile(fsys fs.FS, name string, into interface{}) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", name, err)
	}
	return nil
}

// Validate checks struct constraints, the tag vocabulary, id uniqueness and
// that every profile belongs to a known restaurant.
func Validate(ds *Dataset) error {
	ids := make(map[int]struct{}, len(ds.Restaurants))
	for i, r := range ds.Restaurants {
		if err := validation.ValidateStruct(r); err != nil {
			return fmt.Errorf("restaurant #%d (%q): %w", i, r.Name, err)
		}
		if _, dup := ids[r.ID]; dup {
			return fmt.Errorf("restaurant #%d: duplicate id %d", i, r.ID)
		}
		ids[r.ID] = struct{}{}
	}

	seenProfiles := make(map[int]struct{}, len(ds.Profiles))
	for i, p := range ds.Profiles {
		if err := validation.ValidateStruct(p); err != nil {
			return fmt.Errorf("profile #%d: %w", i, err)
		}
		if _, ok := ids[p.RestaurantID]; !ok {
			return fmt.Errorf("profile #%d: unknown restaurant id %d", i, p.RestaurantID)
		}
		if _, dup := seenProfiles[p.RestaurantID]; dup {
			return fmt.Errorf("profile #%d: duplicate profile for restaurant %d", i, p.RestaurantID)
		}
		seenProfiles[p.RestaurantID] = struct{}{}
	}

	if err := validation.ValidateStruct(ds.Home); err != nil {
		return fmt.Errorf("home content: %w", err)
	}
	return nil
}
