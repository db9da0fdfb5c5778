package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedEntry is one instrument listed in a watchlist seed file.
type SeedEntry struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name,omitempty"`
	Venue    string `yaml:"venue,omitempty"`
	Favorite bool   `yaml:"favorite,omitempty"`
}

// SeedGroup lists the instruments of one watchlist slot.
type SeedGroup struct {
	ID     int         `yaml:"id"`
	Stocks []SeedEntry `yaml:"stocks"`
}

// WatchlistSeed describes instruments that are ensured on startup.
type WatchlistSeed struct {
	Groups []SeedGroup `yaml:"groups"`
}

// LoadWatchlistSeed reads and validates a YAML watchlist seed.
func LoadWatchlistSeed(path string) (WatchlistSeed, error) {
	var seed WatchlistSeed
	input, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return seed, fmt.Errorf("%w: can't read seed file", err)
	}
	if err := yaml.Unmarshal(input, &seed); err != nil {
		return seed, fmt.Errorf("%w: can't unmarshal seed file", err)
	}

	for gi := range seed.Groups {
		group := &seed.Groups[gi]
		if group.ID < 1 || group.ID > 4 {
			return seed, fmt.Errorf("seed group id %d out of range 1..4", group.ID)
		}
		for si := range group.Stocks {
			entry := &group.Stocks[si]
			entry.Code = strings.TrimSpace(entry.Code)
			if entry.Code == "" {
				return seed, fmt.Errorf("seed group %d: empty stock code at position %d", group.ID, si)
			}
			if entry.Venue == "" {
				entry.Venue = "J"
			}
		}
	}
	return seed, nil
}
