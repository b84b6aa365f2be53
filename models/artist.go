// Package models defines data structures for the catalog builder.
package models

import "time"

// Region is a coarse scene/origin tag inferred from an artist name.
type Region string

const (
	RegionFR    Region = "fr"
	RegionUK    Region = "uk"
	RegionUS    Region = "us"
	RegionOther Region = "other"
)

// ArtistRecord is one enriched catalog entry.
type ArtistRecord struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Region Region `json:"region"`
	Image  string `json:"image"`
	Rating string `json:"rating"`

	// Placeholder is set when Image is the fallback URL. Not serialized.
	Placeholder bool `json:"-"`
}

// CatalogResult holds the overall result of a catalog run.
type CatalogResult struct {
	StartTime    time.Time
	EndTime      time.Time
	TotalCount   int
	FoundCount   int
	Placeholders int
	Rejected     int
	ErrorsByType map[string]int
	Interrupted  bool
}
