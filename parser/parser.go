package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aluiziolira/go-artist-catalog/models"
)

// ValidateRecord ensures the builder filled the fields every consumer relies on.
func ValidateRecord(r *models.ArtistRecord) error {
	if r == nil {
		return fmt.Errorf("record is nil")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("record missing name")
	}
	if strings.TrimSpace(r.Image) == "" {
		return fmt.Errorf("record missing image for %s", r.Name)
	}
	if strings.TrimSpace(r.Rating) == "" {
		return fmt.Errorf("record missing rating for %s", r.Name)
	}
	if r.Region == "" {
		return fmt.Errorf("record missing region for %s", r.Name)
	}
	return nil
}

// SearchLink builds the search deep link for an artist. The link is never fetched.
func SearchLink(base, name string) string {
	return base + url.PathEscape(name)
}
