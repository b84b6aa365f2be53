// Package catalog turns a list of artist names into enriched catalog records.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/aluiziolira/go-artist-catalog/config"
	"github.com/aluiziolira/go-artist-catalog/models"
	"github.com/aluiziolira/go-artist-catalog/parser"
	"github.com/aluiziolira/go-artist-catalog/pipeline"
	"github.com/aluiziolira/go-artist-catalog/resolver"
)

// ImageResolver finds a representative image for an artist.
type ImageResolver interface {
	Resolve(artist string) resolver.Lookup
}

// Builder enriches artists one at a time, in order.
type Builder struct {
	cfg      *config.Config
	resolver ImageResolver
	delay    Delayer

	// Rand picks ratings. Progress receives one line per artist.
	Rand     *rand.Rand
	Progress io.Writer
}

// NewBuilder returns a builder printing progress to stdout.
func NewBuilder(cfg *config.Config, res ImageResolver, delay Delayer) *Builder {
	if delay == nil {
		delay = NoDelay{}
	}
	return &Builder{
		cfg:      cfg,
		resolver: res,
		delay:    delay,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		Progress: os.Stdout,
	}
}

// LoadNames reads the configured input file and returns the unique artist
// names in first-seen order. A missing file yields pipeline.ErrInputNotFound.
func LoadNames(cfg *config.Config) ([]string, error) {
	set, err := pipeline.NewOrderedSet(cfg.DedupeMaxSize)
	if err != nil {
		return nil, err
	}
	rows, err := pipeline.ReadArtistsFile(cfg.InputFile, cfg.ArtistColumns, set)
	if err != nil {
		return nil, err
	}
	slog.Debug("input read",
		slog.String("file", cfg.InputFile),
		slog.Int("rows", rows),
		slog.Int("artists", set.Len()),
	)
	return set.Values(), nil
}

// Enrich builds the record for one artist, substituting the placeholder
// image when the lookup finds nothing.
func (b *Builder) Enrich(name string) *models.ArtistRecord {
	record, _ := b.enrich(name)
	return record
}

func (b *Builder) enrich(name string) (*models.ArtistRecord, resolver.Lookup) {
	record := &models.ArtistRecord{
		Name:   name,
		URL:    parser.SearchLink(b.cfg.SearchLinkBase, name),
		Region: parser.GuessRegion(name),
		Rating: b.cfg.Ratings[b.Rand.Intn(len(b.cfg.Ratings))],
	}

	lookup := b.resolver.Resolve(name)
	if lookup.Found {
		record.Image = lookup.URL
	} else {
		record.Image = b.cfg.Placeholder
		record.Placeholder = true
	}
	return record, lookup
}

// Run enriches names in order, feeding each record to p. TotalCount counts
// saved records; records p rejects are counted in Rejected instead. The delay
// runs after every artist whatever the outcome. When ctx is cancelled the
// loop stops before the next artist and the result is marked interrupted.
func (b *Builder) Run(ctx context.Context, names []string, p *pipeline.Pipeline) (*models.CatalogResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	result := &models.CatalogResult{
		StartTime:    time.Now(),
		ErrorsByType: make(map[string]int),
	}
	total := len(names)

	for i, name := range names {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		record, lookup := b.enrich(name)
		switch err := p.Process(record); {
		case errors.Is(err, pipeline.ErrInvalidRecord):
			result.Rejected++
			slog.Warn("record dropped", slog.String("artist", name), slog.Any("error", err))
			fmt.Fprintf(b.Progress, "[%d/%d] %s | rejected\n", i+1, total, name)
		case err != nil:
			return nil, fmt.Errorf("process %q: %w", name, err)
		default:
			note := "ok"
			if record.Placeholder {
				note = "placeholder"
				result.Placeholders++
				result.ErrorsByType[resolver.ErrorTypeLabel(lookup.Err)]++
			} else {
				result.FoundCount++
			}
			result.TotalCount++
			fmt.Fprintf(b.Progress, "[%d/%d] %s | %s | %s | img=%s\n", i+1, total, record.Name, record.Region, record.Rating, note)
		}

		if err := b.delay.Wait(ctx); err != nil {
			result.Interrupted = true
			break
		}
	}

	result.EndTime = time.Now()
	return result, nil
}
