package pipeline

import (
	"errors"
	"fmt"

	"github.com/aluiziolira/go-artist-catalog/models"
	"github.com/aluiziolira/go-artist-catalog/parser"
)

var (
	// ErrPipelineClosed is returned when Process is called after shutdown.
	ErrPipelineClosed = errors.New("pipeline: closed")
	// ErrInvalidRecord is returned for records dropped by validation.
	ErrInvalidRecord = errors.New("pipeline: invalid record")
)

// OutputWriter defines the interface for data output.
type OutputWriter interface {
	Write(records []*models.ArtistRecord) error
	Close() error
	Validate() error
}

// Pipeline validates records, keeps them in arrival order and hands the
// full list to the writer on Close. It is not safe for concurrent use.
type Pipeline struct {
	writer  OutputWriter
	records []*models.ArtistRecord
	metrics metrics
	closed  bool
}

// NewPipeline builds a pipeline writing to writer.
func NewPipeline(writer OutputWriter) *Pipeline {
	return &Pipeline{
		writer:  writer,
		records: []*models.ArtistRecord{},
		metrics: newMetrics(),
	}
}

// Process accepts one record. A record failing the presence checks is
// counted, dropped, and reported with an error wrapping ErrInvalidRecord.
func (p *Pipeline) Process(record *models.ArtistRecord) error {
	if p.closed {
		return ErrPipelineClosed
	}
	if err := parser.ValidateRecord(record); err != nil {
		p.metrics.addValidation("invalid_record")
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if record.Placeholder {
		p.metrics.placeholders++
	}
	p.records = append(p.records, record)
	p.metrics.processed++
	return nil
}

// Records returns the records accepted so far.
func (p *Pipeline) Records() []*models.ArtistRecord {
	out := make([]*models.ArtistRecord, len(p.records))
	copy(out, p.records)
	return out
}

// Close writes every accepted record and prevents more submissions.
// Calling it again is a no-op.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.writer.Write(p.records); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

// GetMetrics returns a snapshot of the internal counters.
func (p *Pipeline) GetMetrics() map[string]interface{} {
	return p.metrics.snapshot()
}

type metrics struct {
	processed    int64
	placeholders int64
	validation   map[string]int
}

func newMetrics() metrics {
	return metrics{
		validation: make(map[string]int),
	}
}

func (m *metrics) addValidation(kind string) {
	m.validation[kind]++
}

func (m *metrics) snapshot() map[string]interface{} {
	copyValidation := make(map[string]int, len(m.validation))
	for k, v := range m.validation {
		copyValidation[k] = v
	}

	return map[string]interface{}{
		"processed_records": m.processed,
		"placeholders":      m.placeholders,
		"validation_errors": copyValidation,
	}
}
