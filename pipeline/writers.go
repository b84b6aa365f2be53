// Package pipeline reads artist names, collects enriched records and writes
// them out as one JSON array.
package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aluiziolira/go-artist-catalog/models"
)

// JSONWriter writes all records as one pretty-printed JSON array. Every Write
// rewrites the whole array, so the file is always a complete document.
type JSONWriter struct {
	file    *os.File
	records []*models.ArtistRecord
	mu      sync.Mutex
}

// NewJSONWriter initialises the JSON writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create json file: %w", err)
	}

	return &JSONWriter{
		file:    f,
		records: []*models.ArtistRecord{},
	}, nil
}

// Write adds records and rewrites the array.
func (jw *JSONWriter) Write(records []*models.ArtistRecord) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	jw.records = append(jw.records, records...)

	if err := jw.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate json file: %w", err)
	}
	if _, err := jw.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind json file: %w", err)
	}

	buffer := bufio.NewWriter(jw.file)
	if err := EncodeRecords(buffer, jw.records); err != nil {
		return err
	}
	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	return jw.file.Close()
}

// Validate ensures the JSON file has data.
func (jw *JSONWriter) Validate() error {
	info, err := jw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat json file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("json file is empty")
	}
	return nil
}

// EncodeRecords writes records as an indented JSON array with non-ASCII
// characters and HTML-significant characters left as-is.
func EncodeRecords(w io.Writer, records []*models.ArtistRecord) error {
	if records == nil {
		records = []*models.ArtistRecord{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode json records: %w", err)
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
