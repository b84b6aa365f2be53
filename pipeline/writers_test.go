package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aluiziolira/go-artist-catalog/models"
)

func sampleRecords() []*models.ArtistRecord {
	return []*models.ArtistRecord{
		{
			Name:   "Angèle",
			URL:    "https://open.spotify.com/search/artist%3AAng%C3%A8le",
			Region: models.RegionFR,
			Image:  "https://duckduckgo.com/i/angele.jpg",
			Rating: "★★★★½",
		},
		{
			Name:        "Drake",
			URL:         "https://open.spotify.com/search/artist%3ADrake",
			Region:      models.RegionUS,
			Image:       "https://via.placeholder.com/400x400.png?text=Artist",
			Rating:      "★★★★",
			Placeholder: true,
		},
	}
}

func TestJSONWriterWritesPrettyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "artists_enriched.json")

	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("create json writer: %v", err)
	}
	records := sampleRecords()
	if err := writer.Write(records[:1]); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := writer.Write(records[1:]); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate json: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close json: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "[\n  {\n    \"name\": \"Angèle\",") {
		t.Fatalf("unexpected layout:\n%s", text)
	}
	for _, raw := range []string{"★★★★½", "?text=Artist"} {
		if !strings.Contains(text, raw) {
			t.Fatalf("expected %q unescaped in output", raw)
		}
	}

	var decoded []map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("records=%d, want 2", len(decoded))
	}
	for _, entry := range decoded {
		if len(entry) != 5 {
			t.Fatalf("entry has %d keys, want 5: %v", len(entry), entry)
		}
		for _, key := range []string{"name", "url", "region", "image", "rating"} {
			if _, ok := entry[key]; !ok {
				t.Fatalf("entry missing %q: %v", key, entry)
			}
		}
	}
}

func TestJSONWriterEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists_enriched.json")
	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("create json writer: %v", err)
	}
	if err := writer.Write(nil); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close json: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("empty catalog written as %q", data)
	}
}
