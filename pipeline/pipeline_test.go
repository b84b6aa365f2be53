package pipeline

import (
	"errors"
	"testing"

	"github.com/aluiziolira/go-artist-catalog/models"
)

type mockWriter struct {
	batches  [][]*models.ArtistRecord
	writeErr error
}

func (mw *mockWriter) Write(records []*models.ArtistRecord) error {
	if mw.writeErr != nil {
		return mw.writeErr
	}
	batch := make([]*models.ArtistRecord, len(records))
	copy(batch, records)
	mw.batches = append(mw.batches, batch)
	return nil
}

func (mw *mockWriter) Close() error {
	return nil
}

func (mw *mockWriter) Validate() error {
	return nil
}

func TestPipelineProcessAndClose(t *testing.T) {
	writer := &mockWriter{}
	p := NewPipeline(writer)

	records := sampleRecords()
	invalid := &models.ArtistRecord{Name: "No Image", Region: models.RegionOther, Rating: "★★★½"}
	if err := p.Process(records[0]); err != nil {
		t.Fatalf("process: %v", err)
	}
	if err := p.Process(invalid); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("err=%v, want ErrInvalidRecord", err)
	}
	if err := p.Process(records[1]); err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(writer.batches) != 0 {
		t.Fatalf("writer called before close")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	if len(writer.batches) != 1 {
		t.Fatalf("batches=%d, want 1", len(writer.batches))
	}
	batch := writer.batches[0]
	if len(batch) != 2 || batch[0].Name != "Angèle" || batch[1].Name != "Drake" {
		t.Fatalf("unexpected batch %+v", batch)
	}

	metrics := p.GetMetrics()
	if got := metrics["processed_records"].(int64); got != 2 {
		t.Fatalf("processed=%d, want 2", got)
	}
	if got := metrics["placeholders"].(int64); got != 1 {
		t.Fatalf("placeholders=%d, want 1", got)
	}
	if got := metrics["validation_errors"].(map[string]int)["invalid_record"]; got != 1 {
		t.Fatalf("invalid records=%d, want 1", got)
	}
}

func TestPipelineRejectsAfterClose(t *testing.T) {
	p := NewPipeline(&mockWriter{})
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := p.Process(sampleRecords()[0]); !errors.Is(err, ErrPipelineClosed) {
		t.Fatalf("err=%v, want ErrPipelineClosed", err)
	}
}

func TestPipelineCloseWriteError(t *testing.T) {
	boom := errors.New("disk full")
	p := NewPipeline(&mockWriter{writeErr: boom})
	if err := p.Process(sampleRecords()[0]); err != nil {
		t.Fatalf("process: %v", err)
	}
	if err := p.Close(); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want wrapped %v", err, boom)
	}
}

func TestPipelineRecordsCopy(t *testing.T) {
	p := NewPipeline(&mockWriter{})
	for _, r := range sampleRecords() {
		if err := p.Process(r); err != nil {
			t.Fatalf("process: %v", err)
		}
	}
	got := p.Records()
	got[0] = nil
	if p.Records()[0] == nil {
		t.Fatalf("Records should return a copy")
	}
}
