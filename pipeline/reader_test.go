package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var defaultColumns = []string{"Artist Name(s)", "artist", "Artist"}

func readAll(t *testing.T, input string) ([]string, int) {
	t.Helper()
	set, err := NewOrderedSet(16)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	rows, err := ReadArtists(strings.NewReader(input), defaultColumns, set)
	if err != nil {
		t.Fatalf("read artists: %v", err)
	}
	return set.Values(), rows
}

func TestReadArtists(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []string
		wantRows int
	}{
		{
			name:     "spotify export column",
			input:    "Track Name,Artist Name(s),Album\nA,\"Nekfeu, Laylow\",X\nB,Drake (feat. 21 Savage) [Remix],Y\n",
			want:     []string{"Nekfeu", "Laylow", "Drake"},
			wantRows: 2,
		},
		{
			name:     "case duplicates collapse",
			input:    "Artist Name(s)\nPNL\npnl\nPnl;Jul\n",
			want:     []string{"PNL", "Jul"},
			wantRows: 3,
		},
		{
			name:     "fallback column",
			input:    "title,artist\nx,Damso\ny,Vald/Gazo\n",
			want:     []string{"Damso", "Vald", "Gazo"},
			wantRows: 2,
		},
		{
			name:     "first non-empty candidate per row",
			input:    "Artist Name(s),Artist\n,Booba\nNinho,Ignored\n",
			want:     []string{"Booba", "Ninho"},
			wantRows: 2,
		},
		{
			name:     "short rows tolerated",
			input:    "Track,Artist Name(s)\nonly-track\nT,SCH\n",
			want:     []string{"SCH"},
			wantRows: 2,
		},
		{
			name:     "no matching column",
			input:    "Track,Album\nA,B\n",
			want:     []string{},
			wantRows: 1,
		},
		{
			name:     "header only",
			input:    "Artist Name(s)\n",
			want:     []string{},
			wantRows: 0,
		},
		{
			name:     "empty input",
			input:    "",
			want:     []string{},
			wantRows: 0,
		},
		{
			name:     "byte order mark stripped",
			input:    "\xef\xbb\xbfArtist Name(s),Album\nAlpha Wann,UMLA\n",
			want:     []string{"Alpha Wann"},
			wantRows: 1,
		},
		{
			name:     "invalid bytes dropped",
			input:    "Artist Name(s)\nAng\xffèle\n",
			want:     []string{"Angèle"},
			wantRows: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rows := readAll(t, tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("names=%#v, want %#v", got, tt.want)
			}
			if rows != tt.wantRows {
				t.Fatalf("rows=%d, want %d", rows, tt.wantRows)
			}
		})
	}
}

func TestReadArtistsFileMissing(t *testing.T) {
	set, err := NewOrderedSet(4)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	_, err = ReadArtistsFile(filepath.Join(t.TempDir(), "Jsp.csv"), defaultColumns, set)
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("err=%v, want ErrInputNotFound", err)
	}
}

func TestReadArtistsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Jsp.csv")
	content := "Artist Name(s)\nCentral Cee & Dave\nStormzy\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	set, err := NewOrderedSet(4)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	rows, err := ReadArtistsFile(path, defaultColumns, set)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	want := []string{"Central Cee", "Dave", "Stormzy"}
	if got := set.Values(); rows != 2 || !reflect.DeepEqual(got, want) {
		t.Fatalf("rows=%d names=%v, want 2 %v", rows, got, want)
	}
}
