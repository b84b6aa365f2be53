package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/aluiziolira/go-artist-catalog/parser"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ReadArtistsFile opens path and feeds every artist name into set.
func ReadArtistsFile(path string, columns []string, set *OrderedSet) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ReadArtists(f, columns, set)
}

// ReadArtists reads a delimited file with a header row. For each row the first
// non-empty value among columns is split into artist names and added to set.
// A UTF-8 byte order mark is skipped and invalid bytes are dropped. Malformed
// rows are logged and skipped. It returns the number of data rows read.
func ReadArtists(r io.Reader, columns []string, set *OrderedSet) (int, error) {
	reader := csv.NewReader(transform.NewReader(r, tolerantUTF8()))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	indexes := columnIndexes(header, columns)
	if len(indexes) == 0 {
		slog.Warn("no artist column in input header",
			slog.Any("want", columns),
			slog.Any("header", header),
		)
	}

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				slog.Warn("skipping malformed row", slog.Any("error", err))
				continue
			}
			return rows, fmt.Errorf("read row: %w", err)
		}
		rows++

		for _, name := range parser.SplitArtists(firstValue(record, indexes)) {
			set.Add(name)
		}
	}
	return rows, nil
}

func tolerantUTF8() transform.Transformer {
	// runes.Remove sees ill-formed bytes as utf8.RuneError.
	return transform.Chain(
		unicode.BOMOverride(transform.Nop),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
}

// columnIndexes maps candidate column names to header positions, keeping
// candidate order and skipping names that are absent.
func columnIndexes(header, columns []string) []int {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}
	var out []int
	for _, name := range columns {
		if i, ok := positions[name]; ok {
			out = append(out, i)
		}
	}
	return out
}

func firstValue(record []string, indexes []int) string {
	for _, i := range indexes {
		if i < len(record) && record[i] != "" {
			return record[i]
		}
	}
	return ""
}
