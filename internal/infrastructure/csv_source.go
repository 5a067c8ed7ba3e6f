package infrastructure

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

// CSV column names
const (
	ColumnURL         = "url"
	ColumnFilename    = "filename"
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnTags        = "tags"
)

// CSVRowSource yields input rows from a CSV file with a header line
type CSVRowSource struct {
	file    *os.File
	reader  *csv.Reader
	columns map[string]int
	header  int
	line    int // line number of the last yielded row
}

// OpenCSVRowSource opens path and reads its header. A missing file or a file
// without a header is reported as a *domain.ConfigError.
func OpenCSVRowSource(path string) (*CSVRowSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate short rows and unquoted commas in tags
	reader.LazyQuotes = true    // a bare " inside a field is kept as a literal

	header, err := reader.Read()
	if err != nil {
		file.Close()
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("missing header line")
		}
		return nil, &domain.ConfigError{Path: path, Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	return &CSVRowSource{
		file:    file,
		reader:  reader,
		columns: columns,
		header:  len(header),
		line:    1,
	}, nil
}

// Next returns the next data row, or io.EOF after the last one. A record
// that cannot be parsed is reported as a *domain.RowParseError and the
// source stays usable for the following rows.
func (s *CSVRowSource) Next() (domain.InputRow, error) {
	record, err := s.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.InputRow{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.line++
			return domain.InputRow{}, &domain.RowParseError{Row: s.line, Err: err}
		}
		return domain.InputRow{}, fmt.Errorf("failed to read CSV row after line %d: %w", s.line, err)
	}
	s.line++

	return s.toRow(record), nil
}

// Close closes the underlying file
func (s *CSVRowSource) Close() error {
	return s.file.Close()
}

func (s *CSVRowSource) toRow(record []string) domain.InputRow {
	// Row numbers start at 2 for the first data row; blank lines are not counted.
	row := domain.InputRow{
		URL:         strings.TrimSpace(s.field(record, ColumnURL)),
		Filename:    strings.TrimSpace(s.field(record, ColumnFilename)),
		Title:       strings.TrimSpace(s.field(record, ColumnTitle)),
		Description: strings.TrimSpace(s.field(record, ColumnDescription)),
		Row:         s.line,
	}
	if row.Filename == "" {
		row.Filename = domain.DefaultFilename(s.line - 1)
	}
	row.Tags = domain.ParseTags(strings.TrimSpace(s.rawTags(record)))
	return row
}

func (s *CSVRowSource) field(record []string, name string) string {
	i, ok := s.columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// rawTags returns the tags field with any surplus trailing fields joined back
// on, so "shorts,viral,funny" survives when the writer did not quote it.
func (s *CSVRowSource) rawTags(record []string) string {
	i, ok := s.columns[ColumnTags]
	if !ok || i >= len(record) {
		return ""
	}
	if i == s.header-1 && len(record) > s.header {
		return strings.Join(record[i:], ",")
	}
	return record[i]
}
