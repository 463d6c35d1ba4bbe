package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"draftboard-engine/internal/records"
	"draftboard-engine/internal/value"
)

// RawRow is one sheet row keyed by normalized header.
type RawRow map[string]string

// HeaderKey lower-cases a header and collapses its whitespace.
func HeaderKey(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(value.CleanText(h))
}

// Get returns the trimmed value of the first listed column present.
func (r RawRow) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func rowFrom(header, cells []string) RawRow {
	r := make(RawRow, len(header))
	for i, h := range header {
		if h == "" {
			continue
		}
		if _, dup := r[h]; dup {
			continue
		}
		if i < len(cells) {
			r[h] = cells[i]
		} else {
			r[h] = ""
		}
	}
	return r
}

// ReadRawCSV reads one raw per-year export.
func ReadRawCSV(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, records.ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make([]string, len(head))
	for i, h := range head {
		header[i] = HeaderKey(h)
	}

	out := []RawRow{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(out)+2, err)
		}
		if blankRow(row) {
			continue
		}
		out = append(out, rowFrom(header, row))
	}
	return out, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
