// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	FormatTSV   Format = "tsv"
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// ErrUnknownFormat indicates a format name ParseFormat does not recognize.
var ErrUnknownFormat = errors.New("output: unknown format")

// ParseFormat accepts tsv, csv, jsonl (or json), case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tsv", "":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	case "jsonl", "json", "ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("ParseFormat: %q: %w", s, ErrUnknownFormat)
	}
}

// Row is one scored cell.
type Row struct {
	Cell  string  `json:"cell"`
	Score float64 `json:"sr"`
}

var header = []string{"cell", "sr"}

// Writer encodes rows in one Format.
type Writer struct {
	format Format
	csv    *csv.Writer
	json   *json.Encoder
	wrote  bool
}

// NewWriter returns a Writer for f over w.
func NewWriter(w io.Writer, f Format) (*Writer, error) {
	out := &Writer{format: f}
	switch f {
	case FormatTSV, FormatCSV:
		out.csv = csv.NewWriter(w)
		if f == FormatTSV {
			out.csv.Comma = '\t'
		}
	case FormatJSONL:
		out.json = json.NewEncoder(w)
	default:
		return nil, fmt.Errorf("NewWriter: %q: %w", f, ErrUnknownFormat)
	}

	return out, nil
}

// Write encodes rows. Scores use the shortest representation that round-trips.
func (w *Writer) Write(rows ...Row) error {
	if w.json != nil {
		for _, r := range rows {
			if err := w.json.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	if !w.wrote {
		if err := w.csv.Write(header); err != nil {
			return err
		}
		w.wrote = true
	}
	rec := make([]string, 2)
	for _, r := range rows {
		rec[0] = r.Cell
		rec[1] = strconv.FormatFloat(r.Score, 'g', -1, 64)
		if err := w.csv.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

// Flush writes any buffered data. A delimited Writer that saw no rows still
// emits its header.
func (w *Writer) Flush() error {
	if w.csv == nil {
		return nil
	}
	if !w.wrote {
		if err := w.csv.Write(header); err != nil {
			return err
		}
		w.wrote = true
	}
	w.csv.Flush()

	return w.csv.Error()
}

// Rows pairs cell identifiers with scores. ids may be nil, in which case
// cells are named by position.
func Rows(ids []string, offset int, scores []float64) []Row {
	out := make([]Row, len(scores))
	for i, s := range scores {
		out[i].Score = s
		if ids != nil {
			out[i].Cell = ids[offset+i]
		} else {
			out[i].Cell = strconv.Itoa(offset + i)
		}
	}

	return out
}
