// Package csvio adapts CSV documents to the ledger pipeline: a Reader
// that yields loosely-typed records in stream order and writers that
// render the final client report.
package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/iho/payflow/internal/normalizer"
)

// ErrHeader reports an input whose header row lacks the required columns.
var ErrHeader = errors.New("input header missing required columns")

// Reader streams records out of a CSV document. The first row is a header
// naming the columns (type, client, tx, amount; case-insensitive, amount
// optional). Malformed lines are skipped and counted, never surfaced:
// dropping bad rows silently is part of the stream protocol.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	skipped int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return &Reader{csv: cr}
}

// Next returns the next well-formed row. io.EOF signals end of input; any
// other error is a real read failure and is fatal to the stream.
func (r *Reader) Next() (normalizer.Record, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.skipped++
				continue
			}
			return normalizer.Record{}, err
		}

		if r.columns == nil {
			columns, err := headerColumns(row)
			if err != nil {
				return normalizer.Record{}, err
			}
			r.columns = columns
			continue
		}

		rec, ok := r.record(row)
		if !ok {
			r.skipped++
			continue
		}
		return rec, nil
	}
}

// Skipped reports how many malformed lines have been dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

func headerColumns(row []string) (map[string]int, error) {
	columns := make(map[string]int, len(row))
	for i, name := range row {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := columns[required]; !ok {
			return nil, ErrHeader
		}
	}
	return columns, nil
}

func (r *Reader) record(row []string) (normalizer.Record, bool) {
	field := func(name string) (string, bool) {
		idx, ok := r.columns[name]
		if !ok || idx >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[idx]), true
	}

	recType, ok := field("type")
	if !ok {
		return normalizer.Record{}, false
	}
	client, ok := field("client")
	if !ok {
		return normalizer.Record{}, false
	}
	tx, ok := field("tx")
	if !ok {
		return normalizer.Record{}, false
	}
	// The amount column may be absent from the header or from short rows;
	// both read as "no amount".
	amount, _ := field("amount")

	return normalizer.Record{Type: recType, Client: client, Tx: tx, Amount: amount}, true
}
