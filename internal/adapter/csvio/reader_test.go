package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payflow/internal/normalizer"
)

func readAll(t *testing.T, r *Reader) []normalizer.Record {
	t.Helper()
	var out []normalizer.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, rec)
	}
}

func TestReader_BasicStream(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
withdrawal, 1, 4, 1.5
dispute, 1, 1,
`
	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	require.Len(t, records, 3)
	assert.Equal(t, normalizer.Record{Type: "deposit", Client: "1", Tx: "1", Amount: "1.0"}, records[0])
	assert.Equal(t, normalizer.Record{Type: "withdrawal", Client: "1", Tx: "4", Amount: "1.5"}, records[1])
	assert.Equal(t, normalizer.Record{Type: "dispute", Client: "1", Tx: "1", Amount: ""}, records[2])
	assert.Zero(t, r.Skipped())
}

func TestReader_SkipsMalformedLines(t *testing.T) {
	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"deposit, 2\n" + // too few fields
		"deposit, 3\"bad\", 3, 1\n" + // bare quote
		"# a comment line\n" +
		"deposit, 2, 2, 2.0\n"
	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].Tx)
	assert.Equal(t, "2", records[1].Tx)
	assert.Equal(t, 2, r.Skipped())
}

func TestReader_HeaderVariants(t *testing.T) {
	input := "TYPE , Client, TX, Amount\ndeposit, 1, 1, 1.0\n"
	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	require.Len(t, records, 1)
	assert.Equal(t, "deposit", records[0].Type)
}

func TestReader_MissingAmountColumn(t *testing.T) {
	input := "type, client, tx\ndispute, 1, 1\n"
	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Amount)
}

func TestReader_BadHeader(t *testing.T) {
	r := NewReader(strings.NewReader("kind, who, when\nx, y, z\n"))
	_, err := r.Next()
	assert.ErrorIs(t, err, ErrHeader)
}

func TestReader_EmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}
