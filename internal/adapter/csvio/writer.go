package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/iho/payflow/internal/domain"
)

var reportHeader = []string{"client", "available", "held", "total", "locked"}

// WriteCSV renders the client report as CSV with all decimals at exactly
// four places, sorted by client id for deterministic output.
func WriteCSV(w io.Writer, clients []*domain.Client) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, c := range sortByID(clients) {
		if err := cw.Write(reportRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders the client report as an aligned table for terminals.
func WriteTable(w io.Writer, clients []*domain.Client) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(reportHeader)
	for _, c := range sortByID(clients) {
		table.Append(reportRow(c))
	}
	table.Render()
}

func reportRow(c *domain.Client) []string {
	return []string{
		strconv.FormatUint(uint64(c.ID), 10),
		c.Available().StringFixed(domain.Scale),
		c.Held.StringFixed(domain.Scale),
		c.Total.StringFixed(domain.Scale),
		strconv.FormatBool(c.Locked),
	}
}

func sortByID(clients []*domain.Client) []*domain.Client {
	out := make([]*domain.Client, len(clients))
	copy(out, clients)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
