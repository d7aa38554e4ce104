// Package output renders a parse result for the terminal or for other tools.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/annwoerpel/visual-analytics-books/internal/csv"
)

// Format selects how a result is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or csv)", s)
	}
}

// Render writes res to w in the given format.
func Render(w io.Writer, format Format, res *csv.Result, opts csv.Options) error {
	switch format {
	case FormatTable:
		return Table(w, res)
	case FormatJSON:
		return JSON(w, res)
	case FormatCSV:
		return csv.Write(w, res.Header, res.Rows, opts)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Table writes rows as a human-readable table. Overflow values, if any,
// appear in an extra trailing column.
func Table(w io.Writer, res *csv.Result) error {
	header := append([]string(nil), res.Header...)
	hasExtra := false
	for _, row := range res.Rows {
		if len(row.Extra) > 0 {
			hasExtra = true
			break
		}
	}
	if hasExtra {
		header = append(header, csv.ExtraField)
	}

	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.Header(header)
	for _, row := range res.Rows {
		values := append([]string(nil), row.Values()...)
		if hasExtra {
			values = append(values, strings.Join(row.Extra, ", "))
		}
		if err := table.Append(values); err != nil {
			return fmt.Errorf("append table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	if _, err := io.WriteString(w, tableString.String()); err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		if _, err := fmt.Fprintf(w, "line %d: %s\n", d.Line, d.Message); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes the result as an indented JSON document.
func JSON(w io.Writer, res *csv.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
