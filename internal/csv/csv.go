// Package csv parses CSV text into header-keyed row records and writes them back.
package csv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ExtraField is the JSON key under which values beyond the header are reported.
const ExtraField = "__parsed_extra"

// Row is one data line keyed by the header. Values are in header order.
type Row struct {
	header []string
	values []string
	// Extra holds values beyond the header width, in source order.
	Extra []string
}

// NewRow builds a row for header. Missing trailing values are filled with ""
// and values beyond the header width go to Extra.
func NewRow(header, values []string) Row {
	row := Row{header: header, values: make([]string, len(header))}
	copy(row.values, values)
	if len(values) > len(header) {
		row.Extra = append([]string(nil), values[len(header):]...)
	}
	return row
}

// Header returns the field names of the row.
func (r Row) Header() []string {
	return r.header
}

// Values returns the cell values in header order.
func (r Row) Values() []string {
	return r.values
}

// Get returns the value of the named field.
func (r Row) Get(name string) (string, bool) {
	for i, h := range r.header {
		if h == name {
			return r.values[i], true
		}
	}
	return "", false
}

// Map returns the row as a plain map. Extra values are not included.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.header))
	for i, h := range r.header {
		m[h] = r.values[i]
	}
	return m
}

// MarshalJSON encodes the row as an object whose keys follow header order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range r.header {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(h)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	if len(r.Extra) > 0 {
		if len(r.header) > 0 {
			buf.WriteByte(',')
		}
		extra, err := json.Marshal(r.Extra)
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(ExtraField))
		buf.WriteByte(':')
		buf.Write(extra)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DiagnosticCode classifies a malformed row.
type DiagnosticCode string

const (
	TooFewFields  DiagnosticCode = "too_few_fields"
	TooManyFields DiagnosticCode = "too_many_fields"
)

// Diagnostic marks a row whose width did not match the header.
// The row itself is still part of the result.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Line    int            `json:"line"`
	Row     int            `json:"row"`
	Message string         `json:"message"`
}

// Result is the outcome of one parse.
type Result struct {
	Header      []string     `json:"header"`
	Rows        []Row        `json:"rows"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// NewResult splits records into a header and rows. The first record is the
// header; an empty records slice yields an empty result.
// lines holds the source line of each record and may be nil.
func NewResult(records [][]string, lines []int) *Result {
	res := &Result{Rows: []Row{}}
	if len(records) == 0 {
		return res
	}
	res.Header = uniqueHeader(records[0])
	for i, rec := range records[1:] {
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		res.add(rec, line)
	}
	return res
}

func (res *Result) add(values []string, line int) {
	idx := len(res.Rows)
	switch n, want := len(values), len(res.Header); {
	case n < want:
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    TooFewFields,
			Line:    line,
			Row:     idx,
			Message: fmt.Sprintf("too few fields: expected %d, got %d", want, n),
		})
	case n > want:
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    TooManyFields,
			Line:    line,
			Row:     idx,
			Message: fmt.Sprintf("too many fields: expected %d, got %d", want, n),
		})
	}
	res.Rows = append(res.Rows, NewRow(res.Header, values))
}

// uniqueHeader renames repeated names to name_1, name_2, ... ExtraField is
// reserved for overflow values, so a column with that name is renamed too.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header)+1)
	for _, h := range header {
		seen[h] = false
	}
	seen[ExtraField] = true
	for i, h := range header {
		name := h
		if used := seen[name]; used {
			for n := 1; ; n++ {
				candidate := h + "_" + strconv.Itoa(n)
				if _, taken := seen[candidate]; !taken {
					name = candidate
					break
				}
			}
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
