package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	header := []string{"title", "color"}
	rows := []Row{
		NewRow(header, []string{"Dune", "orange"}),
		NewRow(header, []string{"Dune Messiah", "blue"}),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, header, rows, Options{}))
	assert.Equal(t, "title,color\nDune,orange\nDune Messiah,blue\n", buf.String())
}

func TestWrite_roundTrip(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		values [][]string
		opts   Options
	}{
		{
			name:   "quoting",
			header: []string{"title", "note"},
			values: [][]string{
				{"a,b", `say "hi"`},
				{"multi\nline", " leading space"},
				{"", ""},
			},
		},
		{
			name:   "single empty column",
			header: []string{"title"},
			values: [][]string{{"Dune"}, {""}, {"Emma"}},
		},
		{
			name:   "semicolon",
			header: []string{"a", "b"},
			values: [][]string{{"x;y", "z"}},
			opts:   Options{Delimiter: ';'},
		},
		{
			name:   "overflow",
			header: []string{"a", "b"},
			values: [][]string{{"1", "2", "3"}},
		},
		{
			name:   "header only",
			header: []string{"a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]Row, 0, len(tt.values))
			for _, v := range tt.values {
				rows = append(rows, NewRow(tt.header, v))
			}

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.header, rows, tt.opts))

			res, err := Parse(buf.String(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.header, res.Header)
			require.Len(t, res.Rows, len(rows))
			for i := range rows {
				assert.Equal(t, rows[i].Values(), res.Rows[i].Values())
				assert.Equal(t, rows[i].Extra, res.Rows[i].Extra)
			}
		})
	}
}

func TestWrite_invalidDelimiter(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"a"}, nil, Options{Delimiter: '\n'})
	assert.ErrorIs(t, err, ErrInvalidDelimiter)
}
