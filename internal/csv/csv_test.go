package csv

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResult(t *testing.T) {
	records := [][]string{
		{"header1", "header2"},
		{"value1", "value2"},
		{"value3", "value4"},
	}
	res := NewResult(records, nil)

	assert.Equal(t, []string{"header1", "header2"}, res.Header)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, []string{"value1", "value2"}, res.Rows[0].Values())
	assert.Equal(t, []string{"value3", "value4"}, res.Rows[1].Values())
	assert.Empty(t, res.Diagnostics)
}

func TestNewResult_empty(t *testing.T) {
	res := NewResult([][]string{}, nil)

	assert.Nil(t, res.Header)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
}

func TestNewResult_shortRowIsFilled(t *testing.T) {
	res := NewResult([][]string{{"a", "b", "c"}, {"1"}}, []int{1, 2})

	require.Len(t, res.Rows, 1)
	assert.Equal(t, []string{"1", "", ""}, res.Rows[0].Values())
	assert.Empty(t, res.Rows[0].Extra)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, TooFewFields, res.Diagnostics[0].Code)
	assert.Equal(t, 2, res.Diagnostics[0].Line)
	assert.Equal(t, 0, res.Diagnostics[0].Row)
}

func TestNewResult_longRowOverflows(t *testing.T) {
	res := NewResult([][]string{{"a", "b"}, {"1", "2"}, {"3", "4", "5", "6"}}, nil)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, []string{"3", "4"}, res.Rows[1].Values())
	assert.Equal(t, []string{"5", "6"}, res.Rows[1].Extra)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, TooManyFields, res.Diagnostics[0].Code)
	assert.Equal(t, 1, res.Diagnostics[0].Row)
	assert.Equal(t, 3, res.Diagnostics[0].Line)
}

func TestNewResult_duplicateHeader(t *testing.T) {
	res := NewResult([][]string{{"a", "a", "a_1", "a"}}, nil)

	assert.Equal(t, []string{"a", "a_2", "a_1", "a_3"}, res.Header)
}

func TestNewResult_reservedExtraHeader(t *testing.T) {
	res := NewResult([][]string{
		{ExtraField, "b", ExtraField},
		{"x", "y", "w", "z"},
	}, nil)

	require.Equal(t, []string{ExtraField + "_1", "b", ExtraField + "_2"}, res.Header)

	data, err := json.Marshal(res.Rows[0])
	require.NoError(t, err)
	assert.Equal(t, `{"__parsed_extra_1":"x","b":"y","__parsed_extra_2":"w","__parsed_extra":["z"]}`, string(data))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "x", decoded[ExtraField+"_1"])
	assert.Equal(t, []any{"z"}, decoded[ExtraField])
}

func TestRow_Get(t *testing.T) {
	row := NewRow([]string{"title", "color"}, []string{"Dune", "orange"})

	v, ok := row.Get("color")
	assert.True(t, ok)
	assert.Equal(t, "orange", v)

	_, ok = row.Get("author")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"title": "Dune", "color": "orange"}, row.Map())
}

func TestRow_MarshalJSON(t *testing.T) {
	t.Run("keys follow header order", func(t *testing.T) {
		row := NewRow([]string{"title", "color", "author"}, []string{"Dune", "orange", "Herbert"})

		data, err := json.Marshal(row)
		require.NoError(t, err)
		assert.Equal(t, `{"title":"Dune","color":"orange","author":"Herbert"}`, string(data))
	})

	t.Run("extra values", func(t *testing.T) {
		row := NewRow([]string{"title"}, []string{"Dune", "x", "y"})

		data, err := json.Marshal(row)
		require.NoError(t, err)
		assert.Equal(t, `{"title":"Dune","__parsed_extra":["x","y"]}`, string(data))
	})

	t.Run("escapes keys and values", func(t *testing.T) {
		row := NewRow([]string{`say "hi"`}, []string{"a\nb"})

		data, err := json.Marshal(row)
		require.NoError(t, err)
		assert.Equal(t, `{"say \"hi\"":"a\nb"}`, string(data))
	})
}
