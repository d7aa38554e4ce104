package csv

import (
	"encoding/csv"
	"io"
)

// Write serializes header and rows as CSV. Extra values are written after
// the header-width values so that parsing the output restores them.
func Write(w io.Writer, header []string, rows []Row, opts Options) error {
	delim, err := opts.delimiter()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writeRecord(w, writer, header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := append(append([]string(nil), row.Values()...), row.Extra...)
		if err := writeRecord(w, writer, rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeRecord writes rec. A lone empty field would come out as a blank line,
// which readers skip, so it is written as an explicitly quoted empty field.
func writeRecord(w io.Writer, writer *csv.Writer, rec []string) error {
	if len(rec) == 1 && rec[0] == "" {
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\"\"\n")
		return err
	}
	return writer.Write(rec)
}
