// Package csvcodec reads and writes parameter tables as CSV.
//
// Headers are normalised the way parameter editors export them: a blank
// header becomes "Unnamed: N" and repeated names gain ".1", ".2" suffixes.
// Cells keep their original text so an unchanged table writes back byte
// for byte.
package csvcodec

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/table"
)

// Read parses a CSV stream whose first record is the header. An empty
// stream yields a table with no columns. name labels errors.
func Read(r io.Reader, name string) (*table.Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return table.New(nil, 0), nil
	}
	if err != nil {
		return nil, readError(name, err)
	}
	columns := normalizeHeader(header)

	var rows []table.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(name, err)
		}
		if len(record) > len(columns) {
			line, _ := cr.FieldPos(0)
			return nil, errors.NewTableReadError(name, line,
				errors.New("row has "+strconv.Itoa(len(record))+" fields, header has "+strconv.Itoa(len(columns))))
		}
		row := make(table.Row, len(columns))
		for i, cell := range record {
			row[i] = table.Parse(cell)
		}
		rows = append(rows, row)
	}

	t := table.New(columns, len(rows))
	for i, row := range rows {
		t.SetRow(i, row)
	}
	return t, nil
}

func readError(name string, err error) error {
	if pe, ok := err.(*csv.ParseError); ok {
		return errors.NewTableReadError(name, pe.Line, pe.Err)
	}
	return errors.NewTableReadError(name, 0, err)
}

// normalizeHeader names blank columns and disambiguates duplicates.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if seen[h] {
			base := h
			for n := 1; seen[h]; n++ {
				h = base + "." + strconv.Itoa(n)
			}
		}
		seen[h] = true
		out[i] = h
	}
	return out
}

// Write encodes t as CSV: the header row, then every row in order. Null
// cells are written empty.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	record := make([]string, t.NumColumns())
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			record[j] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
