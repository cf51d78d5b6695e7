package epoch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadRecords parses a training log written by a Reporter. It also
// accepts logs with spaces after the separators.
func LoadRecords(in io.Reader) ([]Record, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loadRecords: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("loadRecords: missing title or header line")
	}
	if strings.Join(rows[1], ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("loadRecords: unexpected header %q", rows[1])
	}

	records := make([]Record, 0, len(rows)-2)
	for i, row := range rows[2:] {
		record, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("loadRecords: line %v: %w", i+3, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRecord(row []string) (Record, error) {
	if len(row) != len(Header) {
		return Record{}, fmt.Errorf("expected %v fields, have %v",
			len(Header), len(row))
	}

	ints := make([]int, 0, 4)
	for _, i := range []int{0, 3, 4, 5} {
		v, err := strconv.Atoi(strings.TrimSpace(row[i]))
		if err != nil {
			return Record{}, fmt.Errorf("column %q: %w", Header[i], err)
		}
		ints = append(ints, v)
	}

	floats := make([]float64, 0, 2)
	for _, i := range []int{1, 2} {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return Record{}, fmt.Errorf("column %q: %w", Header[i], err)
		}
		floats = append(floats, v)
	}

	return Record{
		Epoch:           ints[0],
		AverageScore:    floats[0],
		Hours:           floats[1],
		Episodes:        ints[1],
		EpisodesInEpoch: ints[2],
		Frames:          ints[3],
	}, nil
}
