package requests

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadProcesses reads rows of "id,burst,arrival[,priority]". Blank lines
// and lines starting with '#' are skipped; a leading header row is allowed.
func LoadProcesses(r io.Reader) ([]Process, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV")
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}

	processes := make([]Process, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 && len(row) != 4 {
			return nil, validationErrorf("csv", "line %d: expected 3 or 4 fields, got %d", i+1, len(row))
		}
		values := make([]int, len(row))
		for j, field := range row {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, validationErrorf("csv", "line %d: field %d is not an integer: %q", i+1, j+1, field)
			}
			values[j] = v
		}
		p := Process{
			ProcessId:   values[0],
			BurstTime:   values[1],
			ArrivalTime: values[2],
		}
		if len(values) == 4 {
			p.Priority = IntPtr(values[3])
		}
		processes = append(processes, p)
	}
	return processes, nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}
