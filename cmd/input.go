package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"cpu-scheduler/internal/requests"
)

// loadRequest reads a JSON request or a CSV process table.
func loadRequest(path string) (requests.ScheduleRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return requests.ScheduleRequest{}, errors.Wrap(err, "open input")
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var request requests.ScheduleRequest
		if err := json.NewDecoder(f).Decode(&request); err != nil {
			return requests.ScheduleRequest{}, errors.Wrapf(err, "decode %s", path)
		}
		return request, nil
	}

	processes, err := requests.LoadProcesses(f)
	if err != nil {
		return requests.ScheduleRequest{}, errors.WithMessagef(err, "load %s", path)
	}
	return requests.ScheduleRequest{Processes: processes}, nil
}
