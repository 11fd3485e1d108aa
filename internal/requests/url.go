package requests

import (
	"encoding/json"
	"net/url"

	"github.com/pkg/errors"
)

const (
	algorithmParam = "algorithm"
	dataParam      = "data"
)

// pageData is the payload carried between the input page and the simulation
// page. The algorithm travels separately as its own query parameter.
type pageData struct {
	ArrivalTimes      []int `json:"arrivalTimes"`
	BurstTimes        []int `json:"burstTimes"`
	Priorities        []int `json:"priorities,omitempty"`
	TimeQuantum       *int  `json:"timeQuantum,omitempty"`
	LevelsTimeQuantum []int `json:"levelsTimeQuantum,omitempty"`
}

// EncodeURL appends the request to base as algorithm and data query
// parameters.
func EncodeURL(base string, request ScheduleRequest) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}

	data := pageData{
		ArrivalTimes:      make([]int, len(request.Processes)),
		BurstTimes:        make([]int, len(request.Processes)),
		TimeQuantum:       request.TimeQuantum,
		LevelsTimeQuantum: request.LevelsTimeQuantum,
	}
	for i, p := range request.Processes {
		data.ArrivalTimes[i] = p.ArrivalTime
		data.BurstTimes[i] = p.BurstTime
		if p.Priority != nil {
			if data.Priorities == nil {
				data.Priorities = make([]int, len(request.Processes))
			}
			data.Priorities[i] = *p.Priority
		}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", errors.Wrap(err, "marshal page data")
	}

	query := u.Query()
	query.Set(algorithmParam, string(request.Algorithm))
	query.Set(dataParam, string(payload))
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// DecodeURL rebuilds a request from a URL produced by EncodeURL. Process ids
// are assigned from position, matching the input form's row order.
func DecodeURL(raw string) (ScheduleRequest, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ScheduleRequest{}, validationErrorf("url", "%v", err)
	}
	return DecodeQuery(u.Query())
}

// DecodeQuery is DecodeURL for already parsed query parameters.
func DecodeQuery(query url.Values) (ScheduleRequest, error) {
	algorithm, err := ParseAlgorithm(query.Get(algorithmParam))
	if err != nil {
		return ScheduleRequest{}, err
	}

	raw := query.Get(dataParam)
	if raw == "" {
		return ScheduleRequest{}, validationErrorf(dataParam, "missing simulation data")
	}
	var data pageData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return ScheduleRequest{}, validationErrorf(dataParam, "malformed simulation data: %v", err)
	}
	if len(data.ArrivalTimes) != len(data.BurstTimes) {
		return ScheduleRequest{}, validationErrorf(dataParam, "got %d arrival times but %d burst times", len(data.ArrivalTimes), len(data.BurstTimes))
	}
	if data.Priorities != nil && len(data.Priorities) != len(data.ArrivalTimes) {
		return ScheduleRequest{}, validationErrorf("priority", "got %d priorities for %d processes", len(data.Priorities), len(data.ArrivalTimes))
	}

	builder := NewBuilder(algorithm)
	for i := range data.ArrivalTimes {
		if data.Priorities != nil {
			builder.AddPriorityProcess(data.ArrivalTimes[i], data.BurstTimes[i], data.Priorities[i])
			continue
		}
		builder.AddProcess(data.ArrivalTimes[i], data.BurstTimes[i])
	}
	if data.TimeQuantum != nil {
		builder.TimeQuantum(*data.TimeQuantum)
	}
	if len(data.LevelsTimeQuantum) > 0 {
		builder.LevelsTimeQuantum(data.LevelsTimeQuantum...)
	}
	return builder.Build()
}
