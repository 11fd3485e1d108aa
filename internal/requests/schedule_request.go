package requests

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

type Algorithm string

const (
	FirstComeFirstServe        Algorithm = "FCFS"
	ShortestJobFirst           Algorithm = "SJF"
	ShortestRemainingTimeFirst Algorithm = "SRTF"
	Priority                   Algorithm = "Priority"
	RoundRobin                 Algorithm = "RoundRobin"
	MultilevelFeedbackQueue    Algorithm = "MLFQ"
)

// Algorithms lists every supported algorithm in presentation order.
var Algorithms = []Algorithm{
	FirstComeFirstServe,
	ShortestJobFirst,
	ShortestRemainingTimeFirst,
	Priority,
	RoundRobin,
	MultilevelFeedbackQueue,
}

var algorithmAliases = map[string]Algorithm{
	"fcfs":        FirstComeFirstServe,
	"sjf":         ShortestJobFirst,
	"srtf":        ShortestRemainingTimeFirst,
	"priority":    Priority,
	"rr":          RoundRobin,
	"roundrobin":  RoundRobin,
	"round_robin": RoundRobin,
	"round-robin": RoundRobin,
	"mlfq":        MultilevelFeedbackQueue,
}

// ParseAlgorithm resolves a user supplied identifier, case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	if algorithm, ok := algorithmAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return algorithm, nil
	}
	return "", errors.WithStack(&UnsupportedAlgorithmError{Algorithm: name})
}

// Valid reports whether a is one of the canonical identifiers.
func (a Algorithm) Valid() bool {
	for _, algorithm := range Algorithms {
		if a == algorithm {
			return true
		}
	}
	return false
}

// MaxTimeUnits bounds the simulated clock: the latest arrival plus the total
// burst time of a request may not exceed it. Playback expands a schedule into
// one frame per time unit.
const MaxTimeUnits = 1 << 20

type Process struct {
	ProcessId   int  `json:"process_id"`
	ArrivalTime int  `json:"arrival_time"`
	BurstTime   int  `json:"burst_time"`
	Priority    *int `json:"priority,omitempty"`
}

type ScheduleRequest struct {
	Algorithm         Algorithm `json:"algorithm"`
	Processes         []Process `json:"processes"`
	TimeQuantum       *int      `json:"time_quantum,omitempty"`
	LevelsTimeQuantum []int     `json:"levels_time_quantum,omitempty"`
}

// UnmarshalJSON gives a process without a process_id its row position, so
// ids follow input order unless the caller sets them.
func (r *ScheduleRequest) UnmarshalJSON(data []byte) error {
	type process struct {
		ProcessId   *int `json:"process_id"`
		ArrivalTime int  `json:"arrival_time"`
		BurstTime   int  `json:"burst_time"`
		Priority    *int `json:"priority"`
	}
	var wire struct {
		Algorithm         Algorithm `json:"algorithm"`
		Processes         []process `json:"processes"`
		TimeQuantum       *int      `json:"time_quantum"`
		LevelsTimeQuantum []int     `json:"levels_time_quantum"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = ScheduleRequest{
		Algorithm:         wire.Algorithm,
		TimeQuantum:       wire.TimeQuantum,
		LevelsTimeQuantum: wire.LevelsTimeQuantum,
	}
	if wire.Processes != nil {
		r.Processes = make([]Process, len(wire.Processes))
	}
	for i, p := range wire.Processes {
		id := i
		if p.ProcessId != nil {
			id = *p.ProcessId
		}
		r.Processes[i] = Process{ProcessId: id, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime, Priority: p.Priority}
	}
	return nil
}

// Validate rejects a request the engine cannot simulate. It is called before
// any timeline is produced.
func (r ScheduleRequest) Validate() error {
	if !r.Algorithm.Valid() {
		return errors.WithStack(&UnsupportedAlgorithmError{Algorithm: string(r.Algorithm)})
	}
	if len(r.Processes) == 0 {
		return validationErrorf("processes", "at least one process is required")
	}

	seen := make(map[int]struct{}, len(r.Processes))
	latestArrival, totalBurst := 0, 0
	for i, p := range r.Processes {
		if p.ProcessId < 0 {
			return validationErrorf("processes", "row %d: process id must be non-negative, got %d", i, p.ProcessId)
		}
		if _, ok := seen[p.ProcessId]; ok {
			return validationErrorf("processes", "row %d: duplicate process id %d", i, p.ProcessId)
		}
		seen[p.ProcessId] = struct{}{}

		if p.ArrivalTime < 0 {
			return validationErrorf("arrival_time", "process %d: arrival time must be non-negative, got %d", p.ProcessId, p.ArrivalTime)
		}
		if p.ArrivalTime > MaxTimeUnits {
			return validationErrorf("arrival_time", "process %d: arrival time must be at most %d, got %d", p.ProcessId, MaxTimeUnits, p.ArrivalTime)
		}
		if p.BurstTime < 1 {
			return validationErrorf("burst_time", "process %d: burst time must be at least 1, got %d", p.ProcessId, p.BurstTime)
		}
		if p.BurstTime > MaxTimeUnits {
			return validationErrorf("burst_time", "process %d: burst time must be at most %d, got %d", p.ProcessId, MaxTimeUnits, p.BurstTime)
		}
		latestArrival = max(latestArrival, p.ArrivalTime)
		// each addend is at most MaxTimeUnits here, so the sum cannot overflow
		totalBurst += p.BurstTime
		if latestArrival+totalBurst > MaxTimeUnits {
			return validationErrorf("processes", "latest arrival plus total burst time exceeds %d time units", MaxTimeUnits)
		}
		if r.Algorithm == Priority && p.Priority == nil {
			return validationErrorf("priority", "process %d: priority is required for the Priority algorithm", p.ProcessId)
		}
	}

	switch r.Algorithm {
	case RoundRobin:
		if r.TimeQuantum == nil {
			return validationErrorf("time_quantum", "time quantum is required for RoundRobin")
		}
		if *r.TimeQuantum <= 0 {
			return validationErrorf("time_quantum", "time quantum must be positive, got %d", *r.TimeQuantum)
		}
	case MultilevelFeedbackQueue:
		if len(r.LevelsTimeQuantum) == 0 {
			return validationErrorf("levels_time_quantum", "at least one level time quantum is required for MLFQ")
		}
		for level, quantum := range r.LevelsTimeQuantum {
			if quantum <= 0 {
				return validationErrorf("levels_time_quantum", "level %d: time quantum must be positive, got %d", level, quantum)
			}
		}
	}
	return nil
}

// Clone returns a deep copy so concurrent runs never share descriptors.
func (r ScheduleRequest) Clone() ScheduleRequest {
	clone := ScheduleRequest{
		Algorithm: r.Algorithm,
		Processes: make([]Process, len(r.Processes)),
	}
	for i, p := range r.Processes {
		clone.Processes[i] = p
		if p.Priority != nil {
			priority := *p.Priority
			clone.Processes[i].Priority = &priority
		}
	}
	if r.TimeQuantum != nil {
		quantum := *r.TimeQuantum
		clone.TimeQuantum = &quantum
	}
	if r.LevelsTimeQuantum != nil {
		clone.LevelsTimeQuantum = append([]int(nil), r.LevelsTimeQuantum...)
	}
	return clone
}

// IntPtr is a convenience for the optional integer fields.
func IntPtr(v int) *int {
	return &v
}
