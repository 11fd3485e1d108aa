package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

// algorithm drives the CPU until every process has completed.
type algorithm func(cpu *core.CPU, processes []*core.Process, request requests.ScheduleRequest)

var algorithms = map[requests.Algorithm]algorithm{
	requests.FirstComeFirstServe:        firstComeFirstServe,
	requests.ShortestJobFirst:           shortestJobFirst,
	requests.ShortestRemainingTimeFirst: shortestRemainingTimeFirst,
	requests.Priority:                   priority,
	requests.RoundRobin:                 roundRobin,
	requests.MultilevelFeedbackQueue:    multilevelFeedbackQueue,
}

// Schedule runs the algorithm named by the request. It either returns a
// complete, self-consistent result or an error before any timeline exists.
func Schedule(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	return simulate(request.Algorithm, request)
}

func simulate(name requests.Algorithm, request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	request = request.Clone()
	request.Algorithm = name
	if err := request.Validate(); err != nil {
		return responses.ScheduleResponse{}, err
	}

	processes := core.NewProcesses(request.Processes)
	cpu := core.NewCPU()
	algorithms[name](cpu, processes, request)

	response := generateResponse(name, processes, cpu)
	if err := VerifySchedule(response); err != nil {
		return responses.ScheduleResponse{}, err
	}
	return response, nil
}

// selectProcess returns the first process for which no other process is
// preferred by before.
func selectProcess(available []*core.Process, before func(a, b *core.Process) bool) *core.Process {
	selected := available[0]
	for _, p := range available[1:] {
		if before(p, selected) {
			selected = p
		}
	}
	return selected
}

// idleUntilNextArrival advances an idle CPU to the next arrival. It returns
// false when nothing is left to arrive.
func idleUntilNextArrival(cpu *core.CPU, processes []*core.Process) bool {
	next, ok := core.NextArrival(processes, cpu.Now())
	if !ok {
		return false
	}
	cpu.IdleUntil(next)
	return true
}
