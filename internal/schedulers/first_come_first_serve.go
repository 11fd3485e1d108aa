package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

func ScheduleFirstComeFirstServe(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	return simulate(requests.FirstComeFirstServe, request)
}

func firstComeFirstServe(cpu *core.CPU, processes []*core.Process, _ requests.ScheduleRequest) {
	// sort jobs by arrival time, ties by id
	for _, p := range core.ByArrival(processes) {
		cpu.IdleUntil(p.ArrivalTime)
		cpu.Execute(p, p.Remaining)
	}
}
