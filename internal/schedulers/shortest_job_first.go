package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

func ScheduleShortestJobFirst(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	return simulate(requests.ShortestJobFirst, request)
}

func shortestJobFirst(cpu *core.CPU, processes []*core.Process, _ requests.ScheduleRequest) {
	for core.Pending(processes) {
		available := core.Available(processes, cpu.Now())
		if len(available) == 0 {
			if !idleUntilNextArrival(cpu, processes) {
				return
			}
			continue
		}
		shortest := selectProcess(available, shorterBurst)
		// non-preemptive: run to completion
		cpu.Execute(shortest, shortest.Remaining)
	}
}

func shorterBurst(a, b *core.Process) bool {
	if a.BurstTime != b.BurstTime {
		return a.BurstTime < b.BurstTime
	}
	return a.ProcessId < b.ProcessId
}
