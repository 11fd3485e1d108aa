package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

func ScheduleShortestRemainingTimeFirst(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	return simulate(requests.ShortestRemainingTimeFirst, request)
}

func shortestRemainingTimeFirst(cpu *core.CPU, processes []*core.Process, _ requests.ScheduleRequest) {
	runPreemptive(cpu, processes, shorterRemaining)
}

func shorterRemaining(a, b *core.Process) bool {
	if a.Remaining != b.Remaining {
		return a.Remaining < b.Remaining
	}
	return a.ProcessId < b.ProcessId
}

// runPreemptive re-evaluates the selection at every time unit. The running
// process only gets more preferred as it runs, so the choice can change only
// when a process arrives; the CPU therefore runs the selected process until
// the next arrival or its completion, whichever comes first.
func runPreemptive(cpu *core.CPU, processes []*core.Process, before func(a, b *core.Process) bool) {
	for core.Pending(processes) {
		now := cpu.Now()
		available := core.Available(processes, now)
		if len(available) == 0 {
			if !idleUntilNextArrival(cpu, processes) {
				return
			}
			continue
		}

		selected := selectProcess(available, before)
		units := selected.Remaining
		if next, ok := core.NextArrival(processes, now); ok && next-now < units {
			units = next - now
		}
		cpu.Execute(selected, units)
	}
}
