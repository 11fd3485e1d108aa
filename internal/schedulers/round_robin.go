package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

func ScheduleRoundRobin(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	return simulate(requests.RoundRobin, request)
}

func roundRobin(cpu *core.CPU, processes []*core.Process, request requests.ScheduleRequest) {
	timeQuantum := *request.TimeQuantum
	readyQueue := core.NewProcessQueue()
	admit := newAdmitter(processes, func(p *core.Process) { readyQueue.AddToEnd(p) })

	admit(cpu.Now())
	for core.Pending(processes) {
		process, ok := readyQueue.RemoveFromTop()
		if !ok {
			if !idleUntilNextArrival(cpu, processes) {
				return
			}
			admit(cpu.Now())
			continue
		}

		cpu.Execute(process, timeQuantum)
		// arrivals during the slice queue ahead of the preempted process
		admit(cpu.Now())
		if !process.Completed {
			readyQueue.AddToEnd(process)
		}
	}
}

// newAdmitter returns a function that hands every not yet admitted process
// with arrival <= now to enqueue, in arrival order with ties by id.
func newAdmitter(processes []*core.Process, enqueue func(p *core.Process)) func(now int) {
	ordered := core.ByArrival(processes)
	next := 0
	return func(now int) {
		for next < len(ordered) && ordered[next].ArrivalTime <= now {
			enqueue(ordered[next])
			next++
		}
	}
}
