package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

// SchedulePriority is preemptive: a higher value means a higher priority.
// Ties go to the smaller remaining time, then to the lower id.
func SchedulePriority(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	return simulate(requests.Priority, request)
}

func priority(cpu *core.CPU, processes []*core.Process, _ requests.ScheduleRequest) {
	runPreemptive(cpu, processes, higherPriority)
}

func higherPriority(a, b *core.Process) bool {
	if *a.Priority != *b.Priority {
		return *a.Priority > *b.Priority
	}
	return shorterRemaining(a, b)
}
