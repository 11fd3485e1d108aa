package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

// ScheduleMultilevelFeedbackQueue runs one Round Robin level per configured
// quantum followed by a final FCFS level. New arrivals enter the first level
// and a process that uses its whole quantum moves down one level.
func ScheduleMultilevelFeedbackQueue(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	return simulate(requests.MultilevelFeedbackQueue, request)
}

func multilevelFeedbackQueue(cpu *core.CPU, processes []*core.Process, request requests.ScheduleRequest) {
	timeQuantumList := request.LevelsTimeQuantum
	levels := make([]*core.ProcessQueue, len(timeQuantumList)+1)
	for i := range levels {
		levels[i] = core.NewProcessQueue()
	}
	admit := newAdmitter(processes, func(p *core.Process) { levels[0].AddToEnd(p) })

	admit(cpu.Now())
	for core.Pending(processes) {
		level := highestNonEmptyLevel(levels)
		if level < 0 {
			if !idleUntilNextArrival(cpu, processes) {
				return
			}
			admit(cpu.Now())
			continue
		}

		process, _ := levels[level].RemoveFromTop()
		if level == len(timeQuantumList) {
			cpu.Execute(process, process.Remaining)
		} else {
			cpu.Execute(process, timeQuantumList[level])
		}
		admit(cpu.Now())
		if !process.Completed {
			levels[nextLevel(level, len(levels))].AddToEnd(process)
		}
	}
}

func highestNonEmptyLevel(levels []*core.ProcessQueue) int {
	for i, queue := range levels {
		if queue.Len() > 0 {
			return i
		}
	}
	return -1
}

// nextLevel demotes one level; the last level keeps its processes.
func nextLevel(level, count int) int {
	if level+1 < count {
		return level + 1
	}
	return level
}
