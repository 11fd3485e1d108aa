package core

import "sort"

// Pending reports whether any process is still incomplete.
func Pending(processes []*Process) bool {
	for _, p := range processes {
		if !p.Completed {
			return true
		}
	}
	return false
}

// Available returns the arrived, incomplete processes at time now.
func Available(processes []*Process, now int) []*Process {
	available := make([]*Process, 0, len(processes))
	for _, p := range processes {
		if !p.Completed && p.ArrivalTime <= now {
			available = append(available, p)
		}
	}
	return available
}

// NextArrival returns the earliest arrival strictly after now among
// incomplete processes.
func NextArrival(processes []*Process, now int) (int, bool) {
	next, found := 0, false
	for _, p := range processes {
		if p.Completed || p.ArrivalTime <= now {
			continue
		}
		if !found || p.ArrivalTime < next {
			next, found = p.ArrivalTime, true
		}
	}
	return next, found
}

// ByArrival returns the processes ordered by arrival time, ties by id.
func ByArrival(processes []*Process) []*Process {
	ordered := append([]*Process(nil), processes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ArrivalTime != ordered[j].ArrivalTime {
			return ordered[i].ArrivalTime < ordered[j].ArrivalTime
		}
		return ordered[i].ProcessId < ordered[j].ProcessId
	})
	return ordered
}
