package playback

import "cpu-scheduler/internal/responses"

// ProcessState is the lifecycle tag shown next to a process while a
// schedule is replayed. It is derived from a finished schedule and never
// feeds back into scheduling.
type ProcessState string

const (
	// Waiting means the process has not arrived yet.
	Waiting   ProcessState = "waiting"
	Ready     ProcessState = "ready"
	Running   ProcessState = "running"
	Completed ProcessState = "completed"
)

type ProcessFrame struct {
	ProcessId int          `json:"process_id"`
	State     ProcessState `json:"state"`
	Remaining int          `json:"remaining"`
	Progress  float64      `json:"progress"`
}

// Frame is the view of the schedule during [Time, Time+1). The last frame
// of a replay is at TotalTime with every process completed.
type Frame struct {
	Time      int            `json:"time"`
	Running   *int           `json:"running,omitempty"`
	Processes []ProcessFrame `json:"processes"`
}

// Frames expands a schedule into one frame per time unit plus a final one.
func Frames(result responses.ScheduleResponse) []Frame {
	running := make([]*int, result.TotalTime)
	for _, entry := range result.Timeline {
		if entry.IsIdle() {
			continue
		}
		for t := entry.Start; t < entry.End() && t < result.TotalTime; t++ {
			pid := *entry.ProcessId
			running[t] = &pid
		}
	}

	executed := make(map[int]int, len(result.Details))
	frames := make([]Frame, 0, result.TotalTime+1)
	for t := 0; t <= result.TotalTime; t++ {
		var current *int
		if t < result.TotalTime {
			current = running[t]
		}
		frame := Frame{Time: t, Running: current, Processes: make([]ProcessFrame, 0, len(result.Details))}
		for _, detail := range result.Details {
			remaining := detail.BurstTime - executed[detail.ProcessId]
			frame.Processes = append(frame.Processes, ProcessFrame{
				ProcessId: detail.ProcessId,
				State:     stateAt(detail, current, t),
				Remaining: remaining,
				Progress:  100 * float64(executed[detail.ProcessId]) / float64(detail.BurstTime),
			})
		}
		if current != nil {
			executed[*current]++
		}
		frames = append(frames, frame)
	}
	return frames
}

func stateAt(detail responses.ProcessResponse, running *int, t int) ProcessState {
	switch {
	case detail.CompletionTime <= t:
		return Completed
	case detail.ArrivalTime > t:
		return Waiting
	case running != nil && *running == detail.ProcessId:
		return Running
	default:
		return Ready
	}
}
