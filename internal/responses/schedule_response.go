package responses

type EntryKind string

const (
	KindProcess EntryKind = "process"
	KindIdle    EntryKind = "idle"
)

// TimelineEntry is one contiguous interval of the simulated CPU timeline.
// ProcessId is set iff Kind is KindProcess.
type TimelineEntry struct {
	Kind      EntryKind `json:"kind"`
	ProcessId *int      `json:"process_id,omitempty"`
	Start     int       `json:"start"`
	Duration  int       `json:"duration"`
}

func (e TimelineEntry) End() int {
	return e.Start + e.Duration
}

func (e TimelineEntry) IsIdle() bool {
	return e.Kind == KindIdle
}

// Runs reports whether the entry executes process pid.
func (e TimelineEntry) Runs(pid int) bool {
	return e.Kind == KindProcess && e.ProcessId != nil && *e.ProcessId == pid
}

type ProcessResponse struct {
	ProcessId      int  `json:"process_id"`
	ArrivalTime    int  `json:"arrival_time"`
	BurstTime      int  `json:"burst_time"`
	Priority       *int `json:"priority,omitempty"`
	StartTime      int  `json:"start_time"`
	CompletionTime int  `json:"completion_time"`
	ResponseTime   int  `json:"response_time"`
	TurnAroundTime int  `json:"turn_around_time"`
	WaitingTime    int  `json:"waiting_time"`
}

type ScheduleResponse struct {
	Algorithm             string            `json:"algorithm"`
	Timeline              []TimelineEntry   `json:"timeline"`
	TotalTime             int               `json:"total_time"`
	IdleTime              int               `json:"idle_time"`
	AverageWaitingTime    float64           `json:"average_waiting_time"`
	AverageResponseTime   float64           `json:"average_response_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time"`
	CpuUtilization        float64           `json:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput"`
	ContextSwitches       int               `json:"context_switches"`
	Details               []ProcessResponse `json:"details"`
}

// Clone deep-copies the response so a shared result can be handed out
// without exposing it to mutation.
func (r ScheduleResponse) Clone() ScheduleResponse {
	clone := r
	clone.Timeline = make([]TimelineEntry, len(r.Timeline))
	for i, entry := range r.Timeline {
		clone.Timeline[i] = entry
		if entry.ProcessId != nil {
			pid := *entry.ProcessId
			clone.Timeline[i].ProcessId = &pid
		}
	}
	clone.Details = make([]ProcessResponse, len(r.Details))
	for i, detail := range r.Details {
		clone.Details[i] = detail
		if detail.Priority != nil {
			priority := *detail.Priority
			clone.Details[i].Priority = &priority
		}
	}
	return clone
}

// CompareResponse holds one result per algorithm, run on the same processes.
type CompareResponse struct {
	Algorithms []string                    `json:"algorithms"`
	Results    map[string]ScheduleResponse `json:"results"`
	// BestAverageWaiting names the algorithm with the lowest average waiting
	// time; ties keep the earlier algorithm.
	BestAverageWaiting string `json:"best_average_waiting"`
}
