package requests

// Builder collects per-process rows the way an input form does and produces
// a single immutable ScheduleRequest. Process ids follow row order.
type Builder struct {
	algorithm         Algorithm
	timeQuantum       *int
	levelsTimeQuantum []int
	processes         []Process
}

func NewBuilder(algorithm Algorithm) *Builder {
	return &Builder{algorithm: algorithm}
}

func (b *Builder) TimeQuantum(quantum int) *Builder {
	b.timeQuantum = IntPtr(quantum)
	return b
}

func (b *Builder) LevelsTimeQuantum(levels ...int) *Builder {
	b.levelsTimeQuantum = append([]int(nil), levels...)
	return b
}

func (b *Builder) AddProcess(arrivalTime, burstTime int) *Builder {
	b.processes = append(b.processes, Process{
		ProcessId:   len(b.processes),
		ArrivalTime: arrivalTime,
		BurstTime:   burstTime,
	})
	return b
}

func (b *Builder) AddPriorityProcess(arrivalTime, burstTime, priority int) *Builder {
	b.AddProcess(arrivalTime, burstTime)
	b.processes[len(b.processes)-1].Priority = IntPtr(priority)
	return b
}

// Build applies the input-collector rules on top of ScheduleRequest.Validate:
// priorities only for Priority, a quantum only for RoundRobin and level
// quanta only for MLFQ.
func (b *Builder) Build() (ScheduleRequest, error) {
	request := ScheduleRequest{
		Algorithm:         b.algorithm,
		Processes:         b.processes,
		TimeQuantum:       b.timeQuantum,
		LevelsTimeQuantum: b.levelsTimeQuantum,
	}
	if !b.algorithm.Valid() {
		return ScheduleRequest{}, request.Validate()
	}

	if b.algorithm != Priority {
		for _, p := range b.processes {
			if p.Priority != nil {
				return ScheduleRequest{}, validationErrorf("priority", "process %d: priority is only accepted for the Priority algorithm", p.ProcessId)
			}
		}
	}
	if b.algorithm != RoundRobin && b.timeQuantum != nil {
		return ScheduleRequest{}, validationErrorf("time_quantum", "time quantum is only accepted for RoundRobin")
	}
	if b.algorithm != MultilevelFeedbackQueue && len(b.levelsTimeQuantum) > 0 {
		return ScheduleRequest{}, validationErrorf("levels_time_quantum", "level time quanta are only accepted for MLFQ")
	}
	if err := request.Validate(); err != nil {
		return ScheduleRequest{}, err
	}
	return request.Clone(), nil
}
