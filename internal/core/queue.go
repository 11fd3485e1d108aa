package core

// ProcessQueue is the FIFO ready queue used by the quantum based schedulers.
type ProcessQueue struct {
	queue []*Process
}

func NewProcessQueue() *ProcessQueue {
	return &ProcessQueue{queue: make([]*Process, 0)}
}

func (q *ProcessQueue) AddToEnd(p *Process) {
	q.queue = append(q.queue, p)
}

func (q *ProcessQueue) RemoveFromTop() (*Process, bool) {
	if len(q.queue) == 0 {
		return nil, false
	}
	item := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return item, true
}

func (q *ProcessQueue) Len() int {
	return len(q.queue)
}

// IDs returns the queued process ids from head to tail.
func (q *ProcessQueue) IDs() []int {
	ids := make([]int, len(q.queue))
	for i, p := range q.queue {
		ids[i] = p.ProcessId
	}
	return ids
}
