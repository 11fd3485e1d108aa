package core

import (
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

// Process is the per-run mutable state of one process descriptor.
type Process struct {
	requests.Process
	Remaining      int
	Completed      bool
	StartTime      int
	CompletionTime int
	dispatched     bool
}

// NewProcesses copies the descriptors into fresh bookkeeping, in input order.
func NewProcesses(descriptors []requests.Process) []*Process {
	processes := make([]*Process, len(descriptors))
	for i, d := range descriptors {
		processes[i] = &Process{
			Process:   d,
			Remaining: d.BurstTime,
		}
	}
	return processes
}

func (p *Process) Dispatched() bool {
	return p.dispatched
}

type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
}

// CPU advances a simulated clock and records what ran in each interval.
// Consecutive intervals of the same process, or of idleness, are merged.
type CPU struct {
	clock    int
	timeline []responses.TimelineEntry
	metric   CpuMetric
}

func NewCPU() *CPU {
	return &CPU{timeline: make([]responses.TimelineEntry, 0)}
}

func (c *CPU) Now() int {
	return c.clock
}

// Execute runs p for up to units time units and returns how many it ran.
// The process completes when its remaining time reaches zero.
func (c *CPU) Execute(p *Process, units int) int {
	if p.Completed || units <= 0 {
		return 0
	}
	if units > p.Remaining {
		units = p.Remaining
	}
	if !p.dispatched {
		p.dispatched = true
		p.StartTime = c.clock
	}

	pid := p.ProcessId
	c.record(responses.KindProcess, &pid, units)
	c.metric.UtilizationTime += units
	p.Remaining -= units
	if p.Remaining == 0 {
		p.Completed = true
		p.CompletionTime = c.clock
	}
	return units
}

// IdleUntil leaves the CPU idle up to time t. It is a no-op when t is not
// in the future.
func (c *CPU) IdleUntil(t int) {
	if t <= c.clock {
		return
	}
	duration := t - c.clock
	c.record(responses.KindIdle, nil, duration)
	c.metric.IdleTime += duration
}

func (c *CPU) record(kind responses.EntryKind, pid *int, duration int) {
	if n := len(c.timeline); n > 0 {
		last := &c.timeline[n-1]
		if last.Kind == kind && (kind == responses.KindIdle || *last.ProcessId == *pid) {
			last.Duration += duration
			c.clock += duration
			c.metric.TotalTime = c.clock
			return
		}
	}
	c.timeline = append(c.timeline, responses.TimelineEntry{
		Kind:      kind,
		ProcessId: pid,
		Start:     c.clock,
		Duration:  duration,
	})
	c.clock += duration
	c.metric.TotalTime = c.clock
}

func (c *CPU) Timeline() []responses.TimelineEntry {
	return append([]responses.TimelineEntry(nil), c.timeline...)
}

func (c *CPU) Metric() CpuMetric {
	return c.metric
}
