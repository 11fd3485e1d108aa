package schedulers

import (
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/util"
)

func generateResponse(name requests.Algorithm, processes []*core.Process, cpu *core.CPU) responses.ScheduleResponse {
	processDetails := make([]responses.ProcessResponse, 0, len(processes))
	for _, process := range processes {
		processDetails = append(processDetails, generateProcessDetails(process))
	}
	averageWaitingTime, averageResponseTime, averageTurnAroundTime := util.CalculateAverage(processDetails)

	metric := cpu.Metric()
	timeline := cpu.Timeline()
	var utilization, throughput float64
	if metric.TotalTime > 0 {
		utilization = float64(metric.UtilizationTime) / float64(metric.TotalTime)
		throughput = float64(len(processes)) / float64(metric.TotalTime)
	}

	return responses.ScheduleResponse{
		Algorithm:             string(name),
		Timeline:              timeline,
		TotalTime:             metric.TotalTime,
		IdleTime:              metric.IdleTime,
		AverageWaitingTime:    averageWaitingTime,
		AverageResponseTime:   averageResponseTime,
		AverageTurnAroundTime: averageTurnAroundTime,
		CpuUtilization:        utilization,
		CpuThroughput:         throughput,
		ContextSwitches:       countContextSwitches(timeline),
		Details:               processDetails,
	}
}

func generateProcessDetails(process *core.Process) responses.ProcessResponse {
	turnAroundTime := process.CompletionTime - process.ArrivalTime
	return responses.ProcessResponse{
		ProcessId:      process.ProcessId,
		ArrivalTime:    process.ArrivalTime,
		BurstTime:      process.BurstTime,
		Priority:       process.Priority,
		StartTime:      process.StartTime,
		CompletionTime: process.CompletionTime,
		ResponseTime:   process.StartTime - process.ArrivalTime,
		TurnAroundTime: turnAroundTime,
		WaitingTime:    turnAroundTime - process.BurstTime,
	}
}

// countContextSwitches counts hand-overs between two different processes.
// Idle gaps between runs of the same process are not switches.
func countContextSwitches(timeline []responses.TimelineEntry) int {
	switches := 0
	last := -1
	for _, entry := range timeline {
		if entry.IsIdle() {
			continue
		}
		if last >= 0 && *entry.ProcessId != last {
			switches++
		}
		last = *entry.ProcessId
	}
	return switches
}
