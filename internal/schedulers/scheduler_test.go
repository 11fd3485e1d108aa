package schedulers_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/schedulers"
)

// slice is a compact "P<id> start-end" (id -1 for idle) view of a timeline entry.
type slice struct {
	pid, start, end int
}

func slices(timeline []responses.TimelineEntry) []slice {
	out := make([]slice, 0, len(timeline))
	for _, entry := range timeline {
		pid := -1
		if entry.ProcessId != nil {
			pid = *entry.ProcessId
		}
		out = append(out, slice{pid: pid, start: entry.Start, end: entry.End()})
	}
	return out
}

func newRequest(algorithm requests.Algorithm, arrivals, bursts []int) requests.ScheduleRequest {
	request := requests.ScheduleRequest{Algorithm: algorithm}
	for i := range arrivals {
		request.Processes = append(request.Processes, requests.Process{
			ProcessId:   i,
			ArrivalTime: arrivals[i],
			BurstTime:   bursts[i],
		})
	}
	return request
}

func withPriorities(request requests.ScheduleRequest, priorities ...int) requests.ScheduleRequest {
	for i := range request.Processes {
		request.Processes[i].Priority = requests.IntPtr(priorities[i])
	}
	return request
}

func waitingTimes(response responses.ScheduleResponse) []int {
	out := make([]int, len(response.Details))
	for i, d := range response.Details {
		out[i] = d.WaitingTime
	}
	return out
}

func completionTimes(response responses.ScheduleResponse) []int {
	out := make([]int, len(response.Details))
	for i, d := range response.Details {
		out[i] = d.CompletionTime
	}
	return out
}

func TestFirstComeFirstServe(t *testing.T) {
	response, err := schedulers.ScheduleFirstComeFirstServe(newRequest(requests.FirstComeFirstServe, []int{0, 1, 2}, []int{5, 3, 1}))
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 5}, {1, 5, 8}, {2, 8, 9}}, slices(response.Timeline))
	assert.Equal(t, []int{0, 4, 6}, waitingTimes(response))
	assert.Equal(t, 9, response.TotalTime)
	assert.Equal(t, 0, response.IdleTime)
	assert.InDelta(t, 10.0/3, response.AverageWaitingTime, 1e-9)
	assert.InDelta(t, 1.0, response.CpuUtilization, 1e-9)
	assert.Equal(t, 2, response.ContextSwitches)
}

func TestFirstComeFirstServeIdleGap(t *testing.T) {
	response, err := schedulers.ScheduleFirstComeFirstServe(newRequest(requests.FirstComeFirstServe, []int{0, 10}, []int{2, 3}))
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 2}, {-1, 2, 10}, {1, 10, 13}}, slices(response.Timeline))
	assert.Equal(t, 8, response.IdleTime)
	assert.Equal(t, 13, response.TotalTime)
	assert.Equal(t, 0, response.Details[1].WaitingTime)
}

func TestFirstComeFirstServeArrivalTieLowestIdWins(t *testing.T) {
	request := requests.ScheduleRequest{
		Algorithm: requests.FirstComeFirstServe,
		Processes: []requests.Process{
			{ProcessId: 2, ArrivalTime: 0, BurstTime: 1},
			{ProcessId: 0, ArrivalTime: 0, BurstTime: 2},
			{ProcessId: 1, ArrivalTime: 0, BurstTime: 3},
		},
	}
	response, err := schedulers.Schedule(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 2}, {1, 2, 5}, {2, 5, 6}}, slices(response.Timeline))
	// details keep input order
	assert.Equal(t, 2, response.Details[0].ProcessId)
}

func TestShortestJobFirst(t *testing.T) {
	response, err := schedulers.ScheduleShortestJobFirst(newRequest(requests.ShortestJobFirst, []int{0, 0, 0}, []int{6, 2, 8}))
	require.NoError(t, err)

	assert.Equal(t, []slice{{1, 0, 2}, {0, 2, 8}, {2, 8, 16}}, slices(response.Timeline))
	assert.Equal(t, []int{2, 0, 8}, waitingTimes(response))
}

func TestShortestJobFirstIsNonPreemptive(t *testing.T) {
	response, err := schedulers.ScheduleShortestJobFirst(newRequest(requests.ShortestJobFirst, []int{0, 1}, []int{5, 1}))
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 5}, {1, 5, 6}}, slices(response.Timeline))
}

func TestShortestJobFirstTiesAndIdle(t *testing.T) {
	request := requests.ScheduleRequest{
		Algorithm: requests.ShortestJobFirst,
		Processes: []requests.Process{
			{ProcessId: 1, ArrivalTime: 2, BurstTime: 3},
			{ProcessId: 0, ArrivalTime: 2, BurstTime: 3},
		},
	}
	response, err := schedulers.Schedule(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{-1, 0, 2}, {0, 2, 5}, {1, 5, 8}}, slices(response.Timeline))
	assert.Equal(t, 2, response.IdleTime)
}

func TestShortestRemainingTimeFirst(t *testing.T) {
	response, err := schedulers.ScheduleShortestRemainingTimeFirst(newRequest(requests.ShortestRemainingTimeFirst, []int{0, 1}, []int{7, 4}))
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 1}, {1, 1, 5}, {0, 5, 11}}, slices(response.Timeline))
	assert.Equal(t, []int{11, 5}, completionTimes(response))
	assert.Equal(t, 2, response.ContextSwitches)
}

func TestShortestRemainingTimeFirstMergesContiguousRuns(t *testing.T) {
	response, err := schedulers.ScheduleShortestRemainingTimeFirst(newRequest(requests.ShortestRemainingTimeFirst, []int{0, 2}, []int{3, 5}))
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 3}, {1, 3, 8}}, slices(response.Timeline))
}

func TestPriority(t *testing.T) {
	request := withPriorities(newRequest(requests.Priority, []int{0, 0}, []int{4, 1}), 1, 5)
	response, err := schedulers.SchedulePriority(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{1, 0, 1}, {0, 1, 5}}, slices(response.Timeline))
	assert.Equal(t, []int{5, 1}, completionTimes(response))
}

func TestPriorityPreemptsOnHigherArrival(t *testing.T) {
	request := withPriorities(newRequest(requests.Priority, []int{0, 2}, []int{5, 2}), 1, 3)
	response, err := schedulers.SchedulePriority(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 2}, {1, 2, 4}, {0, 4, 7}}, slices(response.Timeline))
	assert.Equal(t, []int{7, 4}, completionTimes(response))
}

func TestPriorityTieBreaksOnRemainingThenId(t *testing.T) {
	request := withPriorities(newRequest(requests.Priority, []int{0, 0, 0}, []int{5, 2, 2}), 2, 2, 2)
	response, err := schedulers.SchedulePriority(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{1, 0, 2}, {2, 2, 4}, {0, 4, 9}}, slices(response.Timeline))
}

func TestPriorityMergesIdleIntoOneInterval(t *testing.T) {
	request := withPriorities(newRequest(requests.Priority, []int{3, 9}, []int{2, 1}), 1, 1)
	response, err := schedulers.SchedulePriority(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{-1, 0, 3}, {0, 3, 5}, {-1, 5, 9}, {1, 9, 10}}, slices(response.Timeline))
	assert.Equal(t, 7, response.IdleTime)
}

func TestRoundRobin(t *testing.T) {
	request := newRequest(requests.RoundRobin, []int{0, 0, 0}, []int{5, 3, 7})
	request.TimeQuantum = requests.IntPtr(2)
	response, err := schedulers.ScheduleRoundRobin(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{
		{0, 0, 2}, {1, 2, 4}, {2, 4, 6},
		{0, 6, 8}, {1, 8, 9}, {2, 9, 11},
		{0, 11, 12}, {2, 12, 15},
	}, slices(response.Timeline))
	assert.Equal(t, []int{12, 9, 15}, completionTimes(response))
	assert.Equal(t, []int{7, 6, 8}, waitingTimes(response))
}

func TestRoundRobinArrivalsQueueAheadOfPreempted(t *testing.T) {
	request := newRequest(requests.RoundRobin, []int{0, 2}, []int{3, 2})
	request.TimeQuantum = requests.IntPtr(2)
	response, err := schedulers.ScheduleRoundRobin(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 2}, {1, 2, 4}, {0, 4, 5}}, slices(response.Timeline))
}

func TestRoundRobinIdleUntilNextArrival(t *testing.T) {
	request := newRequest(requests.RoundRobin, []int{0, 5}, []int{1, 2})
	request.TimeQuantum = requests.IntPtr(2)
	response, err := schedulers.ScheduleRoundRobin(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 1}, {-1, 1, 5}, {1, 5, 7}}, slices(response.Timeline))
	assert.Equal(t, 4, response.IdleTime)
}

func TestMultilevelFeedbackQueue(t *testing.T) {
	request := newRequest(requests.MultilevelFeedbackQueue, []int{0, 0}, []int{7, 3})
	request.LevelsTimeQuantum = []int{2, 4}
	response, err := schedulers.ScheduleMultilevelFeedbackQueue(request)
	require.NoError(t, err)

	assert.Equal(t, []slice{{0, 0, 2}, {1, 2, 4}, {0, 4, 8}, {1, 8, 9}, {0, 9, 10}}, slices(response.Timeline))
	assert.Equal(t, []int{10, 9}, completionTimes(response))
}

func TestValidationRejectsBeforeSimulating(t *testing.T) {
	zeroBurst := newRequest(requests.FirstComeFirstServe, []int{0, 1}, []int{3, 0})
	negativeArrival := newRequest(requests.ShortestJobFirst, []int{-1}, []int{3})
	zeroQuantum := newRequest(requests.RoundRobin, []int{0}, []int{3})
	zeroQuantum.TimeQuantum = requests.IntPtr(0)
	negativeQuantum := newRequest(requests.RoundRobin, []int{0}, []int{3})
	negativeQuantum.TimeQuantum = requests.IntPtr(-2)
	missingQuantum := newRequest(requests.RoundRobin, []int{0}, []int{3})
	missingPriority := newRequest(requests.Priority, []int{0}, []int{3})
	missingLevels := newRequest(requests.MultilevelFeedbackQueue, []int{0}, []int{3})
	empty := requests.ScheduleRequest{Algorithm: requests.ShortestRemainingTimeFirst}
	duplicate := newRequest(requests.FirstComeFirstServe, []int{0, 0}, []int{1, 1})
	duplicate.Processes[1].ProcessId = 0
	hugeTimes := newRequest(requests.FirstComeFirstServe, []int{1 << 62}, []int{1 << 62})
	longHorizon := newRequest(requests.RoundRobin, []int{0, requests.MaxTimeUnits}, []int{1, 1})
	longHorizon.TimeQuantum = requests.IntPtr(2)
	longTotalBurst := newRequest(requests.ShortestRemainingTimeFirst, []int{0, 0}, []int{requests.MaxTimeUnits, 1})

	tests := []struct {
		name    string
		request requests.ScheduleRequest
	}{
		{"zero burst", zeroBurst},
		{"negative arrival", negativeArrival},
		{"zero quantum", zeroQuantum},
		{"negative quantum", negativeQuantum},
		{"missing quantum", missingQuantum},
		{"missing priority", missingPriority},
		{"missing levels", missingLevels},
		{"no processes", empty},
		{"duplicate id", duplicate},
		{"times beyond the clock limit", hugeTimes},
		{"arrival plus burst beyond the clock limit", longHorizon},
		{"total burst beyond the clock limit", longTotalBurst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := schedulers.Schedule(tt.request)
			require.Error(t, err)
			assert.ErrorIs(t, err, requests.ErrValidation)
			assert.Empty(t, response.Timeline)

			// the engine keeps no state: a valid run afterwards is unaffected
			valid, err := schedulers.Schedule(newRequest(requests.FirstComeFirstServe, []int{0}, []int{2}))
			require.NoError(t, err)
			assert.Equal(t, []slice{{0, 0, 2}}, slices(valid.Timeline))
		})
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	_, err := schedulers.Schedule(newRequest("LotteryScheduling", []int{0}, []int{1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, requests.ErrUnsupportedAlgorithm)
	assert.True(t, requests.IsRejection(err))
}

func TestScheduleDoesNotMutateRequest(t *testing.T) {
	request := newRequest(requests.RoundRobin, []int{0, 1}, []int{4, 4})
	request.TimeQuantum = requests.IntPtr(1)
	before := request.Clone()

	_, err := schedulers.Schedule(request)
	require.NoError(t, err)
	assert.Equal(t, before, request)
}

// randomRequest builds a reproducible workload, including idle gaps.
func randomRequest(rng *rand.Rand, algorithm requests.Algorithm) requests.ScheduleRequest {
	n := 1 + rng.Intn(8)
	request := requests.ScheduleRequest{Algorithm: algorithm}
	for i := 0; i < n; i++ {
		request.Processes = append(request.Processes, requests.Process{
			ProcessId:   i,
			ArrivalTime: rng.Intn(20),
			BurstTime:   1 + rng.Intn(9),
			Priority:    requests.IntPtr(rng.Intn(5)),
		})
	}
	request.TimeQuantum = requests.IntPtr(1 + rng.Intn(4))
	request.LevelsTimeQuantum = []int{1 + rng.Intn(3), 2 + rng.Intn(4)}
	return request
}

func TestScheduleInvariantsAndIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(4600))
	for round := 0; round < 200; round++ {
		for _, algorithm := range requests.Algorithms {
			request := randomRequest(rng, algorithm)

			first, err := schedulers.Schedule(request)
			require.NoError(t, err, "round %d %s", round, algorithm)
			require.NoError(t, schedulers.VerifySchedule(first))

			bursts, lastEnd := 0, 0
			for _, p := range request.Processes {
				bursts += p.BurstTime
			}
			for _, entry := range first.Timeline {
				lastEnd = entry.End()
			}
			assert.Equal(t, first.TotalTime, first.IdleTime+bursts)
			assert.Equal(t, first.TotalTime, lastEnd)
			for _, d := range first.Details {
				assert.Equal(t, d.TurnAroundTime-d.BurstTime, d.WaitingTime)
				assert.GreaterOrEqual(t, d.WaitingTime, 0)
				assert.Greater(t, d.TurnAroundTime, 0)
				assert.GreaterOrEqual(t, d.ResponseTime, 0)
			}

			second, err := schedulers.Schedule(request)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		}
	}
}

func TestVerifyScheduleDetectsGaps(t *testing.T) {
	pid := 0
	response := responses.ScheduleResponse{
		Timeline: []responses.TimelineEntry{
			{Kind: responses.KindProcess, ProcessId: &pid, Start: 1, Duration: 2},
		},
		TotalTime: 3,
		Details:   []responses.ProcessResponse{{ProcessId: 0, BurstTime: 2, CompletionTime: 3, TurnAroundTime: 3, WaitingTime: 1}},
	}
	assert.ErrorIs(t, schedulers.VerifySchedule(response), schedulers.ErrInconsistentSchedule)
}

func TestMaxTimeUnitsIsSchedulable(t *testing.T) {
	request := newRequest(requests.FirstComeFirstServe, []int{requests.MaxTimeUnits - 1}, []int{1})

	response, err := schedulers.Schedule(request)
	require.NoError(t, err)
	assert.Equal(t, requests.MaxTimeUnits, response.TotalTime)
	assert.Equal(t, []slice{{-1, 0, requests.MaxTimeUnits - 1}, {0, requests.MaxTimeUnits - 1, requests.MaxTimeUnits}}, slices(response.Timeline))
}

func TestVerifyScheduleRejectsWrappedClock(t *testing.T) {
	pid := 0
	response := responses.ScheduleResponse{
		Timeline: []responses.TimelineEntry{
			{Kind: responses.KindIdle, Start: 0, Duration: 1 << 62},
			{Kind: responses.KindProcess, ProcessId: &pid, Start: 1 << 62, Duration: 1 << 62},
		},
		TotalTime: math.MinInt,
		IdleTime:  1 << 62,
		Details: []responses.ProcessResponse{{
			ProcessId:      0,
			ArrivalTime:    1 << 62,
			BurstTime:      1 << 62,
			CompletionTime: math.MinInt,
		}},
	}
	assert.ErrorIs(t, schedulers.VerifySchedule(response), schedulers.ErrInconsistentSchedule)
}

func TestVerifyScheduleRejectsEarlyCompletion(t *testing.T) {
	pid := 0
	response := responses.ScheduleResponse{
		Timeline: []responses.TimelineEntry{
			{Kind: responses.KindProcess, ProcessId: &pid, Start: 0, Duration: 2},
		},
		TotalTime: 2,
		// completes at 2 although it only arrives at 1 and needs 2 units
		Details: []responses.ProcessResponse{{ProcessId: 0, ArrivalTime: 1, BurstTime: 2, CompletionTime: 2, TurnAroundTime: 2}},
	}
	err := schedulers.VerifySchedule(response)
	assert.ErrorIs(t, err, schedulers.ErrInconsistentSchedule)
	assert.Contains(t, err.Error(), "completes at 2")
}
