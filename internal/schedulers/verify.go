package schedulers

import (
	"github.com/pkg/errors"

	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
)

var ErrInconsistentSchedule = errors.New("inconsistent schedule")

// VerifySchedule checks the invariants every result must hold: the timeline
// covers [0, TotalTime) with contiguous positive intervals, idle plus busy
// time adds up, and every process completes after it could have.
func VerifySchedule(response responses.ScheduleResponse) error {
	if response.TotalTime < 0 || response.TotalTime > requests.MaxTimeUnits {
		return errors.Wrapf(ErrInconsistentSchedule, "total time %d is outside [0, %d]", response.TotalTime, requests.MaxTimeUnits)
	}

	cursor, busy, idle := 0, 0, 0
	ran := make(map[int]int, len(response.Details))
	for i, entry := range response.Timeline {
		if entry.Start != cursor {
			return errors.Wrapf(ErrInconsistentSchedule, "entry %d starts at %d, expected %d", i, entry.Start, cursor)
		}
		if entry.Duration <= 0 {
			return errors.Wrapf(ErrInconsistentSchedule, "entry %d has non-positive duration %d", i, entry.Duration)
		}
		switch entry.Kind {
		case responses.KindIdle:
			if entry.ProcessId != nil {
				return errors.Wrapf(ErrInconsistentSchedule, "idle entry %d carries a process id", i)
			}
			idle += entry.Duration
		case responses.KindProcess:
			if entry.ProcessId == nil {
				return errors.Wrapf(ErrInconsistentSchedule, "process entry %d has no process id", i)
			}
			busy += entry.Duration
			ran[*entry.ProcessId] += entry.Duration
		default:
			return errors.Wrapf(ErrInconsistentSchedule, "entry %d has unknown kind %q", i, entry.Kind)
		}
		cursor = entry.End()
	}

	if cursor != response.TotalTime {
		return errors.Wrapf(ErrInconsistentSchedule, "timeline ends at %d but total time is %d", cursor, response.TotalTime)
	}
	if idle != response.IdleTime {
		return errors.Wrapf(ErrInconsistentSchedule, "timeline idles %d units but idle time is %d", idle, response.IdleTime)
	}

	bursts := 0
	for _, detail := range response.Details {
		bursts += detail.BurstTime
		if ran[detail.ProcessId] != detail.BurstTime {
			return errors.Wrapf(ErrInconsistentSchedule, "process %d ran %d of %d units", detail.ProcessId, ran[detail.ProcessId], detail.BurstTime)
		}
		if detail.CompletionTime < detail.ArrivalTime+detail.BurstTime || detail.CompletionTime > response.TotalTime {
			return errors.Wrapf(ErrInconsistentSchedule, "process %d completes at %d but arrives at %d with burst %d", detail.ProcessId, detail.CompletionTime, detail.ArrivalTime, detail.BurstTime)
		}
		if detail.TurnAroundTime != detail.CompletionTime-detail.ArrivalTime || detail.WaitingTime != detail.TurnAroundTime-detail.BurstTime {
			return errors.Wrapf(ErrInconsistentSchedule, "process %d metrics do not match its completion time", detail.ProcessId)
		}
		if detail.TurnAroundTime <= 0 || detail.WaitingTime < 0 {
			return errors.Wrapf(ErrInconsistentSchedule, "process %d has turnaround %d and waiting %d", detail.ProcessId, detail.TurnAroundTime, detail.WaitingTime)
		}
	}
	if bursts != busy || idle+bursts != response.TotalTime {
		return errors.Wrapf(ErrInconsistentSchedule, "idle %d plus bursts %d does not equal total time %d", idle, bursts, response.TotalTime)
	}
	return nil
}
