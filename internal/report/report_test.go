package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduler/internal/report"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/schedulers"
)

func schedule(t *testing.T) responses.ScheduleResponse {
	request, err := requests.NewBuilder(requests.Priority).
		AddPriorityProcess(0, 2, 1).
		AddPriorityProcess(4, 1, 3).
		Build()
	require.NoError(t, err)
	result, err := schedulers.Schedule(request)
	require.NoError(t, err)
	return result
}

func TestWriteGantt(t *testing.T) {
	var buf bytes.Buffer
	report.WriteGantt(&buf, schedule(t).Timeline)

	assert.Equal(t, "Gantt schedule\n|   P0   |  Idle  |   P1   |\n0\t2\t4\t5\n\n", buf.String())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	report.Write(&buf, schedule(t))

	out := buf.String()
	assert.Contains(t, out, "Priority")
	assert.Contains(t, out, "Schedule table")
	assert.Contains(t, out, "TURNAROUND")
	assert.Contains(t, out, "0.00")
}

func TestWriteComparison(t *testing.T) {
	result := schedule(t)
	var buf bytes.Buffer
	report.WriteComparison(&buf, responses.CompareResponse{
		Algorithms:         []string{"Priority"},
		Results:            map[string]responses.ScheduleResponse{"Priority": result},
		BestAverageWaiting: "Priority",
	})

	assert.Contains(t, buf.String(), "Priority *")
	assert.Contains(t, buf.String(), "60%")
}
