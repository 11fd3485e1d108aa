package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cpu-scheduler/internal/responses"
)

// Write renders the title, the Gantt chart and the schedule table.
func Write(w io.Writer, result responses.ScheduleResponse) {
	WriteTitle(w, result.Algorithm)
	WriteGantt(w, result.Timeline)
	WriteSchedule(w, result)
}

func WriteTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

func label(entry responses.TimelineEntry) string {
	if entry.IsIdle() {
		return "Idle"
	}
	return fmt.Sprintf("P%d", *entry.ProcessId)
}

// WriteGantt prints one cell per timeline entry followed by the boundaries.
func WriteGantt(w io.Writer, timeline []responses.TimelineEntry) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, entry := range timeline {
		name := label(entry)
		padding := strings.Repeat(" ", max(0, (8-len(name))/2))
		_, _ = fmt.Fprint(w, padding, name, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, entry := range timeline {
		_, _ = fmt.Fprint(w, entry.Start, "\t")
		if i == len(timeline)-1 {
			_, _ = fmt.Fprint(w, entry.End())
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func WriteSchedule(w io.Writer, result responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Start", "Wait", "Turnaround", "Exit"})

	rows := make([][]string, 0, len(result.Details))
	for _, d := range result.Details {
		priority := "-"
		if d.Priority != nil {
			priority = fmt.Sprint(*d.Priority)
		}
		rows = append(rows, []string{
			fmt.Sprint(d.ProcessId),
			priority,
			fmt.Sprint(d.BurstTime),
			fmt.Sprint(d.ArrivalTime),
			fmt.Sprint(d.StartTime),
			fmt.Sprint(d.WaitingTime),
			fmt.Sprint(d.TurnAroundTime),
			fmt.Sprint(d.CompletionTime),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Idle\n%d", result.IdleTime),
		fmt.Sprintf("Average\n%.2f", result.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", result.AverageTurnAroundTime),
		fmt.Sprintf("Total\n%d", result.TotalTime)})
	table.Render()
}

// WriteComparison prints one summary row per algorithm.
func WriteComparison(w io.Writer, compare responses.CompareResponse) {
	_, _ = fmt.Fprintln(w, "Algorithm comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg wait", "Avg turnaround", "Avg response", "Total", "Idle", "Utilization", "Switches"})
	for _, name := range compare.Algorithms {
		result := compare.Results[name]
		marker := name
		if name == compare.BestAverageWaiting {
			marker += " *"
		}
		table.Append([]string{
			marker,
			fmt.Sprintf("%.2f", result.AverageWaitingTime),
			fmt.Sprintf("%.2f", result.AverageTurnAroundTime),
			fmt.Sprintf("%.2f", result.AverageResponseTime),
			fmt.Sprint(result.TotalTime),
			fmt.Sprint(result.IdleTime),
			fmt.Sprintf("%.0f%%", result.CpuUtilization*100),
			fmt.Sprint(result.ContextSwitches),
		})
	}
	table.Render()
}
