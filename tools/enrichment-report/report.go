package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
)

// Execution is one enrichment workflow run
type Execution struct {
	WorkflowID string
	RunID      string
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
}

// Duration is the run time of a closed execution, or the time elapsed until now
func (e Execution) Duration(now time.Time) time.Duration {
	if e.CloseTime != nil {
		return e.CloseTime.Sub(e.StartTime)
	}
	return now.Sub(e.StartTime)
}

// Summary aggregates the enrichment runs of a window
type Summary struct {
	Total      int
	ByStatus   map[enums.WorkflowExecutionStatus]int
	FirstStart time.Time
	LastEnd    *time.Time
	Min        time.Duration
	Max        time.Duration
	Avg        time.Duration
	P95        time.Duration
	// Slowest holds closed executions in descending duration order
	Slowest []Execution
}

// Running reports how many executions are still open
func (s *Summary) Running() int {
	return s.ByStatus[enums.WORKFLOW_EXECUTION_STATUS_RUNNING]
}

func fromInfo(info *workflowpb.WorkflowExecutionInfo) Execution {
	e := Execution{
		WorkflowID: info.GetExecution().GetWorkflowId(),
		RunID:      info.GetExecution().GetRunId(),
		Status:     info.GetStatus(),
		StartTime:  info.GetStartTime().AsTime(),
	}
	if info.GetCloseTime() != nil {
		closeTime := info.GetCloseTime().AsTime()
		e.CloseTime = &closeTime
	}
	return e
}

// summarize computes the report; durations only consider closed executions
func summarize(executions []Execution, slowest int) *Summary {
	s := &Summary{ByStatus: make(map[enums.WorkflowExecutionStatus]int)}
	s.Total = len(executions)

	var closed []Execution
	for _, e := range executions {
		s.ByStatus[e.Status]++
		if s.FirstStart.IsZero() || e.StartTime.Before(s.FirstStart) {
			s.FirstStart = e.StartTime
		}
		if e.CloseTime == nil {
			continue
		}
		closed = append(closed, e)
		if s.LastEnd == nil || e.CloseTime.After(*s.LastEnd) {
			end := *e.CloseTime
			s.LastEnd = &end
		}
	}
	if len(closed) == 0 {
		return s
	}

	slices.SortFunc(closed, func(a, b Execution) int {
		return int(b.Duration(time.Time{}) - a.Duration(time.Time{}))
	})

	var total time.Duration
	for _, e := range closed {
		total += e.Duration(time.Time{})
	}
	s.Max = closed[0].Duration(time.Time{})
	s.Min = closed[len(closed)-1].Duration(time.Time{})
	s.Avg = total / time.Duration(len(closed))
	// nearest-rank percentile over the descending list
	rank := (len(closed)*5 + 99) / 100
	s.P95 = closed[rank-1].Duration(time.Time{})
	s.Slowest = closed[:min(slowest, len(closed))]

	return s
}

var reportStatuses = []enums.WorkflowExecutionStatus{
	enums.WORKFLOW_EXECUTION_STATUS_COMPLETED,
	enums.WORKFLOW_EXECUTION_STATUS_FAILED,
	enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT,
	enums.WORKFLOW_EXECUTION_STATUS_TERMINATED,
	enums.WORKFLOW_EXECUTION_STATUS_CANCELED,
	enums.WORKFLOW_EXECUTION_STATUS_RUNNING,
}

func printSummary(w io.Writer, s *Summary) {
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Enrichment runs: %d\n", s.Total)
	if s.Total == 0 {
		fmt.Fprintln(w, strings.Repeat("-", 80))
		return
	}

	for _, status := range reportStatuses {
		if n := s.ByStatus[status]; n > 0 {
			fmt.Fprintf(w, "  %-16s %d (%s)\n", formatStatus(status), n, percentageString(n, s.Total))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "First Start:    %s\n", s.FirstStart.Format("2006-01-02 15:04:05"))
	if s.LastEnd != nil {
		fmt.Fprintf(w, "Last End:       %s\n", s.LastEnd.Format("2006-01-02 15:04:05"))
		closed := s.Total - s.Running()
		fmt.Fprintf(w, "Throughput:     %s\n", formatRate(closed, s.LastEnd.Sub(s.FirstStart)))
		fmt.Fprintf(w, "Duration:       min %s, avg %s, p95 %s, max %s\n",
			formatDuration(s.Min), formatDuration(s.Avg), formatDuration(s.P95), formatDuration(s.Max))
	}

	if len(s.Slowest) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Slowest runs:")
		for _, e := range s.Slowest {
			fmt.Fprintf(w, "  %-52s %10s  %s\n", e.WorkflowID, formatDuration(e.Duration(time.Time{})), formatStatus(e.Status))
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func writeMarkdown(w io.Writer, s *Summary, window time.Duration) {
	fmt.Fprintf(w, "# Enrichment report\n\n")
	fmt.Fprintf(w, "Window: last %s, %d runs\n\n", formatDuration(window), s.Total)

	fmt.Fprintf(w, "| Status | Count | Share |\n|---|---|---|\n")
	for _, status := range reportStatuses {
		if n := s.ByStatus[status]; n > 0 {
			fmt.Fprintf(w, "| %s | %d | %s |\n", statusName(status), n, percentageString(n, s.Total))
		}
	}

	if s.LastEnd != nil {
		fmt.Fprintf(w, "\n| Min | Avg | P95 | Max |\n|---|---|---|---|\n")
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			formatDuration(s.Min), formatDuration(s.Avg), formatDuration(s.P95), formatDuration(s.Max))
	}

	if len(s.Slowest) > 0 {
		fmt.Fprintf(w, "\n## Slowest runs\n\n| Workflow ID | Duration | Status |\n|---|---|---|\n")
		for _, e := range s.Slowest {
			fmt.Fprintf(w, "| `%s` | %s | %s |\n", e.WorkflowID, formatDuration(e.Duration(time.Time{})), statusName(e.Status))
		}
	}
}
