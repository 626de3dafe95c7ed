package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"eq/cmd/eq/ui"
	"eq/internal/store"
	"eq/internal/task"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMatrix(task.Today())
	},
}

var tomorrowCmd = &cobra.Command{
	Use:   "tomorrow",
	Short: "Print tomorrow's matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMatrix(task.Today().AddDays(1))
	},
}

func printMatrix(date task.Date) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", date.String(), date.Weekday())
	for _, q := range task.Quadrants {
		tasks := st.QuadrantView(date, q)
		fmt.Println(ui.QuadrantStyle(q).Render(fmt.Sprintf("%s (%d)", q, len(tasks))))
		if len(tasks) == 0 {
			fmt.Println("  -")
		}
		for i, t := range tasks {
			mark := " "
			if t.Status == task.StatusCompleted {
				mark = "x"
			}
			fmt.Printf("  %d. [%s] %s (u%d i%d)\n", i+1, mark, t.Title, t.Urgency, t.Importance)
		}
		fmt.Println()
	}
	return nil
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the top tasks for each day of this week",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		// back up to Monday
		monday := task.Today()
		for monday.Weekday() != time.Monday {
			monday = monday.AddDays(-1)
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Day", "Date", "Open", "Done", "Top tasks"})
		for d := 0; d < 7; d++ {
			date := monday.AddDays(d)
			pending := st.Pending(date)
			done := len(st.Completed(date))
			open := len(pending)
			if len(pending) > 3 {
				pending = pending[:3]
			}
			summary := "-"
			if len(pending) > 0 {
				summary = ""
				for i, t := range pending {
					if i > 0 {
						summary += "\n"
					}
					summary += fmt.Sprintf("%s (u%d i%d)", t.Title, t.Urgency, t.Importance)
				}
			}
			tw.AppendRow(table.Row{date.Weekday(), date.String(), open, done, summary})
		}
		tw.SetStyle(table.StyleRounded)
		tw.Render()
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print completion statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		byStatus := map[task.Status]int{}
		byQuadrant := map[task.Quadrant]int{}
		turnaround := map[task.Quadrant]time.Duration{}
		finishedIn := map[task.Quadrant]int{}
		for _, t := range st.Tasks {
			byStatus[t.Status]++
			if t.Status != task.StatusDropped {
				byQuadrant[t.Quadrant()]++
			}
			if t.Status == task.StatusCompleted && t.CompletedAt != nil {
				turnaround[t.Quadrant()] += t.CompletedAt.Sub(t.CreatedAt)
				finishedIn[t.Quadrant()]++
			}
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Status", "Count"})
		for _, s := range []task.Status{task.StatusPending, task.StatusCompleted, task.StatusDropped} {
			tw.AppendRow(table.Row{string(s), byStatus[s]})
		}
		tw.SetStyle(table.StyleRounded)
		tw.Render()

		qw := table.NewWriter()
		qw.SetOutputMirror(os.Stdout)
		qw.AppendHeader(table.Row{"Quadrant", "Active", "Avg time to done"})
		for _, q := range task.Quadrants {
			avg := "-"
			if n := finishedIn[q]; n > 0 {
				avg = (turnaround[q] / time.Duration(n)).Round(time.Minute).String()
			}
			qw.AppendRow(table.Row{q.String(), byQuadrant[q], avg})
		}
		qw.SetStyle(table.StyleRounded)
		qw.Render()

		finished := byStatus[task.StatusCompleted]
		total := finished + byStatus[task.StatusPending]
		if total > 0 {
			fmt.Printf("\ncompletion rate: %d/%d (%.0f%%)\n", finished, total, 100*float64(finished)/float64(total))
		}

		if events, err := store.ReadAuditLog(dataDir); err == nil && len(events) > 0 {
			last := events[len(events)-1]
			fmt.Printf("last activity: %s (%s)\n", last.Timestamp.Format(time.RFC822), last.Action)
		}
		return nil
	},
}
