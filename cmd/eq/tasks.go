package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"eq/internal/parser"
	"eq/internal/store"
	"eq/internal/task"
)

var addTomorrow bool

var addCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Add a task",
	Long: `Add a task for today (or tomorrow with --tomorrow). A trailing
priority token sets urgency and importance:

  eq add write report u3i2
  eq add fix the build '!!!$$$'

Without a token both default to 1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, p, _ := parser.SplitTitle(strings.Join(args, " "))
		if title == "" {
			return fmt.Errorf("task needs a title")
		}

		date := task.Today()
		if addTomorrow {
			date = date.AddDays(1)
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		t := task.New(title, p.Urgency, p.Importance, date)
		st.Add(t)
		if err := st.Save(); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		fmt.Printf("added %q to %s (score %d)\n", t.Title, t.Quadrant(), t.Score())
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done IDENTIFIER",
	Short: "Toggle a task between done and pending",
	Long: `Toggle a task's completion. The identifier is a 1-based position in
today's score-sorted pending list, an ID prefix, or a title fragment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateByIdentifier(args[0], "toggled", (*store.Store).Toggle)
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop IDENTIFIER",
	Short: "Drop a pending task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateByIdentifier(args[0], "dropped", (*store.Store).Drop)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit IDENTIFIER TITLE...",
	Short: "Rewrite a task's title and priority",
	Long: `Rewrite a task. The new text replaces the title; a trailing priority
token replaces urgency and importance, otherwise both are kept.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		today := task.Today()
		id, ok := st.Resolve(args[0], &today)
		if !ok {
			return fmt.Errorf("no task matches %q", args[0])
		}

		title, p, found := parser.SplitTitle(strings.Join(args[1:], " "))
		if title == "" {
			return fmt.Errorf("task needs a title")
		}
		cur := st.Find(id)
		u, i := cur.Urgency, cur.Importance
		if found {
			u, i = p.Urgency, p.Importance
		}
		st.Update(id, title, u, i)
		if err := st.Save(); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		fmt.Printf("updated %q (u%d i%d)\n", title, u, i)
		return nil
	},
}

// mutateByIdentifier resolves an identifier against today's pending view
// and applies one store mutation to it.
func mutateByIdentifier(ident, verb string, mutate func(*store.Store, uuid.UUID) bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	today := task.Today()
	id, ok := st.Resolve(ident, &today)
	if !ok {
		return fmt.Errorf("no task matches %q", ident)
	}
	t := st.Find(id)
	if !mutate(st, id) {
		return fmt.Errorf("%q cannot be %s in its current state", t.Title, verb)
	}
	if err := st.Save(); err != nil {
		return fmt.Errorf("saving: %w", err)
	}
	fmt.Printf("%s %q\n", verb, t.Title)
	return nil
}

func init() {
	addCmd.Flags().BoolVar(&addTomorrow, "tomorrow", false, "schedule for tomorrow instead of today")
}
