package tui

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"eq/internal/parser"
	"eq/internal/store"
	"eq/internal/task"
)

// batchResult collects the outcome of one confirmed directive batch.
// Failures are recorded per directive; one bad directive never aborts
// the rest of the batch.
type batchResult struct {
	added     []string
	completed []string
	dropped   []string
	edited    []string
	errors    []string
	mutated   bool
}

// formatProposal renders the numbered preview shown before confirmation.
func (m Model) formatProposal(directives []parser.Directive) string {
	var b strings.Builder
	b.WriteString("Proposed changes:\n")
	for i, d := range directives {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, describeDirective(d))
	}
	b.WriteString("Press [y] to apply, [n] to cancel.")
	return b.String()
}

func describeDirective(d parser.Directive) string {
	switch d.Kind {
	case parser.KindAdd:
		return fmt.Sprintf("add %q (urgency %d, importance %d)", d.Title, d.Urgency, d.Importance)
	case parser.KindDone:
		return "toggle done: " + describeTarget(d.Target)
	case parser.KindDrop:
		return "drop: " + describeTarget(d.Target)
	case parser.KindEdit:
		parts := []string{}
		if d.NewTitle != nil {
			parts = append(parts, fmt.Sprintf("title %q", *d.NewTitle))
		}
		if d.NewUrgency != nil {
			parts = append(parts, fmt.Sprintf("urgency %d", *d.NewUrgency))
		}
		if d.NewImportance != nil {
			parts = append(parts, fmt.Sprintf("importance %d", *d.NewImportance))
		}
		return fmt.Sprintf("edit %s: set %s", describeTarget(d.Target), strings.Join(parts, ", "))
	}
	return "unknown"
}

func describeTarget(t parser.Target) string {
	if t.ByIndex() {
		return fmt.Sprintf("#%d", t.Index)
	}
	return fmt.Sprintf("%q", t.Title)
}

// executeBatch applies the proposed directives in order. Index targets
// resolve against the live pending list of the active quadrant at the
// moment each directive runs, so earlier directives shift the positions
// later ones see. The store is saved once, after the whole batch, and
// only if anything actually changed.
func (m Model) executeBatch() Model {
	directives := m.batch
	m.batch = nil

	var res batchResult
	for _, d := range directives {
		m.applyDirective(d, &res)
	}

	if res.mutated {
		m.saveStore()
		m.clampSelection()
	}
	m.appendMessage(store.RoleSystem, res.format())
	return m
}

func (m Model) cancelBatch() Model {
	n := len(m.batch)
	m.batch = nil
	m.appendMessage(store.RoleSystem, fmt.Sprintf("Cancelled %d command(s). Nothing was modified.", n))
	return m
}

func (m *Model) applyDirective(d parser.Directive, res *batchResult) {
	switch d.Kind {
	case parser.KindAdd:
		t := task.New(d.Title, d.Urgency, d.Importance, m.viewDate)
		m.store.Add(t)
		res.added = append(res.added, fmt.Sprintf("%s [%s]", t.Title, t.Quadrant()))
		res.mutated = true

	case parser.KindDone:
		id, title, err := m.resolveTarget(d.Target)
		if err != nil {
			res.errors = append(res.errors, err.Error())
			return
		}
		if !m.store.Toggle(id) {
			res.errors = append(res.errors, fmt.Sprintf("could not toggle %q", title))
			return
		}
		res.completed = append(res.completed, title)
		res.mutated = true

	case parser.KindDrop:
		id, title, err := m.resolveTarget(d.Target)
		if err != nil {
			res.errors = append(res.errors, err.Error())
			return
		}
		if !m.store.Drop(id) {
			res.errors = append(res.errors, fmt.Sprintf("could not drop %q", title))
			return
		}
		res.dropped = append(res.dropped, title)
		res.mutated = true

	case parser.KindEdit:
		id, title, err := m.resolveTarget(d.Target)
		if err != nil {
			res.errors = append(res.errors, err.Error())
			return
		}
		cur := m.store.Find(id)
		if cur == nil {
			res.errors = append(res.errors, fmt.Sprintf("task %q vanished mid-batch", title))
			return
		}
		newTitle, u, i := cur.Title, cur.Urgency, cur.Importance
		if d.NewTitle != nil {
			newTitle = *d.NewTitle
		}
		if d.NewUrgency != nil {
			u = *d.NewUrgency
		}
		if d.NewImportance != nil {
			i = *d.NewImportance
		}
		if !m.store.Update(id, newTitle, u, i) {
			res.errors = append(res.errors, fmt.Sprintf("could not edit %q", title))
			return
		}
		res.edited = append(res.edited, newTitle)
		res.mutated = true
	}
}

// resolveTarget maps a directive target to a concrete task. Index targets
// are 1-based positions in the pending, score-sorted list of the active
// quadrant. Title targets match the first task on the view date whose
// title contains the text, case-insensitively, pending tasks first so a
// completed task is only picked when no pending one matches. That keeps
// a repeated Done directive a toggle instead of an error.
func (m Model) resolveTarget(t parser.Target) (uuid.UUID, string, error) {
	if t.ByIndex() {
		pending := m.store.PendingQuadrant(m.viewDate, m.quadrant)
		if t.Index < 1 || t.Index > len(pending) {
			return uuid.Nil, "", fmt.Errorf("no task at position %d in %s", t.Index, m.quadrant)
		}
		picked := pending[t.Index-1]
		return picked.ID, picked.Title, nil
	}

	needle := strings.ToLower(t.Title)
	match := func(tasks []task.Task) (uuid.UUID, string, bool) {
		for _, cand := range tasks {
			if strings.Contains(strings.ToLower(cand.Title), needle) {
				return cand.ID, cand.Title, true
			}
		}
		return uuid.Nil, "", false
	}
	if id, title, ok := match(m.store.Pending(m.viewDate)); ok {
		return id, title, nil
	}
	if id, title, ok := match(m.store.Completed(m.viewDate)); ok {
		return id, title, nil
	}
	return uuid.Nil, "", fmt.Errorf("no pending task matching %q", t.Title)
}

func (r batchResult) format() string {
	var b strings.Builder
	b.WriteString("Applied changes:\n")
	section := func(label string, items []string) {
		for _, it := range items {
			fmt.Fprintf(&b, "  %s %s\n", label, it)
		}
	}
	section("added:", r.added)
	section("toggled:", r.completed)
	section("dropped:", r.dropped)
	section("edited:", r.edited)
	for _, e := range r.errors {
		fmt.Fprintf(&b, "  failed: %s\n", e)
	}
	if !r.mutated && len(r.errors) == 0 {
		b.WriteString("  nothing to do\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
