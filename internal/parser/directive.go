package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the four directive forms.
type Kind int

const (
	KindAdd Kind = iota
	KindDone
	KindDrop
	KindEdit
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "ADD"
	case KindDone:
		return "DONE"
	case KindDrop:
		return "DROP"
	default:
		return "EDIT"
	}
}

// Target references an existing task: a 1-based position in the active
// score-sorted view when Index > 0, otherwise a case-insensitive title
// substring.
type Target struct {
	Index int
	Title string
}

// ByIndex reports whether the target is positional.
func (t Target) ByIndex() bool { return t.Index > 0 }

func (t Target) String() string {
	if t.ByIndex() {
		return fmt.Sprintf("#%d", t.Index)
	}
	return fmt.Sprintf("%q", t.Title)
}

// Directive is one structured mutation request extracted from assistant
// free text. Kind decides which fields are meaningful: Add uses Title,
// Urgency and Importance; Done and Drop use Target; Edit uses Target plus
// the optional New* fields (nil means "leave unchanged").
type Directive struct {
	Kind       Kind
	Title      string
	Urgency    int
	Importance int

	Target        Target
	NewTitle      *string
	NewUrgency    *int
	NewImportance *int
}

const (
	tagAdd  = "[ADD]"
	tagDone = "[DONE]"
	tagDrop = "[DROP]"
	tagEdit = "[EDIT]"
)

// ParseDirectives scans one assistant reply line by line and returns the
// recognized directives in source order. Lines that do not open with a tag
// are prose; malformed directive lines are dropped without error, keeping
// the grammar forgiving of conversational text.
func ParseDirectives(reply string) []Directive {
	var out []Directive
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, tagAdd):
			if d, ok := parseAdd(strings.TrimSpace(trimmed[len(tagAdd):])); ok {
				out = append(out, d)
			}
		case strings.HasPrefix(trimmed, tagDone):
			if tgt, ok := parseTarget(strings.TrimSpace(trimmed[len(tagDone):])); ok {
				out = append(out, Directive{Kind: KindDone, Target: tgt})
			}
		case strings.HasPrefix(trimmed, tagDrop):
			if tgt, ok := parseTarget(strings.TrimSpace(trimmed[len(tagDrop):])); ok {
				out = append(out, Directive{Kind: KindDrop, Target: tgt})
			}
		case strings.HasPrefix(trimmed, tagEdit):
			if d, ok := parseEdit(strings.TrimSpace(trimmed[len(tagEdit):])); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

// parseAdd tokenizes the remainder of an [ADD] line. Priority tokens set
// urgency/importance (last one wins); everything else becomes the title.
// An empty title is a producer error and discards the directive.
func parseAdd(rest string) (Directive, bool) {
	title, p, _ := SplitTitle(rest)
	if title == "" {
		return Directive{}, false
	}
	return Directive{
		Kind:       KindAdd,
		Title:      title,
		Urgency:    p.Urgency,
		Importance: p.Importance,
	}, true
}

// parseTarget reads a task reference: "#3" or a bare positive integer is a
// 1-based position, anything else is a title substring.
func parseTarget(rest string) (Target, bool) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Target{}, false
	}
	numeric := strings.TrimSpace(strings.TrimPrefix(rest, "#"))
	if idx, err := strconv.Atoi(numeric); err == nil && idx > 0 {
		return Target{Index: idx}, true
	}
	return Target{Title: rest}, true
}

// parseEdit handles both edit sub-forms:
//
//	<target> -> <new title and/or priority tokens>
//	<target> <priority tokens>
//
// The no-arrow form never produces a title change; the arrow form produces
// one only when words remain after stripping priority tokens.
func parseEdit(rest string) (Directive, bool) {
	if rest == "" {
		return Directive{}, false
	}

	if left, right, found := strings.Cut(rest, "->"); found {
		tgt, ok := parseTarget(strings.TrimSpace(left))
		if !ok {
			return Directive{}, false
		}
		d := Directive{Kind: KindEdit, Target: tgt}
		title, p, hasPriority := SplitTitle(right)
		if title != "" {
			d.NewTitle = &title
		}
		if hasPriority {
			d.NewUrgency = &p.Urgency
			d.NewImportance = &p.Importance
		}
		return d, true
	}

	title, p, hasPriority := SplitTitle(rest)
	if title == "" {
		return Directive{}, false
	}
	d := Directive{Kind: KindEdit, Target: Target{Title: title}}
	if hasPriority {
		d.NewUrgency = &p.Urgency
		d.NewImportance = &p.Importance
	}
	return d, true
}
