// Package query holds the pure, synchronous derived views over a task
// snapshot: filtering for the list page and aggregation for the analytics
// page. Nothing here caches; results are recomputed from the snapshot on
// every call.
package query

import (
	"strings"
	"time"

	"github.com/taskboard/client/domain"
)

// DueBucket groups tasks by how their due date relates to today.
type DueBucket string

const (
	DueAny      DueBucket = ""
	DueOverdue  DueBucket = "overdue"
	DueToday    DueBucket = "today"
	DueThisWeek DueBucket = "this-week"
	DueNone     DueBucket = "none"
)

// Unassigned is the sentinel assignee filter matching tasks with no
// assignee.
const Unassigned = "unassigned"

// Criteria selects a subset of a task snapshot. Zero values match
// everything.
type Criteria struct {
	Search   string
	Status   domain.Status
	Assignee string
	Due      DueBucket
	// Now anchors the due-date buckets; zero means time.Now().
	Now time.Time
}

// Filter returns the tasks matching every set criterion.
func Filter(tasks []domain.Task, c Criteria) []domain.Task {
	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	search := strings.ToLower(strings.TrimSpace(c.Search))

	var out []domain.Task
	for _, t := range tasks {
		if !matchesSearch(t, search) {
			continue
		}
		if c.Status != "" && t.Status != c.Status {
			continue
		}
		if !matchesAssignee(t, c.Assignee) {
			continue
		}
		if !matchesDue(t, c.Due, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t domain.Task, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

func matchesAssignee(t domain.Task, assignee string) bool {
	switch assignee {
	case "":
		return true
	case Unassigned:
		return t.Assignee == nil
	default:
		return t.Assignee != nil && t.Assignee.Name == assignee
	}
}

func matchesDue(t domain.Task, bucket DueBucket, now time.Time) bool {
	if bucket == DueAny {
		return true
	}
	return Bucket(t, now) == bucket
}

// Bucket classifies a task's due date relative to now. Both sides are
// truncated to local midnight before comparison, so a task due later today
// is "today", not "overdue".
func Bucket(t domain.Task, now time.Time) DueBucket {
	if t.DueDate == nil {
		return DueNone
	}
	due := midnight(t.DueDate.Local())
	today := midnight(now.Local())

	switch {
	case due.Before(today):
		return DueOverdue
	case due.Equal(today):
		return DueToday
	case due.Before(today.AddDate(0, 0, 7)):
		return DueThisWeek
	default:
		return DueAny
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Assignees returns the distinct assignee names present in the snapshot,
// with "Unassigned" standing in for tasks without one.
func Assignees(tasks []domain.Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		name := "Unassigned"
		if t.Assignee != nil && t.Assignee.Name != "" {
			name = t.Assignee.Name
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
