package query

import (
	"testing"
	"time"

	"github.com/taskboard/client/domain"
)

func ref(name string) *domain.MemberRef {
	return &domain.MemberRef{ID: name, Name: name}
}

func datePtr(t time.Time) *time.Time { return &t }

func sampleTasks(now time.Time) []domain.Task {
	return []domain.Task{
		{ID: "t1", Title: "Fix login bug", Description: "crash on submit", Status: domain.StatusToDo, Assignee: ref("Ada"), DueDate: datePtr(now.Add(-48 * time.Hour))},
		{ID: "t2", Title: "Write docs", Status: domain.StatusInProgress, DueDate: datePtr(now.Add(2 * time.Hour))},
		{ID: "t3", Title: "Ship release", Description: "cut the tag", Status: domain.StatusDone, Assignee: ref("Bob"), DueDate: datePtr(now.Add(4 * 24 * time.Hour))},
		{ID: "t4", Title: "Plan roadmap", Status: domain.StatusToDo},
	}
}

func TestFilterBySearch(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	tasks := sampleTasks(now)

	got := Filter(tasks, Criteria{Search: "LOGIN", Now: now})
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("title search: %+v", got)
	}

	got = Filter(tasks, Criteria{Search: "tag", Now: now})
	if len(got) != 1 || got[0].ID != "t3" {
		t.Errorf("description search: %+v", got)
	}
}

func TestFilterByStatusAndAssignee(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	tasks := sampleTasks(now)

	got := Filter(tasks, Criteria{Status: domain.StatusToDo, Now: now})
	if len(got) != 2 {
		t.Errorf("status filter: %+v", got)
	}

	got = Filter(tasks, Criteria{Assignee: "Ada", Now: now})
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("assignee filter: %+v", got)
	}

	got = Filter(tasks, Criteria{Assignee: Unassigned, Now: now})
	if len(got) != 2 {
		t.Errorf("unassigned filter: %+v", got)
	}
}

func TestFilterByDueBucket(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	tasks := sampleTasks(now)

	cases := []struct {
		bucket DueBucket
		want   string
	}{
		{DueOverdue, "t1"},
		{DueToday, "t2"},
		{DueThisWeek, "t3"},
		{DueNone, "t4"},
	}
	for _, tc := range cases {
		got := Filter(tasks, Criteria{Due: tc.bucket, Now: now})
		if len(got) != 1 || got[0].ID != tc.want {
			t.Errorf("bucket %q: got %+v, want %s", tc.bucket, got, tc.want)
		}
	}
}

func TestBucketTruncatesToMidnight(t *testing.T) {
	// Due later today, after "now": still today, not overdue.
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.Local)
	task := domain.Task{DueDate: datePtr(time.Date(2026, 3, 10, 1, 0, 0, 0, time.Local))}

	if got := Bucket(task, now); got != DueToday {
		t.Errorf("bucket = %q, want today", got)
	}
}

func TestAssigneesDistinct(t *testing.T) {
	now := time.Now()
	got := Assignees(sampleTasks(now))
	want := map[string]bool{"Ada": true, "Bob": true, "Unassigned": true}
	if len(got) != len(want) {
		t.Fatalf("assignees = %v", got)
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("unexpected assignee %q", name)
		}
	}
}
