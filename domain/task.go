package domain

import (
	"sort"
	"time"
)

// Status is the kanban column a task lives in.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// NormalizeStatus coerces any backend status value into the canonical enum.
// Unknown values, including legacy defaults such as "pending", fall back to
// StatusToDo. All ingestion paths go through this single function.
func NormalizeStatus(raw string) Status {
	switch Status(raw) {
	case StatusToDo, StatusInProgress, StatusDone:
		return Status(raw)
	default:
		return StatusToDo
	}
}

// Task represents a single item on a project board.
type Task struct {
	ID          string     `json:"_id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Assignee    *MemberRef `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      Status     `json:"status"`
	Priority    int        `json:"priority,omitempty"`
	Order       int        `json:"order"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

// TaskOrderPatch is one element of a batched reorder request. Reordering a
// single task changes the order of its column neighbours, so a patch is sent
// for every task in the destination column.
type TaskOrderPatch struct {
	TaskID string `json:"taskId"`
	Status Status `json:"status"`
	Order  int    `json:"order"`
}

// Column returns the tasks belonging to one status column sorted by order.
func Column(tasks []Task, status Status) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// SortBoard orders a task list by (status, order) for stable board rendering.
func SortBoard(tasks []Task) {
	rank := make(map[Status]int, len(Statuses))
	for i, s := range Statuses {
		rank[s] = i
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Status != tasks[j].Status {
			return rank[tasks[i].Status] < rank[tasks[j].Status]
		}
		return tasks[i].Order < tasks[j].Order
	})
}
