package query

import "github.com/taskboard/client/domain"

// Stats aggregates a task snapshot for the analytics page.
type Stats struct {
	Total      int
	ByStatus   map[domain.Status]int
	Completed  int
	InProgress int
	ToDo       int
	// CompletionRate is Completed/Total in [0,1]; 0 for an empty snapshot.
	CompletionRate float64
}

// Aggregate computes status counts over the snapshot.
func Aggregate(tasks []domain.Task) Stats {
	stats := Stats{
		Total:    len(tasks),
		ByStatus: make(map[domain.Status]int, len(domain.Statuses)),
	}
	for _, s := range domain.Statuses {
		stats.ByStatus[s] = 0
	}
	for _, t := range tasks {
		stats.ByStatus[t.Status]++
	}
	stats.ToDo = stats.ByStatus[domain.StatusToDo]
	stats.InProgress = stats.ByStatus[domain.StatusInProgress]
	stats.Completed = stats.ByStatus[domain.StatusDone]
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}

// CountByProject returns task counts keyed by project id.
func CountByProject(tasks []domain.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.ProjectID]++
	}
	return counts
}
