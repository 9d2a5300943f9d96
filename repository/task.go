package repository

import (
	"context"

	"github.com/taskboard/client/domain"
)

// TaskPayload carries the writable task fields. Assignee and DueDate are
// pointers so an absent value serializes as null rather than empty string.
type TaskPayload struct {
	ProjectID   string        `json:"projectId,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Assignee    *string       `json:"assignee"`
	DueDate     *string       `json:"dueDate"`
	Status      domain.Status `json:"status,omitempty"`
}

// TaskAPI talks to the backend's task endpoints.
type TaskAPI interface {
	ListByProject(ctx context.Context, token, projectID string) ([]domain.Task, error)
	ListAll(ctx context.Context, token string) ([]domain.Task, error)
	Create(ctx context.Context, token string, payload TaskPayload) (*domain.Task, error)
	Update(ctx context.Context, token, id string, payload TaskPayload) (*domain.Task, error)
	Reorder(ctx context.Context, token string, patches []domain.TaskOrderPatch) error
	Delete(ctx context.Context, token, id string) error
}
