package repository

import (
	"context"

	"github.com/taskboard/client/domain"
)

// ProjectFilter selects one page of the project list.
type ProjectFilter struct {
	Page  int
	Limit int
}

// ProjectPage is one page of projects plus the server's pagination metadata.
type ProjectPage struct {
	Projects   []domain.Project
	Pagination domain.Pagination
}

// ProjectPayload carries the writable project fields.
type ProjectPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members,omitempty"`
}

// ProjectAPI talks to the backend's project endpoints.
type ProjectAPI interface {
	List(ctx context.Context, token string, filter ProjectFilter) (*ProjectPage, error)
	Create(ctx context.Context, token string, payload ProjectPayload) (*domain.Project, error)
	Update(ctx context.Context, token, id string, payload ProjectPayload) (*domain.Project, error)
	Delete(ctx context.Context, token, id string) error
	AddMember(ctx context.Context, token, id, memberEmail string) (*domain.Project, error)
	Members(ctx context.Context, token, id string) ([]domain.MemberRef, error)
}
