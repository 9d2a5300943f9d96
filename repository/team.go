package repository

import (
	"context"

	"github.com/taskboard/client/domain"
)

// TeamAPI talks to the backend's global member directory.
type TeamAPI interface {
	Members(ctx context.Context, token string) ([]domain.TeamMember, error)
	Delete(ctx context.Context, token, memberID string) error
}
