package repository

import (
	"context"

	"github.com/taskboard/client/domain"
)

// CommentAPI talks to the backend's per-task comment endpoints. Comments are
// fetched on demand and never cached in a store.
type CommentAPI interface {
	List(ctx context.Context, token, taskID string) ([]domain.Comment, error)
	Create(ctx context.Context, token, taskID, content string) (*domain.Comment, error)
	Update(ctx context.Context, token, commentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, token, commentID string) error
}
