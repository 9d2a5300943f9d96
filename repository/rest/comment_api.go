package rest

import (
	"context"

	"github.com/taskboard/client/domain"
)

// CommentAPI implements repository.CommentAPI against /api/comments.
type CommentAPI struct {
	client *Client
}

func NewCommentAPI(client *Client) *CommentAPI {
	return &CommentAPI{client: client}
}

func (c *CommentAPI) List(ctx context.Context, token, taskID string) ([]domain.Comment, error) {
	var out struct {
		Comments []domain.Comment `json:"comments"`
	}
	if err := c.client.get(ctx, "/api/comments/task/"+taskID, nil, token, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *CommentAPI) Create(ctx context.Context, token, taskID, content string) (*domain.Comment, error) {
	body := map[string]string{"taskId": taskID, "content": content}
	var out struct {
		Comment domain.Comment `json:"comment"`
	}
	if err := c.client.mutate(ctx, "POST", "/api/comments/", token, body, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

func (c *CommentAPI) Update(ctx context.Context, token, commentID, content string) (*domain.Comment, error) {
	body := map[string]string{"content": content}
	var out struct {
		Comment domain.Comment `json:"comment"`
	}
	if err := c.client.mutate(ctx, "PUT", "/api/comments/"+commentID, token, body, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

func (c *CommentAPI) Delete(ctx context.Context, token, commentID string) error {
	return c.client.mutate(ctx, "DELETE", "/api/comments/"+commentID, token, nil, nil)
}
