package rest

import (
	"context"

	"github.com/taskboard/client/domain"
)

// TeamAPI implements repository.TeamAPI against /api/users/members.
type TeamAPI struct {
	client *Client
}

func NewTeamAPI(client *Client) *TeamAPI {
	return &TeamAPI{client: client}
}

func (t *TeamAPI) Members(ctx context.Context, token string) ([]domain.TeamMember, error) {
	var out struct {
		Success bool                `json:"success"`
		Data    []domain.TeamMember `json:"data"`
	}
	if err := t.client.get(ctx, "/api/users/members", nil, token, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		// Unexpected envelope; expose an empty directory rather than failing.
		return nil, nil
	}
	return out.Data, nil
}

func (t *TeamAPI) Delete(ctx context.Context, token, memberID string) error {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := t.client.mutate(ctx, "DELETE", "/api/users/members/"+memberID, token, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		message := out.Message
		if message == "" {
			message = "failed to delete member"
		}
		return domain.NewError(domain.ErrCodeForbidden, message)
	}
	return nil
}
