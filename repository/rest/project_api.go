package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
)

// ProjectAPI implements repository.ProjectAPI against /api/projects.
type ProjectAPI struct {
	client *Client
}

func NewProjectAPI(client *Client) *ProjectAPI {
	return &ProjectAPI{client: client}
}

func (p *ProjectAPI) List(ctx context.Context, token string, filter repository.ProjectFilter) (*repository.ProjectPage, error) {
	query := url.Values{}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var out struct {
		Data       []domain.Project  `json:"data"`
		Pagination domain.Pagination `json:"pagination"`
	}
	if err := p.client.get(ctx, "/api/projects/get-projects", query, token, &out); err != nil {
		return nil, err
	}
	page := &repository.ProjectPage{Projects: out.Data, Pagination: out.Pagination}
	if page.Pagination.Page == 0 {
		page.Pagination = domain.Pagination{Page: 1, Pages: 1, Total: len(out.Data), Limit: filter.Limit}
	}
	return page, nil
}

func (p *ProjectAPI) Create(ctx context.Context, token string, payload repository.ProjectPayload) (*domain.Project, error) {
	var out domain.Project
	if err := p.client.mutate(ctx, "POST", "/api/projects/create-project", token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectAPI) Update(ctx context.Context, token, id string, payload repository.ProjectPayload) (*domain.Project, error) {
	var out domain.Project
	if err := p.client.mutate(ctx, "PUT", "/api/projects/update-project/"+id, token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectAPI) Delete(ctx context.Context, token, id string) error {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := p.client.mutate(ctx, "DELETE", "/api/projects/delete-project/"+id, token, nil, &out); err != nil {
		return err
	}
	// The backend reports some delete failures with HTTP 200 and success=false.
	if !out.Success {
		message := out.Message
		if message == "" {
			message = "failed to delete project"
		}
		return domain.NewError(domain.ErrCodeConflict, message)
	}
	return nil
}

func (p *ProjectAPI) AddMember(ctx context.Context, token, id, memberEmail string) (*domain.Project, error) {
	body := map[string]string{"memberEmail": memberEmail}
	var out struct {
		Message string         `json:"message"`
		Project domain.Project `json:"project"`
	}
	if err := p.client.mutate(ctx, "POST", "/api/projects/add-member/"+id, token, body, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (p *ProjectAPI) Members(ctx context.Context, token, id string) ([]domain.MemberRef, error) {
	var out []domain.MemberRef
	if err := p.client.get(ctx, "/api/projects/"+id+"/members", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}
