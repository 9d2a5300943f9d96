package rest

import (
	"context"
	"encoding/json"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
)

// TaskAPI implements repository.TaskAPI against /api/tasks.
type TaskAPI struct {
	client *Client
}

func NewTaskAPI(client *Client) *TaskAPI {
	return &TaskAPI{client: client}
}

// taskList tolerates both envelope shapes the backend has been observed to
// return: a bare array and {data: [...]}.
type taskList []domain.Task

func (l *taskList) UnmarshalJSON(data []byte) error {
	var direct []domain.Task
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}
	var wrapped struct {
		Data []domain.Task `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Data
	return nil
}

func (t *TaskAPI) ListByProject(ctx context.Context, token, projectID string) ([]domain.Task, error) {
	var out taskList
	if err := t.client.get(ctx, "/api/tasks/project/"+projectID, nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TaskAPI) ListAll(ctx context.Context, token string) ([]domain.Task, error) {
	var out taskList
	if err := t.client.get(ctx, "/api/tasks/", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TaskAPI) Create(ctx context.Context, token string, payload repository.TaskPayload) (*domain.Task, error) {
	var out struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`

		domain.Task
	}
	if err := t.client.mutate(ctx, "POST", "/api/tasks/", token, payload, &out); err != nil {
		return nil, err
	}
	// Some backend versions wrap the created task in {success, data}.
	if len(out.Data) > 0 {
		var task domain.Task
		if err := json.Unmarshal(out.Data, &task); err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "decode created task", err)
		}
		return &task, nil
	}
	if out.Task.ID == "" && !out.Success && out.Message != "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, out.Message)
	}
	task := out.Task
	return &task, nil
}

func (t *TaskAPI) Update(ctx context.Context, token, id string, payload repository.TaskPayload) (*domain.Task, error) {
	var out domain.Task
	if err := t.client.mutate(ctx, "PUT", "/api/tasks/"+id, token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TaskAPI) Reorder(ctx context.Context, token string, patches []domain.TaskOrderPatch) error {
	body := struct {
		Tasks []domain.TaskOrderPatch `json:"tasks"`
	}{Tasks: patches}
	return t.client.mutate(ctx, "PUT", "/api/tasks/update-order", token, body, nil)
}

func (t *TaskAPI) Delete(ctx context.Context, token, id string) error {
	var out struct {
		Success bool `json:"success"`
	}
	return t.client.mutate(ctx, "DELETE", "/api/tasks/"+id, token, nil, &out)
}
