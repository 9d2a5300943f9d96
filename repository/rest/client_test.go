package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL}, nil), server
}

func TestRequestAttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"_id": "u1"}})
	}))

	api := NewAuthAPI(client)
	if _, err := api.UserInfo(context.Background(), "tok-1"); err != nil {
		t.Fatalf("user info: %v", err)
	}

	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestLoginDecodesSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds repository.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "a@x.com" {
			t.Errorf("credentials not forwarded: %+v", creds)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"_id": "u1", "email": "a@x.com", "role": "member"},
		})
	}))

	session, err := NewAuthAPI(client).Login(context.Background(), repository.Credentials{Email: "a@x.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "tok-1" || session.User.Email != "a@x.com" {
		t.Errorf("unexpected session: %+v", session)
	}
}

func TestValidationErrorCarriesFieldDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "validation failed",
			"errors":  map[string]string{"title": "title is required"},
		})
	}))

	_, err := NewTaskAPI(client).Create(context.Background(), "tok", repository.TaskPayload{})
	dErr := domain.AsDomainError(err)
	if dErr.Code != domain.ErrCodeInvalid {
		t.Fatalf("code = %q, want INVALID", dErr.Code)
	}
	if dErr.Message != "validation failed" {
		t.Errorf("message = %q", dErr.Message)
	}
	if dErr.Fields["title"] != "title is required" {
		t.Errorf("fields = %v", dErr.Fields)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		want   domain.ErrorCode
	}{
		{http.StatusUnauthorized, domain.ErrCodeUnauthorized},
		{http.StatusForbidden, domain.ErrCodeForbidden},
		{http.StatusNotFound, domain.ErrCodeNotFound},
		{http.StatusConflict, domain.ErrCodeConflict},
		{http.StatusUnprocessableEntity, domain.ErrCodeInvalid},
		{http.StatusInternalServerError, domain.ErrCodeUnavailable},
		{http.StatusBadGateway, domain.ErrCodeUnavailable},
	}
	for _, tc := range cases {
		status := tc.status
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "nope"})
		}))

		_, err := NewTaskAPI(client).ListAll(context.Background(), "tok")
		if !domain.IsDomainError(err, tc.want) {
			t.Errorf("status %d: got %v, want code %q", tc.status, err, tc.want)
		}
		dErr := domain.AsDomainError(err)
		if dErr.Message == "" {
			t.Errorf("status %d: error must carry a displayable message", tc.status)
		}
	}
}

func TestNetworkFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(Config{BaseURL: server.URL}, nil)
	server.Close()

	_, err := NewTaskAPI(client).ListAll(context.Background(), "tok")
	if !domain.IsDomainError(err, domain.ErrCodeUnavailable) {
		t.Fatalf("expected UNAVAILABLE, got %v", err)
	}
}

func TestTaskListToleratesBothEnvelopes(t *testing.T) {
	bodies := []string{
		`[{"_id":"t1","status":"To Do"}]`,
		`{"data":[{"_id":"t1","status":"To Do"}]}`,
	}
	for _, body := range bodies {
		payload := body
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(payload))
		}))

		tasks, err := NewTaskAPI(client).ListAll(context.Background(), "tok")
		if err != nil {
			t.Fatalf("list (%s): %v", payload, err)
		}
		if len(tasks) != 1 || tasks[0].ID != "t1" {
			t.Errorf("list (%s): got %+v", payload, tasks)
		}
	}
}

func TestReorderSendsBatchedPatches(t *testing.T) {
	var got struct {
		Tasks []domain.TaskOrderPatch `json:"tasks"`
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/update-order" || r.Method != http.MethodPut {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	patches := []domain.TaskOrderPatch{
		{TaskID: "t1", Status: domain.StatusDone, Order: 0},
		{TaskID: "t2", Status: domain.StatusDone, Order: 1},
	}
	if err := NewTaskAPI(client).Reorder(context.Background(), "tok", patches); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if len(got.Tasks) != 2 || got.Tasks[0].TaskID != "t1" || got.Tasks[1].Order != 1 {
		t.Errorf("unexpected payload: %+v", got.Tasks)
	}
}

func TestProjectDeleteChecksSuccessFlag(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "project already deleted"})
	}))

	err := NewProjectAPI(client).Delete(context.Background(), "tok", "p1")
	if !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("expected CONFLICT for success=false, got %v", err)
	}
}

func TestTeamMembersEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"_id": "m1", "name": "Ada", "email": "ada@x.com", "role": "owner"}},
		})
	}))

	members, err := NewTeamAPI(client).Members(context.Background(), "tok")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Ada" {
		t.Errorf("unexpected members: %+v", members)
	}
}

func TestProjectListDefaultsPagination(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if page := r.URL.Query().Get("page"); page != "2" {
			t.Errorf("page query = %q, want 2", page)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"_id": "p1", "name": "Alpha"}},
		})
	}))

	page, err := NewProjectAPI(client).List(context.Background(), "tok", repository.ProjectFilter{Page: 2, Limit: 6})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.Page != 1 || page.Pagination.Total != 1 {
		t.Errorf("missing pagination should default, got %+v", page.Pagination)
	}
}

func TestAdditiveFieldsAreIgnored(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"_id":"u1","email":"a@x.com","newField":123},"extra":"ignored"}`))
	}))

	user, err := NewAuthAPI(client).UserInfo(context.Background(), "tok")
	if err != nil {
		t.Fatalf("user info: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("unexpected user: %+v", user)
	}
}
