package task

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
	"github.com/taskboard/client/store"
)

// Store caches the task list for the board and list views. It keeps two
// named states: confirmed, the last server-acknowledged snapshot, and
// working, the speculative copy produced by an in-flight drag gesture.
// Views read Tasks(), which prefers working so a fetch completing mid-drag
// cannot overwrite the user's gesture on screen.
type Store struct {
	api    repository.TaskAPI
	tokens store.TokenSource
	logger *zap.Logger

	mu        sync.Mutex
	confirmed []domain.Task
	working   []domain.Task
	fetchGen  uint64
	listOp    store.Async
	mutateOp  store.Async
}

// NewTask carries the user-entered fields for task creation.
type NewTask struct {
	ProjectID   string
	Title       string
	Description string
	Assignee    string
	DueDate     *time.Time
	Status      string
}

// Snapshot is a copy of the store state handed to views.
type Snapshot struct {
	Tasks  []domain.Task
	List   store.Async
	Mutate store.Async
}

// New builds the tasks store.
func New(api repository.TaskAPI, tokens store.TokenSource, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:    api,
		tokens: tokens,
		logger: logger,
	}
}

// FetchByProject replaces the confirmed snapshot with the project's tasks.
func (s *Store) FetchByProject(ctx context.Context, projectID string) error {
	return s.fetch(ctx, func(ctx context.Context, token string) ([]domain.Task, error) {
		return s.api.ListByProject(ctx, token, projectID)
	})
}

// FetchAll replaces the confirmed snapshot with every task visible to the
// user, across projects.
func (s *Store) FetchAll(ctx context.Context) error {
	return s.fetch(ctx, s.api.ListAll)
}

func (s *Store) fetch(ctx context.Context, list func(context.Context, string) ([]domain.Task, error)) error {
	token, err := s.tokens.Token()
	if err != nil {
		s.failList(err)
		return err
	}

	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.listOp.Begin()
	s.mu.Unlock()

	tasks, err := list(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		s.logger.Debug("stale task fetch discarded")
		return nil
	}
	if err != nil {
		s.confirmed = nil
		s.listOp.Fail(err)
		return err
	}

	s.confirmed = normalize(tasks)
	s.listOp.Resolve()
	return nil
}

// Create posts a new task and appends the server's version to the snapshot.
// An empty or "Unassigned" assignee is sent as null.
func (s *Store) Create(ctx context.Context, input NewTask) (*domain.Task, error) {
	token, err := s.tokens.Token()
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	s.mu.Lock()
	s.mutateOp.Begin()
	s.mu.Unlock()

	payload := repository.TaskPayload{
		ProjectID:   input.ProjectID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.NormalizeStatus(input.Status),
	}
	if input.Assignee != "" && input.Assignee != "Unassigned" {
		assignee := input.Assignee
		payload.Assignee = &assignee
	}
	if input.DueDate != nil {
		due := input.DueDate.Format(time.RFC3339)
		payload.DueDate = &due
	}

	created, err := s.api.Create(ctx, token, payload)
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	created.Status = domain.NormalizeStatus(string(created.Status))

	s.mu.Lock()
	s.confirmed = append(s.confirmed, *created)
	s.mutateOp.Resolve()
	s.mu.Unlock()

	copied := *created
	return &copied, nil
}

// Update replaces the matching task with the server's version. On failure
// the prior state is left untouched.
func (s *Store) Update(ctx context.Context, id string, payload repository.TaskPayload) (*domain.Task, error) {
	token, err := s.tokens.Token()
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	s.mu.Lock()
	s.mutateOp.Begin()
	s.mu.Unlock()

	updated, err := s.api.Update(ctx, token, id, payload)
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	updated.Status = domain.NormalizeStatus(string(updated.Status))

	s.mu.Lock()
	for i := range s.confirmed {
		if s.confirmed[i].ID == updated.ID {
			s.confirmed[i] = *updated
			break
		}
	}
	s.mutateOp.Resolve()
	s.mu.Unlock()

	copied := *updated
	return &copied, nil
}

// UpdateStatus moves a task to another column without touching ordering.
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	return s.Update(ctx, id, repository.TaskPayload{Status: domain.NormalizeStatus(string(status))})
}

// Delete removes the task from the snapshot once the server confirms.
func (s *Store) Delete(ctx context.Context, id string) error {
	token, err := s.tokens.Token()
	if err != nil {
		s.failMutate(err)
		return err
	}

	s.mu.Lock()
	s.mutateOp.Begin()
	s.mu.Unlock()

	if err := s.api.Delete(ctx, token, id); err != nil {
		s.failMutate(err)
		return err
	}

	s.mu.Lock()
	kept := s.confirmed[:0:0]
	for _, t := range s.confirmed {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.confirmed = kept
	s.mutateOp.Resolve()
	s.mu.Unlock()
	return nil
}

// Clear empties the cache; called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.confirmed = nil
	s.working = nil
	s.listOp = store.Async{}
	s.mutateOp = store.Async{}
	s.mu.Unlock()
}

// Tasks returns a copy of the view-facing list: the working copy while a
// drag is in flight, the confirmed snapshot otherwise.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task(nil), s.visibleLocked()...)
}

// Confirmed returns a copy of the last server-acknowledged snapshot.
func (s *Store) Confirmed() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task(nil), s.confirmed...)
}

// Snapshot returns the view-facing list plus operation lifecycle state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Tasks:  append([]domain.Task(nil), s.visibleLocked()...),
		List:   s.listOp,
		Mutate: s.mutateOp,
	}
}

func (s *Store) visibleLocked() []domain.Task {
	if s.working != nil {
		return s.working
	}
	return s.confirmed
}

func (s *Store) failList(err error) {
	s.mu.Lock()
	s.confirmed = nil
	s.listOp.Fail(err)
	s.mu.Unlock()
}

func (s *Store) failMutate(err error) {
	s.mu.Lock()
	s.mutateOp.Fail(err)
	s.mu.Unlock()
}

// normalize coerces statuses at the ingestion boundary so no consumer ever
// sees a value outside the canonical enum.
func normalize(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		t.Status = domain.NormalizeStatus(string(t.Status))
		out[i] = t
	}
	return out
}
