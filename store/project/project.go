package project

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
	"github.com/taskboard/client/store"
)

// DefaultPageLimit matches the backend's project list page size.
const DefaultPageLimit = 6

// Store caches the paginated project list and the currently opened project.
type Store struct {
	api    repository.ProjectAPI
	tokens store.TokenSource
	logger *zap.Logger
	limit  int

	mu         sync.Mutex
	projects   []domain.Project
	pagination domain.Pagination
	current    *domain.Project
	fetchGen   uint64
	listOp     store.Async
	mutateOp   store.Async
}

// Snapshot is a copy of the store state handed to views.
type Snapshot struct {
	Projects   []domain.Project
	Pagination domain.Pagination
	Current    *domain.Project
	List       store.Async
	Mutate     store.Async
}

// New builds the projects store.
func New(api repository.ProjectAPI, tokens store.TokenSource, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:    api,
		tokens: tokens,
		logger: logger,
		limit:  DefaultPageLimit,
		pagination: domain.Pagination{
			Page:  1,
			Pages: 1,
			Limit: DefaultPageLimit,
		},
	}
}

// Fetch replaces the cached list with the requested server page. A response
// belonging to a superseded fetch (a newer page request was issued while it
// was in flight) is discarded. A rejected fetch empties the list so stale
// data is never displayed as current.
func (s *Store) Fetch(ctx context.Context, page int) error {
	token, err := s.tokens.Token()
	if err != nil {
		s.failList(err)
		return err
	}
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.listOp.Begin()
	s.mu.Unlock()

	result, err := s.api.List(ctx, token, repository.ProjectFilter{Page: page, Limit: s.limit})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		s.logger.Debug("stale project page discarded", zap.Int("page", page))
		return nil
	}
	if err != nil {
		s.projects = nil
		s.listOp.Fail(err)
		return err
	}

	s.projects = result.Projects
	if result.Pagination.Page > 0 && (result.Pagination.Pages == 0 || result.Pagination.Page <= result.Pagination.Pages) {
		s.pagination = result.Pagination
	}
	s.listOp.Resolve()
	return nil
}

// Create posts the new project, refetches the authoritative first page to
// pick up server-computed fields, then merges the created project to the
// front of the list without duplicating it.
func (s *Store) Create(ctx context.Context, payload repository.ProjectPayload) (*domain.Project, error) {
	token, err := s.tokens.Token()
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	s.mu.Lock()
	s.mutateOp.Begin()
	s.mu.Unlock()

	payload.Members = dedupeEmails(payload.Members)

	created, err := s.api.Create(ctx, token, payload)
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	if ferr := s.Fetch(ctx, 1); ferr != nil {
		s.logger.Warn("refetch after create failed", zap.Error(ferr))
	}

	s.mu.Lock()
	filtered := s.projects[:0:0]
	for _, p := range s.projects {
		if p.ID != created.ID {
			filtered = append(filtered, p)
		}
	}
	s.projects = append([]domain.Project{*created}, filtered...)
	copied := *created
	s.current = &copied
	s.mutateOp.Resolve()
	s.mu.Unlock()

	return created, nil
}

// Update replaces the matching entity in the list and the current pointer.
// On failure the prior state is left untouched.
func (s *Store) Update(ctx context.Context, id string, payload repository.ProjectPayload) (*domain.Project, error) {
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

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == updated.ID {
			s.projects[i] = *updated
			break
		}
	}
	if s.current != nil && s.current.ID == updated.ID {
		copied := *updated
		s.current = &copied
	}
	s.mutateOp.Resolve()
	s.mu.Unlock()

	return updated, nil
}

// Delete removes the project from the cached list once the server confirms.
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
	kept := s.projects[:0:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mutateOp.Resolve()
	s.mu.Unlock()

	if ferr := s.Fetch(ctx, 1); ferr != nil {
		s.logger.Warn("refetch after delete failed", zap.Error(ferr))
	}
	return nil
}

// AddMember attaches a member by email and replaces the returned project in
// the cache. The server is authoritative for the resulting member set.
func (s *Store) AddMember(ctx context.Context, id, memberEmail string) (*domain.Project, error) {
	token, err := s.tokens.Token()
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	s.mu.Lock()
	s.mutateOp.Begin()
	s.mu.Unlock()

	updated, err := s.api.AddMember(ctx, token, id, memberEmail)
	if err != nil {
		s.failMutate(err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == updated.ID {
			s.projects[i] = *updated
			break
		}
	}
	if s.current != nil && s.current.ID == updated.ID {
		copied := *updated
		s.current = &copied
	}
	s.mutateOp.Resolve()
	s.mu.Unlock()

	return updated, nil
}

// FetchMembers hydrates the member references of one project.
func (s *Store) FetchMembers(ctx context.Context, id string) ([]domain.MemberRef, error) {
	token, err := s.tokens.Token()
	if err != nil {
		return nil, err
	}

	members, err := s.api.Members(ctx, token, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Members = members
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current.Members = members
	}
	s.mu.Unlock()

	return members, nil
}

// SetCurrent points the store at the project the user opened.
func (s *Store) SetCurrent(p *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.current = nil
		return
	}
	copied := *p
	s.current = &copied
}

// Snapshot returns a copy of the store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Projects:   append([]domain.Project(nil), s.projects...),
		Pagination: s.pagination,
		List:       s.listOp,
		Mutate:     s.mutateOp,
	}
	if s.current != nil {
		copied := *s.current
		snap.Current = &copied
	}
	return snap
}

func (s *Store) failList(err error) {
	s.mu.Lock()
	s.projects = nil
	s.listOp.Fail(err)
	s.mu.Unlock()
}

func (s *Store) failMutate(err error) {
	s.mu.Lock()
	s.mutateOp.Fail(err)
	s.mu.Unlock()
}

// dedupeEmails keeps the first occurrence of each email, case-insensitively.
func dedupeEmails(emails []string) []string {
	if len(emails) == 0 {
		return emails
	}
	seen := make(map[string]struct{}, len(emails))
	out := emails[:0:0]
	for _, e := range emails {
		key := strings.ToLower(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
