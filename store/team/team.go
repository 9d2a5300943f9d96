package team

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
	"github.com/taskboard/client/store"
)

// Store caches the global member directory.
type Store struct {
	api    repository.TeamAPI
	tokens store.TokenSource
	logger *zap.Logger

	mu       sync.Mutex
	members  []domain.TeamMember
	fetchGen uint64
	listOp   store.Async
	mutateOp store.Async
}

// Snapshot is a copy of the store state handed to views.
type Snapshot struct {
	Members []domain.TeamMember
	List    store.Async
	Mutate  store.Async
}

// New builds the team store.
func New(api repository.TeamAPI, tokens store.TokenSource, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:    api,
		tokens: tokens,
		logger: logger,
	}
}

// Fetch replaces the directory with the server's full member list.
func (s *Store) Fetch(ctx context.Context) error {
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

	members, err := s.api.Members(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return nil
	}
	if err != nil {
		s.members = nil
		s.listOp.Fail(err)
		return err
	}

	s.members = members
	s.listOp.Resolve()
	return nil
}

// Remove deletes a member from the directory. The caller is expected to
// check domain.CanRemove first, but a server-side rejection of the same
// policy is propagated as a normal error because permission state can change
// between render and dispatch.
func (s *Store) Remove(ctx context.Context, memberID string) error {
	token, err := s.tokens.Token()
	if err != nil {
		s.failMutate(err)
		return err
	}

	s.mu.Lock()
	s.mutateOp.Begin()
	s.mu.Unlock()

	if err := s.api.Delete(ctx, token, memberID); err != nil {
		s.failMutate(err)
		return err
	}

	s.mu.Lock()
	kept := s.members[:0:0]
	for _, m := range s.members {
		if m.ID != memberID {
			kept = append(kept, m)
		}
	}
	s.members = kept
	s.mutateOp.Resolve()
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Members: append([]domain.TeamMember(nil), s.members...),
		List:    s.listOp,
		Mutate:  s.mutateOp,
	}
}

func (s *Store) failList(err error) {
	s.mu.Lock()
	s.members = nil
	s.listOp.Fail(err)
	s.mu.Unlock()
}

func (s *Store) failMutate(err error) {
	s.mu.Lock()
	s.mutateOp.Fail(err)
	s.mu.Unlock()
}
