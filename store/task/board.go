package task

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/store"
)

// DropTarget is the column and visual position a task was dropped at.
type DropTarget struct {
	Status domain.Status
	Index  int
}

// Drop describes the end of one drag gesture on the board.
type Drop struct {
	TaskID      string
	Source      domain.Status
	SourceIndex int
	// Dest is nil when the task was dropped outside any column.
	Dest *DropTarget
}

// Board coordinates optimistic drag-and-drop reordering: the move is applied
// to a working copy immediately, the batched reorder request runs against
// the server, and the copy is committed or discarded on the outcome.
//
// Overlapping drags are not serialized; if a second gesture finishes before
// the first one's request resolves, the server applies the writes
// last-writer-wins and a failure of either discards the whole working copy.
type Board struct {
	store  *Store
	notify store.Notifier
	logger *zap.Logger
}

// NewBoard builds the coordinator on top of the tasks store.
func NewBoard(taskStore *Store, notify store.Notifier, logger *zap.Logger) *Board {
	if notify == nil {
		notify = store.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		store:  taskStore,
		notify: notify,
		logger: logger,
	}
}

// Move runs the optimistic reorder protocol for one drop. Dropping outside
// any column, or back onto the original position, is a no-op with no network
// call.
func (b *Board) Move(ctx context.Context, drop Drop) error {
	if drop.Dest == nil {
		return nil
	}
	if drop.Dest.Status == drop.Source && drop.Dest.Index == drop.SourceIndex {
		return nil
	}

	token, err := b.store.tokens.Token()
	if err != nil {
		b.notify.Error(err.Error())
		return err
	}

	patches, err := b.store.stageMove(drop)
	if err != nil {
		return err
	}

	if err := b.store.api.Reorder(ctx, token, patches); err != nil {
		// Revert to whatever the confirmed snapshot is right now; a fetch
		// that landed mid-drag must not be clobbered by the pre-drag state.
		b.store.discardWorking()
		dErr := domain.AsDomainError(err)
		b.logger.Warn("reorder rejected, reverting board",
			zap.String("task_id", drop.TaskID),
			zap.Error(err))
		b.notify.Error("could not move task: " + dErr.Message)
		return err
	}

	b.store.commitWorking()
	b.notify.Info("task moved")
	return nil
}

// stageMove builds the working copy for a drop and returns the batched
// order patches for the destination column. The working copy replaces the
// view-facing list atomically under the store lock.
func (s *Store) stageMove(drop Drop) ([]domain.TaskOrderPatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := append([]domain.Task(nil), s.visibleLocked()...)

	moved := -1
	for i := range visible {
		if visible[i].ID == drop.TaskID {
			moved = i
			break
		}
	}
	if moved == -1 {
		return nil, domain.ErrTaskNotFound
	}

	// Destination column without the moved task, in current visual order.
	column := make([]*domain.Task, 0, len(visible))
	for i := range visible {
		if visible[i].ID != drop.TaskID && visible[i].Status == drop.Dest.Status {
			column = append(column, &visible[i])
		}
	}
	sort.SliceStable(column, func(i, j int) bool { return column[i].Order < column[j].Order })

	index := drop.Dest.Index
	if index < 0 {
		index = 0
	}
	if index > len(column) {
		index = len(column)
	}

	visible[moved].Status = drop.Dest.Status
	column = append(column, nil)
	copy(column[index+1:], column[index:])
	column[index] = &visible[moved]

	// Contiguous orders 0..n-1 by final visual position; a patch for every
	// task in the column, since moving one task shifts its neighbours.
	patches := make([]domain.TaskOrderPatch, len(column))
	for i, t := range column {
		t.Order = i
		patches[i] = domain.TaskOrderPatch{
			TaskID: t.ID,
			Status: drop.Dest.Status,
			Order:  i,
		}
	}

	s.working = visible
	return patches, nil
}

// commitWorking accepts the working copy as the new confirmed snapshot.
func (s *Store) commitWorking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working == nil {
		return
	}
	s.confirmed = s.working
	s.working = nil
}

// discardWorking drops the speculative copy, exposing the confirmed
// snapshot as it stands at this moment.
func (s *Store) discardWorking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working = nil
}
