// Package store holds the lifecycle plumbing shared by the entity stores:
// the explicit pending/fulfilled/rejected state machine each asynchronous
// operation runs through, and the notification hook the board coordinator
// uses to surface outcomes.
package store

import "github.com/taskboard/client/domain"

// Status is the lifecycle state of one asynchronous operation family.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusFulfilled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// Async records the lifecycle of one operation family within a store. The
// transitions are driven by the owning store under its lock; views only read
// snapshots.
type Async struct {
	Status Status
	Err    *domain.Error
}

// Begin marks the operation in flight and clears any previous error.
func (a *Async) Begin() {
	a.Status = StatusPending
	a.Err = nil
}

// Resolve marks the operation fulfilled.
func (a *Async) Resolve() {
	a.Status = StatusFulfilled
	a.Err = nil
}

// Fail marks the operation rejected, keeping the typed error for display.
func (a *Async) Fail(err error) {
	a.Status = StatusRejected
	a.Err = domain.AsDomainError(err)
}

// Loading reports whether the operation is still in flight.
func (a *Async) Loading() bool {
	return a != nil && a.Status == StatusPending
}
