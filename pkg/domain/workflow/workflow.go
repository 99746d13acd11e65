// Package workflow implements the status machine shared by deposits,
// withdrawals and transfers: create → pending → terminal, processed once.
package workflow

import (
	"fmt"

	"github.com/amirasaad/bankcore/pkg/domain"
)

// Status is a workflow entity status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Entity is implemented by every workflow entity.
type Entity interface {
	CurrentStatus() Status
}

// AssertNotTerminal returns terminalErr when e has already reached a terminal state.
func AssertNotTerminal(e Entity, terminalErr error) error {
	if e.CurrentStatus().Terminal() {
		return terminalErr
	}
	return nil
}

// Machine lists the permitted transitions of one entity type.
type Machine struct {
	name        string
	edges       map[Status][]Status
	terminalErr error
}

// NewMachine builds a machine. terminalErr is returned when a transition is
// attempted from a terminal state.
func NewMachine(name string, terminalErr error, edges map[Status][]Status) Machine {
	return Machine{name: name, edges: edges, terminalErr: terminalErr}
}

// Name returns the workflow name (deposit, withdrawal, transfer).
func (m Machine) Name() string {
	return m.name
}

// TerminalErr is the error reported for entities already past a terminal state.
func (m Machine) TerminalErr() error {
	return m.terminalErr
}

// Transition validates moving from → to.
func (m Machine) Transition(from, to Status) error {
	if from.Terminal() {
		return m.terminalErr
	}
	for _, s := range m.edges[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%s %s -> %s: %w", m.name, from, to, domain.ErrInvalidTransition)
}

// Allows reports whether to is reachable from some non-terminal state.
func (m Machine) Allows(to Status) bool {
	for _, targets := range m.edges {
		for _, s := range targets {
			if s == to {
				return true
			}
		}
	}
	return false
}
