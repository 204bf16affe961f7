// Package pipeline models the capture-to-review run lifecycle as a small
// state machine with explicitly whitelisted transitions
package pipeline

import (
	perr "smartjotter/internal/platform/errors"
)

// Stage is the position of a run inside the pipeline
type Stage string

// Stages in forward order; Failed and Done are terminal until reset
const (
	StageAwaitingInput Stage = "awaiting_input"
	StageRecognizing   Stage = "recognizing"
	StageExtracting    Stage = "extracting"
	StageReviewing     Stage = "reviewing"
	StageFailed        Stage = "failed"
	StageDone          Stage = "done"
)

// String returns the wire form of the stage
func (s Stage) String() string { return string(s) }

// Valid reports whether s is a known stage value
func (s Stage) Valid() bool {
	switch s {
	case StageAwaitingInput, StageRecognizing, StageExtracting, StageReviewing, StageFailed, StageDone:
		return true
	}
	return false
}

// ErrorKind is the taxonomy of run-level failures
type ErrorKind string

// Error kinds; only Validation and Recognition may halt forward progress
const (
	ErrValidation     ErrorKind = "validation_error"
	ErrRecognition    ErrorKind = "recognition_failure"
	ErrExtraction     ErrorKind = "extraction_degraded"
	ErrActionDispatch ErrorKind = "action_dispatch_failure"
)

// RunError pairs a taxonomy kind with a short user-facing message
type RunError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// allowed holds the forward edges of the machine
// the only backward edges are Failed->AwaitingInput (start over) and
// Reviewing->AwaitingInput (edit input), both explicit user actions
var allowed = map[Stage][]Stage{
	StageAwaitingInput: {StageRecognizing, StageExtracting},
	StageRecognizing:   {StageExtracting, StageFailed},
	StageExtracting:    {StageReviewing, StageFailed},
	StageReviewing:     {StageDone, StageAwaitingInput},
	StageFailed:        {StageAwaitingInput},
	StageDone:          {},
}

// CanTransition reports whether from -> to is a legal edge
func CanTransition(from, to Stage) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine tracks the stage and last error for one run
// not concurrency safe; the owning orchestrator serializes access
type Machine struct {
	stage   Stage
	lastErr *RunError
}

// NewMachine starts a machine at AwaitingInput
func NewMachine() *Machine {
	return &Machine{stage: StageAwaitingInput}
}

// Stage returns the current stage
func (m *Machine) Stage() Stage { return m.stage }

// LastError returns the most recent run error, or nil
func (m *Machine) LastError() *RunError { return m.lastErr }

// To moves the machine to the target stage or returns a conflict error
// illegal edges leave the machine untouched
func (m *Machine) To(to Stage) error {
	if !CanTransition(m.stage, to) {
		return perr.Conflictf("cannot move from %s to %s", m.stage, to)
	}
	m.stage = to
	if to == StageAwaitingInput {
		// both backward edges discard the previous failure
		m.lastErr = nil
	}
	return nil
}

// Fail moves the machine to Failed and records the error
// only recognition failures halt a run this way
func (m *Machine) Fail(kind ErrorKind, msg string) error {
	if err := m.To(StageFailed); err != nil {
		return err
	}
	m.lastErr = &RunError{Kind: kind, Message: msg}
	return nil
}

// Note records a non-halting error (extraction degraded, dispatch failure)
// without changing the stage
func (m *Machine) Note(kind ErrorKind, msg string) {
	m.lastErr = &RunError{Kind: kind, Message: msg}
}

// ClearError drops the recorded error, used after a soft notice is shown
func (m *Machine) ClearError() { m.lastErr = nil }
