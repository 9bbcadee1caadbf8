// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

var (
	ErrGenerationInProgress = errors.New("a generation request is already in flight for this target")
	ErrStatusRegression     = errors.New("campaign status cannot move backwards")
	ErrChannelNotSelected   = errors.New("channel is not selected for this campaign")
	ErrEmptyPrompt          = errors.New("prompt cannot be empty")
	ErrEmptyText            = errors.New("message text cannot be empty")
	ErrInvalidChannel       = errors.New("channel is required")
	ErrGenerationSuperseded = errors.New("generation result was discarded")
	ErrAlreadySubmitted     = errors.New("campaign has already been handed off with this status")
)

// ErrDraftNotFound is returned when no editing session holds the draft.
type ErrDraftNotFound struct {
	DraftID string
}

func (e *ErrDraftNotFound) Error() string {
	return fmt.Sprintf("campaign draft %s not found", e.DraftID)
}

func NewDraftNotFound(id string) error {
	return &ErrDraftNotFound{DraftID: id}
}

// ErrGenerationFailed wraps whatever made the content generator give up.
// Prior message content is never touched when this is returned.
type ErrGenerationFailed struct {
	Reason error
}

func (e *ErrGenerationFailed) Error() string {
	return fmt.Sprintf("content generation failed: %v", e.Reason)
}

func (e *ErrGenerationFailed) Unwrap() error { return e.Reason }

func NewGenerationFailed(reason error) error {
	return &ErrGenerationFailed{Reason: reason}
}

type ErrInvalidStatus struct {
	Status string
}

func (e *ErrInvalidStatus) Error() string {
	return fmt.Sprintf("unknown campaign status %q", e.Status)
}

func NewInvalidStatus(status string) error {
	return &ErrInvalidStatus{Status: status}
}

// ErrDraftIncomplete means a wizard stage precondition does not hold.
type ErrDraftIncomplete struct {
	Stage string
}

func (e *ErrDraftIncomplete) Error() string {
	return fmt.Sprintf("campaign draft is incomplete at the %s stage", e.Stage)
}

func NewDraftIncomplete(stage string) error {
	return &ErrDraftIncomplete{Stage: stage}
}

// IsNotFound reports whether err is, or wraps, ErrDraftNotFound.
func IsNotFound(err error) bool {
	var nf *ErrDraftNotFound
	return errors.As(err, &nf)
}

// IsGenerationFailed reports whether err is, or wraps, ErrGenerationFailed.
func IsGenerationFailed(err error) bool {
	var gf *ErrGenerationFailed
	return errors.As(err, &gf)
}

func IsIncomplete(err error) bool {
	var inc *ErrDraftIncomplete
	return errors.As(err, &inc)
}
