package page

import (
	"fmt"

	"resume-web/internal/shared/metrics"
)

// UploadState tracks a resume analysis from selection to result.
type UploadState string

const (
	UploadIdle       UploadState = "idle"
	UploadValidating UploadState = "validating"
	UploadSubmitting UploadState = "submitting"
	UploadDisplaying UploadState = "displaying"
	UploadFailed     UploadState = "idle-with-error"
)

var uploadTransitions = map[UploadState][]UploadState{
	UploadIdle:       {UploadValidating},
	UploadFailed:     {UploadValidating},
	UploadDisplaying: {UploadValidating},
	UploadValidating: {UploadSubmitting, UploadFailed},
	UploadSubmitting: {UploadDisplaying, UploadFailed},
}

// Busy reports whether a submission is in flight.
func (u UploadState) Busy() bool {
	return u == UploadSubmitting
}

// CanMove reports whether next is a legal successor of u.
func (u UploadState) CanMove(next UploadState) bool {
	if u == "" {
		u = UploadIdle
	}
	for _, s := range uploadTransitions[u] {
		if s == next {
			return true
		}
	}
	return false
}

// MoveUpload advances the upload state machine.
func (s *State) MoveUpload(next UploadState) error {
	if !s.Upload.CanMove(next) {
		return fmt.Errorf("upload: illegal transition %s -> %s", s.Upload, next)
	}
	s.Upload = next
	metrics.IncUploadTransition(string(next))
	return nil
}
