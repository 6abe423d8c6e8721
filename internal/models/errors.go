package models

import "errors"

var (
	// ErrInvalidInput is returned when the client supplied missing or empty
	// required data. Keeping this sentinel in the domain lets the HTTP layer
	// map it consistently to a 400.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCollaboratorUnavailable signals that an optional analysis backend
	// (transcription, face emotion) was never provisioned for this process.
	ErrCollaboratorUnavailable = errors.New("analysis backend not available")
	// ErrTranscriptionFailed means the transcription collaborator ran but
	// could not understand the audio.
	ErrTranscriptionFailed = errors.New("could not understand audio")
	// ErrTranscriptionService means the transcription collaborator itself
	// errored or was unreachable.
	ErrTranscriptionService = errors.New("speech recognition error")
	// ErrFaceAnalysisFailed means the face-emotion collaborator could not
	// produce a usable result for this frame.
	ErrFaceAnalysisFailed = errors.New("face analysis failed")
	// ErrStorage wraps history persistence failures.
	ErrStorage = errors.New("history storage error")
)
