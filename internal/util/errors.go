package util

import "errors"

var (
	// ErrValidation marks client-caused shape errors; controllers map it to
	// 400 VALIDATION_ERROR with the wrapped message.
	ErrValidation = errors.New("validation error")

	// ErrIntegrity marks a submission whose ids do not resolve against the
	// catalog, or a choice paired with a question it does not belong to.
	// Either client tampering or a race with catalog edits; the whole
	// submission is rejected.
	ErrIntegrity = errors.New("integrity error")

	ErrNotEnoughQuestions = errors.New("not enough eligible questions")
	ErrUserNotProvisioned = errors.New("user not provisioned")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyRequested   = errors.New("membership request already pending")
	ErrRequestDecided     = errors.New("membership request already decided")
)
