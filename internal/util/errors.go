package util

import (
	"errors"
	"fmt"
)

// Error categories. Cause-specific errors below wrap one of these, so callers
// can match either the category or the exact cause with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotEligible      = errors.New("not eligible to review")
	ErrSessionExpired   = errors.New("quiz session expired or not found")
	ErrExternalService  = errors.New("external service unavailable")
	ErrNotFound         = errors.New("resource not found")
)

var (
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrEmailRegistered = errors.New("email or username already registered")
	ErrBadCredentials  = errors.New("invalid credentials")

	ErrSkillNotFound   = fmt.Errorf("%w: skill", ErrNotFound)
	ErrSkillNameEmpty  = fmt.Errorf("%w: skill name is required", ErrValidation)
	ErrSkillNameLength = fmt.Errorf("%w: skill name is too long", ErrValidation)
	ErrSkillNotOffered = fmt.Errorf("%w: skill is not on your offered list", ErrInvalidOperation)

	ErrProfileNotFound     = fmt.Errorf("%w: profile", ErrNotFound)
	ErrInvalidAvailability = fmt.Errorf("%w: unknown availability tag", ErrValidation)

	ErrSwapNotFound       = fmt.Errorf("%w: swap request", ErrNotFound)
	ErrSwapWithSelf       = fmt.Errorf("%w: you cannot send a swap request to yourself", ErrInvalidOperation)
	ErrInvalidSwapStatus  = fmt.Errorf("%w: unknown swap status", ErrValidation)
	ErrSwapStatusConflict = fmt.Errorf("%w: swap status changed concurrently", ErrPermissionDenied)

	ErrSwapNotCompleted = fmt.Errorf("%w: you can only review completed swaps", ErrNotEligible)
	ErrNotParticipant   = fmt.Errorf("%w: you are not a participant of this swap", ErrNotEligible)
	ErrAlreadyReviewed  = fmt.Errorf("%w: you have already submitted a review for this swap", ErrNotEligible)
	ErrInvalidRating    = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)

	ErrMalformedAIResponse = fmt.Errorf("%w: malformed response", ErrExternalService)
	ErrAIDisabled          = fmt.Errorf("%w: generator not configured", ErrExternalService)
)
