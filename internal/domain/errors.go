package domain

import "errors"

var (
	// ErrNotFound signals that a channel, member, role or message referenced
	// by a stale identifier no longer exists. Callers deleting the missing
	// entity must treat this as already done.
	ErrNotFound = errors.New("not found")

	// ErrPermission signals that the bot lacks the capability or the
	// role-hierarchy position to perform a mutation.
	ErrPermission = errors.New("permission denied")

	// ErrValidation signals a malformed command argument. No state mutation
	// happens on this path.
	ErrValidation = errors.New("validation failed")

	ErrSessionExists   = errors.New("member already owns an active session")
	ErrNoSession       = errors.New("no active session")
	ErrNotInVoice      = errors.New("member is not in a voice channel")
	ErrNotOwner        = errors.New("only the session owner may do that")
	ErrAlreadyOptedIn  = errors.New("member already opted in")
	ErrOwnSession      = errors.New("owner cannot opt into own session")
	ErrNotOptedIn      = errors.New("member did not opt in")
	ErrAlreadyVerified = errors.New("member already verified")
	ErrNotVerified     = errors.New("member not verified")
	ErrOnVacation      = errors.New("member already on vacation")
	ErrNotOnVacation   = errors.New("member not on vacation")
)
