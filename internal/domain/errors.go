package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrPreferencesNotFound = errors.New("preferences not found")
	ErrGuardianNotFound    = errors.New("guardian not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchTerminal       = errors.New("match is in a terminal state")
	ErrCannotSwipeSelf     = errors.New("cannot swipe yourself")
	ErrSwipeAlreadyExists  = errors.New("swipe already exists")
	ErrInvalidSwipeAction  = errors.New("invalid swipe action")
	ErrGuardianNotParty    = errors.New("guardian is not a party to this match")
)
