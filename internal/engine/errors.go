package engine

import "errors"

var (
	ErrGestureInProgress = errors.New("a gesture is already in progress")
	ErrNoActiveGesture   = errors.New("no gesture is in progress")
	ErrRazorModeActive   = errors.New("razor mode is active")
	ErrNoSelection       = errors.New("nothing is selected")
	ErrUnknownItem       = errors.New("unknown item id")
)
