package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoCandidates is returned when there is nothing to choose from.
	ErrNoCandidates = errors.New("tui: no records to select")
)
