package bracket

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBracket is returned by Start when there is nothing to pair.
	ErrEmptyBracket = errors.New("bracket: no items to start a tournament")

	// ErrInvalidSelection is returned by SelectWinner for a bad index or
	// when no pair is on offer.
	ErrInvalidSelection = errors.New("bracket: invalid selection")
)

// SelectionError describes a rejected SelectWinner call.
type SelectionError struct {
	Index  int
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: index %d: %s", ErrInvalidSelection, e.Index, e.Reason)
}

func (e *SelectionError) Unwrap() error { return ErrInvalidSelection }
