package transfer

import (
	"errors"
	"fmt"
)

// Validation errors, rejected before any lock is taken.
var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrSameHolder      = errors.New("source and destination are the same holder")
	ErrTwoRoomHolders  = errors.New("a transfer may involve at most one room")
)

// ItemNotFoundError reports a source holder without the requested item,
// including one hidden from a non-elevated viewer.
type ItemNotFoundError struct {
	Name   string
	InRoom bool
}

func (e ItemNotFoundError) Error() string {
	if e.InRoom {
		return fmt.Sprintf("%s does not exist in the room", e.Name)
	}
	return fmt.Sprintf("you do not have %s", e.Name)
}

// ItemLockedError reports a locked item targeted by a quantity-reducing
// operation.
type ItemLockedError struct {
	Name string
}

func (e ItemLockedError) Error() string {
	return fmt.Sprintf("%s cannot be removed", e.Name)
}

// InsufficientQuantityError reports a request exceeding the source's stock.
type InsufficientQuantityError struct {
	Name      string
	Requested uint32
	Available uint32
}

func (e InsufficientQuantityError) Error() string {
	return fmt.Sprintf("cannot remove %d of %s, only %d available", e.Requested, e.Name, e.Available)
}

// ItemExistsError reports an administrative create colliding with an
// existing stack.
type ItemExistsError struct {
	Name string
}

func (e ItemExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Name)
}

// ItemNotEditableError reports an administrative update of an item whose
// editable flag is unset.
type ItemNotEditableError struct {
	Name string
}

func (e ItemNotEditableError) Error() string {
	return fmt.Sprintf("%s cannot be edited", e.Name)
}
