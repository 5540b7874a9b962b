package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Wallet errors
	ErrMsgInvalidAmount        = "amount must be positive"
	ErrMsgInsufficientBalance  = "insufficient balance"
	ErrMsgDuplicateLedgerEntry = "ledger entry already exists"

	// Item errors
	ErrMsgItemNotFound = "item not found"
	ErrMsgNotASeed     = "item is not a seed"
	ErrMsgNotAPack     = "item is not a seed pack"
	ErrMsgNoValidPrice = "item has no valid price"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgNotOwned             = "cannot remove items not in inventory"
	ErrMsgPackNotOwned         = "pack not owned"
	ErrMsgSeedNotUnlocked      = "seed not unlocked"

	// Pack errors
	ErrMsgInvalidPackConfiguration = "invalid pack configuration"

	// Garden errors
	ErrMsgPlotOutOfBounds = "plot out of bounds"
	ErrMsgPlotOccupied    = "plot is already occupied"
	ErrMsgPlotEmpty       = "plot is empty"
	ErrMsgPlotNotFound    = "plot not found"
	ErrMsgPlantNotFound   = "plant not found"

	// Timer errors
	ErrMsgAlreadyRunning   = "a session is already running"
	ErrMsgNotRunning       = "session is not running"
	ErrMsgSubjectRequired  = "subject is required for study sessions"
	ErrMsgSubjectNotOwned  = "subject not owned by user"
	ErrMsgSessionNotFound  = "session not found or not owned"
	ErrMsgInvalidTimerMode = "invalid timer mode"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Wallet errors
	ErrInvalidAmount        = errors.New(ErrMsgInvalidAmount)
	ErrInsufficientBalance  = errors.New(ErrMsgInsufficientBalance)
	ErrDuplicateLedgerEntry = errors.New(ErrMsgDuplicateLedgerEntry)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrNotASeed     = errors.New(ErrMsgNotASeed)
	ErrNotAPack     = errors.New(ErrMsgNotAPack)
	ErrNoValidPrice = errors.New(ErrMsgNoValidPrice)

	// Inventory errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrNotOwned             = errors.New(ErrMsgNotOwned)
	ErrPackNotOwned         = errors.New(ErrMsgPackNotOwned)
	ErrSeedNotUnlocked      = errors.New(ErrMsgSeedNotUnlocked)

	// Pack errors
	ErrInvalidPackConfiguration = errors.New(ErrMsgInvalidPackConfiguration)

	// Garden errors
	ErrPlotOutOfBounds = errors.New(ErrMsgPlotOutOfBounds)
	ErrPlotOccupied    = errors.New(ErrMsgPlotOccupied)
	ErrPlotEmpty       = errors.New(ErrMsgPlotEmpty)
	ErrPlotNotFound    = errors.New(ErrMsgPlotNotFound)
	ErrPlantNotFound   = errors.New(ErrMsgPlantNotFound)

	// Timer errors
	ErrAlreadyRunning   = errors.New(ErrMsgAlreadyRunning)
	ErrNotRunning       = errors.New(ErrMsgNotRunning)
	ErrSubjectRequired  = errors.New(ErrMsgSubjectRequired)
	ErrSubjectNotOwned  = errors.New(ErrMsgSubjectNotOwned)
	ErrSessionNotFound  = errors.New(ErrMsgSessionNotFound)
	ErrInvalidTimerMode = errors.New(ErrMsgInvalidTimerMode)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// AlreadyRunningError is returned when a user tries to start a session while
// another one is still inside its grace window. It carries the running
// session id so clients can resume it.
type AlreadyRunningError struct {
	SessionID string
}

func (e AlreadyRunningError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMsgAlreadyRunning, e.SessionID)
}

// Is lets errors.Is(err, ErrAlreadyRunning) match.
func (e AlreadyRunningError) Is(target error) bool {
	return target == ErrAlreadyRunning
}
