package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrCellOutOfRange   = errors.New("cell is out of range")
	ErrInvalidMarker    = errors.New("invalid marker")
	ErrGameNotFound     = errors.New("game not found")

	// ErrInvalidMove wraps every rejected placement, whatever the cause.
	ErrInvalidMove = errors.New("invalid move")

	// ErrPreconditionViolation is returned when the engine or an AI turn is requested for a state that does not allow it.
	ErrPreconditionViolation = errors.New("precondition violation")
)
