package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type searcher interface {
	ChooseBestMove(state entity.State, player entity.Marker) (entity.Position, error)
}

// Session owns the live state of a single match.
type Session struct {
	engine  searcher
	starter entity.Marker
	started bool
	state   entity.State
}

// NewSession returns a session that accepts no moves until NewGame is called.
func NewSession(engine searcher, starter entity.Marker) *Session {
	return &Session{
		engine:  engine,
		starter: starter,
	}
}

// RestoreSession resumes a match from a stored state.
func RestoreSession(engine searcher, state entity.State) *Session {
	return &Session{
		engine:  engine,
		starter: state.Starter(),
		started: true,
		state:   state,
	}
}

func (that *Session) NewGame() {
	that.state = entity.NewState(that.starter)
	that.started = true
}

func (that *Session) Reset() {
	that.NewGame()
}

// AddMarkerAtRow reports whether the move was accepted.
func (that *Session) AddMarkerAtRow(row, col int) bool {
	return that.PlaceMarker(row, col) == nil
}

func (that *Session) PlaceMarker(row, col int) error {
	if !that.started {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameIsNotStarted)
	}

	if err := that.state.PlaceMarker(row, col); err != nil {
		return fmt.Errorf("failed to place marker: %w", err)
	}

	return nil
}

func (that *Session) CheckGameOver() bool {
	return that.state.IsOver()
}

// TriggerAITurnForPlayer lets the engine move for player, who must hold the turn.
func (that *Session) TriggerAITurnForPlayer(player entity.Marker) error {
	if err := that.validateAITurn(player); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPreconditionViolation, err)
	}

	move, err := that.engine.ChooseBestMove(that.state.Copy(), player)
	if err != nil {
		return fmt.Errorf("failed to choose move: %w", err)
	}

	if !that.AddMarkerAtRow(move.Row, move.Col) {
		return fmt.Errorf("%w: engine chose (%d, %d)", apperror.ErrInvalidMove, move.Row, move.Col)
	}

	return nil
}

// validateAITurn - checks that the engine may move for player.
func (that *Session) validateAITurn(player entity.Marker) error {
	switch {
	case !that.started:
		return apperror.ErrGameIsNotStarted
	case that.state.IsOver():
		return apperror.ErrGameFinished
	case that.state.Turn() != player:
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *Session) State() entity.State {
	return that.state
}

func (that *Session) Status() string {
	switch {
	case !that.started:
		return entity.StatusWaiting
	case that.state.IsOver():
		return entity.StatusFinished
	default:
		return entity.StatusOngoing
	}
}
