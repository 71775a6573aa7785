package minimax

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	e = entity.Empty
	o = entity.O
	x = entity.X
)

func newTestEngine() *Engine {
	return New(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func mustFromGrid(t *testing.T, grid [entity.CellCount]entity.Marker, turn entity.Marker) entity.State {
	t.Helper()

	state, err := entity.FromGrid(grid, turn)
	require.NoError(t, err)

	return state
}

func TestEngine_ChooseBestMove(t *testing.T) {
	t.Run("Opening from the empty board is a corner or the center", func(t *testing.T) {
		// Given: an empty board with O to move
		state := entity.NewState(entity.O)

		// When: the engine searches for O
		result, err := Search(state, entity.O)
		require.NoError(t, err)

		// Then: the move is a corner or the center and the position is a draw
		corners := []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}, {Row: 1, Col: 1}}
		assert.Contains(t, corners, result.Move)
		assert.Equal(t, 0, result.Score)
	})

	t.Run("Completes an immediate win", func(t *testing.T) {
		// Given: O O _ / X X _ / _ _ _ with X to move
		state := mustFromGrid(t, [entity.CellCount]entity.Marker{
			o, o, e,
			x, x, e,
			e, e, e,
		}, entity.X)

		// When: the engine plays X
		move, err := newTestEngine().ChooseBestMove(state, entity.X)
		require.NoError(t, err)

		// Then: X completes the middle row
		assert.Equal(t, entity.Position{Row: 1, Col: 2}, move)
	})

	t.Run("Completes its own column when it is O's turn", func(t *testing.T) {
		// Given: O holds (0, 2) and (1, 2) and it is O's turn
		state := mustFromGrid(t, [entity.CellCount]entity.Marker{
			e, x, o,
			e, e, o,
			x, e, e,
		}, entity.O)

		// When: the engine plays O
		result, err := Search(state, entity.O)
		require.NoError(t, err)

		// Then: O wins at once
		assert.Equal(t, entity.Position{Row: 2, Col: 2}, result.Move)
		assert.Equal(t, ScoreBounds-1, result.Score)
	})

	t.Run("Blocks the column when it is X's turn", func(t *testing.T) {
		// Given: the same board with X to move
		state := mustFromGrid(t, [entity.CellCount]entity.Marker{
			e, x, o,
			e, e, o,
			x, e, e,
		}, entity.X)

		// When: the engine plays X
		move, err := newTestEngine().ChooseBestMove(state, entity.X)
		require.NoError(t, err)

		// Then: X blocks O's column
		assert.Equal(t, entity.Position{Row: 2, Col: 2}, move)
	})

	t.Run("Prefers the sooner win", func(t *testing.T) {
		// Given: X can win now on the top row or set up a later win
		state := mustFromGrid(t, [entity.CellCount]entity.Marker{
			x, x, e,
			o, o, e,
			x, o, e,
		}, entity.X)

		// When: the engine plays X
		result, err := Search(state, entity.X)
		require.NoError(t, err)

		// Then: it takes the immediate win
		assert.Equal(t, entity.Position{Row: 0, Col: 2}, result.Move)
		assert.Equal(t, ScoreBounds-1, result.Score)
	})

	t.Run("Takes a win instead of blocking", func(t *testing.T) {
		// Given: O has open lines but X can finish the bottom row
		state := mustFromGrid(t, [entity.CellCount]entity.Marker{
			o, e, o,
			e, o, e,
			x, e, x,
		}, entity.X)

		// When: the engine plays X
		result, err := Search(state, entity.X)
		require.NoError(t, err)

		// Then: X wins outright since the bottom row is open
		assert.Equal(t, entity.Position{Row: 2, Col: 1}, result.Move)
		assert.Positive(t, result.Score)
	})

	t.Run("Never chooses an occupied cell", func(t *testing.T) {
		state := mustFromGrid(t, [entity.CellCount]entity.Marker{
			x, o, x,
			e, o, e,
			e, e, e,
		}, entity.X)

		move, err := newTestEngine().ChooseBestMove(state, entity.X)
		require.NoError(t, err)

		assert.Equal(t, entity.Empty, state.Cell(move.Row, move.Col))
		assert.Equal(t, entity.Position{Row: 2, Col: 1}, move)
	})
}

func TestSearch_Losing(t *testing.T) {
	// Given: one board where X must block the diagonal, one where O already has two open lines
	state := mustFromGrid(t, [entity.CellCount]entity.Marker{
		o, x, e,
		e, o, e,
		e, x, e,
	}, entity.X)
	forked := mustFromGrid(t, [entity.CellCount]entity.Marker{
		o, o, e,
		o, x, e,
		e, e, x,
	}, entity.X)

	// When: the engine searches for X
	result, err := Search(state, entity.X)
	require.NoError(t, err)
	forced, err := Search(forked, entity.X)
	require.NoError(t, err)

	// Then: X blocks on the first board and loses on the next move on the second
	assert.Equal(t, entity.Position{Row: 2, Col: 2}, result.Move)
	assert.Equal(t, -(ScoreBounds - 2), forced.Score)
	assert.Equal(t, entity.Position{Row: 0, Col: 2}, forced.Move)
}

func TestSearch_Preconditions(t *testing.T) {
	t.Run("Terminal state", func(t *testing.T) {
		// Given: a drawn board
		state := mustFromGrid(t, [entity.CellCount]entity.Marker{
			o, x, o,
			o, x, x,
			x, o, o,
		}, entity.X)

		// When: the engine is asked for a move
		_, err := Search(state, entity.X)

		// Then: the precondition violation is reported
		require.ErrorIs(t, err, apperror.ErrPreconditionViolation)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Wrong player", func(t *testing.T) {
		_, err := newTestEngine().ChooseBestMove(entity.NewState(entity.O), entity.X)

		require.ErrorIs(t, err, apperror.ErrPreconditionViolation)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Empty marker", func(t *testing.T) {
		_, err := Search(entity.NewState(entity.O), entity.Empty)

		require.ErrorIs(t, err, apperror.ErrPreconditionViolation)
	})
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	state := entity.NewState(entity.X)
	require.NoError(t, state.PlaceMarker(1, 1))
	snapshot := state.Copy()

	_, err := Search(state, entity.O)
	require.NoError(t, err)

	assert.Equal(t, snapshot, state)
}

func TestSearch_Deterministic(t *testing.T) {
	state := mustFromGrid(t, [entity.CellCount]entity.Marker{
		x, e, e,
		e, e, e,
		e, e, e,
	}, entity.O)

	first, err := Search(state, entity.O)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := Search(state, entity.O)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearch_SelfPlayIsDraw(t *testing.T) {
	engine := newTestEngine()

	for _, starter := range []entity.Marker{entity.O, entity.X} {
		// Given: an empty board
		state := entity.NewState(starter)

		// When: the engine plays both sides
		for !state.IsOver() {
			move, err := engine.ChooseBestMove(state, state.Turn())
			require.NoError(t, err)
			require.NoError(t, state.PlaceMarker(move.Row, move.Col))
		}

		// Then: optimal play ends in a draw
		assert.Equal(t, entity.WinnerDraw, state.Winner())
		assert.Equal(t, 0, state.RemainingMoves())
	}
}

func TestSearch_NeverLosesAgainstAnyReply(t *testing.T) {
	engine := newTestEngine()

	// every human reply is tried against the engine playing O first
	var explore func(state entity.State)
	explore = func(state entity.State) {
		if state.IsOver() {
			assert.NotEqual(t, entity.WinnerX, state.Winner(), "engine lost:\n%v", state.Board())
			return
		}

		if state.Turn() == entity.O {
			move, err := engine.ChooseBestMove(state, entity.O)
			require.NoError(t, err)

			next, err := state.Apply(move)
			require.NoError(t, err)
			explore(next)

			return
		}

		for _, move := range state.EmptyCells() {
			next, err := state.Apply(move)
			require.NoError(t, err)
			explore(next)
		}
	}

	explore(entity.NewState(entity.O))
}
