package minimax

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// ScoreBounds must stay above the deepest ply so that every decided line keeps a non-zero score.
const ScoreBounds = 10

// Result is the outcome of a root search.
type Result struct {
	Move  entity.Position
	Score int
	Nodes int
}

type Engine struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger.With("component", "minimax"),
	}
}

// ChooseBestMove returns the move with the best game-theoretic value for player.
func (that *Engine) ChooseBestMove(state entity.State, player entity.Marker) (entity.Position, error) {
	result, err := Search(state, player)
	if err != nil {
		return entity.Position{}, err
	}

	that.logger.Debug("move chosen",
		"player", player.String(),
		"row", result.Move.Row,
		"col", result.Move.Col,
		"score", result.Score,
		"nodes", result.Nodes,
	)

	return result.Move, nil
}

// Search runs a full minimax from state on behalf of player, who must be the one to move.
// Children are visited in row-major order and the first best move wins ties.
func Search(state entity.State, player entity.Marker) (Result, error) {
	switch {
	case state.IsOver():
		return Result{}, fmt.Errorf("%w: %w", apperror.ErrPreconditionViolation, apperror.ErrGameFinished)
	case !player.IsPlayer() || state.Turn() != player:
		return Result{}, fmt.Errorf("%w: %w: %s to move", apperror.ErrPreconditionViolation, apperror.ErrNotYourTurn, state.Turn())
	}

	result := Result{Score: math.MinInt}
	for _, move := range state.EmptyCells() {
		child, err := state.Apply(move)
		if err != nil {
			return Result{}, fmt.Errorf("failed to apply move: %w", err)
		}

		score := evaluate(child, player, 1, &result.Nodes)
		if score > result.Score {
			result.Score = score
			result.Move = move
		}
	}

	return result, nil
}

// evaluate scores state for player at the given depth below the root.
func evaluate(state entity.State, player entity.Marker, depth int, nodes *int) int {
	*nodes++

	switch state.Winner() {
	case entity.WinnerDraw:
		return 0
	case entity.WinnerO, entity.WinnerX:
		if state.Winner().Marker() == player {
			return ScoreBounds - depth
		}
		return depth - ScoreBounds
	}

	maximizing := state.Turn() == player

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, move := range state.EmptyCells() {
		child, err := state.Apply(move)
		if err != nil {
			continue
		}

		score := evaluate(child, player, depth+1, nodes)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}

	return best
}
