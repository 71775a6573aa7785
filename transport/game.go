package transport

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// GameResponse is the view of a game sent to clients.
type GameResponse struct {
	ID     string       `json:"id"`
	Human  string       `json:"human"`
	Bot    string       `json:"bot"`
	Status string       `json:"status"`
	State  entity.State `json:"state"`
}

func NewGameResponse(game *entity.Game) *GameResponse {
	if game == nil {
		return nil
	}

	return &GameResponse{
		ID:     game.ID,
		Human:  game.Human.String(),
		Bot:    game.Bot.String(),
		Status: game.Status(),
		State:  game.State,
	}
}

// TurnRequest is a human move.
type TurnRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewGameRequest picks the human marker, empty means random.
type NewGameRequest struct {
	Human string `json:"human"`
}

// HTTPStatus maps use case errors to response codes.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, apperror.ErrInvalidMarker):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
