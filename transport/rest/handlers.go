package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/transport"
)

var errInvalidPayload = errors.New("invalid payload")

type gameUseCase interface {
	NewGame(ctx context.Context, human entity.Marker) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type response struct {
	Game  *transport.GameResponse `json:"game,omitempty"`
	Error string                  `json:"error,omitempty"`
}

type handlers struct {
	logger *slog.Logger
	uGame  gameUseCase
}

func newHandlers(logger *slog.Logger, uGame gameUseCase) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req transport.NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, http.StatusBadRequest, errInvalidPayload, nil)
		return
	}

	human, err := entity.ParseMarker(req.Human)
	if err != nil {
		that.writeError(w, transport.HTTPStatus(err), err, nil)
		return
	}

	game, err := that.uGame.NewGame(r.Context(), human)
	if err != nil {
		that.writeError(w, transport.HTTPStatus(err), err, game)
		return
	}

	that.writeJSON(w, http.StatusCreated, response{Game: transport.NewGameResponse(game)})
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	that.writeResult(w, game, err)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req transport.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, errInvalidPayload, nil)
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), req.Row, req.Col)
	that.writeResult(w, game, err)
}

func (that *handlers) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.ResetGame(r.Context(), chi.URLParam(r, "id"))
	that.writeResult(w, game, err)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, transport.HTTPStatus(err), err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeResult(w http.ResponseWriter, game *entity.Game, err error) {
	if err != nil {
		that.writeError(w, transport.HTTPStatus(err), err, game)
		return
	}

	that.writeJSON(w, http.StatusOK, response{Game: transport.NewGameResponse(game)})
}

// writeError - the game, when known, is sent along so the client can redraw the board.
func (that *handlers) writeError(w http.ResponseWriter, status int, err error, game *entity.Game) {
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, response{Game: transport.NewGameResponse(game), Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
