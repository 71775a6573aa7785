package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, payload *RequestPayload) (*entity.Game, error) {
	human, err := entity.ParseMarker(payload.Human)
	if err != nil {
		return nil, fmt.Errorf("failed to parse marker: %w", err)
	}

	game, err := that.uGame.NewGame(ctx, human)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "gameID", game.ID)

	return game, nil
}

func (that *Server) handleState(ctx context.Context, payload *RequestPayload) (*entity.Game, error) {
	return that.uGame.GetGame(ctx, payload.GameID)
}

func (that *Server) handleTurn(ctx context.Context, payload *RequestPayload) (*entity.Game, error) {
	return that.uGame.MakeTurn(ctx, payload.GameID, payload.Row, payload.Col)
}

func (that *Server) handleReset(ctx context.Context, payload *RequestPayload) (*entity.Game, error) {
	return that.uGame.ResetGame(ctx, payload.GameID)
}
