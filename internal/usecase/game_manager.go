package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type searcher interface {
	ChooseBestMove(state entity.State, player entity.Marker) (entity.Position, error)
}

// GameManager runs human-versus-engine games stored in gameRepo.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	engine   searcher
	starter  entity.Marker
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, engine searcher, starter entity.Marker) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		gameRepo: gameRepo,
		engine:   engine,
		starter:  starter,
	}
}

// NewGame - creates a game for the human playing the given marker, Empty picks one at random.
// The engine moves first when it holds the starting marker.
func (that *GameManager) NewGame(ctx context.Context, human entity.Marker) (*entity.Game, error) {
	if human == entity.Empty {
		human, _ = entity.GetRandomMarks()
	}

	if !human.IsPlayer() {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidMarker, human)
	}

	game := entity.NewGame(uuid.NewString(), human, that.starter)

	session := tictactoe.NewSession(that.engine, that.starter)
	session.NewGame()

	if err := that.playBotTurn(game, session); err != nil {
		return nil, fmt.Errorf("failed to play first turn: %w", err)
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "gameID", game.ID, "human", game.Human.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human move and lets the engine answer while the game is still open.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	if !game.IsHumanTurn() {
		return game, apperror.ErrNotYourTurn
	}

	session := tictactoe.RestoreSession(that.engine, game.State)
	if err = session.PlaceMarker(row, col); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.playBotTurn(game, session); err != nil {
		return nil, fmt.Errorf("failed to play bot turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.State.Winner().String())
	}

	return game, nil
}

// ResetGame - starts the same game over on an empty board.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	session := tictactoe.RestoreSession(that.engine, game.State)
	session.Reset()

	if err = that.playBotTurn(game, session); err != nil {
		return nil, fmt.Errorf("failed to play first turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// playBotTurn - lets the engine move when it holds the turn and copies the session state into game.
func (that *GameManager) playBotTurn(game *entity.Game, session *tictactoe.Session) error {
	game.State = session.State()
	if !game.IsBotTurn() {
		return nil
	}

	if err := session.TriggerAITurnForPlayer(game.Bot); err != nil {
		if errors.Is(err, apperror.ErrPreconditionViolation) {
			that.logger.Error("engine turn requested out of order", "gameID", game.ID, "error", err)
		}

		return err
	}

	game.State = session.State()

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
