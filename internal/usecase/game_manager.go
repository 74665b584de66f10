package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
	"github.com/rocketscienceinc/flowlink-backend/internal/session"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type boardGenerator interface {
	Generate(seed int64, size, pairCount int) (*entity.Puzzle, error)
}

// GameManager loads a game, applies one event through a GameSession and stores the result.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	generator boardGenerator
	seed      session.SeedFunc
	retries   int
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, generator boardGenerator, seed session.SeedFunc, retries int) *GameManager {
	return &GameManager{
		logger:    logger,
		gameRepo:  gameRepo,
		generator: generator,
		seed:      seed,
		retries:   retries,
	}
}

// NewGame creates an inactive game with a preview board for the level.
func (that *GameManager) NewGame(ctx context.Context, level int) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())

	if err := that.session(game).ChangeDifficulty(level); err != nil {
		return nil, fmt.Errorf("failed to prepare board: %w", err)
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// StartGame (re)starts a game on a fresh board for the level.
func (that *GameManager) StartGame(ctx context.Context, gameID string, level int) (*entity.Game, error) {
	return that.apply(ctx, gameID, func(gameSession *session.GameSession) error {
		return gameSession.Start(level)
	})
}

// ChangeDifficulty replaces the board with an inactive preview for the level.
func (that *GameManager) ChangeDifficulty(ctx context.Context, gameID string, level int) (*entity.Game, error) {
	return that.apply(ctx, gameID, func(gameSession *session.GameSession) error {
		return gameSession.ChangeDifficulty(level)
	})
}

func (that *GameManager) PointerDown(ctx context.Context, gameID string, cell entity.Coord) (*entity.Game, error) {
	return that.applyAt(ctx, gameID, cell, func(gameSession *session.GameSession) error {
		return gameSession.OnPointerDown(cell)
	})
}

func (that *GameManager) PointerMove(ctx context.Context, gameID string, cell entity.Coord) (*entity.Game, error) {
	return that.applyAt(ctx, gameID, cell, func(gameSession *session.GameSession) error {
		return gameSession.OnPointerMove(cell)
	})
}

// PointerUp ends the gesture and returns its outcome next to the updated game.
func (that *GameManager) PointerUp(ctx context.Context, gameID string) (*entity.Game, entity.Outcome, error) {
	var outcome entity.Outcome

	game, err := that.apply(ctx, gameID, func(gameSession *session.GameSession) error {
		var upErr error
		outcome, upErr = gameSession.OnPointerUp()
		return upErr
	})
	if err != nil {
		return nil, entity.Outcome{}, err
	}

	return game, outcome, nil
}

// DeleteGame drops a game, e.g. when its connection closes.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// applyAt rejects coordinates that are off the board before they reach the session.
func (that *GameManager) applyAt(ctx context.Context, gameID string, cell entity.Coord, event func(*session.GameSession) error) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.Board == nil || !game.Board.Contains(cell) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, cell)
	}

	return that.run(ctx, game, event)
}

func (that *GameManager) apply(ctx context.Context, gameID string, event func(*session.GameSession) error) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return that.run(ctx, game, event)
}

func (that *GameManager) run(ctx context.Context, game *entity.Game, event func(*session.GameSession) error) (*entity.Game, error) {
	if err := event(that.session(game)); err != nil {
		return nil, fmt.Errorf("failed to apply event: %w", err)
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) session(game *entity.Game) *session.GameSession {
	return session.New(that.logger, that.generator, that.seed, that.retries, game)
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
