package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
	"github.com/rocketscienceinc/flowlink-backend/internal/flow"
)

type boardGenerator interface {
	Generate(seed int64, size, pairCount int) (*entity.Puzzle, error)
}

// SeedFunc supplies a fresh seed for every generation attempt.
type SeedFunc func() int64

// GameSession sequences generator, tracer and evaluator over the lifetime of one game.
// It is not safe for concurrent use: events of one game arrive as a single ordered stream.
type GameSession struct {
	logger    *slog.Logger
	generator boardGenerator
	seed      SeedFunc
	retries   int

	game *entity.Game
}

func New(logger *slog.Logger, generator boardGenerator, seed SeedFunc, retries int, game *entity.Game) *GameSession {
	if seed == nil {
		seed = rand.Int63 //nolint: gosec // puzzles are not secrets
	}

	if retries < 1 {
		retries = 1
	}

	return &GameSession{
		logger:    logger.With("component", "session", "gameID", game.ID),
		generator: generator,
		seed:      seed,
		retries:   retries,
		game:      game,
	}
}

func (that *GameSession) Game() *entity.Game {
	return that.game
}

// Start regenerates the board for the level, zeroes the move counter and activates the game.
func (that *GameSession) Start(level int) error {
	if err := that.replaceBoard(level); err != nil {
		return err
	}

	that.game.Status = entity.StatusOngoing

	return nil
}

// ChangeDifficulty swaps in a preview board for the level. The game stays inactive until Start.
func (that *GameSession) ChangeDifficulty(level int) error {
	if err := that.replaceBoard(level); err != nil {
		return err
	}

	that.game.Status = entity.StatusWaiting

	return nil
}

// OnPointerDown starts a gesture. Events are ignored while the game is not active.
func (that *GameSession) OnPointerDown(c entity.Coord) error {
	if !that.game.IsActive() {
		return nil
	}

	cancelled, err := that.tracer().PointerDown(c)
	if err != nil {
		return that.internalError("pointer down", err)
	}

	if cancelled != nil {
		that.logger.Debug("gesture cancelled by a new pointer down", "pairID", cancelled.PairID)
	}

	return nil
}

// OnPointerMove extends the active path; every newly filled cell counts as one move.
func (that *GameSession) OnPointerMove(c entity.Coord) error {
	if !that.game.IsActive() {
		return nil
	}

	filled, err := that.tracer().PointerMove(c)
	if err != nil {
		return that.internalError("pointer move", err)
	}

	if filled {
		that.game.MoveCount++
	}

	return nil
}

// OnPointerUp ends the gesture and reports its outcome.
func (that *GameSession) OnPointerUp() (entity.Outcome, error) {
	if !that.game.IsActive() {
		return entity.Outcome{Kind: entity.OutcomeNone, MoveCount: that.game.MoveCount}, nil
	}

	release, err := that.tracer().PointerUp()
	if err != nil {
		return entity.Outcome{}, that.internalError("pointer up", err)
	}

	outcome := entity.Outcome{
		Kind:      release.Kind,
		PairID:    release.PairID,
		MoveCount: that.game.MoveCount,
	}

	if outcome.Kind == entity.OutcomeNone {
		return outcome, nil
	}

	that.game.Outcome = outcome

	if outcome.IsWon() {
		that.game.Status = entity.StatusFinished
		that.logger.Info("game won", "moves", outcome.MoveCount)
	}

	return outcome, nil
}

// replaceBoard forces the tracer idle, then swaps in a new board. The old board stays in place
// when every generation attempt fails.
func (that *GameSession) replaceBoard(level int) error {
	size, err := entity.BoardSizeForLevel(level)
	if err != nil {
		return err
	}

	if that.game.Board != nil {
		if _, err = that.tracer().Cancel(); err != nil {
			return that.internalError("cancel gesture", err)
		}
	}

	puzzle, err := that.generate(size, entity.PairCountForSize(size))
	if err != nil {
		return err
	}

	that.game.ReplaceBoard(level, puzzle.Board)
	that.logger.Debug("board replaced", "level", level, "size", size, "pairs", len(puzzle.Board.Pairs))

	return nil
}

func (that *GameSession) generate(size, pairCount int) (*entity.Puzzle, error) {
	var lastErr error

	for attempt := 1; attempt <= that.retries; attempt++ {
		puzzle, err := that.generator.Generate(that.seed(), size, pairCount)
		if err == nil {
			return puzzle, nil
		}

		if !errors.Is(err, apperror.ErrGeneration) {
			return nil, fmt.Errorf("failed to generate board: %w", err)
		}

		lastErr = err
		that.logger.Warn("board generation failed, retrying", "attempt", attempt, "error", err)
	}

	return nil, fmt.Errorf("failed to generate board after %d attempts: %w", that.retries, lastErr)
}

func (that *GameSession) tracer() *flow.Tracer {
	return flow.NewTracer(that.game.Board, &that.game.Trace)
}

func (that *GameSession) internalError(op string, err error) error {
	that.logger.Error("board consistency violated", "op", op, "error", err)

	return fmt.Errorf("failed to handle %s: %w", op, err)
}
