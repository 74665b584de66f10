package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
	"github.com/rocketscienceinc/flowlink-backend/internal/generator"
)

// recordingGenerator wraps the real generator and keeps the last puzzle it produced.
type recordingGenerator struct {
	gen  *generator.Generator
	last *entity.Puzzle
}

func (that *recordingGenerator) Generate(seed int64, size, pairCount int) (*entity.Puzzle, error) {
	puzzle, err := that.gen.Generate(seed, size, pairCount)
	if err == nil {
		that.last = puzzle
	}
	return puzzle, err
}

// failingGenerator always fails with the given error.
type failingGenerator struct {
	err   error
	calls int
}

func (that *failingGenerator) Generate(int64, int, int) (*entity.Puzzle, error) {
	that.calls++
	return nil, that.err
}

// fixedGenerator always hands out a copy of the same board.
type fixedGenerator struct {
	board *entity.Board
}

func (that *fixedGenerator) Generate(int64, int, int) (*entity.Puzzle, error) {
	return &entity.Puzzle{Board: that.board.Clone()}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func counterSeed() SeedFunc {
	var seed int64
	return func() int64 {
		seed++
		return seed
	}
}

func newTestSession(t *testing.T) (*GameSession, *recordingGenerator) {
	t.Helper()

	gen := &recordingGenerator{gen: generator.New(64)}
	return New(newTestLogger(), gen, counterSeed(), 3, entity.NewGame("g1")), gen
}

// play feeds one full gesture along cells and returns its outcome.
func play(t *testing.T, session *GameSession, cells []entity.Coord) entity.Outcome {
	t.Helper()

	require.NoError(t, session.OnPointerDown(cells[0]))
	for _, c := range cells[1:] {
		require.NoError(t, session.OnPointerMove(c))
	}

	outcome, err := session.OnPointerUp()
	require.NoError(t, err)

	return outcome
}

func TestGameSession_Start(t *testing.T) {
	t.Run("Start activates a fresh board", func(t *testing.T) {
		// Given: a new session
		session, _ := newTestSession(t)

		// When: the game is started at level 2
		err := session.Start(2)

		// Then: the board is 6x6, the counter is zero and the game is active
		require.NoError(t, err)

		game := session.Game()
		assert.True(t, game.IsActive())
		assert.Equal(t, 6, game.BoardSize)
		assert.Equal(t, 6, game.Board.Size)
		assert.Len(t, game.Board.Pairs, 6)
		assert.Zero(t, game.MoveCount)
		assert.True(t, game.Trace.IsIdle())
	})

	t.Run("Invalid level is rejected", func(t *testing.T) {
		session, _ := newTestSession(t)

		err := session.Start(6)

		require.ErrorIs(t, err, apperror.ErrInvalidLevel)
		assert.True(t, session.Game().IsWaiting())
	})

	t.Run("Generation failures are retried then surfaced without touching the game", func(t *testing.T) {
		// Given: a session whose generator always fails
		gen := &failingGenerator{err: apperror.ErrGeneration}
		session := New(newTestLogger(), gen, counterSeed(), 4, entity.NewGame("g1"))

		// When: the game is started
		err := session.Start(1)

		// Then: every retry was used, the error surfaces and the game was never initialized
		require.ErrorIs(t, err, apperror.ErrGeneration)
		assert.Equal(t, 4, gen.calls)
		assert.True(t, session.Game().IsWaiting())
		assert.Nil(t, session.Game().Board)
	})

	t.Run("Restart while tracing discards the gesture first", func(t *testing.T) {
		// Given: a started game with a gesture in progress
		session, gen := newTestSession(t)
		require.NoError(t, session.Start(1))

		oldBoard := session.Game().Board
		before := oldBoard.Clone()
		path := gen.last.Solution[1]
		require.NoError(t, session.OnPointerDown(path[0]))
		require.NoError(t, session.OnPointerMove(path[1]))
		require.Equal(t, 1, session.Game().MoveCount)

		// When: the game is restarted
		require.NoError(t, session.Start(1))

		// Then: the old gesture was undone, the board replaced and the counter reset
		assert.Equal(t, before, oldBoard)
		assert.NotSame(t, oldBoard, session.Game().Board)
		assert.True(t, session.Game().Trace.IsIdle())
		assert.Zero(t, session.Game().MoveCount)
	})

	t.Run("Difficulty change previews a board without activating it", func(t *testing.T) {
		session, _ := newTestSession(t)
		require.NoError(t, session.Start(1))

		require.NoError(t, session.ChangeDifficulty(5))

		game := session.Game()
		assert.True(t, game.IsWaiting())
		assert.Equal(t, 9, game.BoardSize)
		assert.Equal(t, 5, game.Level)
	})
}

func TestGameSession_Gestures(t *testing.T) {
	t.Run("Events are ignored before the game starts", func(t *testing.T) {
		// Given: a session with a preview board
		session, gen := newTestSession(t)
		require.NoError(t, session.ChangeDifficulty(1))
		before := session.Game().Board.Clone()

		// When: a whole gesture is played
		outcome := play(t, session, gen.last.Solution[1])

		// Then: nothing happened
		assert.Equal(t, entity.OutcomeNone, outcome.Kind)
		assert.Equal(t, before, session.Game().Board)
		assert.Zero(t, session.Game().MoveCount)
	})

	t.Run("A gesture filling k cells costs k moves whatever its outcome", func(t *testing.T) {
		// Given: a started game
		session, gen := newTestSession(t)
		require.NoError(t, session.Start(1))
		path := gen.last.Solution[1]
		interior := len(path) - 2

		// When: the pair's path is drawn but released one cell short
		outcome := play(t, session, path[:len(path)-1])

		// Then: the attempt failed, its cells were reset, and the moves were still spent
		assert.Equal(t, entity.OutcomeFailedAttempt, outcome.Kind)
		assert.Equal(t, interior, outcome.MoveCount)
		assert.Equal(t, interior, session.Game().MoveCount)
		for _, c := range path[1 : len(path)-1] {
			assert.True(t, session.Game().Board.IsEmpty(c))
		}

		// When: the full path is drawn
		outcome = play(t, session, path)

		// Then: the pair connects and the counter grows by the same amount again
		assert.Equal(t, entity.OutcomeConnected, outcome.Kind)
		assert.Equal(t, 2*interior, session.Game().MoveCount)
		assert.True(t, session.Game().IsActive())
	})

	t.Run("Connecting a pair counts only the cells it filled", func(t *testing.T) {
		// Given: a started 5x5 game with pair 1 at (0,0)-(2,2) and pair 2 at (4,0)-(4,4)
		board := entity.NewBoard(5)
		require.NoError(t, board.AddPair(entity.Pair{ID: 1, Color: "red", A: entity.Coord{Row: 0, Col: 0}, B: entity.Coord{Row: 2, Col: 2}}))
		require.NoError(t, board.AddPair(entity.Pair{ID: 2, Color: "blue", A: entity.Coord{Row: 4, Col: 0}, B: entity.Coord{Row: 4, Col: 4}}))

		session := New(newTestLogger(), &fixedGenerator{board: board}, counterSeed(), 1, entity.NewGame("g1"))
		require.NoError(t, session.Start(1))

		// When: down(0,0), move(0,1), move(1,1), move(2,1), move(2,2), up()
		outcome := play(t, session, []entity.Coord{
			{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
		})

		// Then: the pair connects with three moves and the unfilled board keeps the game going
		assert.Equal(t, entity.OutcomeConnected, outcome.Kind)
		assert.Equal(t, 3, outcome.MoveCount)
		assert.Equal(t, 3, session.Game().MoveCount)
		assert.True(t, session.Game().IsActive())
	})

	t.Run("Replaying the generated solution wins the game", func(t *testing.T) {
		// Given: a started 5x5 game
		session, gen := newTestSession(t)
		require.NoError(t, session.Start(1))
		board := session.Game().Board

		// When: every pair is connected along the generating path
		var outcome entity.Outcome
		for _, pair := range board.Pairs {
			outcome = play(t, session, gen.last.Solution[pair.ID])
		}

		// Then: the last gesture wins with one move per interior cell
		assert.Equal(t, entity.OutcomeWon, outcome.Kind)
		assert.Equal(t, 25-2*len(board.Pairs), outcome.MoveCount)
		assert.True(t, board.IsFull())
		assert.True(t, session.Game().IsFinished())
		assert.Equal(t, outcome, session.Game().Outcome)

		// Then: the finished game ignores further input
		require.NoError(t, session.OnPointerDown(gen.last.Solution[1][0]))
		assert.True(t, session.Game().Trace.IsIdle())
	})

	t.Run("Endpoints keep their pair through any gesture", func(t *testing.T) {
		// Given: a started game
		session, gen := newTestSession(t)
		require.NoError(t, session.Start(1))
		board := session.Game().Board

		// When: each pair scribbles along another pair's path
		for _, pair := range board.Pairs {
			other := gen.last.Solution[pair.ID%len(board.Pairs)+1]
			play(t, session, append([]entity.Coord{pair.A}, other...))
		}

		// Then: every endpoint still reports its own pair
		for _, pair := range board.Pairs {
			assert.Equal(t, pair.ID, board.CellAt(pair.A).PairID)
			assert.Equal(t, pair.ID, board.CellAt(pair.B).PairID)
		}
	})
}
