package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should be finished and inactive
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsActive())
	})

	t.Run("IsActive returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.True(t, game.IsActive())
	})

	t.Run("New game is waiting and idle", func(t *testing.T) {
		game := NewGame("123")

		assert.True(t, game.IsWaiting())
		assert.True(t, game.Trace.IsIdle())
		assert.Equal(t, DefaultLevel, game.Level)
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_ReplaceBoard(t *testing.T) {
	// Given: a game that has been played on
	game := NewGame("123")
	game.MoveCount = 7
	game.Outcome = Outcome{Kind: OutcomeFailedAttempt, MoveCount: 7}

	// When: the board is replaced for level 2
	board := NewBoard(6)
	game.ReplaceBoard(2, board)

	// Then: the counter and outcome are reset and the new geometry is recorded
	assert.Equal(t, 2, game.Level)
	assert.Equal(t, 6, game.BoardSize)
	assert.Same(t, board, game.Board)
	assert.Zero(t, game.MoveCount)
	assert.Equal(t, Outcome{}, game.Outcome)
}

func TestTrace_JSON(t *testing.T) {
	t.Run("Tracing state survives encoding", func(t *testing.T) {
		// Given: a game in the middle of a gesture
		game := NewGame("123")
		path := NewPath(Coord{0, 0}, 1, "red")
		path.Cells = append(path.Cells, Coord{0, 1})
		path.Filled = []Coord{{0, 1}}
		game.Trace = TracingTrace(path)

		// When: the game is encoded and decoded
		data, err := json.Marshal(game)
		require.NoError(t, err)

		var decoded Game
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: the active path is restored
		active, ok := decoded.Trace.ActivePath()
		require.True(t, ok)
		assert.Equal(t, path, active)
	})

	t.Run("Zero trace encodes as idle", func(t *testing.T) {
		data, err := json.Marshal(Trace{})

		require.NoError(t, err)
		assert.JSONEq(t, `{"state":"idle"}`, string(data))
	})

	t.Run("Rejects unknown state and tracing without path", func(t *testing.T) {
		var trace Trace

		assert.ErrorIs(t, json.Unmarshal([]byte(`{"state":"dragging"}`), &trace), ErrUnknownTraceState)
		assert.ErrorIs(t, json.Unmarshal([]byte(`{"state":"tracing"}`), &trace), ErrUnknownTraceState)
	})
}

func TestDifficulties(t *testing.T) {
	t.Run("Levels map onto board sizes", func(t *testing.T) {
		for level, want := range map[int]int{1: 5, 2: 6, 3: 7, 4: 8, 5: 9} {
			size, err := BoardSizeForLevel(level)

			require.NoError(t, err)
			assert.Equal(t, want, size)
		}
	})

	t.Run("Out of range level is rejected", func(t *testing.T) {
		_, err := BoardSizeForLevel(0)
		assert.ErrorIs(t, err, apperror.ErrInvalidLevel)

		_, err = BoardSizeForLevel(6)
		assert.ErrorIs(t, err, apperror.ErrInvalidLevel)
	})

	t.Run("Labels are localized with a Chinese fallback", func(t *testing.T) {
		assert.Equal(t, "中等", DifficultyLabel(3, LangZH))
		assert.Equal(t, "medium", DifficultyLabel(3, LangEN))
		assert.Equal(t, "超难", DifficultyLabel(5, "fr"))
		assert.Empty(t, DifficultyLabel(9, LangEN))
	})

	t.Run("Catalogue lists every level", func(t *testing.T) {
		difficulties := Difficulties(LangEN)

		require.Len(t, difficulties, MaxLevel)
		assert.Equal(t, Difficulty{Level: 1, BoardSize: 5, PairCount: 5, Label: "very easy"}, difficulties[0])
	})
}
