package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	OutcomeNone          = ""
	OutcomeConnected     = "connected"
	OutcomeFailedAttempt = "failed_attempt"
	OutcomeWon           = "won"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Outcome is what a gesture produced, reported to the presentation layer.
type Outcome struct {
	Kind      string `json:"kind"`
	PairID    int    `json:"pair_id,omitempty"`
	MoveCount int    `json:"move_count"`
}

func (that Outcome) IsWon() bool {
	return that.Kind == OutcomeWon
}

func (that Outcome) IsFailedAttempt() bool {
	return that.Kind == OutcomeFailedAttempt
}

// Game is a single-player play session: the board it owns, the tracer state and the move counter.
type Game struct {
	ID        string  `json:"id"`
	Level     int     `json:"level"`
	BoardSize int     `json:"board_size"`
	MoveCount int     `json:"move_count"`
	Status    string  `json:"status"`
	Board     *Board  `json:"board"`
	Trace     Trace   `json:"trace"`
	Outcome   Outcome `json:"outcome"`
}

// NewGame returns an inactive game with no board yet.
func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Level:  DefaultLevel,
		Status: StatusWaiting,
		Trace:  IdleTrace(),
	}
}

// ReplaceBoard swaps in a freshly generated board for the given level and resets the counter.
// The trace must already be idle.
func (that *Game) ReplaceBoard(level int, board *Board) {
	that.Level = level
	that.BoardSize = board.Size
	that.Board = board
	that.MoveCount = 0
	that.Trace = IdleTrace()
	that.Outcome = Outcome{}
}

func (that *Game) IsActive() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsActive():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
