package flow

import (
	"fmt"

	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

// Release is the result of ending a gesture.
type Release struct {
	Kind   string
	PairID int
}

// Tracer drives the Idle/Tracing state machine of a game's trace against its board.
type Tracer struct {
	board *entity.Board
	trace *entity.Trace
}

func NewTracer(board *entity.Board, trace *entity.Trace) *Tracer {
	return &Tracer{
		board: board,
		trace: trace,
	}
}

// PointerDown starts a gesture on an occupied cell. A gesture already in progress is cancelled
// first: its writes are reset as for an incomplete path, and the cancelled path is returned.
// Pressing an empty cell leaves the tracer idle.
func (that *Tracer) PointerDown(c entity.Coord) (*entity.Path, error) {
	cancelled, err := that.Cancel()
	if err != nil {
		return nil, err
	}

	cell := that.board.CellAt(c)
	if cell == nil {
		return cancelled, nil
	}

	*that.trace = entity.TracingTrace(entity.NewPath(c, cell.PairID, cell.Color))

	return cancelled, nil
}

// PointerMove extends the active path onto c when c is adjacent to the path's last cell, not yet on
// the path, and empty or owned by the path's pair. Anything else is ignored. filled is true when an
// empty cell was claimed, which is what counts as a move.
func (that *Tracer) PointerMove(c entity.Coord) (bool, error) {
	path, ok := that.trace.ActivePath()
	if !ok {
		return false, nil
	}

	if !that.canExtend(path, c) {
		return false, nil
	}

	filled := that.board.IsEmpty(c)
	if filled {
		if err := that.board.Place(c, path.PairID, path.Color); err != nil {
			return false, fmt.Errorf("failed to extend path of pair %d: %w", path.PairID, err)
		}
		path.Filled = append(path.Filled, c)
	}

	path.Cells = append(path.Cells, c)

	return filled, nil
}

// PointerUp ends the gesture. A complete path stays on the board, an incomplete one is reset.
func (that *Tracer) PointerUp() (Release, error) {
	path, ok := that.trace.ActivePath()
	if !ok {
		return Release{Kind: entity.OutcomeNone}, nil
	}

	*that.trace = entity.IdleTrace()

	if !IsPathComplete(that.board, path) {
		if err := ResetPath(that.board, path); err != nil {
			return Release{}, err
		}

		return Release{Kind: entity.OutcomeFailedAttempt, PairID: path.PairID}, nil
	}

	if IsGameWon(that.board) {
		return Release{Kind: entity.OutcomeWon, PairID: path.PairID}, nil
	}

	return Release{Kind: entity.OutcomeConnected, PairID: path.PairID}, nil
}

// Cancel discards the gesture in progress without committing it. It returns the discarded path,
// or nil when the tracer was idle.
func (that *Tracer) Cancel() (*entity.Path, error) {
	path, ok := that.trace.ActivePath()
	if !ok {
		return nil, nil
	}

	*that.trace = entity.IdleTrace()

	if err := ResetPath(that.board, path); err != nil {
		return nil, err
	}

	return path, nil
}

func (that *Tracer) canExtend(path *entity.Path, c entity.Coord) bool {
	if !path.Last().Adjacent(c) || path.Contains(c) {
		return false
	}

	cell := that.board.CellAt(c)

	return cell == nil || (cell.PairID == path.PairID && cell.Color == path.Color)
}
