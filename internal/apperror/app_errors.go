package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidCell      = errors.New("invalid cell coordinate")
	ErrInvalidLevel     = errors.New("invalid difficulty level")

	// ErrInvalidPlacement means the board was asked to overwrite another pair's cell or clear an
	// endpoint. The tracer guards make this unreachable, so seeing it is an internal bug.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrGeneration means no solvable board could be produced within the retry bounds.
	ErrGeneration = errors.New("could not generate a solvable board")
)
