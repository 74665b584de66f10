package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

const (
	traceIdle    = "idle"
	traceTracing = "tracing"
)

var ErrUnknownTraceState = errors.New("unknown trace state")

// Path is the path being drawn during a gesture.
type Path struct {
	PairID int     `json:"pair_id"`
	Color  string  `json:"color"`
	Cells  []Coord `json:"cells"`
	// Filled lists the cells this gesture turned from empty into owned, in order.
	Filled []Coord `json:"filled,omitempty"`
}

func NewPath(start Coord, pairID int, color string) *Path {
	return &Path{
		PairID: pairID,
		Color:  color,
		Cells:  []Coord{start},
	}
}

func (that *Path) First() Coord {
	return that.Cells[0]
}

func (that *Path) Last() Coord {
	return that.Cells[len(that.Cells)-1]
}

func (that *Path) Contains(c Coord) bool {
	return slices.Contains(that.Cells, c)
}

// TraceState is either Idle or Tracing.
type TraceState interface {
	traceState()
}

type Idle struct{}

type Tracing struct {
	Path *Path
}

func (Idle) traceState()    {}
func (Tracing) traceState() {}

// Trace holds the tracer state of a game. The zero value is Idle.
type Trace struct {
	state TraceState
}

func IdleTrace() Trace {
	return Trace{state: Idle{}}
}

func TracingTrace(path *Path) Trace {
	return Trace{state: Tracing{Path: path}}
}

func (that Trace) State() TraceState {
	if that.state == nil {
		return Idle{}
	}
	return that.state
}

// ActivePath returns the path being drawn, if any.
func (that Trace) ActivePath() (*Path, bool) {
	tracing, ok := that.State().(Tracing)
	if !ok {
		return nil, false
	}
	return tracing.Path, true
}

func (that Trace) IsIdle() bool {
	_, ok := that.State().(Idle)
	return ok
}

type traceJSON struct {
	State string `json:"state"`
	Path  *Path  `json:"path,omitempty"`
}

func (that Trace) MarshalJSON() ([]byte, error) {
	switch state := that.State().(type) {
	case Tracing:
		return json.Marshal(traceJSON{State: traceTracing, Path: state.Path})
	default:
		return json.Marshal(traceJSON{State: traceIdle})
	}
}

func (that *Trace) UnmarshalJSON(data []byte) error {
	var raw traceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal trace: %w", err)
	}

	switch raw.State {
	case traceIdle, "":
		*that = IdleTrace()
	case traceTracing:
		if raw.Path == nil || len(raw.Path.Cells) == 0 {
			return fmt.Errorf("%w: tracing without a path", ErrUnknownTraceState)
		}
		*that = TracingTrace(raw.Path)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTraceState, raw.State)
	}

	return nil
}
