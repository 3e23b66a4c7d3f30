package core

// State is the measurement cycle state. Transitions are split between two
// actors: the edge capture callback advances ARMED and MEASURING, the poller
// owns every other transition. No other writer exists.
type State uint8

const (
	StateInit State = iota
	StateArmed
	StateBeginCaptured
	StateMeasuring
	StateEndCaptured
	StateDone
)

// String returns the state name for banners and diagnostics.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateArmed:
		return "armed"
	case StateBeginCaptured:
		return "begin-captured"
	case StateMeasuring:
		return "measuring"
	case StateEndCaptured:
		return "end-captured"
	case StateDone:
		return "done"
	}
	return "invalid"
}

// Edge is a signal transition direction on the capture pin.
type Edge uint8

const (
	EdgeRising Edge = iota
	EdgeFalling
)

// Opposite returns the other edge direction.
func (e Edge) Opposite() Edge {
	if e == EdgeRising {
		return EdgeFalling
	}
	return EdgeRising
}

// String returns the edge name for banners and diagnostics.
func (e Edge) String() string {
	if e == EdgeRising {
		return "rising"
	}
	return "falling"
}

// edgeAdvance returns the state entered when a qualifying edge fires in s,
// and whether an edge may advance s at all. Capture events move the cycle
// forward from exactly two states; everywhere else they are ignored.
func edgeAdvance(s State) (State, bool) {
	switch s {
	case StateArmed:
		return StateBeginCaptured, true
	case StateMeasuring:
		return StateEndCaptured, true
	}
	return s, false
}
