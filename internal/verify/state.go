package verify

// SessionState tracks one player's progress through the verification
// flow. Terminal states are everything from StateBound on; once a
// session reaches a terminal state no timer or packet may move it.
type SessionState int

const (
	StateJoining SessionState = iota
	StateAwaitingCode
	StatePolling
	StateBound
	StateRejected
	StateTimedOut
	StateError
	StateAlreadyVerified
)

func (s SessionState) String() string {
	switch s {
	case StateJoining:
		return "JOINING"
	case StateAwaitingCode:
		return "AWAITING_CODE"
	case StatePolling:
		return "POLLING"
	case StateBound:
		return "BOUND"
	case StateRejected:
		return "REJECTED"
	case StateTimedOut:
		return "TIMED_OUT"
	case StateError:
		return "ERROR"
	case StateAlreadyVerified:
		return "ALREADY_VERIFIED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the session has ended.
func (s SessionState) Terminal() bool {
	return s >= StateBound
}
