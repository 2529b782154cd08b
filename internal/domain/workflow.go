package domain

// State is the lifecycle of a single analysis run.
// Idle -> Fetching -> Scoring -> Done, with Failed reachable from
// Fetching and Scoring. Done and Failed are terminal; a new submission
// starts a fresh run and never touches an in-flight one.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateScoring  State = "scoring"
	StateDone     State = "done"
	StateFailed   State = "failed"
)

// Terminal reports whether the state ends the run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
