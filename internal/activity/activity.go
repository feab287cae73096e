// Package activity turns the tail of an agent's session log into a coarse
// activity state for the orchestrator's status views.
package activity

import (
	"time"

	"github.com/dmochalinn/agent-orchestrator/pkg/jsonl"
)

// State is an agent's activity as inferred from its session log.
type State string

const (
	StateActive       State = "active"
	StateReady        State = "ready"
	StateWaitingInput State = "waiting_input"
	StateBlocked      State = "blocked"
	StateIdle         State = "idle"
	StateUnknown      State = "unknown"
)

// DefaultIdleThreshold is how long a log may go unmodified before the agent
// is considered idle.
const DefaultIdleThreshold = 5 * time.Minute

// stateByType maps the "type" of the newest record to a state. Types not
// listed here mean the agent is still working.
var stateByType = map[string]State{
	"user":               StateActive,
	"tool_use":           StateActive,
	"progress":           StateActive,
	"assistant":          StateReady,
	"summary":            StateReady,
	"result":             StateReady,
	"system":             StateReady,
	"permission_request": StateWaitingInput,
	"error":              StateBlocked,
}

// Classify derives a State from a tail entry. A nil entry (no usable log
// signal) is StateUnknown. Staleness wins over the record type.
func Classify(e *jsonl.Entry, now time.Time, idle time.Duration) State {
	if e == nil {
		return StateUnknown
	}
	if idle > 0 && now.Sub(e.ModifiedAt) > idle {
		return StateIdle
	}
	if !e.HasType {
		return StateActive
	}
	if s, ok := stateByType[e.LastType]; ok {
		return s
	}
	return StateActive
}
