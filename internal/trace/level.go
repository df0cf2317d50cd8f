package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota // no tracing
	LevelError               // only failed operations
	LevelPhase               // command boundaries
	LevelDetail              // dispatch decisions
	LevelDebug               // everything including kernels
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF", "":
		return LevelOff, nil
	case "error", "ERROR":
		return LevelError, nil
	case "phase", "PHASE":
		return LevelPhase, nil
	case "detail", "DETAIL":
		return LevelDetail, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit reports whether an event of the given scope passes this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeCommand
	case LevelDetail:
		return scope <= ScopeDispatch
	case LevelDebug:
		return true
	default:
		return false
	}
}

// ShouldEmitEvent is ShouldEmit plus failures, which LevelError always lets through.
func (l Level) ShouldEmitEvent(ev *Event) bool {
	if ev.Failed && l >= LevelError {
		return true
	}
	return l.ShouldEmit(ev.Scope)
}
