package engine

import (
	"fmt"
	"strings"
)

// Direction selects which way the selected attributes move.
type Direction int

const (
	// Up moves attributes one position towards the start of the list.
	Up Direction = iota
	// Down moves attributes one position towards the end of the list.
	Down
)

// ParseDirection converts "up" or "down" into a Direction.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("unknown direction %q, expected up or down", value)
	}
}

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Phase is a state of a single Reorder call.
type Phase int

const (
	// PhaseIdle is the state before and after a call.
	PhaseIdle Phase = iota
	// PhaseValidatingSelection checks preconditions. Nothing is mutated yet.
	PhaseValidatingSelection
	// PhaseUnlockingTargets unlocks every locked user-defined attribute.
	PhaseUnlockingTargets
	// PhaseShiftingElements moves the selected attributes.
	PhaseShiftingElements
	// PhaseRelockingTargets locks the attributes that were unlocked.
	PhaseRelockingTargets
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidatingSelection:
		return "validating-selection"
	case PhaseUnlockingTargets:
		return "unlocking-targets"
	case PhaseShiftingElements:
		return "shifting-elements"
	case PhaseRelockingTargets:
		return "relocking-targets"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Strategy selects the backend used to move attributes.
type Strategy string

const (
	// StrategyAuto uses a direct move when the host offers one and the shuffle otherwise.
	StrategyAuto Strategy = "auto"
	// StrategyShuffle moves attributes with delete and undo only.
	StrategyShuffle Strategy = "shuffle"
	// StrategyNative requires a host that implements host.Mover.
	StrategyNative Strategy = "native"
)

// ParseStrategy converts a textual strategy. Empty means StrategyAuto.
func ParseStrategy(value string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(value))); s {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyShuffle, StrategyNative:
		return s, nil
	default:
		return "", fmt.Errorf("unknown strategy %q, expected auto, shuffle or native", value)
	}
}

// Validation selects how many selected names are checked before moving.
type Validation string

const (
	// ValidateFirst checks only the first selected name.
	ValidateFirst Validation = "first"
	// ValidateAll checks every selected name.
	ValidateAll Validation = "all"
)

// ParseValidation converts a textual validation mode. Empty means ValidateFirst.
func ParseValidation(value string) (Validation, error) {
	switch v := Validation(strings.ToLower(strings.TrimSpace(value))); v {
	case "":
		return ValidateFirst, nil
	case ValidateFirst, ValidateAll:
		return v, nil
	default:
		return "", fmt.Errorf("unknown validation mode %q, expected first or all", value)
	}
}
