package walkthrough

import (
	"fmt"
	"strings"
)

// Position is a placement hint for the tooltip relative to its target.
// It is a hint, not a guarantee: the placement engine falls back to
// automatic side selection or viewport centering when the hinted side
// does not fit.
type Position string

const (
	PosAuto        Position = ""
	PosTop         Position = "top"
	PosBottom      Position = "bottom"
	PosLeft        Position = "left"
	PosRight       Position = "right"
	PosTopLeft     Position = "top-left"
	PosTopRight    Position = "top-right"
	PosBottomLeft  Position = "bottom-left"
	PosBottomRight Position = "bottom-right"
	PosCenter      Position = "center"
)

// validPositions is the accepted vocabulary for step definitions.
var validPositions = map[Position]bool{
	PosAuto: true, PosTop: true, PosBottom: true, PosLeft: true,
	PosRight: true, PosTopLeft: true, PosTopRight: true,
	PosBottomLeft: true, PosBottomRight: true, PosCenter: true,
}

// Action describes how the user is expected to advance past a step.
type Action string

const (
	// ActionNone advances through the Next control or the right arrow.
	ActionNone Action = "none"
	// ActionClick means the user must interact with the highlighted
	// element itself, typically navigating away. Next/Back controls are
	// suppressed for these steps; skip remains available.
	ActionClick Action = "click"
	// ActionType means the step asks the user to type into the target.
	ActionType Action = "type"
)

// Step is one stop in a page's walkthrough. Steps are author-time data:
// immutable once loaded, ordered within their page.
type Step struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	// TargetID locates the on-screen element this step points at. Empty
	// means "no target": the tooltip is centered and nothing is
	// highlighted. The last step of a page is conventionally targetless.
	TargetID string   `yaml:"target,omitempty"`
	Position Position `yaml:"position,omitempty"`
	Offset   Offset   `yaml:"offset,omitempty"`
	Action   Action   `yaml:"action,omitempty"`
	// NavigationTarget describes where a click-action step leads, for
	// display in the tooltip.
	NavigationTarget string `yaml:"navigation_target,omitempty"`
}

// Targetless reports whether the step has no on-screen target.
func (s Step) Targetless() bool {
	return strings.TrimSpace(s.TargetID) == ""
}

// IsNavigation reports whether advancing this step requires the user to
// interact with the highlighted element rather than pressing Next.
func (s Step) IsNavigation() bool {
	return s.Action == ActionClick
}

// validate checks a single step definition.
func (s Step) validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("step has no id")
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("step %s: empty title", s.ID)
	}
	if !validPositions[s.Position] {
		return fmt.Errorf("step %s: invalid position %q", s.ID, s.Position)
	}
	switch s.Action {
	case "", ActionNone, ActionClick, ActionType:
	default:
		return fmt.Errorf("step %s: invalid action %q", s.ID, s.Action)
	}
	return nil
}
