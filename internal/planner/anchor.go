package planner

import "strings"

// Anchor is a named timing reference the resolver turns into clock times:
// the three fixed daily anchors, plus two relative to training slots.
type Anchor string

const (
	AnchorMorning     Anchor = "morning"
	AnchorNoon        Anchor = "noon"
	AnchorEvening     Anchor = "evening"
	AnchorPreWorkout  Anchor = "pre_workout"
	AnchorPostWorkout Anchor = "post_workout"
)

func ParseAnchor(s string) (Anchor, bool) {
	switch Anchor(strings.TrimSpace(strings.ToLower(s))) {
	case AnchorMorning:
		return AnchorMorning, true
	case AnchorNoon:
		return AnchorNoon, true
	case AnchorEvening:
		return AnchorEvening, true
	case AnchorPreWorkout:
		return AnchorPreWorkout, true
	case AnchorPostWorkout:
		return AnchorPostWorkout, true
	default:
		return "", false
	}
}

// NormalizeAnchors parses raw anchor labels, dropping unknown ones and
// duplicates while preserving order. An empty result falls back to morning,
// matching the client's behavior for rules saved without an anchor.
func NormalizeAnchors(raw []string) []Anchor {
	seen := make(map[Anchor]bool, len(raw))
	out := make([]Anchor, 0, len(raw))
	for _, s := range raw {
		a, ok := ParseAnchor(s)
		if !ok || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	if len(out) == 0 {
		return []Anchor{AnchorMorning}
	}
	return out
}
