package planner

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/suppstack/suppstack-backend/internal/types"
)

// ResolveAnchors converts anchor labels into concrete instants on day.
// Fixed anchors (morning/noon/evening) yield exactly one instant each from
// the user's preferred clock times. Workout anchors yield one instant per
// training slot on that day, shifted by the configured offset; no slots
// means no instants. The result is de-duplicated by exact instant and
// sorted ascending. Pure and deterministic, which is what keeps rule
// regeneration idempotent.
func ResolveAnchors(day time.Time, anchors []Anchor, prefs types.TimePreferences, todaysSlots []types.TrainingSlot) []time.Time {
	var out []time.Time
	for _, a := range anchors {
		switch a {
		case AnchorMorning:
			out = append(out, atClock(day, prefs.MorningTime, "08:00"))
		case AnchorNoon:
			out = append(out, atClock(day, prefs.NoonTime, "12:30"))
		case AnchorEvening:
			out = append(out, atClock(day, prefs.EveningTime, "19:00"))
		case AnchorPreWorkout:
			for _, s := range todaysSlots {
				if t, ok := slotClock(day, s.Start); ok {
					out = append(out, t.Add(time.Duration(prefs.PreWorkoutOffsetMin)*time.Minute))
				}
			}
		case AnchorPostWorkout:
			for _, s := range todaysSlots {
				if t, ok := slotClock(day, s.End); ok {
					out = append(out, t.Add(time.Duration(prefs.PostWorkoutOffsetMin)*time.Minute))
				}
			}
		}
	}
	return dedupeSorted(out)
}

// atClock combines day's date with an "HH:MM" preference, falling back to
// fallback when the stored preference does not parse.
func atClock(day time.Time, pref, fallback string) time.Time {
	h, m, ok := parseClock(pref)
	if !ok {
		h, m, _ = parseClock(fallback)
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, h, m, 0, 0, day.Location())
}

func slotClock(day time.Time, raw string) (time.Time, bool) {
	h, m, ok := parseClock(raw)
	if !ok {
		return time.Time{}, false
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, h, m, 0, 0, day.Location()), true
}

func parseClock(raw string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func dedupeSorted(ts []time.Time) []time.Time {
	if len(ts) == 0 {
		return nil
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	out := ts[:1]
	for _, t := range ts[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}
