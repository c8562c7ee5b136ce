package planner

import (
	"time"

	"github.com/suppstack/suppstack-backend/internal/types"
)

// DefaultHorizonDays is the rolling generation window: the current week plus
// the next one. Regeneration runs every time a rule changes, so the window
// only ever needs to cover what a screen can show.
const DefaultHorizonDays = 14

// HorizonFrom returns the [from, to) generation range for now: the start of
// the current week (Monday) through days later.
func HorizonFrom(now time.Time, days int) (time.Time, time.Time) {
	if days <= 0 {
		days = DefaultHorizonDays
	}
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	back := (int(midnight.Weekday()) + 6) % 7
	from := midnight.AddDate(0, 0, -back)
	return from, from.AddDate(0, 0, days)
}

// Expand walks every calendar day in [from, to) and emits one planned event
// per instant each rule's anchors resolve to on that day. Weekly rules (and
// custom rules carrying a day set) are skipped on weekdays outside their
// set; custom rules without a day set behave as daily. The expander never
// consults the store: overlap with already-persisted events is absorbed by
// the event upsert's conflict key, so re-running over any window is safe.
func Expand(rules []types.Rule, trainingSlots []types.TrainingSlot, prefs types.TimePreferences, from, to time.Time) []types.PlannedEvent {
	var events []types.PlannedEvent

	slotsByWeekday := make(map[int][]types.TrainingSlot)
	for _, s := range trainingSlots {
		slotsByWeekday[s.Weekday] = append(slotsByWeekday[s.Weekday], s)
	}

	for day := dateOf(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		weekday := int(day.Weekday())
		todaysSlots := slotsByWeekday[weekday]
		for _, rule := range rules {
			if !appliesOn(rule, weekday) {
				continue
			}
			anchors := NormalizeAnchors(rule.Anchors)
			for _, at := range ResolveAnchors(day, anchors, prefs, todaysSlots) {
				events = append(events, types.PlannedEvent{
					RuleID:    rule.ID,
					UserID:    rule.UserID,
					ItemID:    rule.ItemID,
					PlannedAt: at,
					Status:    types.EventStatusPlanned,
					Source:    types.EventSourceRuleExpand,
				})
			}
		}
	}
	return events
}

func appliesOn(rule types.Rule, weekday int) bool {
	switch rule.Frequency {
	case types.FrequencyWeekly:
		return containsDay(rule.DaysOfWeek, weekday)
	case types.FrequencyCustom:
		if len(rule.DaysOfWeek) == 0 {
			return true
		}
		return containsDay(rule.DaysOfWeek, weekday)
	default:
		return true
	}
}

func containsDay(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
