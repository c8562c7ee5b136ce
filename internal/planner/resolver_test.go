package planner

import (
	"testing"
	"time"

	"github.com/suppstack/suppstack-backend/internal/types"
)

func testPrefs() types.TimePreferences {
	return types.TimePreferences{
		MorningTime:          "08:00",
		NoonTime:             "12:30",
		EveningTime:          "19:00",
		PreWorkoutOffsetMin:  -30,
		PostWorkoutOffsetMin: 30,
	}
}

// Monday 2026-09-07.
var testDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2026, 9, 7, h, m, 0, 0, time.UTC)
}

func TestResolveAnchors(t *testing.T) {
	slot := func(start, end string) types.TrainingSlot {
		return types.TrainingSlot{Weekday: 1, Start: start, End: end}
	}

	cases := []struct {
		name    string
		anchors []Anchor
		slots   []types.TrainingSlot
		want    []time.Time
	}{
		{
			name:    "fixed_anchors_ignore_slots",
			anchors: []Anchor{AnchorMorning, AnchorNoon, AnchorEvening},
			slots:   []types.TrainingSlot{slot("18:00", "19:00")},
			want:    []time.Time{at(8, 0), at(12, 30), at(19, 0)},
		},
		{
			name:    "pre_workout_no_slots_no_instants",
			anchors: []Anchor{AnchorPreWorkout},
			slots:   nil,
			want:    nil,
		},
		{
			name:    "pre_workout_two_slots_two_instants",
			anchors: []Anchor{AnchorPreWorkout},
			slots:   []types.TrainingSlot{slot("07:00", "08:00"), slot("18:00", "19:00")},
			want:    []time.Time{at(6, 30), at(17, 30)},
		},
		{
			name:    "post_workout_offset_applied_to_slot_end",
			anchors: []Anchor{AnchorPostWorkout},
			slots:   []types.TrainingSlot{slot("18:00", "19:00")},
			want:    []time.Time{at(19, 30)},
		},
		{
			name:    "colliding_instants_deduplicated",
			anchors: []Anchor{AnchorPostWorkout},
			slots:   []types.TrainingSlot{slot("17:00", "19:00"), slot("18:00", "19:00")},
			want:    []time.Time{at(19, 30)},
		},
		{
			name:    "evening_and_post_workout_collision",
			anchors: []Anchor{AnchorEvening, AnchorPostWorkout},
			slots:   []types.TrainingSlot{slot("17:30", "18:30")},
			want:    []time.Time{at(19, 0)},
		},
		{
			name:    "result_sorted_ascending",
			anchors: []Anchor{AnchorEvening, AnchorMorning, AnchorNoon},
			slots:   nil,
			want:    []time.Time{at(8, 0), at(12, 30), at(19, 0)},
		},
		{
			name:    "unparsable_slot_skipped",
			anchors: []Anchor{AnchorPreWorkout},
			slots:   []types.TrainingSlot{slot("whenever", "19:00"), slot("18:00", "19:00")},
			want:    []time.Time{at(17, 30)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveAnchors(testDay, tc.anchors, testPrefs(), tc.slots)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d instants, want %d: %v", len(got), len(tc.want), got)
			}
			for i := range got {
				if !got[i].Equal(tc.want[i]) {
					t.Fatalf("instant %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestResolveAnchorsDeterministic(t *testing.T) {
	anchors := []Anchor{AnchorMorning, AnchorPreWorkout, AnchorPostWorkout}
	slots := []types.TrainingSlot{
		{Weekday: 1, Start: "07:00", End: "08:00"},
		{Weekday: 1, Start: "18:00", End: "19:00"},
	}

	first := ResolveAnchors(testDay, anchors, testPrefs(), slots)
	for i := 0; i < 50; i++ {
		again := ResolveAnchors(testDay, anchors, testPrefs(), slots)
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d instants, want %d", i, len(again), len(first))
		}
		for j := range again {
			if !again[j].Equal(first[j]) {
				t.Fatalf("run %d: instant %d = %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestResolveAnchorsBadPrefFallsBack(t *testing.T) {
	prefs := testPrefs()
	prefs.MorningTime = "not-a-time"

	got := ResolveAnchors(testDay, []Anchor{AnchorMorning}, prefs, nil)
	if len(got) != 1 || !got[0].Equal(at(8, 0)) {
		t.Fatalf("got %v, want [08:00]", got)
	}
}

func TestNormalizeAnchors(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []Anchor
	}{
		{name: "empty_defaults_to_morning", in: nil, want: []Anchor{AnchorMorning}},
		{name: "unknown_only_defaults_to_morning", in: []string{"midnight"}, want: []Anchor{AnchorMorning}},
		{name: "duplicates_dropped_order_kept", in: []string{"evening", "morning", "evening"}, want: []Anchor{AnchorEvening, AnchorMorning}},
		{name: "case_and_space_insensitive", in: []string{" Post_Workout "}, want: []Anchor{AnchorPostWorkout}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAnchors(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}
