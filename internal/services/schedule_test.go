package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/suppstack/suppstack-backend/internal/apierr"
	"github.com/suppstack/suppstack-backend/internal/types"
)

// fixedNow is a Monday, so the expansion horizon starts on this day.
var fixedNow = time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)

type scheduleFixture struct {
	svc      *scheduleService
	rules    *fakeRuleRepo
	slots    *fakeSlotRepo
	profiles *fakeProfileRepo
	events   *fakeEventRepo
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	f := &scheduleFixture{
		rules:    newFakeRuleRepo(),
		slots:    &fakeSlotRepo{},
		profiles: newFakeProfileRepo(),
		events:   &fakeEventRepo{},
	}
	svc := NewScheduleService(nil, nopLogger(), f.rules, f.slots, f.profiles, f.events, 14, 0)
	f.svc = svc.(*scheduleService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *scheduleFixture) seedDailyRule(t *testing.T, userID uuid.UUID) types.Rule {
	t.Helper()
	rule, err := f.rules.Upsert(context.Background(), nil, &types.Rule{
		UserID:    userID,
		ItemID:    uuid.New(),
		Frequency: types.FrequencyDaily,
	})
	if err != nil {
		t.Fatalf("seed rule: %v", err)
	}
	return *rule
}

func TestRegenerateUserIsIdempotent(t *testing.T) {
	f := newScheduleFixture(t)
	userID := uuid.New()
	f.seedDailyRule(t, userID)

	n, err := f.svc.RegenerateUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("first regeneration: %v", err)
	}
	if n != 14 {
		t.Fatalf("expected 14 events over the horizon, got %d", n)
	}
	if got := f.events.count(); got != 14 {
		t.Fatalf("expected 14 stored events, got %d", got)
	}

	for i := 0; i < 3; i++ {
		if _, err := f.svc.RegenerateUser(context.Background(), userID); err != nil {
			t.Fatalf("regeneration %d: %v", i+2, err)
		}
	}
	if got := f.events.count(); got != 14 {
		t.Fatalf("repeat regeneration changed stored count to %d", got)
	}
}

func TestRegenerateUserWithoutRules(t *testing.T) {
	f := newScheduleFixture(t)

	n, err := f.svc.RegenerateUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
	if got := f.events.count(); got != 0 {
		t.Fatalf("expected empty store, got %d events", got)
	}
}

func TestRegenerateUserRangeRejectsEmptyWindow(t *testing.T) {
	f := newScheduleFixture(t)

	_, err := f.svc.RegenerateUserRange(context.Background(), uuid.New(), fixedNow, fixedNow)
	if err == nil {
		t.Fatal("expected validation error for empty window")
	}
	if apierr.StatusOf(err) != 400 {
		t.Fatalf("expected 400, got %d", apierr.StatusOf(err))
	}
}

func TestRegenerateUserHonorsProfilePreferences(t *testing.T) {
	f := newScheduleFixture(t)
	userID := uuid.New()
	f.seedDailyRule(t, userID)

	prefs := types.DefaultTimePreferences()
	prefs.MorningTime = "06:45"
	if err := f.profiles.Upsert(context.Background(), nil, &types.UserProfile{
		UserID:          userID,
		TimePreferences: prefs,
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	if _, err := f.svc.RegenerateUser(context.Background(), userID); err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	events, err := f.svc.GetSchedule(context.Background(), userID, fixedNow.Add(-24*time.Hour), fixedNow.Add(15*24*time.Hour))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected events")
	}
	first := events[0].PlannedAt
	if first.Hour() != 6 || first.Minute() != 45 {
		t.Fatalf("expected 06:45 slot from profile preferences, got %s", first.Format("15:04"))
	}
}

func TestSnoozeSurvivesRegeneration(t *testing.T) {
	f := newScheduleFixture(t)
	userID := uuid.New()
	f.seedDailyRule(t, userID)

	if _, err := f.svc.RegenerateUser(context.Background(), userID); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	events, err := f.svc.GetSchedule(context.Background(), userID, fixedNow.Add(-24*time.Hour), fixedNow.Add(15*24*time.Hour))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	target := events[0]

	if err := f.svc.Snooze(context.Background(), userID, target.ID, 15); err != nil {
		t.Fatalf("snooze: %v", err)
	}

	// The snoozed row moved off its original instant, so regeneration fills
	// the original instant back in without touching the snoozed row.
	if _, err := f.svc.RegenerateUser(context.Background(), userID); err != nil {
		t.Fatalf("regenerate after snooze: %v", err)
	}
	if got := f.events.count(); got != 15 {
		t.Fatalf("expected 15 events after snooze and regeneration, got %d", got)
	}

	snoozed, err := f.events.GetByID(context.Background(), nil, target.ID)
	if err != nil {
		t.Fatalf("reload snoozed event: %v", err)
	}
	if snoozed.Status != types.EventStatusSnoozed {
		t.Fatalf("expected snoozed status, got %q", snoozed.Status)
	}
	want := target.PlannedAt.Add(15 * time.Minute)
	if !snoozed.PlannedAt.Equal(want) {
		t.Fatalf("expected planned_at %s, got %s", want, snoozed.PlannedAt)
	}
}

func TestSnoozeValidatesMinutes(t *testing.T) {
	f := newScheduleFixture(t)

	for _, minutes := range []int{0, -10} {
		err := f.svc.Snooze(context.Background(), uuid.New(), uuid.New(), minutes)
		if err == nil {
			t.Fatalf("expected validation error for %d minutes", minutes)
		}
		if apierr.StatusOf(err) != 400 {
			t.Fatalf("expected 400 for %d minutes, got %d", minutes, apierr.StatusOf(err))
		}
	}
}

func TestMarkTakenSurvivesRegeneration(t *testing.T) {
	f := newScheduleFixture(t)
	userID := uuid.New()
	f.seedDailyRule(t, userID)

	if _, err := f.svc.RegenerateUser(context.Background(), userID); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	events, _ := f.svc.GetSchedule(context.Background(), userID, fixedNow.Add(-24*time.Hour), fixedNow.Add(15*24*time.Hour))
	target := events[0]

	if err := f.svc.MarkTaken(context.Background(), userID, target.ID); err != nil {
		t.Fatalf("mark taken: %v", err)
	}
	if _, err := f.svc.RegenerateUser(context.Background(), userID); err != nil {
		t.Fatalf("regenerate after taken: %v", err)
	}

	taken, err := f.events.GetByID(context.Background(), nil, target.ID)
	if err != nil {
		t.Fatalf("reload taken event: %v", err)
	}
	if taken.Status != types.EventStatusTaken {
		t.Fatalf("regeneration clobbered taken status, got %q", taken.Status)
	}
	if taken.TakenAt == nil {
		t.Fatal("expected taken_at to be set")
	}
	if got := f.events.count(); got != 14 {
		t.Fatalf("taken event still occupies its slot, expected 14 events, got %d", got)
	}
}

func TestMarkTakenUnknownEvent(t *testing.T) {
	f := newScheduleFixture(t)

	err := f.svc.MarkTaken(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apierr.StatusOf(err) != 404 {
		t.Fatalf("expected 404, got %d", apierr.StatusOf(err))
	}
}

func TestRegenerateAllSweepsEveryUser(t *testing.T) {
	f := newScheduleFixture(t)

	userA := uuid.New()
	userB := uuid.New()
	f.seedDailyRule(t, userA)
	f.seedDailyRule(t, userB)
	for _, id := range []uuid.UUID{userA, userB} {
		if err := f.profiles.Upsert(context.Background(), nil, &types.UserProfile{
			UserID:          id,
			TimePreferences: types.DefaultTimePreferences(),
		}); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	n, err := f.svc.RegenerateAll(context.Background())
	if err != nil {
		t.Fatalf("regenerate all: %v", err)
	}
	if n != 28 {
		t.Fatalf("expected 28 events across both users, got %d", n)
	}
	if got := f.events.count(); got != 28 {
		t.Fatalf("expected 28 stored events, got %d", got)
	}
}
