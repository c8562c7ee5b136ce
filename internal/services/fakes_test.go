package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/types"
)

func nopLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeRuleRepo struct {
	mu    sync.Mutex
	rules map[uuid.UUID]types.Rule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[uuid.UUID]types.Rule)}
}

func (f *fakeRuleRepo) Upsert(ctx context.Context, tx *gorm.DB, rule *types.Rule) (*types.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.rules {
		if existing.UserID == rule.UserID && existing.ItemID == rule.ItemID {
			existing.Frequency = rule.Frequency
			existing.Anchors = rule.Anchors
			existing.DaysOfWeek = rule.DaysOfWeek
			existing.Dose = rule.Dose
			f.rules[id] = existing
			return &existing, nil
		}
	}
	stored := *rule
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	f.rules[stored.ID] = stored
	return &stored, nil
}

func (f *fakeRuleRepo) GetByID(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID) (*types.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rules[ruleID]; ok {
		return &r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRuleRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Rule
	for _, r := range f.rules {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeRuleRepo) Delete(ctx context.Context, tx *gorm.DB, userID, ruleID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rules, ruleID)
	return nil
}

type fakeSlotRepo struct {
	slots []types.TrainingSlot
}

func (f *fakeSlotRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.TrainingSlot, error) {
	var out []types.TrainingSlot
	for _, s := range f.slots {
		if s.UserID == userID || s.UserID == uuid.Nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) Replace(ctx context.Context, tx *gorm.DB, userID uuid.UUID, slots []types.TrainingSlot) error {
	f.slots = slots
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]types.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]types.UserProfile)}
}

func (f *fakeProfileRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeProfileRepo) ListUserIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for id := range f.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// fakeEventRepo mirrors the store's first-write-wins conflict key.
type fakeEventRepo struct {
	mu     sync.Mutex
	events []types.PlannedEvent
}

func eventKey(e types.PlannedEvent) string {
	return fmt.Sprintf("%s|%s|%d", e.UserID, e.ItemID, e.PlannedAt.UnixNano())
}

func (f *fakeEventRepo) Upsert(ctx context.Context, tx *gorm.DB, events []types.PlannedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing := make(map[string]bool, len(f.events))
	for _, e := range f.events {
		existing[eventKey(e)] = true
	}
	for _, e := range events {
		if existing[eventKey(e)] {
			continue
		}
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		existing[eventKey(e)] = true
		f.events = append(f.events, e)
	}
	return nil
}

func (f *fakeEventRepo) FetchRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]types.PlannedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.PlannedEvent
	for _, e := range f.events {
		if e.UserID == userID && !e.PlannedAt.Before(from) && e.PlannedAt.Before(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlannedAt.Before(out[j].PlannedAt) })
	return out, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.PlannedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.ID == eventID {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) MarkTaken(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.events {
		if f.events[i].ID == eventID && f.events[i].UserID == userID {
			now := time.Now().UTC()
			f.events[i].Status = types.EventStatusTaken
			f.events[i].TakenAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) Snooze(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID, minutes int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.events {
		if f.events[i].ID == eventID && f.events[i].UserID == userID {
			f.events[i].Status = types.EventStatusSnoozed
			f.events[i].PlannedAt = f.events[i].PlannedAt.Add(time.Duration(minutes) * time.Minute)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}
