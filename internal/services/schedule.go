package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/apierr"
	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/planner"
	"github.com/suppstack/suppstack-backend/internal/repos"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type ScheduleService interface {
	// RegenerateUser expands all of the user's rules over the default
	// rolling horizon and upserts the result. Safe to call any number of
	// times: the event conflict key absorbs overlap.
	RegenerateUser(ctx context.Context, userID uuid.UUID) (int, error)
	// RegenerateUserRange is RegenerateUser over an explicit [from, to)
	// window, for resynchronization tooling.
	RegenerateUserRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	RegenerateAll(ctx context.Context) (int, error)
	GetSchedule(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]types.PlannedEvent, error)
	MarkTaken(ctx context.Context, userID, eventID uuid.UUID) error
	Snooze(ctx context.Context, userID, eventID uuid.UUID, minutes int) error
	StartWorker(ctx context.Context)
}

type scheduleService struct {
	db          *gorm.DB
	log         *logger.Logger
	ruleRepo    repos.RuleRepo
	slotRepo    repos.TrainingSlotRepo
	profileRepo repos.UserProfileRepo
	eventRepo   repos.PlannedEventRepo

	horizonDays   int
	regenInterval time.Duration
	regenWorkers  int

	now func() time.Time
}

func NewScheduleService(
	db *gorm.DB,
	log *logger.Logger,
	ruleRepo repos.RuleRepo,
	slotRepo repos.TrainingSlotRepo,
	profileRepo repos.UserProfileRepo,
	eventRepo repos.PlannedEventRepo,
	horizonDays int,
	regenInterval time.Duration,
) ScheduleService {
	if horizonDays <= 0 {
		horizonDays = planner.DefaultHorizonDays
	}
	if regenInterval <= 0 {
		regenInterval = 6 * time.Hour
	}
	return &scheduleService{
		db:            db,
		log:           log.With("service", "ScheduleService"),
		ruleRepo:      ruleRepo,
		slotRepo:      slotRepo,
		profileRepo:   profileRepo,
		eventRepo:     eventRepo,
		horizonDays:   horizonDays,
		regenInterval: regenInterval,
		regenWorkers:  8,
		now:           time.Now,
	}
}

func (s *scheduleService) RegenerateUser(ctx context.Context, userID uuid.UUID) (int, error) {
	from, to := planner.HorizonFrom(s.now(), s.horizonDays)
	return s.RegenerateUserRange(ctx, userID, from, to)
}

func (s *scheduleService) RegenerateUserRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	ctx, span := otel.Tracer("schedule").Start(ctx, "RegenerateUserRange")
	defer span.End()

	if !to.After(from) {
		return 0, apierr.Validation("regeneration window is empty")
	}

	rules, err := s.ruleRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return 0, apierr.Upstream(err)
	}
	if len(rules) == 0 {
		return 0, nil
	}

	slots, err := s.slotRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return 0, apierr.Upstream(err)
	}

	prefs := types.DefaultTimePreferences()
	profile, err := s.profileRepo.Get(ctx, nil, userID)
	if err == nil {
		prefs = profile.TimePreferences
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apierr.Upstream(err)
	}

	events := planner.Expand(rules, slots, prefs, from, to)
	if len(events) == 0 {
		return 0, nil
	}
	if err := s.eventRepo.Upsert(ctx, nil, events); err != nil {
		return 0, apierr.Upstream(err)
	}

	s.log.Debug("Regenerated schedule", "user_id", userID, "events", len(events), "from", from, "to", to)
	return len(events), nil
}

// RegenerateAll re-extends every known user's rolling horizon. Users are
// independent, so the sweep fans out with a bounded group; one user's
// failure does not stop the others.
func (s *scheduleService) RegenerateAll(ctx context.Context) (int, error) {
	userIDs, err := s.profileRepo.ListUserIDs(ctx, nil)
	if err != nil {
		return 0, apierr.Upstream(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.regenWorkers)

	total := 0
	results := make([]int, len(userIDs))
	for i, userID := range userIDs {
		g.Go(func() error {
			n, regenErr := s.RegenerateUser(gctx, userID)
			if regenErr != nil {
				s.log.Warn("Schedule regeneration failed for user", "user_id", userID, "error", regenErr)
				return nil
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	for _, n := range results {
		total += n
	}
	return total, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]types.PlannedEvent, error) {
	events, err := s.eventRepo.FetchRange(ctx, nil, userID, from, to)
	if err != nil {
		return nil, apierr.Upstream(err)
	}
	return events, nil
}

func (s *scheduleService) MarkTaken(ctx context.Context, userID, eventID uuid.UUID) error {
	if err := s.eventRepo.MarkTaken(ctx, nil, userID, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("event %s not found", eventID)
		}
		return apierr.Upstream(err)
	}
	return nil
}

func (s *scheduleService) Snooze(ctx context.Context, userID, eventID uuid.UUID, minutes int) error {
	if minutes <= 0 {
		return apierr.Validation("snooze minutes must be positive")
	}
	if err := s.eventRepo.Snooze(ctx, nil, userID, eventID, minutes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("event %s not found", eventID)
		}
		return apierr.Upstream(err)
	}
	return nil
}

// StartWorker periodically re-extends every user's horizon so schedules do
// not run dry for users who stop opening the app's planning screen.
func (s *scheduleService) StartWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.regenInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.RegenerateAll(ctx)
				if err != nil {
					s.log.Warn("Periodic schedule regeneration failed", "error", err)
					continue
				}
				s.log.Info("Periodic schedule regeneration complete", "events", n)
			}
		}
	}()
}
