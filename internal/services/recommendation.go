package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/suppstack/suppstack-backend/internal/apierr"
	"github.com/suppstack/suppstack-backend/internal/knowledge"
	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/planner"
	"github.com/suppstack/suppstack-backend/internal/ranking"
	"github.com/suppstack/suppstack-backend/internal/repos"
	"github.com/suppstack/suppstack-backend/internal/types"
)

// Recommendation is a ranked item enriched for display: daily cost plus the
// dosage/timing strings resolved through the structured-field → knowledge
// base → default fallback chain.
type Recommendation struct {
	ranking.RankedItem
	DailyCost *float64 `json:"daily_cost,omitempty"`
	Dosage    string   `json:"dosage"`
	Timing    string   `json:"timing"`
}

type RecommendationList struct {
	Items        []Recommendation `json:"items"`
	Personalized bool             `json:"personalized"`
}

// MaterializeOutcome reports what happened to the schedule after a rule was
// stored. GenerationErr is non-empty when the rule persisted but event
// generation failed; the rule is never rolled back and a later regeneration
// retries the same window safely.
type MaterializeOutcome struct {
	Rule          *types.Rule `json:"rule"`
	EventsPlanned int         `json:"events_planned"`
	GenerationErr string      `json:"generation_error,omitempty"`
}

type RecommendationService interface {
	Recommend(ctx context.Context, userID uuid.UUID, matchAll bool) (RecommendationList, error)
	MaterializeRule(ctx context.Context, userID, itemID uuid.UUID, anchors []string, frequency string, daysOfWeek []int, dose string) (MaterializeOutcome, error)
}

type recommendationService struct {
	db       *gorm.DB
	log      *logger.Logger
	catalog  CatalogService
	profiles ProfileService
	ruleRepo repos.RuleRepo
	schedule ScheduleService
	ranker   *ranking.Ranker
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	catalog CatalogService,
	profiles ProfileService,
	ruleRepo repos.RuleRepo,
	schedule ScheduleService,
	ranker *ranking.Ranker,
) RecommendationService {
	return &recommendationService{
		db:       db,
		log:      log.With("service", "RecommendationService"),
		catalog:  catalog,
		profiles: profiles,
		ruleRepo: ruleRepo,
		schedule: schedule,
		ranker:   ranker,
	}
}

// Recommend ranks the catalog for the user. A strict pass that matches
// nothing falls back to OR semantics so the screen never shows an empty
// list just because the user picked an over-narrow goal combination.
func (s *recommendationService) Recommend(ctx context.Context, userID uuid.UUID, matchAll bool) (RecommendationList, error) {
	catalog, err := s.catalog.ListItems(ctx)
	if err != nil {
		return RecommendationList{}, err
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return RecommendationList{}, err
	}

	result := s.ranker.Rank(catalog, profile, matchAll)
	if matchAll && len(result.Items) == 0 && len(profile.ObjectiveGroups) > 0 {
		s.log.Debug("Strict objective match empty, retrying with any-match", "user_id", userID)
		result = s.ranker.Rank(catalog, profile, false)
	}

	list := RecommendationList{
		Items:        make([]Recommendation, 0, len(result.Items)),
		Personalized: result.Personalized,
	}
	for _, ranked := range result.Items {
		list.Items = append(list.Items, enrich(ranked))
	}
	return list, nil
}

func enrich(ranked ranking.RankedItem) Recommendation {
	rec := Recommendation{RankedItem: ranked}

	if ranked.Item.PriceMonthly != nil {
		daily := *ranked.Item.PriceMonthly / 30
		rec.DailyCost = &daily
	}

	entry := knowledge.Lookup(ranked.Item.Name)
	rec.Dosage = ranked.Item.Dosage
	if rec.Dosage == "" {
		rec.Dosage = entry.Dosage
	}
	rec.Timing = ranked.Item.Timing
	if rec.Timing == "" {
		rec.Timing = entry.Timing
	}
	return rec
}

// MaterializeRule turns a chosen recommendation into a standing rule and
// immediately generates its events over the default horizon. The rule write
// and the generation are deliberately not one transaction: a generation
// failure leaves the rule in place and is reported to the caller.
func (s *recommendationService) MaterializeRule(ctx context.Context, userID, itemID uuid.UUID, anchors []string, frequency string, daysOfWeek []int, dose string) (MaterializeOutcome, error) {
	if _, err := s.catalog.GetItem(ctx, itemID); err != nil {
		return MaterializeOutcome{}, err
	}

	switch frequency {
	case types.FrequencyDaily, types.FrequencyWeekly, types.FrequencyCustom:
	case "":
		frequency = types.FrequencyDaily
	default:
		return MaterializeOutcome{}, apierr.Validation("unknown frequency %q", frequency)
	}
	if frequency == types.FrequencyWeekly && len(daysOfWeek) == 0 {
		return MaterializeOutcome{}, apierr.Validation("weekly rules need at least one day of week")
	}
	for _, d := range daysOfWeek {
		if d < 0 || d > 6 {
			return MaterializeOutcome{}, apierr.Validation("day of week %d out of range", d)
		}
	}

	normalized := planner.NormalizeAnchors(anchors)
	stored := make([]string, 0, len(normalized))
	for _, a := range normalized {
		stored = append(stored, string(a))
	}

	rule := &types.Rule{
		UserID:     userID,
		ItemID:     itemID,
		Frequency:  frequency,
		Anchors:    stored,
		DaysOfWeek: daysOfWeek,
		Dose:       dose,
	}
	persisted, err := s.ruleRepo.Upsert(ctx, nil, rule)
	if err != nil {
		return MaterializeOutcome{}, apierr.Upstream(err)
	}

	outcome := MaterializeOutcome{Rule: persisted}
	n, genErr := s.schedule.RegenerateUser(ctx, userID)
	if genErr != nil {
		s.log.Warn("Rule stored but schedule generation failed", "user_id", userID, "rule_id", persisted.ID, "error", genErr)
		outcome.GenerationErr = genErr.Error()
		return outcome, nil
	}
	outcome.EventsPlanned = n
	return outcome, nil
}
