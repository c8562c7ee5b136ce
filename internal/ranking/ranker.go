package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/suppstack/suppstack-backend/internal/types"
)

// RankedItem is a catalog item with its derived, per-request signals. Never
// persisted; the orchestrator enriches it further for display.
type RankedItem struct {
	Item         types.Item `json:"item"`
	Relevance    float64    `json:"relevance"`
	EvidenceTier string     `json:"evidence_tier"`
}

// Result is a ranking pass over the catalog. Personalized is false when the
// profile selected no objective groups and the list is a generic top-N.
type Result struct {
	Items        []RankedItem `json:"items"`
	Personalized bool         `json:"personalized"`
}

type Ranker struct {
	weights Weights
}

func NewRanker(w Weights) *Ranker {
	if w.MaxResults <= 0 {
		w = DefaultWeights()
	}
	return &Ranker{weights: w}
}

// Rank filters the catalog against the profile and scores what survives.
// matchAll selects AND semantics for the objective-group filter (item tags
// must cover every selected group); otherwise one overlapping group is
// enough. When AND yields nothing the caller retries with OR — the retry is
// deliberately not built in here. An empty catalog is not an error: an empty
// shortlist is a displayable state.
func (r *Ranker) Rank(catalog []types.Item, profile types.UserProfile, matchAll bool) Result {
	res := Result{Personalized: len(profile.ObjectiveGroups) > 0}

	for _, item := range catalog {
		if !matchesObjectives(item, profile.ObjectiveGroups, matchAll) {
			continue
		}
		if !withinBudget(item, profile.BudgetMonthly) {
			continue
		}
		if violatesConstraint(item, profile.Constraints) {
			continue
		}
		res.Items = append(res.Items, RankedItem{
			Item:         item,
			Relevance:    r.relevance(item, profile),
			EvidenceTier: r.evidenceTier(item),
		})
	}

	sort.SliceStable(res.Items, func(i, j int) bool {
		a, b := res.Items[i], res.Items[j]
		if a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		as, bs := scoreOrZero(a.Item), scoreOrZero(b.Item)
		if as != bs {
			return as > bs
		}
		return a.Item.ResearchCount > b.Item.ResearchCount
	})

	if len(res.Items) > r.weights.MaxResults {
		res.Items = res.Items[:r.weights.MaxResults]
	}
	return res
}

func (r *Ranker) relevance(item types.Item, profile types.UserProfile) float64 {
	w := r.weights
	score := w.GlobalScore*normalizedGlobalScore(item) +
		w.Research*researchWeight(item.ResearchCount) +
		w.Quality*qualityWeight(item.QualityLevel) +
		w.Price*priceWeight(item.PriceMonthly, profile.BudgetMonthly)
	if profile.CertifiedOnly && item.Certified {
		score += w.CertifiedBonus
	}
	return score
}

// evidenceTier prefers a structured tier on the item; otherwise it is
// derived from the study count.
func (r *Ranker) evidenceTier(item types.Item) string {
	switch strings.ToUpper(strings.TrimSpace(item.EvidenceTier)) {
	case "A", "B", "C":
		return strings.ToUpper(strings.TrimSpace(item.EvidenceTier))
	}
	switch {
	case item.ResearchCount >= r.weights.TierAMinStudies:
		return "A"
	case item.ResearchCount >= r.weights.TierBMinStudies:
		return "B"
	default:
		return "C"
	}
}

func matchesObjectives(item types.Item, groups []string, matchAll bool) bool {
	if len(groups) == 0 {
		return true
	}
	tags := make(map[string]bool, len(item.ObjectiveTags))
	for _, t := range item.ObjectiveTags {
		tags[strings.ToLower(strings.TrimSpace(t))] = true
	}
	if matchAll {
		for _, g := range groups {
			if !tags[strings.ToLower(strings.TrimSpace(g))] {
				return false
			}
		}
		return true
	}
	for _, g := range groups {
		if tags[strings.ToLower(strings.TrimSpace(g))] {
			return true
		}
	}
	return false
}

// withinBudget keeps items with unknown price: a missing price is not a
// reason to hide a candidate.
func withinBudget(item types.Item, budget float64) bool {
	if budget <= 0 || budget >= types.BudgetUnlimited {
		return true
	}
	if item.PriceMonthly == nil {
		return true
	}
	return *item.PriceMonthly <= budget
}

// violatesConstraint is a best-effort textual match against the profile's
// dietary exclusions ("no caffeine" drops anything mentioning caffeine). It
// is not an ingredient-composition check.
func violatesConstraint(item types.Item, constraints []string) bool {
	if len(constraints) == 0 {
		return false
	}
	haystack := strings.ToLower(item.Name + " " + item.Slug + " " + strings.Join(item.ObjectiveTags, " "))
	for _, c := range constraints {
		term := constraintTerm(c)
		if term == "" {
			continue
		}
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func constraintTerm(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range []string{"no ", "sans ", "pas de "} {
		if strings.HasPrefix(c, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(c, prefix))
		}
	}
	return c
}

func normalizedGlobalScore(item types.Item) float64 {
	if item.ScoreGlobal == nil {
		return 0.5
	}
	s := *item.ScoreGlobal / 20
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// researchWeight compresses the study count on a log scale, saturating at
// 300 studies so a handful of mega-studied compounds do not drown the rest.
func researchWeight(count int) float64 {
	if count < 0 {
		count = 0
	}
	capped := math.Min(float64(count), 300)
	return math.Log10(1+capped) / math.Log10(301)
}

func qualityWeight(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high":
		return 1.0
	case "medium", "moderate":
		return 0.65
	case "low":
		return 0.35
	default:
		return 0.55
	}
}

// priceWeight rewards items cheap relative to the monthly budget. With no
// budget or no price there is nothing to compare, so it stays neutral.
func priceWeight(price *float64, budget float64) float64 {
	if price == nil || budget <= 0 || budget >= types.BudgetUnlimited {
		return 0.6
	}
	ratio := *price / budget
	switch {
	case ratio <= 0.6:
		return 1.0
	case ratio <= 1.0:
		return 0.9
	case ratio <= 1.5:
		return 0.6
	case ratio <= 2.0:
		return 0.4
	default:
		return 0.25
	}
}

func scoreOrZero(item types.Item) float64 {
	if item.ScoreGlobal == nil {
		return 0
	}
	return *item.ScoreGlobal
}
