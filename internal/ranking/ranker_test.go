package ranking

import (
	"fmt"
	"testing"

	"github.com/suppstack/suppstack-backend/internal/pkg/pointers"
	"github.com/suppstack/suppstack-backend/internal/types"
)

func item(slug string, tags ...string) types.Item {
	return types.Item{
		Slug:          slug,
		Name:          slug,
		ScoreGlobal:   pointers.Float64(15),
		PriceMonthly:  pointers.Float64(20),
		ResearchCount: 50,
		QualityLevel:  "high",
		ObjectiveTags: tags,
	}
}

func profile(groups ...string) types.UserProfile {
	return types.UserProfile{
		BudgetMonthly:   types.BudgetUnlimited,
		ObjectiveGroups: groups,
	}
}

func TestRankObjectiveFiltering(t *testing.T) {
	catalog := []types.Item{
		item("endurance-only", "endurance"),
		item("strength-only", "strength"),
		item("both", "endurance", "strength"),
	}
	p := profile("endurance", "strength")

	and := NewRanker(DefaultWeights()).Rank(catalog, p, true)
	if len(and.Items) != 1 || and.Items[0].Item.Slug != "both" {
		t.Fatalf("AND mode returned %v, want only 'both'", slugs(and))
	}

	or := NewRanker(DefaultWeights()).Rank(catalog, p, false)
	if len(or.Items) != 3 {
		t.Fatalf("OR mode returned %v, want all three", slugs(or))
	}

	if !and.Personalized || !or.Personalized {
		t.Fatal("results with objective groups must be personalized")
	}
}

func TestRankNoObjectivesIsFallback(t *testing.T) {
	catalog := []types.Item{item("a", "endurance"), item("b", "strength")}

	res := NewRanker(DefaultWeights()).Rank(catalog, profile(), true)
	if len(res.Items) != 2 {
		t.Fatalf("got %d items, want whole catalog", len(res.Items))
	}
	if res.Personalized {
		t.Fatal("no objective groups selected: result must be flagged as fallback")
	}
}

func TestRankBudgetFiltering(t *testing.T) {
	cheap := item("cheap")
	cheap.PriceMonthly = pointers.Float64(10)
	pricey := item("pricey")
	pricey.PriceMonthly = pointers.Float64(80)
	unknown := item("unknown-price")
	unknown.PriceMonthly = nil

	p := profile()
	p.BudgetMonthly = 30

	res := NewRanker(DefaultWeights()).Rank([]types.Item{cheap, pricey, unknown}, p, false)
	got := slugs(res)
	if len(got) != 2 {
		t.Fatalf("got %v, want cheap and unknown-price", got)
	}
	for _, s := range got {
		if s == "pricey" {
			t.Fatal("item over budget must be dropped")
		}
	}
}

func TestRankUnlimitedBudgetKeepsEverything(t *testing.T) {
	pricey := item("pricey")
	pricey.PriceMonthly = pointers.Float64(500)

	res := NewRanker(DefaultWeights()).Rank([]types.Item{pricey}, profile(), false)
	if len(res.Items) != 1 {
		t.Fatal("sentinel budget must not filter anything")
	}
}

func TestRankConstraintFiltering(t *testing.T) {
	caffeine := item("cafeine-anhydre")
	caffeine.Name = "Caféine anhydre"
	caffeine.Slug = "cafeine-anhydre"
	creatine := item("creatine")

	p := profile()
	p.Constraints = []string{"no cafeine"}

	res := NewRanker(DefaultWeights()).Rank([]types.Item{caffeine, creatine}, p, false)
	if len(res.Items) != 1 || res.Items[0].Item.Slug != "creatine" {
		t.Fatalf("got %v, want only creatine", slugs(res))
	}
}

func TestRankPriceMonotonicity(t *testing.T) {
	// Reducing price, all else fixed, never decreases relevance.
	p := profile()
	p.BudgetMonthly = 40

	r := NewRanker(DefaultWeights())
	prices := []float64{100, 80, 60, 40, 24, 10}
	prev := -1.0
	for _, price := range prices {
		it := item("x")
		it.PriceMonthly = pointers.Float64(price)
		res := r.Rank([]types.Item{it}, p, false)
		if len(res.Items) == 0 {
			// Over-budget items are filtered before scoring; treat as
			// lowest possible.
			continue
		}
		score := res.Items[0].Relevance
		if score < prev {
			t.Fatalf("price %v scored %v, below pricier variant %v", price, score, prev)
		}
		prev = score
	}
}

func TestRankTruncation(t *testing.T) {
	var catalog []types.Item
	for i := 0; i < 100; i++ {
		it := item(fmt.Sprintf("item-%03d", i))
		it.ResearchCount = i
		catalog = append(catalog, it)
	}

	res := NewRanker(DefaultWeights()).Rank(catalog, profile(), false)
	if len(res.Items) != 15 {
		t.Fatalf("got %d items, want the default cap of 15", len(res.Items))
	}
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i].Relevance > res.Items[i-1].Relevance {
			t.Fatalf("items not sorted descending at %d", i)
		}
	}
}

func TestRankCustomCap(t *testing.T) {
	w := DefaultWeights()
	w.MaxResults = 3
	var catalog []types.Item
	for i := 0; i < 10; i++ {
		catalog = append(catalog, item(fmt.Sprintf("item-%d", i)))
	}

	res := NewRanker(w).Rank(catalog, profile(), false)
	if len(res.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(res.Items))
	}
}

func TestRankCertifiedBonus(t *testing.T) {
	plain := item("plain")
	certified := item("certified")
	certified.Certified = true

	p := profile()
	p.CertifiedOnly = true

	res := NewRanker(DefaultWeights()).Rank([]types.Item{plain, certified}, p, false)
	if res.Items[0].Item.Slug != "certified" {
		t.Fatalf("got %v, want certified item first", slugs(res))
	}
	diff := res.Items[0].Relevance - res.Items[1].Relevance
	if diff < 0.049 || diff > 0.051 {
		t.Fatalf("certified bonus = %v, want 0.05", diff)
	}
}

func TestRankEmptyCatalog(t *testing.T) {
	res := NewRanker(DefaultWeights()).Rank(nil, profile("endurance"), true)
	if len(res.Items) != 0 {
		t.Fatalf("got %d items, want empty result, not an error", len(res.Items))
	}
}

func TestRankTieBreaks(t *testing.T) {
	// Scores above the 0-20 scale clamp to the same normalized value, so
	// relevance ties and the raw global score has to break it.
	a := item("low-score")
	a.ScoreGlobal = pointers.Float64(22)
	b := item("high-score")
	b.ScoreGlobal = pointers.Float64(25)

	res := NewRanker(DefaultWeights()).Rank([]types.Item{a, b}, profile(), false)
	if res.Items[0].Item.Slug != "high-score" {
		t.Fatalf("got %v, want raw score to break the tie", slugs(res))
	}

	// Research counts past the 300-study saturation score identically, so
	// the raw count is the next tie-break.
	c := item("capped-few")
	c.ResearchCount = 300
	d := item("capped-many")
	d.ResearchCount = 400

	res = NewRanker(DefaultWeights()).Rank([]types.Item{c, d}, profile(), false)
	if res.Items[0].Item.Slug != "capped-many" {
		t.Fatalf("got %v, want research count to break the tie", slugs(res))
	}

	// True ties keep input order (stable sort).
	e := item("first")
	f := item("second")
	res = NewRanker(DefaultWeights()).Rank([]types.Item{e, f}, profile(), false)
	if res.Items[0].Item.Slug != "first" {
		t.Fatalf("true ties must keep input order, got %v", slugs(res))
	}
}

func TestEvidenceTier(t *testing.T) {
	r := NewRanker(DefaultWeights())

	cases := []struct {
		name       string
		structured string
		studies    int
		want       string
	}{
		{name: "structured_takes_precedence", structured: "b", studies: 500, want: "B"},
		{name: "hundred_studies_is_A", studies: 100, want: "A"},
		{name: "forty_studies_is_B", studies: 40, want: "B"},
		{name: "thirty_nine_studies_is_C", studies: 39, want: "C"},
		{name: "zero_studies_is_C", studies: 0, want: "C"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := item("x")
			it.EvidenceTier = tc.structured
			it.ResearchCount = tc.studies
			if got := r.evidenceTier(it); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func slugs(res Result) []string {
	out := make([]string, 0, len(res.Items))
	for _, ri := range res.Items {
		out = append(out, ri.Item.Slug)
	}
	return out
}
