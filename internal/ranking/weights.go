package ranking

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights are the relevance-score coefficients. They were tuned against the
// catalog by hand and ship as defaults, but deployments can override them
// from a YAML file without a rebuild.
type Weights struct {
	GlobalScore    float64 `yaml:"global_score"`
	Research       float64 `yaml:"research"`
	Quality        float64 `yaml:"quality"`
	Price          float64 `yaml:"price"`
	CertifiedBonus float64 `yaml:"certified_bonus"`

	// Evidence-tier study thresholds for the displayed A/B/C label.
	TierAMinStudies int `yaml:"tier_a_min_studies"`
	TierBMinStudies int `yaml:"tier_b_min_studies"`

	// MaxResults caps the shortlist.
	MaxResults int `yaml:"max_results"`
}

func DefaultWeights() Weights {
	return Weights{
		GlobalScore:     0.45,
		Research:        0.18,
		Quality:         0.18,
		Price:           0.19,
		CertifiedBonus:  0.05,
		TierAMinStudies: 100,
		TierBMinStudies: 40,
		MaxResults:      15,
	}
}

// LoadWeights reads a YAML override file. Fields left at zero fall back to
// the defaults so a file can override a single coefficient.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	raw, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	var override Weights
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return w, fmt.Errorf("parse weights file: %w", err)
	}
	w.merge(override)
	return w, nil
}

func (w *Weights) merge(o Weights) {
	if o.GlobalScore > 0 {
		w.GlobalScore = o.GlobalScore
	}
	if o.Research > 0 {
		w.Research = o.Research
	}
	if o.Quality > 0 {
		w.Quality = o.Quality
	}
	if o.Price > 0 {
		w.Price = o.Price
	}
	if o.CertifiedBonus > 0 {
		w.CertifiedBonus = o.CertifiedBonus
	}
	if o.TierAMinStudies > 0 {
		w.TierAMinStudies = o.TierAMinStudies
	}
	if o.TierBMinStudies > 0 {
		w.TierBMinStudies = o.TierBMinStudies
	}
	if o.MaxResults > 0 {
		w.MaxResults = o.MaxResults
	}
}
