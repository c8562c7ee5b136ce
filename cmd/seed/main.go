// Command seed imports the supplement catalog from a YAML file. Rows are
// keyed by slug, so re-running against an updated file refreshes existing
// items in place. The redis catalog cache is invalidated after a successful
// import so the API serves the new rows immediately.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/suppstack/suppstack-backend/internal/app"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type catalogFile struct {
	Items []catalogEntry `yaml:"items"`
}

type catalogEntry struct {
	Slug          string   `yaml:"slug"`
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	ScoreGlobal   *float64 `yaml:"score_global"`
	PriceMonthly  *float64 `yaml:"price_monthly"`
	ResearchCount int      `yaml:"research_count"`
	QualityLevel  string   `yaml:"quality_level"`
	EvidenceTier  string   `yaml:"evidence_tier"`
	ObjectiveTags []string `yaml:"objective_tags"`
	Certified     bool     `yaml:"certified"`
	Dosage        string   `yaml:"dosage"`
	Timing        string   `yaml:"timing"`
}

func main() {
	fileFlag := flag.String("file", "catalog.yaml", "path to the catalog yaml file")
	flag.Parse()

	raw, err := os.ReadFile(*fileFlag)
	if err != nil {
		fmt.Printf("Failed to read catalog file: %v\n", err)
		os.Exit(1)
	}

	var parsed catalogFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		fmt.Printf("Failed to parse catalog file: %v\n", err)
		os.Exit(1)
	}
	if len(parsed.Items) == 0 {
		fmt.Println("Catalog file contains no items, nothing to do")
		return
	}

	items := make([]types.Item, 0, len(parsed.Items))
	for i, entry := range parsed.Items {
		if entry.Slug == "" || entry.Name == "" {
			fmt.Printf("Item %d is missing slug or name\n", i)
			os.Exit(1)
		}
		items = append(items, types.Item{
			Slug:          entry.Slug,
			Name:          entry.Name,
			Category:      entry.Category,
			ScoreGlobal:   entry.ScoreGlobal,
			PriceMonthly:  entry.PriceMonthly,
			ResearchCount: entry.ResearchCount,
			QualityLevel:  entry.QualityLevel,
			EvidenceTier:  entry.EvidenceTier,
			ObjectiveTags: datatypes.JSONSlice[string](entry.ObjectiveTags),
			Certified:     entry.Certified,
			Dosage:        entry.Dosage,
			Timing:        entry.Timing,
		})
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log := application.Log.With("cmd", "seed")

	if err := application.Repos.Item.UpsertBySlug(ctx, nil, items); err != nil {
		log.Error("Catalog import failed", "error", err)
		os.Exit(1)
	}
	if application.Clients.CatalogCache != nil {
		application.Clients.CatalogCache.Invalidate(ctx)
	}
	log.Info("Catalog import complete", "items", len(items), "file", *fileFlag)
}
