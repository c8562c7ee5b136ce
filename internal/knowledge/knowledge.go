package knowledge

import "strings"

// Package knowledge is the static dosage/timing lookup used when the catalog
// row carries no structured fields. Keys are normalized item names; values
// come from the product team's content sheet. Display strings are French,
// like the rest of the product copy.

const (
	DefaultDosage = "Selon recommandations"
	DefaultTiming = "Quotidien (timing flexible)"
)

type Entry struct {
	Dosage string
	Timing string
}

var entries = map[string]Entry{
	"creatine":           {Dosage: "3-5 g/jour", Timing: "Post-entraînement ou à tout moment"},
	"creatinemonohydrate": {Dosage: "3-5 g/jour", Timing: "Post-entraînement ou à tout moment"},
	"wheyproteine":       {Dosage: "20-30 g/portion", Timing: "Post-entraînement"},
	"whey":               {Dosage: "20-30 g/portion", Timing: "Post-entraînement"},
	"cafeine":            {Dosage: "3-6 mg/kg", Timing: "30-60 min avant l'effort"},
	"betaalanine":        {Dosage: "3-6 g/jour", Timing: "Quotidien, doses fractionnées"},
	"citrulline":         {Dosage: "6-8 g", Timing: "30-60 min avant l'effort"},
	"omega3":             {Dosage: "1-3 g EPA+DHA/jour", Timing: "Avec un repas"},
	"vitamined":          {Dosage: "1000-2000 UI/jour", Timing: "Avec un repas gras"},
	"magnesium":          {Dosage: "200-400 mg/jour", Timing: "Le soir"},
	"zinc":               {Dosage: "10-25 mg/jour", Timing: "À jeun ou au coucher"},
	"melatonine":         {Dosage: "0.5-3 mg", Timing: "30 min avant le coucher"},
	"ashwagandha":        {Dosage: "300-600 mg/jour", Timing: "Matin ou soir"},
	"collagene":          {Dosage: "10-15 g/jour", Timing: "Quotidien (timing flexible)"},
	"electrolytes":       {Dosage: "Selon transpiration", Timing: "Pendant l'effort"},
	"maltodextrine":      {Dosage: "30-60 g/h d'effort", Timing: "Pendant l'effort"},
	"fer":                {Dosage: "Selon bilan sanguin", Timing: "À jeun, loin du café"},
	"probiotiques":       {Dosage: "10-30 milliards UFC/jour", Timing: "À jeun"},
}

// Lookup returns the knowledge-base entry for an item name, falling back to
// the static defaults when the name is unknown.
func Lookup(name string) Entry {
	if e, ok := entries[normalize(name)]; ok {
		return e
	}
	return Entry{Dosage: DefaultDosage, Timing: DefaultTiming}
}

// normalize lowercases, strips accents the catalog commonly uses, and drops
// separators so "Créatine monohydrate" and "creatine-monohydrate" collide.
func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"à", "a", "â", "a",
		"î", "i", "ï", "i",
		"ô", "o", "ö", "o",
		"û", "u", "ü", "u", "ù", "u",
		"ç", "c",
		" ", "", "-", "", "_", "", ".", "",
	)
	return replacer.Replace(s)
}
