// Package packing recommends protective packaging for auction lots based on
// keyword matching against each lot's material and description.
package packing

import (
	"strings"

	"shipquote_backend/internal/catalog/repository"
)

// Type is a packing option as shown to the client.
type Type string

const (
	Automatic    Type = "Automatic (AI suggestion)"
	WoodCrate    Type = "Wood crate"
	CardboardBox Type = "Cardboard box"
	BubbleWrap   Type = "Bubble wrap only"
	Custom       Type = "Custom packing"
)

// Options lists every packing type a quote request may select.
func Options() []Type {
	return []Type{Automatic, WoodCrate, CardboardBox, BubbleWrap, Custom}
}

// Valid reports whether t is a selectable packing type.
func Valid(t Type) bool {
	for _, opt := range Options() {
		if t == opt {
			return true
		}
	}
	return false
}

// protection ranks packing types for the aggregate tie-break. When lots
// disagree the most protective recommendation wins regardless of vote count.
func protection(t Type) int {
	switch t {
	case WoodCrate:
		return 2
	case CardboardBox:
		return 1
	default:
		return 0
	}
}

// Rule maps a keyword predicate to a recommendation. Rules are evaluated in
// order; the first match wins.
type Rule struct {
	Match   func(text string) bool
	Packing Type
	Reason  string
}

func anyKeyword(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

// DefaultRules returns the advisor's ordered rule table. Fragile and rigid
// works come first so that, say, an oil on canvas behind glass is still
// crated.
func DefaultRules() []Rule {
	return []Rule{
		{
			Match: anyKeyword("glass", "steel", "metal", "formaldehyde", "ceramic",
				"porcelain", "marble", "bronze", "stone", "sculpture", "installation"),
			Packing: WoodCrate,
			Reason:  "fragile or rigid work, crate required",
		},
		{
			Match: anyKeyword("paper", "photograph", "photo", "print", "gelatin",
				"lithograph", "watercolor", "watercolour", "drawing"),
			Packing: CardboardBox,
			Reason:  "paper-based work, reinforced box",
		},
		{
			Match:   anyKeyword("canvas", "oil", "acrylic", "painting"),
			Packing: Automatic,
			Reason:  "painting, packing chosen on inspection",
		},
	}
}

const (
	defaultReason = "standard protection"
	emptyReason   = "enter lot numbers to get a packing suggestion"
)

// LotAdvice is the recommendation for a single lot.
type LotAdvice struct {
	LotID   int
	Packing Type
	Reason  string
}

// Advice is the advisor output for a set of lots.
type Advice struct {
	Overall       Type
	OverallReason string
	PerLot        []LotAdvice
}

// Advisor evaluates an ordered rule table against lot records. The zero value
// is not usable; construct with New.
type Advisor struct {
	rules []Rule
}

// New creates an advisor with the default rule table.
func New() *Advisor {
	return &Advisor{rules: DefaultRules()}
}

// NewWithRules creates an advisor with a custom rule table, used by tests.
func NewWithRules(rules []Rule) *Advisor {
	return &Advisor{rules: rules}
}

// SuggestLot recommends packing for a single record.
func (a *Advisor) SuggestLot(record repository.LotRecord) LotAdvice {
	text := strings.ToLower(record.Material + " " + record.Description)
	for _, rule := range a.rules {
		if rule.Match(text) {
			return LotAdvice{LotID: record.ID, Packing: rule.Packing, Reason: rule.Reason}
		}
	}
	return LotAdvice{LotID: record.ID, Packing: Automatic, Reason: defaultReason}
}

// Suggest recommends packing per lot and in aggregate. Per-lot advice keeps
// the input order. The aggregate is unanimous when all lots agree; on
// disagreement the most protective recommendation wins, so a single crated
// lot forces a crate for the shipment.
func (a *Advisor) Suggest(records []repository.LotRecord) Advice {
	if len(records) == 0 {
		return Advice{Overall: Automatic, OverallReason: emptyReason}
	}

	perLot := make([]LotAdvice, len(records))
	overall := LotAdvice{Packing: Automatic, Reason: defaultReason}
	unanimous := true

	for i, record := range records {
		advice := a.SuggestLot(record)
		perLot[i] = advice

		if i == 0 {
			overall = advice
			continue
		}
		if advice.Packing != overall.Packing {
			unanimous = false
		}
		if protection(advice.Packing) > protection(overall.Packing) {
			overall = advice
		}
	}

	reason := overall.Reason
	if !unanimous {
		reason = "mixed materials, using the most protective option: " + reason
	}

	return Advice{Overall: overall.Packing, OverallReason: reason, PerLot: perLot}
}
