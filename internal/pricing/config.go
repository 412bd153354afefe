// Package pricing computes shipping quotes from static multiplier tables and
// a distance tier derived from geocoding. All monetary amounts are int64
// cents; floats only appear transiently inside multiplications.
package pricing

import (
	"fmt"
	"os"
	"strings"

	"shipquote_backend/platform/validator"

	"gopkg.in/yaml.v3"
)

// DistanceTier maps a distance bucket to its multiplier. MaxKm of zero marks
// the open-ended last tier.
type DistanceTier struct {
	MaxKm      float64 `yaml:"maxKm" validate:"gte=0"`
	Multiplier float64 `yaml:"multiplier" validate:"gt=0"`
}

// Currency is one entry of the static conversion table. Rates are relative
// to EUR, the quoting currency.
type Currency struct {
	Rate   float64 `yaml:"rate"`
	Symbol string  `yaml:"symbol"`
}

// Tables holds every adjustable pricing parameter. The constants are business
// parameters, not structural requirements, so they live here rather than in
// code and can be overridden from a YAML file.
type Tables struct {
	BasePriceCents      int64               `yaml:"basePriceCents" validate:"gt=0"`
	WeightMultipliers   map[string]float64  `yaml:"weightMultipliers" validate:"dive,gt=0"`
	MaterialMultipliers map[string]float64  `yaml:"materialMultipliers" validate:"dive,gt=0"`
	DistanceTiers       []DistanceTier      `yaml:"distanceTiers" validate:"min=1,dive"`
	PackingFeesCents    map[string]int64    `yaml:"packingFeesCents"`
	DeliveryFeesCents   map[string]int64    `yaml:"deliveryFeesCents"`
	Currencies          map[string]Currency `yaml:"currencies"`
}

// Defaults returns the canonical tables.
func Defaults() Tables {
	return Tables{
		BasePriceCents: 22000,
		WeightMultipliers: map[string]float64{
			"light":  1.0,
			"medium": 1.5,
			"heavy":  2.0,
		},
		MaterialMultipliers: map[string]float64{
			"canvas":      1.0,
			"photograph":  1.0,
			"paper":       1.0,
			"metal":       1.5,
			"glass/steel": 1.6,
			"mixed media": 1.2,
		},
		DistanceTiers: []DistanceTier{
			{MaxKm: 50, Multiplier: 1.0},
			{MaxKm: 300, Multiplier: 1.2},
			{MaxKm: 1000, Multiplier: 1.5},
			{MaxKm: 0, Multiplier: 2.0},
		},
		PackingFeesCents: map[string]int64{
			"Automatic (AI suggestion)": 0,
			"Wood crate":                8500,
			"Cardboard box":             2500,
			"Bubble wrap only":          1500,
			"Custom packing":            12000,
		},
		DeliveryFeesCents: map[string]int64{
			"Front delivery": 0,
			// Curbside drop-off is less service than the front-door default.
			"Curbside":       -2500,
			"Room of choice": 7500,
			"White glove":    15000,
		},
		Currencies: map[string]Currency{
			"EUR": {Rate: 1.0, Symbol: "€"},
			"USD": {Rate: 1.08, Symbol: "$"},
			"GBP": {Rate: 0.86, Symbol: "£"},
			"CHF": {Rate: 0.95, Symbol: "CHF"},
		},
	}
}

// Load returns the default tables overlaid with the YAML file at path.
// An empty path means defaults only. Map entries merge key by key; the
// distance tier list is replaced wholesale when present.
func Load(path string, val *validator.Validator) (Tables, error) {
	tables := Defaults()
	if path == "" {
		return tables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read pricing config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return Tables{}, fmt.Errorf("parse pricing config: %w", err)
	}
	if err := val.Struct(tables); err != nil {
		return Tables{}, fmt.Errorf("invalid pricing config: %w", err)
	}
	return tables, nil
}

// WeightMultiplier returns the multiplier for a weight class, 1.0 when unknown.
func (t Tables) WeightMultiplier(weightClass string) float64 {
	if m, ok := t.WeightMultipliers[strings.ToLower(weightClass)]; ok {
		return m
	}
	return 1.0
}

// MaterialMultiplier returns the multiplier for a material, 1.0 when unknown.
func (t Tables) MaterialMultiplier(material string) float64 {
	if m, ok := t.MaterialMultipliers[strings.ToLower(strings.TrimSpace(material))]; ok {
		return m
	}
	return 1.0
}

// DistanceMultiplier buckets a distance into its tier multiplier.
func (t Tables) DistanceMultiplier(distanceKm float64) float64 {
	for _, tier := range t.DistanceTiers {
		if tier.MaxKm > 0 && distanceKm < tier.MaxKm {
			return tier.Multiplier
		}
	}
	if len(t.DistanceTiers) > 0 {
		return t.DistanceTiers[len(t.DistanceTiers)-1].Multiplier
	}
	return 1.0
}

// PackingFee returns the flat fee for a packing option.
func (t Tables) PackingFee(packing string) (int64, bool) {
	fee, ok := t.PackingFeesCents[packing]
	return fee, ok
}

// DeliveryFee returns the flat fee for a delivery option.
func (t Tables) DeliveryFee(delivery string) (int64, bool) {
	fee, ok := t.DeliveryFeesCents[delivery]
	return fee, ok
}

// Currency returns the conversion entry for a currency code.
func (t Tables) Currency(code string) (Currency, bool) {
	cur, ok := t.Currencies[strings.ToUpper(code)]
	return cur, ok
}

// DeliveryOptions lists the configured delivery option names.
func (t Tables) DeliveryOptions() []string {
	names := make([]string, 0, len(t.DeliveryFeesCents))
	for name := range t.DeliveryFeesCents {
		names = append(names, name)
	}
	return names
}
