package packing

import (
	"testing"

	"shipquote_backend/internal/catalog/repository"
)

func lot(id int, material, description string) repository.LotRecord {
	return repository.LotRecord{
		ID: id, WeightClass: repository.WeightMedium,
		Material: material, Description: description,
	}
}

func TestSuggestLot_GlassSteelGetsWoodCrate(t *testing.T) {
	advisor := New()

	advice := advisor.SuggestLot(lot(89, "Glass/Steel", "Glass, steel, formaldehyde solution"))
	if advice.Packing != WoodCrate {
		t.Fatalf("expected Wood crate for glass/steel, got %q", advice.Packing)
	}
	if advice.Reason == "" {
		t.Fatalf("expected a fragile/rigid reason")
	}
}

func TestSuggestLot_RuleOrderPrefersFragileOverPainting(t *testing.T) {
	advisor := New()

	// An oil painting framed behind glass must still be crated.
	advice := advisor.SuggestLot(lot(1, "Canvas", "Oil on canvas, framed behind glass"))
	if advice.Packing != WoodCrate {
		t.Fatalf("expected Wood crate for framed-behind-glass painting, got %q", advice.Packing)
	}
}

func TestSuggestLot_KeywordTable(t *testing.T) {
	advisor := New()

	cases := []struct {
		material    string
		description string
		want        Type
	}{
		{"Photograph", "Gelatin silver print", CardboardBox},
		{"Paper", "Lithograph on paper", CardboardBox},
		{"Canvas", "Acrylic on canvas", Automatic},
		{"Metal", "Mirror-polished stainless steel", WoodCrate},
		{"Textile", "Woven tapestry", Automatic},
	}
	for _, tc := range cases {
		advice := advisor.SuggestLot(lot(1, tc.material, tc.description))
		if advice.Packing != tc.want {
			t.Fatalf("material %q: expected %q, got %q", tc.material, tc.want, advice.Packing)
		}
	}
}

func TestSuggestLot_NoMatchUsesStandardProtection(t *testing.T) {
	advisor := New()

	advice := advisor.SuggestLot(lot(1, "Textile", "Woven tapestry"))
	if advice.Packing != Automatic {
		t.Fatalf("expected Automatic default, got %q", advice.Packing)
	}
	if advice.Reason != "standard protection" {
		t.Fatalf("expected standard protection reason, got %q", advice.Reason)
	}
}

func TestSuggest_UnanimousVote(t *testing.T) {
	advisor := New()

	advice := advisor.Suggest([]repository.LotRecord{
		lot(1, "Photograph", ""),
		lot(2, "Paper", "Watercolor"),
	})
	if advice.Overall != CardboardBox {
		t.Fatalf("expected unanimous Cardboard box, got %q", advice.Overall)
	}
	if len(advice.PerLot) != 2 {
		t.Fatalf("expected 2 per-lot entries, got %d", len(advice.PerLot))
	}
}

func TestSuggest_ProtectionDominatesMixedVote(t *testing.T) {
	advisor := New()

	// One crate vote against one box vote: protection level wins, not count.
	advice := advisor.Suggest([]repository.LotRecord{
		lot(1, "Glass/Steel", ""),
		lot(2, "Photograph", ""),
	})
	if advice.Overall != WoodCrate {
		t.Fatalf("expected Wood crate to dominate mixed vote, got %q", advice.Overall)
	}

	// Crate outvoted two to one still wins.
	advice = advisor.Suggest([]repository.LotRecord{
		lot(1, "Photograph", ""),
		lot(2, "Photograph", ""),
		lot(3, "Bronze", "Bronze sculpture"),
	})
	if advice.Overall != WoodCrate {
		t.Fatalf("expected Wood crate despite minority vote, got %q", advice.Overall)
	}
}

func TestSuggest_CardboardBeatsAutomaticInMixedVote(t *testing.T) {
	advisor := New()

	advice := advisor.Suggest([]repository.LotRecord{
		lot(1, "Canvas", "Oil on canvas"),
		lot(2, "Photograph", ""),
	})
	if advice.Overall != CardboardBox {
		t.Fatalf("expected Cardboard box over Automatic, got %q", advice.Overall)
	}
}

func TestSuggest_AggregateIsOrderIndependent(t *testing.T) {
	advisor := New()

	records := []repository.LotRecord{
		lot(1, "Canvas", "Oil on canvas"),
		lot(2, "Glass/Steel", ""),
		lot(3, "Photograph", ""),
	}
	forward := advisor.Suggest(records)

	reversed := []repository.LotRecord{records[2], records[1], records[0]}
	backward := advisor.Suggest(reversed)

	if forward.Overall != backward.Overall {
		t.Fatalf("aggregate depends on order: %q vs %q", forward.Overall, backward.Overall)
	}
	for i := range records {
		if forward.PerLot[i].Packing != backward.PerLot[len(records)-1-i].Packing {
			t.Fatalf("per-lot advice changed under permutation")
		}
	}
}

func TestSuggest_EmptyRecords(t *testing.T) {
	advisor := New()

	advice := advisor.Suggest(nil)
	if advice.Overall != Automatic {
		t.Fatalf("expected Automatic for empty input, got %q", advice.Overall)
	}
	if advice.OverallReason != "enter lot numbers to get a packing suggestion" {
		t.Fatalf("unexpected empty-input reason %q", advice.OverallReason)
	}
	if len(advice.PerLot) != 0 {
		t.Fatalf("expected no per-lot advice, got %d", len(advice.PerLot))
	}
}

func TestValid(t *testing.T) {
	for _, opt := range Options() {
		if !Valid(opt) {
			t.Fatalf("expected %q to be valid", opt)
		}
	}
	if Valid("Shrink wrap") {
		t.Fatalf("expected unknown option to be invalid")
	}
}
