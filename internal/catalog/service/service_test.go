package service

import (
	"reflect"
	"testing"

	"shipquote_backend/internal/catalog/repository"
	"shipquote_backend/platform/apperr"
	"shipquote_backend/platform/logger"
)

// countingRepo wraps the in-memory repository to observe catalog access.
type countingRepo struct {
	repository.Repository
	gets int
}

func (r *countingRepo) Get(id int) (repository.LotRecord, bool) {
	r.gets++
	return r.Repository.Get(id)
}

func newTestService(t *testing.T) (*Service, *countingRepo) {
	t.Helper()
	repo := &countingRepo{Repository: repository.NewInMemory(repository.DemoCatalog())}
	return New(repo, logger.New("development")), repo
}

func TestLookup_TooManyTokensPerformsNoCatalogAccess(t *testing.T) {
	svc, repo := newTestService(t)

	_, _, err := svc.Lookup("1,2,3,4,5,6,7,8,9,10,11")
	if err == nil {
		t.Fatalf("expected validation error for 11 tokens")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
	if repo.gets != 0 {
		t.Fatalf("expected no catalog access, got %d gets", repo.gets)
	}
}

func TestLookup_ExactlyTenTokensAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	resolved, _, err := svc.Lookup("86,87,88,89,90,91,92,93,94,95")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 10 {
		t.Fatalf("expected 10 resolved lots, got %d", len(resolved))
	}
}

func TestLookup_OrderMirrorsInputAndDuplicatesAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	resolved, _, err := svc.Lookup("94, 86, 94")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []int{resolved[0].ID, resolved[1].ID, resolved[2].ID}
	if !reflect.DeepEqual(got, []int{94, 86, 94}) {
		t.Fatalf("expected order [94 86 94], got %v", got)
	}
	for _, lot := range resolved {
		if lot.Status != StatusFound {
			t.Fatalf("expected all lots found, got %s for %q", lot.Status, lot.Token)
		}
	}
}

func TestLookup_InvalidTokenPreservedVerbatim(t *testing.T) {
	svc, _ := newTestService(t)

	resolved, _, err := svc.Lookup("86, twelve, -3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(resolved))
	}
	if resolved[1].Status != StatusInvalid || resolved[1].Token != "twelve" {
		t.Fatalf("expected invalid marker with token 'twelve', got %+v", resolved[1])
	}
	if resolved[2].Status != StatusInvalid || resolved[2].Token != "-3" {
		t.Fatalf("expected negative token to be invalid, got %+v", resolved[2])
	}
}

func TestLookup_NotFoundCarriesParsedID(t *testing.T) {
	svc, _ := newTestService(t)

	resolved, saleNumbers, err := svc.Lookup("999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved[0].Status != StatusNotFound || resolved[0].ID != 999 {
		t.Fatalf("expected not_found with id 999, got %+v", resolved[0])
	}
	if len(saleNumbers) != 0 {
		t.Fatalf("expected no sale numbers, got %v", saleNumbers)
	}
}

func TestLookup_FractionalTokenTruncatesTowardCatalogKey(t *testing.T) {
	svc, _ := newTestService(t)

	resolved, _, err := svc.Lookup("86.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved[0].Status != StatusFound || resolved[0].ID != 86 {
		t.Fatalf("expected 86.9 to resolve lot 86, got %+v", resolved[0])
	}
}

func TestLookup_BlankTokensDropped(t *testing.T) {
	svc, _ := newTestService(t)

	resolved, _, err := svc.Lookup(" 86, , 87,  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected blanks dropped, got %d outcomes", len(resolved))
	}
}

func TestLookup_SaleNumbersSortedSet(t *testing.T) {
	repo := repository.NewInMemory([]repository.LotRecord{
		{ID: 1, SaleNumber: "9000", WeightClass: repository.WeightLight, Description: "a"},
		{ID: 2, SaleNumber: "7185", WeightClass: repository.WeightLight, Description: "b"},
		{ID: 3, SaleNumber: "7185", WeightClass: repository.WeightLight, Description: "c"},
	})
	svc := New(repo, logger.New("development"))

	_, saleNumbers, err := svc.Lookup("1,2,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(saleNumbers, []string{"7185", "9000"}) {
		t.Fatalf("expected deduplicated sorted sale numbers, got %v", saleNumbers)
	}
}

func TestLookup_Deterministic(t *testing.T) {
	svc, _ := newTestService(t)

	first, firstSales, err := svc.Lookup("86, 999, x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, secondSales, err := svc.Lookup("86, 999, x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(firstSales, secondSales) {
		t.Fatalf("lookup is not deterministic")
	}
}
