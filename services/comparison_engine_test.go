package services

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"vendor-comparison/models"
)

func quote(name string, price float64, payDays, delDays int) models.VendorQuotation {
	return models.VendorQuotation{
		VendorName:       name,
		Price:            price,
		PaymentTermsDays: payDays,
		DeliveryDays:     delDays,
	}
}

func scoreClose(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		name     string
		priority string
		want     string
		wantErr  bool
	}{
		{"empty defaults to balanced", "", PriorityBalanced, false},
		{"balanced", PriorityBalanced, PriorityBalanced, false},
		{"low_price", PriorityLowPrice, PriorityLowPrice, false},
		{"fast_delivery", PriorityFastDelivery, PriorityFastDelivery, false},
		{"payment_terms", PriorityPaymentTerms, PriorityPaymentTerms, false},
		{"unknown token", "cheapest", "", true},
		{"case sensitive", "Balanced", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := ResolvePriority(tt.priority)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolvePriority(%q) expected error, got none", tt.priority)
				}
				var invalidErr *InvalidPriorityError
				if !errors.As(err, &invalidErr) {
					t.Fatalf("ResolvePriority(%q) error = %T, want *InvalidPriorityError", tt.priority, err)
				}
				if invalidErr.Priority != tt.priority {
					t.Errorf("InvalidPriorityError.Priority = %q, want %q", invalidErr.Priority, tt.priority)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePriority(%q) unexpected error: %v", tt.priority, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePriority(%q) = %q, want %q", tt.priority, got, tt.want)
			}
		})
	}
}

func TestRankVendors_PriorityProfiles(t *testing.T) {
	// Alpha is fastest, Beta is cheapest with the best credit terms. Every
	// profile except fast_delivery should put Beta first.
	vendors := []models.VendorQuotation{
		quote("Alpha", 150, 30, 7),
		quote("Beta", 135, 60, 10),
	}

	tests := []struct {
		priority   string
		wantOrder  []string
		wantScores []float64
	}{
		{PriorityBalanced, []string{"Beta", "Alpha"}, []float64{6.67, 3.33}},
		{PriorityLowPrice, []string{"Beta", "Alpha"}, []float64{8.0, 2.0}},
		{PriorityFastDelivery, []string{"Alpha", "Beta"}, []float64{6.0, 4.0}},
		{PriorityPaymentTerms, []string{"Beta", "Alpha"}, []float64{8.0, 2.0}},
	}
	for _, tt := range tests {
		t.Run(tt.priority, func(t *testing.T) {
			engine, err := NewComparisonEngine(tt.priority)
			if err != nil {
				t.Fatalf("NewComparisonEngine(%q) error: %v", tt.priority, err)
			}
			ranking, err := engine.RankVendors(vendors)
			if err != nil {
				t.Fatalf("RankVendors error: %v", err)
			}
			if len(ranking) != len(tt.wantOrder) {
				t.Fatalf("got %d ranked vendors, want %d", len(ranking), len(tt.wantOrder))
			}
			for i, want := range tt.wantOrder {
				if ranking[i].VendorName != want {
					t.Errorf("rank %d vendor = %q, want %q", i+1, ranking[i].VendorName, want)
				}
				if ranking[i].Rank != i+1 {
					t.Errorf("rank field = %d, want %d", ranking[i].Rank, i+1)
				}
				if !scoreClose(ranking[i].Score, tt.wantScores[i]) {
					t.Errorf("rank %d score = %v, want %v", i+1, ranking[i].Score, tt.wantScores[i])
				}
			}
		})
	}
}

func TestRankVendors_CategoryWinners(t *testing.T) {
	engine, err := NewComparisonEngine(PriorityBalanced)
	if err != nil {
		t.Fatalf("NewComparisonEngine error: %v", err)
	}
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("Alpha", 150, 30, 7),
		quote("Beta", 135, 60, 10),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}

	byName := map[string][]string{}
	for _, r := range ranking {
		byName[r.VendorName] = r.CategoryWinners
	}
	wantBeta := []string{CategoryBestPrice, CategoryBestPaymentTerms}
	if !reflect.DeepEqual(byName["Beta"], wantBeta) {
		t.Errorf("Beta category winners = %v, want %v", byName["Beta"], wantBeta)
	}
	wantAlpha := []string{CategoryFastestDelivery}
	if !reflect.DeepEqual(byName["Alpha"], wantAlpha) {
		t.Errorf("Alpha category winners = %v, want %v", byName["Alpha"], wantAlpha)
	}
}

func TestRankVendors_CategoryWinnerOrder(t *testing.T) {
	// A vendor winning every category lists the tags in price, delivery,
	// payment order.
	engine, _ := NewComparisonEngine(PriorityBalanced)
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("Winner", 100, 60, 2),
		quote("Loser", 200, 0, 9),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	want := []string{CategoryBestPrice, CategoryFastestDelivery, CategoryBestPaymentTerms}
	if !reflect.DeepEqual(ranking[0].CategoryWinners, want) {
		t.Errorf("winner categories = %v, want %v", ranking[0].CategoryWinners, want)
	}
	if len(ranking[1].CategoryWinners) != 0 {
		t.Errorf("loser categories = %v, want none", ranking[1].CategoryWinners)
	}
}

func TestRankVendors_SharedCategoryTies(t *testing.T) {
	// Both vendors quote the same lowest price, so both carry the tag.
	engine, _ := NewComparisonEngine(PriorityBalanced)
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("Alpha", 100, 30, 5),
		quote("Beta", 100, 15, 9),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	for _, r := range ranking {
		found := false
		for _, c := range r.CategoryWinners {
			if c == CategoryBestPrice {
				found = true
			}
		}
		if !found {
			t.Errorf("%s missing %q tag on a shared lowest price", r.VendorName, CategoryBestPrice)
		}
	}
}

func TestRankVendors_ZeroDeliveryIsFastest(t *testing.T) {
	// In-stock vendors quote zero delivery days; zero is a real value, not
	// missing data, and wins the delivery category.
	engine, _ := NewComparisonEngine(PriorityBalanced)
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("Stocked", 110, 15, 0),
		quote("Factory", 100, 30, 5),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	for _, r := range ranking {
		if r.VendorName != "Stocked" {
			continue
		}
		if !reflect.DeepEqual(r.CategoryWinners, []string{CategoryFastestDelivery}) {
			t.Errorf("Stocked categories = %v, want [%s]", r.CategoryWinners, CategoryFastestDelivery)
		}
	}
}

func TestRankVendors_NoVariance(t *testing.T) {
	// Identical quotes: every sub-score is 1.0, every vendor scores the
	// maximum, and the order falls back to the vendor name.
	engine, _ := NewComparisonEngine(PriorityBalanced)
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("Zeta", 200, 15, 3),
		quote("Alpha", 200, 15, 3),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	if ranking[0].VendorName != "Alpha" || ranking[1].VendorName != "Zeta" {
		t.Errorf("order = [%s, %s], want [Alpha, Zeta]", ranking[0].VendorName, ranking[1].VendorName)
	}
	for _, r := range ranking {
		if !scoreClose(r.Score, ScoreScale) {
			t.Errorf("%s score = %v, want %v", r.VendorName, r.Score, ScoreScale)
		}
		want := []string{CategoryBestPrice, CategoryFastestDelivery, CategoryBestPaymentTerms}
		if !reflect.DeepEqual(r.CategoryWinners, want) {
			t.Errorf("%s categories = %v, want %v", r.VendorName, r.CategoryWinners, want)
		}
	}
}

func TestRankVendors_TieBreakPrice(t *testing.T) {
	// A and B land on the same weighted score; the cheaper vendor ranks
	// higher.
	engine, _ := NewComparisonEngine(PriorityBalanced)
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("Pricey", 200, 60, 10),
		quote("Cheap", 100, 0, 10),
		quote("Middle", 150, 30, 0),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	want := []string{"Middle", "Cheap", "Pricey"}
	for i, name := range want {
		if ranking[i].VendorName != name {
			t.Errorf("rank %d = %q, want %q", i+1, ranking[i].VendorName, name)
		}
	}
}

func TestRankVendors_TieBreakDelivery(t *testing.T) {
	// Same price everywhere and the payment/delivery sub-scores cancel out,
	// leaving all three vendors on the same score. Fewer delivery days wins.
	engine, _ := NewComparisonEngine(PriorityBalanced)
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("SlowLongCredit", 100, 60, 8),
		quote("MidMid", 100, 30, 5),
		quote("FastAdvance", 100, 0, 2),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	want := []string{"FastAdvance", "MidMid", "SlowLongCredit"}
	for i, name := range want {
		if ranking[i].VendorName != name {
			t.Errorf("rank %d = %q, want %q", i+1, ranking[i].VendorName, name)
		}
	}
	for _, r := range ranking {
		if !scoreClose(r.Score, 6.67) {
			t.Errorf("%s score = %v, want 6.67", r.VendorName, r.Score)
		}
	}
}

func TestRankVendors_EmptySet(t *testing.T) {
	engine, _ := NewComparisonEngine(PriorityBalanced)
	_, err := engine.RankVendors(nil)
	if !errors.Is(err, ErrEmptyVendorSet) {
		t.Fatalf("RankVendors(nil) error = %v, want ErrEmptyVendorSet", err)
	}
	_, err = engine.RankVendors([]models.VendorQuotation{})
	if !errors.Is(err, ErrEmptyVendorSet) {
		t.Fatalf("RankVendors(empty) error = %v, want ErrEmptyVendorSet", err)
	}
}

func TestRankVendors_Deterministic(t *testing.T) {
	engine, _ := NewComparisonEngine(PriorityLowPrice)
	vendors := []models.VendorQuotation{
		quote("Gamma", 180, 45, 12),
		quote("Alpha", 150, 30, 7),
		quote("Beta", 135, 60, 10),
		quote("Delta", 150, 30, 7),
	}

	first, err := engine.RankVendors(vendors)
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	second, err := engine.RankVendors(vendors)
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated ranking differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRankVendors_MaterialsNeverNil(t *testing.T) {
	engine, _ := NewComparisonEngine(PriorityBalanced)
	ranking, err := engine.RankVendors([]models.VendorQuotation{
		quote("Alpha", 150, 30, 7),
		quote("Beta", 135, 60, 10),
	})
	if err != nil {
		t.Fatalf("RankVendors error: %v", err)
	}
	for _, r := range ranking {
		if r.Materials == nil {
			t.Errorf("%s materials is nil, want empty slice", r.VendorName)
		}
	}
}

func TestNewComparisonEngine_InvalidPriority(t *testing.T) {
	_, err := NewComparisonEngine("urgent")
	if err == nil {
		t.Fatal("NewComparisonEngine(\"urgent\") expected error, got none")
	}
	var invalidErr *InvalidPriorityError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("error = %T, want *InvalidPriorityError", err)
	}

	engine, err := NewComparisonEngine("")
	if err != nil {
		t.Fatalf("NewComparisonEngine(\"\") error: %v", err)
	}
	if engine.Priority() != PriorityBalanced {
		t.Errorf("Priority() = %q, want %q", engine.Priority(), PriorityBalanced)
	}
}
