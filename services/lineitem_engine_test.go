package services

import (
	"reflect"
	"testing"

	"vendor-comparison/models"
)

func lineRow(vendor, mat string, price, qty float64, payTerm string, delDays int) models.QuotationRow {
	return models.QuotationRow{
		VendorNo:     vendor + "-01",
		VendorName:   vendor,
		PayTerm:      payTerm,
		MatCode:      mat,
		MatText:      mat + " description",
		BasicPrice:   &price,
		DeliveryDays: delDays,
		Qty:          &qty,
		UOM:          "EA",
	}
}

func TestAnalyzeMaterials_RanksVendorsPerMaterial(t *testing.T) {
	engine, err := NewLineItemEngine(PriorityBalanced)
	if err != nil {
		t.Fatalf("NewLineItemEngine error: %v", err)
	}

	analysis := engine.AnalyzeMaterials([]models.QuotationRow{
		lineRow("Alpha", "M-100", 100, 10, "000", 5),
		lineRow("Beta", "M-100", 120, 10, "030", 10),
		lineRow("Gamma", "M-100", 150, 10, "060", 3),
	})

	if len(analysis.Materials) != 1 {
		t.Fatalf("got %d materials, want 1", len(analysis.Materials))
	}
	m := analysis.Materials[0]
	if m.MatCode != "M-100" || m.Qty != 10 {
		t.Errorf("material = %s qty %v, want M-100 qty 10", m.MatCode, m.Qty)
	}

	wantOrder := []string{"Gamma", "Alpha", "Beta"}
	for i, name := range wantOrder {
		q := m.VendorQuotes[i]
		if q.VendorName != name {
			t.Errorf("quote %d vendor = %q, want %q", i, q.VendorName, name)
		}
		if q.RankForMaterial != i+1 {
			t.Errorf("%s rank = %d, want %d", q.VendorName, q.RankForMaterial, i+1)
		}
	}

	byName := map[string]models.MaterialVendorQuote{}
	for _, q := range m.VendorQuotes {
		byName[q.VendorName] = q
	}

	if !byName["Alpha"].IsBestPrice {
		t.Error("Alpha should be flagged best price")
	}
	if !byName["Gamma"].IsBestPayment || !byName["Gamma"].IsBestDelivery {
		t.Error("Gamma should be flagged best payment and best delivery")
	}
	if byName["Beta"].IsBestPrice || byName["Beta"].IsBestPayment || byName["Beta"].IsBestDelivery {
		t.Errorf("Beta flags = %+v, want none", byName["Beta"])
	}

	if got := byName["Alpha"].TotalValue; got != 1000 {
		t.Errorf("Alpha total value = %v, want 1000", got)
	}
	if got := byName["Alpha"].SavingsVsWorst; got != 500 {
		t.Errorf("Alpha savings vs worst = %v, want 500", got)
	}
	if got := byName["Gamma"].SavingsVsWorst; got != 0 {
		t.Errorf("Gamma savings vs worst = %v, want 0", got)
	}

	rec := m.RecommendedVendor
	if rec.VendorName != "Gamma" {
		t.Errorf("recommended vendor = %q, want Gamma", rec.VendorName)
	}
	if rec.Alternative == nil {
		t.Fatal("recommended vendor has no alternative")
	}
	if rec.Alternative.VendorName != "Alpha" {
		t.Errorf("alternative vendor = %q, want Alpha", rec.Alternative.VendorName)
	}
}

func TestAnalyzeMaterials_PaymentTermCodes(t *testing.T) {
	engine, _ := NewLineItemEngine(PriorityPaymentTerms)
	analysis := engine.AnalyzeMaterials([]models.QuotationRow{
		lineRow("Advance", "M-1", 100, 1, "000", 5),
		lineRow("Credit", "M-1", 100, 1, "090", 5),
	})

	m := analysis.Materials[0]
	byName := map[string]models.MaterialVendorQuote{}
	for _, q := range m.VendorQuotes {
		byName[q.VendorName] = q
	}
	if byName["Advance"].PaymentTermsDays != 0 {
		t.Errorf("Advance payment days = %d, want 0", byName["Advance"].PaymentTermsDays)
	}
	if byName["Credit"].PaymentTermsDays != 90 {
		t.Errorf("Credit payment days = %d, want 90", byName["Credit"].PaymentTermsDays)
	}
	if m.RecommendedVendor.VendorName != "Credit" {
		t.Errorf("recommended = %q, want Credit under payment priority", m.RecommendedVendor.VendorName)
	}
}

func TestAnalyzeMaterials_FirstSeenMaterialOrder(t *testing.T) {
	engine, _ := NewLineItemEngine(PriorityBalanced)
	analysis := engine.AnalyzeMaterials([]models.QuotationRow{
		lineRow("Alpha", "M-200", 80, 2, "030", 4),
		lineRow("Alpha", "M-100", 90, 3, "030", 4),
		lineRow("Beta", "M-200", 85, 2, "030", 6),
		lineRow("Beta", "M-100", 70, 3, "030", 6),
	})

	var got []string
	for _, m := range analysis.Materials {
		got = append(got, m.MatCode)
	}
	want := []string{"M-200", "M-100"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("material order = %v, want %v", got, want)
	}
}

func TestAnalyzeMaterials_SkipsRowsMissingPriceOrQty(t *testing.T) {
	engine, _ := NewLineItemEngine(PriorityBalanced)

	noPrice := lineRow("Alpha", "M-1", 100, 5, "030", 4)
	noPrice.BasicPrice = nil
	noQty := lineRow("Beta", "M-2", 100, 5, "030", 4)
	noQty.Qty = nil

	analysis := engine.AnalyzeMaterials([]models.QuotationRow{
		noPrice,
		noQty,
		lineRow("Gamma", "M-3", 100, 5, "030", 4),
	})

	if len(analysis.Materials) != 1 {
		t.Fatalf("got %d materials, want 1", len(analysis.Materials))
	}
	if analysis.Materials[0].MatCode != "M-3" {
		t.Errorf("material = %q, want M-3", analysis.Materials[0].MatCode)
	}
}

func TestAnalyzeMaterials_SplitAwardBeatsSingleVendor(t *testing.T) {
	// Beta is cheaper on M-1 and Alpha on M-2, so the split costs 1050
	// against 1150 from the best single vendor.
	engine, _ := NewLineItemEngine(PriorityBalanced)
	analysis := engine.AnalyzeMaterials([]models.QuotationRow{
		lineRow("Alpha", "M-1", 100, 10, "030", 5),
		lineRow("Beta", "M-1", 80, 10, "030", 5),
		lineRow("Alpha", "M-2", 50, 5, "030", 5),
		lineRow("Beta", "M-2", 70, 5, "030", 5),
	})

	strategy := analysis.SplitAwardStrategy
	if !strategy.IsRecommended {
		t.Error("split award should be recommended")
	}
	if strategy.TotalCostSplit != 1050 {
		t.Errorf("split cost = %v, want 1050", strategy.TotalCostSplit)
	}
	if strategy.TotalCostSingleVendor != 1150 {
		t.Errorf("single vendor cost = %v, want 1150", strategy.TotalCostSingleVendor)
	}
	if strategy.TotalSavings != 100 {
		t.Errorf("savings = %v, want 100", strategy.TotalSavings)
	}
	if strategy.VendorCount != 2 {
		t.Errorf("vendor count = %d, want 2", strategy.VendorCount)
	}

	if len(strategy.VendorAllocation) != 2 {
		t.Fatalf("got %d allocations, want 2", len(strategy.VendorAllocation))
	}
	first := strategy.VendorAllocation[0]
	if first.VendorName != "Beta" || !reflect.DeepEqual(first.Materials, []string{"M-1"}) {
		t.Errorf("first allocation = %+v, want Beta with [M-1]", first)
	}
	if first.TotalValue != 800 {
		t.Errorf("Beta allocation value = %v, want 800", first.TotalValue)
	}
	second := strategy.VendorAllocation[1]
	if second.VendorName != "Alpha" || second.TotalValue != 250 {
		t.Errorf("second allocation = %+v, want Alpha with 250", second)
	}

	cmp := strategy.ComparisonVsSingle
	if cmp == nil {
		t.Fatal("comparison vs single vendor missing")
	}
	if cmp.SingleVendorOption != "Beta" {
		t.Errorf("single vendor option = %q, want Beta", cmp.SingleVendorOption)
	}
	if cmp.Savings != 100 {
		t.Errorf("comparison savings = %v, want 100", cmp.Savings)
	}
}

func TestAnalyzeMaterials_SingleVendorSweepNotRecommended(t *testing.T) {
	// Alpha wins every material, so there is nothing to split.
	engine, _ := NewLineItemEngine(PriorityBalanced)
	analysis := engine.AnalyzeMaterials([]models.QuotationRow{
		lineRow("Alpha", "M-1", 80, 10, "030", 5),
		lineRow("Beta", "M-1", 100, 10, "030", 5),
		lineRow("Alpha", "M-2", 40, 10, "030", 5),
		lineRow("Beta", "M-2", 50, 10, "030", 5),
	})

	strategy := analysis.SplitAwardStrategy
	if strategy.IsRecommended {
		t.Error("split award should not be recommended for a single-vendor sweep")
	}
	if len(strategy.VendorAllocation) != 1 {
		t.Fatalf("got %d allocations, want 1", len(strategy.VendorAllocation))
	}
	if strategy.VendorAllocation[0].VendorName != "Alpha" {
		t.Errorf("allocation vendor = %q, want Alpha", strategy.VendorAllocation[0].VendorName)
	}
	if strategy.TotalSavings != 0 {
		t.Errorf("savings = %v, want 0", strategy.TotalSavings)
	}
	if strategy.VendorAllocation[0].PercentageOfOrder != 100 {
		t.Errorf("allocation percentage = %v, want 100", strategy.VendorAllocation[0].PercentageOfOrder)
	}
}

func TestAnalyzeMaterials_Empty(t *testing.T) {
	engine, _ := NewLineItemEngine(PriorityBalanced)
	analysis := engine.AnalyzeMaterials(nil)

	if len(analysis.Materials) != 0 {
		t.Errorf("got %d materials, want 0", len(analysis.Materials))
	}
	strategy := analysis.SplitAwardStrategy
	if strategy.IsRecommended {
		t.Error("empty analysis should not recommend a split award")
	}
	if strategy.VendorAllocation == nil {
		t.Error("vendor allocation should be an empty slice, not nil")
	}
	if strategy.ComparisonVsSingle != nil {
		t.Error("comparison vs single vendor should be nil for empty input")
	}
}

func TestNewLineItemEngine_InvalidPriority(t *testing.T) {
	if _, err := NewLineItemEngine("asap"); err == nil {
		t.Fatal("NewLineItemEngine(\"asap\") expected error, got none")
	}
}
