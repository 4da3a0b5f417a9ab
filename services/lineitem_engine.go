package services

import (
	"fmt"
	"math"
	"sort"

	"vendor-comparison/models"
	"vendor-comparison/repository"
)

// LineItemComparisonEngine compares vendors material by material and works
// out whether splitting the order across per-material winners beats a
// single-vendor award.
type LineItemComparisonEngine struct {
	priority string
	weights  PriorityWeights
}

// NewLineItemEngine builds a line-item engine for the given priority profile.
func NewLineItemEngine(priority string) (*LineItemComparisonEngine, error) {
	name, w, err := ResolvePriority(priority)
	if err != nil {
		return nil, err
	}
	return &LineItemComparisonEngine{priority: name, weights: w}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type materialGroup struct {
	matCode string
	matText string
	qty     float64
	uom     string
	quotes  []models.MaterialVendorQuote
}

// AnalyzeMaterials produces the material-level comparison for joined
// quotation rows. Rows missing price or quantity are skipped; callers are
// expected to have run the transform validation first.
func (e *LineItemComparisonEngine) AnalyzeMaterials(rows []models.QuotationRow) models.LineItemAnalysis {
	groups, order := groupByMaterial(rows)

	materials := make([]models.MaterialAnalysis, 0, len(order))
	for _, matCode := range order {
		materials = append(materials, e.analyzeSingleMaterial(groups[matCode]))
	}

	return models.LineItemAnalysis{
		Materials:          materials,
		SplitAwardStrategy: calculateSplitAward(materials),
	}
}

func groupByMaterial(rows []models.QuotationRow) (map[string]*materialGroup, []string) {
	groups := make(map[string]*materialGroup)
	var order []string

	for _, r := range rows {
		if r.BasicPrice == nil || r.Qty == nil {
			continue
		}

		g, ok := groups[r.MatCode]
		if !ok {
			g = &materialGroup{
				matCode: r.MatCode,
				matText: r.MatText,
				qty:     *r.Qty,
				uom:     r.UOM,
			}
			groups[r.MatCode] = g
			order = append(order, r.MatCode)
		}

		g.quotes = append(g.quotes, models.MaterialVendorQuote{
			VendorName:       r.VendorName,
			VendorNo:         r.VendorNo,
			Price:            *r.BasicPrice,
			PaymentTermsDays: repository.MapPaymentTerm(r.PayTerm),
			DeliveryDays:     r.DeliveryDays,
			TotalValue:       round2(*r.BasicPrice * g.qty),
		})
	}

	return groups, order
}

func (e *LineItemComparisonEngine) analyzeSingleMaterial(g *materialGroup) models.MaterialAnalysis {
	quotes := g.quotes

	minPrice, maxPrice := quotes[0].Price, quotes[0].Price
	minPay, maxPay := quotes[0].PaymentTermsDays, quotes[0].PaymentTermsDays
	minDel, maxDel := quotes[0].DeliveryDays, quotes[0].DeliveryDays
	for _, q := range quotes[1:] {
		if q.Price < minPrice {
			minPrice = q.Price
		}
		if q.Price > maxPrice {
			maxPrice = q.Price
		}
		if q.PaymentTermsDays < minPay {
			minPay = q.PaymentTermsDays
		}
		if q.PaymentTermsDays > maxPay {
			maxPay = q.PaymentTermsDays
		}
		if q.DeliveryDays < minDel {
			minDel = q.DeliveryDays
		}
		if q.DeliveryDays > maxDel {
			maxDel = q.DeliveryDays
		}
	}

	weightSum := e.weights.Price + e.weights.Payment + e.weights.Delivery
	for i := range quotes {
		q := &quotes[i]
		priceSub := subScore(q.Price, minPrice, maxPrice, false)
		paySub := subScore(float64(q.PaymentTermsDays), float64(minPay), float64(maxPay), true)
		delSub := subScore(float64(q.DeliveryDays), float64(minDel), float64(maxDel), false)
		raw := (e.weights.Price*priceSub + e.weights.Payment*paySub + e.weights.Delivery*delSub) / weightSum
		q.Score = round2(raw * ScoreScale)
		q.IsBestPrice = q.Price == minPrice
		q.IsBestPayment = q.PaymentTermsDays == maxPay
		q.IsBestDelivery = q.DeliveryDays == minDel
		q.SavingsVsWorst = round2((maxPrice - q.Price) * g.qty)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		a, b := quotes[i], quotes[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		if a.DeliveryDays != b.DeliveryDays {
			return a.DeliveryDays < b.DeliveryDays
		}
		return a.VendorName < b.VendorName
	})
	for i := range quotes {
		quotes[i].RankForMaterial = i + 1
	}

	best := quotes[0]

	var alternative *models.AlternativeVendor
	if len(quotes) > 1 {
		alt := quotes[1]
		reason := ""
		if alt.IsBestPrice {
			reason = fmt.Sprintf("Best price (₹%.0f)", alt.Price)
		}
		if alt.IsBestPayment {
			if reason != "" {
				reason += " + "
			}
			reason += fmt.Sprintf("Better payment (%dd)", alt.PaymentTermsDays)
		}
		if alt.IsBestDelivery {
			if reason != "" {
				reason += " + "
			}
			reason += fmt.Sprintf("Fastest (%dd)", alt.DeliveryDays)
		}
		if reason == "" {
			reason = "Alternative"
		}
		alternative = &models.AlternativeVendor{
			VendorName: alt.VendorName,
			Price:      alt.Price,
			Reason:     reason,
		}
	}

	savingsPct := 0.0
	if maxPrice > 0 {
		savingsPct = round2((maxPrice - best.Price) / maxPrice * 100)
	}

	return models.MaterialAnalysis{
		MatCode:      g.matCode,
		MatText:      g.matText,
		Qty:          g.qty,
		UOM:          g.uom,
		VendorQuotes: quotes,
		RecommendedVendor: models.RecommendedVendor{
			VendorName:        best.VendorName,
			VendorNo:          best.VendorNo,
			Price:             best.Price,
			PaymentTermsDays:  best.PaymentTermsDays,
			DeliveryDays:      best.DeliveryDays,
			TotalValue:        best.TotalValue,
			Score:             best.Score,
			Reason:            fmt.Sprintf("Best score (%.1f)", best.Score),
			Savings:           best.SavingsVsWorst,
			SavingsPercentage: savingsPct,
			Alternative:       alternative,
		},
	}
}

func calculateSplitAward(materials []models.MaterialAnalysis) models.SplitAwardStrategy {
	if len(materials) == 0 {
		return models.SplitAwardStrategy{
			VendorAllocation: []models.VendorAllocation{},
		}
	}

	allocByVendor := make(map[string]*models.VendorAllocation)
	var allocOrder []string
	totalSplitCost := 0.0

	for _, m := range materials {
		rec := m.RecommendedVendor
		a, ok := allocByVendor[rec.VendorName]
		if !ok {
			a = &models.VendorAllocation{VendorName: rec.VendorName}
			allocByVendor[rec.VendorName] = a
			allocOrder = append(allocOrder, rec.VendorName)
		}
		a.Materials = append(a.Materials, m.MatCode)
		a.MaterialCount++
		a.TotalValue += rec.TotalValue
		totalSplitCost += rec.TotalValue
	}

	// Cheapest single vendor able to quote every material.
	bestSingleName := "Unknown"
	bestSingleCost := 0.0
	haveSingle := false
	var vendorNames []string
	seen := make(map[string]bool)
	for _, m := range materials {
		for _, q := range m.VendorQuotes {
			if !seen[q.VendorName] {
				seen[q.VendorName] = true
				vendorNames = append(vendorNames, q.VendorName)
			}
		}
	}
	for _, name := range vendorNames {
		cost := 0.0
		canSupply := true
		for _, m := range materials {
			found := false
			for _, q := range m.VendorQuotes {
				if q.VendorName == name {
					cost += q.TotalValue
					found = true
					break
				}
			}
			if !found {
				canSupply = false
				break
			}
		}
		if canSupply && (!haveSingle || cost < bestSingleCost) {
			haveSingle = true
			bestSingleName = name
			bestSingleCost = cost
		}
	}

	savings := bestSingleCost - totalSplitCost
	savingsPct := 0.0
	if bestSingleCost > 0 {
		savingsPct = round2(savings / bestSingleCost * 100)
	}

	allocation := make([]models.VendorAllocation, 0, len(allocOrder))
	for _, name := range allocOrder {
		a := allocByVendor[name]
		a.TotalValue = round2(a.TotalValue)
		if totalSplitCost > 0 {
			a.PercentageOfOrder = round2(a.TotalValue / totalSplitCost * 100)
		}
		allocation = append(allocation, *a)
	}

	return models.SplitAwardStrategy{
		IsRecommended:         savings > 0 && len(allocation) > 1,
		TotalCostSplit:        round2(totalSplitCost),
		TotalCostSingleVendor: round2(bestSingleCost),
		TotalSavings:          round2(savings),
		SavingsPercentage:     savingsPct,
		VendorCount:           len(allocation),
		VendorAllocation:      allocation,
		ComparisonVsSingle: &models.SingleVendorComparison{
			SingleVendorOption: bestSingleName,
			SingleVendorCost:   round2(bestSingleCost),
			SplitAwardCost:     round2(totalSplitCost),
			Savings:            round2(savings),
			SavingsPercentage:  savingsPct,
		},
	}
}
