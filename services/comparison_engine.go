package services

import (
	"errors"
	"math"
	"sort"

	"vendor-comparison/models"
)

// Priority profiles accepted by the comparison endpoints.
const (
	PriorityBalanced     = "balanced"
	PriorityLowPrice     = "low_price"
	PriorityFastDelivery = "fast_delivery"
	PriorityPaymentTerms = "payment_terms"
)

// Category winner labels attached to ranked vendors.
const (
	CategoryBestPrice        = "Best Price"
	CategoryFastestDelivery  = "Fastest Delivery"
	CategoryBestPaymentTerms = "Best Payment Terms"
)

// ScoreScale is the upper bound of the reported score range. Scores are
// computed as weighted fractions in [0,1] and scaled for display, so the
// ordering never depends on the scale.
const ScoreScale = 10.0

// PriorityWeights holds the per-criterion weights of a priority profile.
type PriorityWeights struct {
	Price    float64
	Payment  float64
	Delivery float64
}

var priorityProfiles = map[string]PriorityWeights{
	PriorityBalanced:     {Price: 1, Payment: 1, Delivery: 1},
	PriorityLowPrice:     {Price: 3, Payment: 1, Delivery: 1},
	PriorityFastDelivery: {Price: 1, Payment: 1, Delivery: 3},
	PriorityPaymentTerms: {Price: 1, Payment: 3, Delivery: 1},
}

// InvalidPriorityError reports a priority token outside the accepted set.
type InvalidPriorityError struct {
	Priority string
}

func (e *InvalidPriorityError) Error() string {
	return "invalid priority \"" + e.Priority + "\": must be one of balanced, low_price, fast_delivery, payment_terms"
}

// ErrEmptyVendorSet is returned when a ranking is requested over zero vendors.
var ErrEmptyVendorSet = errors.New("no quotations found")

// ResolvePriority validates a priority token and returns its weights.
// An empty token resolves to the balanced profile.
func ResolvePriority(priority string) (string, PriorityWeights, error) {
	if priority == "" {
		priority = PriorityBalanced
	}
	w, ok := priorityProfiles[priority]
	if !ok {
		return "", PriorityWeights{}, &InvalidPriorityError{Priority: priority}
	}
	return priority, w, nil
}

// VendorComparisonEngine ranks aggregated vendor quotations under a
// priority profile.
type VendorComparisonEngine struct {
	priority string
	weights  PriorityWeights
}

// NewComparisonEngine builds an engine for the given priority profile.
func NewComparisonEngine(priority string) (*VendorComparisonEngine, error) {
	name, w, err := ResolvePriority(priority)
	if err != nil {
		return nil, err
	}
	return &VendorComparisonEngine{priority: name, weights: w}, nil
}

// Priority returns the resolved priority profile name.
func (e *VendorComparisonEngine) Priority() string {
	return e.priority
}

// subScore normalises a criterion value into [0,1] where 1 is best.
// With no variance across vendors every vendor gets the full sub-score.
func subScore(value, min, max float64, higherIsBetter bool) float64 {
	if max == min {
		return 1.0
	}
	if higherIsBetter {
		return (value - min) / (max - min)
	}
	return (max - value) / (max - min)
}

// RankVendors scores and orders vendors by the engine's priority profile.
// Ties on the weighted score are broken by lower price, then fewer
// delivery days, then vendor name. Every vendor holding a criterion's best
// raw value gets that category tag, shared ties included.
func (e *VendorComparisonEngine) RankVendors(vendors []models.VendorQuotation) ([]models.RankingResult, error) {
	if len(vendors) == 0 {
		return nil, ErrEmptyVendorSet
	}

	minPrice, maxPrice := vendors[0].Price, vendors[0].Price
	minPay, maxPay := vendors[0].PaymentTermsDays, vendors[0].PaymentTermsDays
	minDel, maxDel := vendors[0].DeliveryDays, vendors[0].DeliveryDays
	for _, v := range vendors[1:] {
		if v.Price < minPrice {
			minPrice = v.Price
		}
		if v.Price > maxPrice {
			maxPrice = v.Price
		}
		if v.PaymentTermsDays < minPay {
			minPay = v.PaymentTermsDays
		}
		if v.PaymentTermsDays > maxPay {
			maxPay = v.PaymentTermsDays
		}
		if v.DeliveryDays < minDel {
			minDel = v.DeliveryDays
		}
		if v.DeliveryDays > maxDel {
			maxDel = v.DeliveryDays
		}
	}

	type scoredVendor struct {
		vendor models.VendorQuotation
		raw    float64
	}

	weightSum := e.weights.Price + e.weights.Payment + e.weights.Delivery
	scored := make([]scoredVendor, 0, len(vendors))
	for _, v := range vendors {
		priceSub := subScore(v.Price, minPrice, maxPrice, false)
		paySub := subScore(float64(v.PaymentTermsDays), float64(minPay), float64(maxPay), true)
		delSub := subScore(float64(v.DeliveryDays), float64(minDel), float64(maxDel), false)
		raw := (e.weights.Price*priceSub + e.weights.Payment*paySub + e.weights.Delivery*delSub) / weightSum
		scored = append(scored, scoredVendor{vendor: v, raw: raw})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.raw != b.raw {
			return a.raw > b.raw
		}
		if a.vendor.Price != b.vendor.Price {
			return a.vendor.Price < b.vendor.Price
		}
		if a.vendor.DeliveryDays != b.vendor.DeliveryDays {
			return a.vendor.DeliveryDays < b.vendor.DeliveryDays
		}
		return a.vendor.VendorName < b.vendor.VendorName
	})

	results := make([]models.RankingResult, 0, len(scored))
	for i, s := range scored {
		winners := []string{}
		if s.vendor.Price == minPrice {
			winners = append(winners, CategoryBestPrice)
		}
		if s.vendor.DeliveryDays == minDel {
			winners = append(winners, CategoryFastestDelivery)
		}
		if s.vendor.PaymentTermsDays == maxPay {
			winners = append(winners, CategoryBestPaymentTerms)
		}

		materials := s.vendor.Materials
		if materials == nil {
			materials = []models.MaterialInfo{}
		}

		results = append(results, models.RankingResult{
			Rank:             i + 1,
			VendorName:       s.vendor.VendorName,
			Score:            math.Round(s.raw*ScoreScale*100) / 100,
			Price:            s.vendor.Price,
			PaymentTermsDays: s.vendor.PaymentTermsDays,
			DeliveryDays:     s.vendor.DeliveryDays,
			CategoryWinners:  winners,
			Materials:        materials,
			Contact:          s.vendor.Contact,
		})
	}

	return results, nil
}
