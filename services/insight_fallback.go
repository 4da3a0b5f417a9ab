package services

import (
	"fmt"
	"strings"

	"vendor-comparison/models"
)

const fallbackNote = "\n\n*Note: AI-powered insights unavailable. Configure OPENROUTER_API_KEY in .env file for advanced recommendations with market intelligence and risk analysis.*"

func paymentPhrase(days int) string {
	if days == 0 {
		return "advance payment"
	}
	return fmt.Sprintf("%d days credit", days)
}

func categoriesPhrase(r models.RankingResult) string {
	if len(r.CategoryWinners) == 0 {
		return "balanced performance"
	}
	return strings.Join(r.CategoryWinners, ", ")
}

// FallbackInsights builds deterministic insights from the ranking alone, used
// whenever the LLM generator is unavailable or fails.
func FallbackInsights(ranking []models.RankingResult, priority string) models.AIInsights {
	if len(ranking) == 0 {
		return models.AIInsights{
			PrimaryRecommendation: "No vendors to compare",
			AlternateStrategy:     "Insufficient data for alternate strategy",
			RiskConsideration:     "No risk analysis available",
			ProjectImpact:         "No project impact data",
			NegotiationTips:       []string{},
		}
	}

	winner := ranking[0]
	categories := categoriesPhrase(winner)

	primary := fmt.Sprintf(
		"%s offers the best balance of price, delivery window, and payment terms for this procurement. With a competitive price of ₹%.0f/unit, %s, and %d-day delivery, they provide %s. Recommended as primary vendor for full PO based on %s priority.",
		winner.VendorName, winner.Price, paymentPhrase(winner.PaymentTermsDays), winner.DeliveryDays, categories, priority)

	var alternate string
	if secondary := pickSecondary(ranking); secondary != nil {
		alternate = fmt.Sprintf(
			"Consider a split award strategy: Use %s as primary supplier for the majority of the order, with %s (₹%.0f, %dd credit) as secondary supplier to maintain competitive pressure and supply chain resilience. This approach provides backup options if primary vendor faces capacity constraints.",
			winner.VendorName, secondary.VendorName, secondary.Price, secondary.PaymentTermsDays)
	} else {
		alternate = "No alternate strategy available. Consider inviting additional vendors for future RFQs to ensure competitive pricing and supply security."
	}

	var risk string
	switch {
	case winner.PaymentTermsDays == 0:
		risk = fmt.Sprintf(
			"Advance payment requirement for %s may impact cash flow and working capital. Consider negotiating for at least 15-day credit terms. Monitor delivery performance closely as %d-day lead time requires careful schedule coordination.",
			winner.VendorName, winner.DeliveryDays)
	case winner.PaymentTermsDays > 45:
		risk = fmt.Sprintf(
			"Extended payment terms of %d days may indicate vendor cash flow concerns. Verify financial stability before large orders. %d-day delivery timeline should be monitored with milestone checkpoints.",
			winner.PaymentTermsDays, winner.DeliveryDays)
	default:
		risk = fmt.Sprintf(
			"%s shows %s. Standard payment terms of %d days align with industry practice. Monitor on-time delivery performance and quality consistency. Consider performance-based clauses in contract.",
			winner.VendorName, categories, winner.PaymentTermsDays)
	}

	impact := projectImpact(ranking, priority)

	tips := negotiationTips(ranking)

	return models.AIInsights{
		PrimaryRecommendation: primary + fallbackNote,
		AlternateStrategy:     alternate,
		RiskConsideration:     risk,
		ProjectImpact:         impact,
		NegotiationTips:       tips,
	}
}

// pickSecondary chooses the best-ranked vendor besides the winner that holds
// a category tag, falling back to the runner-up when none does.
func pickSecondary(ranking []models.RankingResult) *models.RankingResult {
	if len(ranking) < 2 {
		return nil
	}
	for i := 1; i < len(ranking); i++ {
		if len(ranking[i].CategoryWinners) > 0 {
			return &ranking[i]
		}
	}
	return &ranking[1]
}

// projectImpact compares the winner's price against the most expensive ranked
// vendor so the stated delta reflects the full spread of the quotations.
func projectImpact(ranking []models.RankingResult, priority string) string {
	winner := ranking[0]
	if len(ranking) == 1 {
		return fmt.Sprintf(
			"Choosing %s as the sole supplier provides pricing certainty at ₹%.0f/unit with %d-day delivery. Project schedule accommodates lead time. Recommend establishing backup vendor relationships for supply chain resilience in future procurements.",
			winner.VendorName, winner.Price, winner.DeliveryDays)
	}

	costliest := ranking[0]
	for _, r := range ranking[1:] {
		if r.Price > costliest.Price {
			costliest = r
		}
	}

	costDiff := 0.0
	if costliest.Price > 0 {
		costDiff = (winner.Price - costliest.Price) / costliest.Price * 100
	}

	if costDiff > 5 || costDiff < -5 {
		direction := "reduces"
		if costDiff > 0 {
			direction = "increases"
		}
		absDiff := costDiff
		if absDiff < 0 {
			absDiff = -absDiff
		}
		return fmt.Sprintf(
			"Choosing %s %s total procurement cost by approximately %.1f%% compared to %s. The %d-day delivery timeline aligns with project schedule requirements. This decision prioritizes %s and maintains quality standards while managing budget constraints.",
			winner.VendorName, direction, absDiff, costliest.VendorName, winner.DeliveryDays, priority)
	}

	terms := "comparable"
	if costDiff < 0 {
		terms = "better"
	}
	return fmt.Sprintf(
		"Choosing %s maintains cost neutrality (within 5%% of alternatives) while offering %s payment terms. The %d-day delivery schedule supports project timeline. Decision optimizes for %s priority without significant budget impact.",
		winner.VendorName, terms, winner.DeliveryDays, priority)
}

func negotiationTips(ranking []models.RankingResult) []string {
	var tips []string
	if len(ranking) > 1 {
		winner, second := ranking[0], ranking[1]
		if winner.Price > second.Price {
			tips = append(tips, fmt.Sprintf(
				"Leverage %s's lower price (₹%.0f) to negotiate %.0f reduction per unit",
				second.VendorName, second.Price, winner.Price-second.Price))
		}
		if winner.PaymentTermsDays < second.PaymentTermsDays {
			tips = append(tips, fmt.Sprintf(
				"Request %d-day credit terms matching %s's offer",
				second.PaymentTermsDays, second.VendorName))
		}
		if winner.DeliveryDays > second.DeliveryDays {
			tips = append(tips, fmt.Sprintf(
				"Negotiate for %d-day delivery to match %s's timeline",
				second.DeliveryDays, second.VendorName))
		}
	}
	tips = append(tips,
		"Inquire about volume discounts for orders exceeding current quantity by 20%+",
		"Request firm price validity for 90 days to allow for approval cycles")
	if len(tips) > 3 {
		tips = tips[:3]
	}
	return tips
}
