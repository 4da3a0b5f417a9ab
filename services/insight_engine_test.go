package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vendor-comparison/models"
)

func rankedVendor(rank int, name string, price float64, payDays, delDays int, categories ...string) models.RankingResult {
	return models.RankingResult{
		Rank:             rank,
		VendorName:       name,
		Score:            float64(10 - rank),
		Price:            price,
		PaymentTermsDays: payDays,
		DeliveryDays:     delDays,
		CategoryWinners:  categories,
	}
}

func TestFallbackInsights_EmptyRanking(t *testing.T) {
	insights := FallbackInsights(nil, PriorityBalanced)

	if insights.PrimaryRecommendation != "No vendors to compare" {
		t.Errorf("primary = %q", insights.PrimaryRecommendation)
	}
	if insights.NegotiationTips == nil || len(insights.NegotiationTips) != 0 {
		t.Errorf("tips = %v, want empty slice", insights.NegotiationTips)
	}
}

func TestFallbackInsights_AllFieldsPopulated(t *testing.T) {
	ranking := []models.RankingResult{
		rankedVendor(1, "Alpha", 150, 0, 7, CategoryFastestDelivery),
		rankedVendor(2, "Beta", 135, 60, 10, CategoryBestPrice, CategoryBestPaymentTerms),
	}
	insights := FallbackInsights(ranking, PriorityBalanced)

	if insights.PrimaryRecommendation == "" || insights.AlternateStrategy == "" ||
		insights.RiskConsideration == "" || insights.ProjectImpact == "" {
		t.Fatalf("fallback left a narrative empty: %+v", insights)
	}
	if !strings.Contains(insights.PrimaryRecommendation, "Alpha") {
		t.Error("primary recommendation does not name the winner")
	}
	if !strings.Contains(insights.PrimaryRecommendation, "AI-powered insights unavailable") {
		t.Error("primary recommendation is missing the fallback note")
	}
	if !strings.Contains(insights.PrimaryRecommendation, "advance payment") {
		t.Error("primary recommendation should phrase zero credit days as advance payment")
	}
	if !strings.Contains(insights.AlternateStrategy, "Beta") {
		t.Error("alternate strategy does not name the secondary vendor")
	}
	if !strings.Contains(insights.RiskConsideration, "Advance payment requirement") {
		t.Errorf("risk = %q, want the advance payment branch", insights.RiskConsideration)
	}
	if len(insights.NegotiationTips) == 0 || len(insights.NegotiationTips) > 3 {
		t.Errorf("got %d tips, want between 1 and 3", len(insights.NegotiationTips))
	}
	if !strings.Contains(insights.NegotiationTips[0], "Beta") {
		t.Errorf("first tip = %q, should leverage the cheaper runner-up", insights.NegotiationTips[0])
	}
}

func TestFallbackInsights_ImpactAgainstCostliestVendor(t *testing.T) {
	// The impact statement compares the winner against the most expensive
	// ranked vendor, not just the runner-up.
	ranking := []models.RankingResult{
		rankedVendor(1, "Winner", 100, 30, 5, CategoryBestPrice),
		rankedVendor(2, "Mid", 180, 30, 5),
		rankedVendor(3, "Expensive", 200, 30, 5),
	}
	insights := FallbackInsights(ranking, PriorityLowPrice)

	if !strings.Contains(insights.ProjectImpact, "Expensive") {
		t.Errorf("impact = %q, should reference the costliest vendor", insights.ProjectImpact)
	}
	if !strings.Contains(insights.ProjectImpact, "reduces") {
		t.Errorf("impact = %q, should state a cost reduction", insights.ProjectImpact)
	}
	if !strings.Contains(insights.ProjectImpact, "50.0%") {
		t.Errorf("impact = %q, want a 50.0%% delta", insights.ProjectImpact)
	}
}

func TestFallbackInsights_CostNeutralWinner(t *testing.T) {
	// Winner within 5% of the costliest vendor gets the neutrality wording.
	ranking := []models.RankingResult{
		rankedVendor(1, "Alpha", 98, 30, 5, CategoryBestPrice),
		rankedVendor(2, "Beta", 100, 15, 6),
	}
	insights := FallbackInsights(ranking, PriorityBalanced)

	if !strings.Contains(insights.ProjectImpact, "cost neutrality") {
		t.Errorf("impact = %q, want the neutrality branch", insights.ProjectImpact)
	}
}

func TestFallbackInsights_SingleVendor(t *testing.T) {
	ranking := []models.RankingResult{
		rankedVendor(1, "Solo", 500, 30, 14, CategoryBestPrice, CategoryFastestDelivery, CategoryBestPaymentTerms),
	}
	insights := FallbackInsights(ranking, PriorityBalanced)

	if !strings.Contains(insights.ProjectImpact, "sole supplier") {
		t.Errorf("impact = %q, want the sole supplier wording", insights.ProjectImpact)
	}
	if !strings.Contains(insights.AlternateStrategy, "No alternate strategy available") {
		t.Errorf("alternate = %q, want the no-alternate wording", insights.AlternateStrategy)
	}
	if len(insights.NegotiationTips) == 0 {
		t.Error("single vendor should still get generic negotiation tips")
	}
}

func TestPickSecondary_PrefersCategoryHolder(t *testing.T) {
	ranking := []models.RankingResult{
		rankedVendor(1, "Winner", 100, 30, 5, CategoryBestPrice),
		rankedVendor(2, "Plain", 110, 30, 6),
		rankedVendor(3, "Tagged", 120, 60, 7, CategoryBestPaymentTerms),
	}
	secondary := pickSecondary(ranking)
	if secondary == nil || secondary.VendorName != "Tagged" {
		t.Errorf("pickSecondary = %+v, want Tagged", secondary)
	}

	noTags := []models.RankingResult{
		rankedVendor(1, "Winner", 100, 30, 5),
		rankedVendor(2, "RunnerUp", 110, 30, 6),
	}
	secondary = pickSecondary(noTags)
	if secondary == nil || secondary.VendorName != "RunnerUp" {
		t.Errorf("pickSecondary = %+v, want RunnerUp", secondary)
	}

	if pickSecondary(noTags[:1]) != nil {
		t.Error("pickSecondary of a single vendor should be nil")
	}
}

func TestBuildInsightContext_CapsVendors(t *testing.T) {
	var ranking []models.RankingResult
	for i := 1; i <= 8; i++ {
		ranking = append(ranking, rankedVendor(i, "Vendor", float64(100+i), 30, 5))
	}

	ictx := BuildInsightContext(ranking, PriorityBalanced, "RFQ-2024-1001", 1100)
	if len(ictx.Vendors) != insightContextTopN {
		t.Errorf("context vendors = %d, want %d", len(ictx.Vendors), insightContextTopN)
	}
	if ictx.TotalVendors != 8 {
		t.Errorf("total vendors = %d, want 8", ictx.TotalVendors)
	}
	if ictx.RFQNo != "RFQ-2024-1001" || ictx.PlantCode != 1100 {
		t.Errorf("context identity = %s/%d", ictx.RFQNo, ictx.PlantCode)
	}
	if ictx.Vendors[0].Rank != 1 || ictx.Vendors[4].Rank != 5 {
		t.Errorf("context keeps ranks %d..%d, want 1..5", ictx.Vendors[0].Rank, ictx.Vendors[4].Rank)
	}
}

func TestParseInsightPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, got models.AIInsights)
	}{
		{
			name: "plain json",
			content: `{"primary_recommendation":"Pick Alpha","alternate_strategy":"Split with Beta",
				"risk_consideration":"Advance payment","project_impact":"Saves 8%",
				"negotiation_tips":["tip one","tip two","tip three"]}`,
			check: func(t *testing.T, got models.AIInsights) {
				if got.PrimaryRecommendation != "Pick Alpha" {
					t.Errorf("primary = %q", got.PrimaryRecommendation)
				}
				if len(got.NegotiationTips) != 3 {
					t.Errorf("tips = %v", got.NegotiationTips)
				}
			},
		},
		{
			name: "markdown fenced",
			content: "```json\n{\"primary_recommendation\":\"Pick Alpha\",\"alternate_strategy\":\"Split\"," +
				"\"risk_consideration\":\"None\",\"project_impact\":\"Minor\",\"negotiation_tips\":[\"t\"]}\n```",
			check: func(t *testing.T, got models.AIInsights) {
				if got.PrimaryRecommendation != "Pick Alpha" {
					t.Errorf("primary = %q", got.PrimaryRecommendation)
				}
			},
		},
		{
			name:    "missing fields get placeholders",
			content: `{"primary_recommendation":"Pick Alpha"}`,
			check: func(t *testing.T, got models.AIInsights) {
				if got.AlternateStrategy != insightPlaceholder {
					t.Errorf("alternate = %q, want placeholder", got.AlternateStrategy)
				}
				if got.RiskConsideration != insightPlaceholder || got.ProjectImpact != insightPlaceholder {
					t.Error("missing narratives not filled with placeholder")
				}
				if len(got.NegotiationTips) != 1 || got.NegotiationTips[0] != insightPlaceholder {
					t.Errorf("tips = %v, want single placeholder", got.NegotiationTips)
				}
			},
		},
		{
			name: "excess tips capped at three",
			content: `{"primary_recommendation":"Pick Alpha","alternate_strategy":"s","risk_consideration":"r",
				"project_impact":"p","negotiation_tips":["1","2","3","4","5"]}`,
			check: func(t *testing.T, got models.AIInsights) {
				if len(got.NegotiationTips) != 3 {
					t.Errorf("got %d tips, want 3", len(got.NegotiationTips))
				}
			},
		},
		{
			name:    "invalid json",
			content: "the model apologizes and explains at length",
			wantErr: true,
		},
		{
			name:    "no narrative fields",
			content: `{"negotiation_tips":["only tips"]}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInsightPayload(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseInsightPayload(%q) expected error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseInsightPayload error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

type stubGenerator struct {
	insights models.AIInsights
	err      error
	called   bool
}

func (s *stubGenerator) Generate(ctx context.Context, ictx InsightContext) (models.AIInsights, error) {
	s.called = true
	return s.insights, s.err
}

func TestInsightService_FallbackOnError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	svc := NewInsightServiceWith(gen)

	ranking := []models.RankingResult{
		rankedVendor(1, "Alpha", 150, 30, 7, CategoryFastestDelivery),
		rankedVendor(2, "Beta", 135, 60, 10, CategoryBestPrice),
	}
	insights, source := svc.Generate(context.Background(), "RFQ-1", 1100, ranking, PriorityBalanced)

	if !gen.called {
		t.Error("generator was never invoked")
	}
	if source != InsightSourceFallback {
		t.Errorf("source = %q, want %q", source, InsightSourceFallback)
	}
	if insights.PrimaryRecommendation == "" {
		t.Error("fallback insights missing primary recommendation")
	}
}

func TestInsightService_UsesGeneratorResult(t *testing.T) {
	want := models.AIInsights{
		PrimaryRecommendation: "Pick Alpha",
		AlternateStrategy:     "Split with Beta",
		RiskConsideration:     "Watch the lead time",
		ProjectImpact:         "Saves 12%",
		NegotiationTips:       []string{"a", "b", "c"},
	}
	svc := NewInsightServiceWith(&stubGenerator{insights: want})

	ranking := []models.RankingResult{rankedVendor(1, "Alpha", 150, 30, 7)}
	insights, source := svc.Generate(context.Background(), "", 0, ranking, PriorityBalanced)

	if source != InsightSourceLLM {
		t.Errorf("source = %q, want %q", source, InsightSourceLLM)
	}
	if insights.PrimaryRecommendation != want.PrimaryRecommendation {
		t.Errorf("primary = %q, want %q", insights.PrimaryRecommendation, want.PrimaryRecommendation)
	}
}

func TestInsightService_NilGeneratorUsesFallback(t *testing.T) {
	svc := NewInsightServiceWith(nil)

	ranking := []models.RankingResult{
		rankedVendor(1, "Alpha", 150, 30, 7),
		rankedVendor(2, "Beta", 135, 60, 10),
	}
	insights, source := svc.Generate(context.Background(), "", 0, ranking, PriorityBalanced)

	if source != InsightSourceFallback {
		t.Errorf("source = %q, want %q", source, InsightSourceFallback)
	}
	if !strings.Contains(insights.PrimaryRecommendation, "AI-powered insights unavailable") {
		t.Error("fallback note missing from primary recommendation")
	}
}

func TestBuildInsightPrompt_MentionsOverflow(t *testing.T) {
	var ranking []models.RankingResult
	for i := 1; i <= 7; i++ {
		ranking = append(ranking, rankedVendor(i, "Vendor", float64(100+i), 30, 5))
	}
	ictx := BuildInsightContext(ranking, PriorityBalanced, "", 0)
	prompt := buildInsightPrompt(ictx)

	if !strings.Contains(prompt, "(2 more vendors ranked below)") {
		t.Errorf("prompt should note the 2 vendors beyond the context cap:\n%s", prompt)
	}
	if !strings.Contains(prompt, "USER PRIORITY: balanced") {
		t.Error("prompt missing the priority line")
	}
	if !strings.Contains(prompt, "negotiation_tips") {
		t.Error("prompt missing the JSON format contract")
	}
}
