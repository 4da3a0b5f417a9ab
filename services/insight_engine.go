package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"vendor-comparison/models"
	"vendor-comparison/utils"
)

const (
	// InsightSourceLLM marks insights produced by the language model.
	InsightSourceLLM = "llm"
	// InsightSourceFallback marks deterministically synthesized insights.
	InsightSourceFallback = "fallback"

	// insightContextTopN bounds how many vendors are sent to the generator.
	insightContextTopN = 5

	insightPlaceholder = "Not provided by insight generator"

	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultLLMModel          = "google/gemini-2.0-flash-exp:free"
	defaultLLMTimeoutSecs    = 20
	defaultLLMRPM            = 20
)

// InsightVendorContext is the compact per-vendor view handed to the generator.
type InsightVendorContext struct {
	Rank             int      `json:"rank"`
	VendorName       string   `json:"vendor_name"`
	Score            float64  `json:"score"`
	Price            float64  `json:"price"`
	PaymentTermsDays int      `json:"payment_terms_days"`
	DeliveryDays     int      `json:"delivery_days"`
	CategoryWinners  []string `json:"category_winners"`
}

// InsightContext bundles everything the generator needs about one analysis.
// Vendors is capped so the prompt never grows unbounded with vendor count.
type InsightContext struct {
	RFQNo        string                 `json:"rfq_no,omitempty"`
	PlantCode    int                    `json:"plant_code,omitempty"`
	Priority     string                 `json:"priority"`
	TotalVendors int                    `json:"total_vendors"`
	Vendors      []InsightVendorContext `json:"vendors"`
}

// BuildInsightContext reduces a ranking to the bounded generator context.
func BuildInsightContext(ranking []models.RankingResult, priority, rfqNo string, plantCode int) InsightContext {
	n := len(ranking)
	if n > insightContextTopN {
		n = insightContextTopN
	}
	vendors := make([]InsightVendorContext, 0, n)
	for _, r := range ranking[:n] {
		vendors = append(vendors, InsightVendorContext{
			Rank:             r.Rank,
			VendorName:       r.VendorName,
			Score:            r.Score,
			Price:            r.Price,
			PaymentTermsDays: r.PaymentTermsDays,
			DeliveryDays:     r.DeliveryDays,
			CategoryWinners:  r.CategoryWinners,
		})
	}
	return InsightContext{
		RFQNo:        rfqNo,
		PlantCode:    plantCode,
		Priority:     priority,
		TotalVendors: len(ranking),
		Vendors:      vendors,
	}
}

// InsightGenerator turns an insight context into narrative insights. A failed
// call must be answered by the caller with the deterministic fallback.
type InsightGenerator interface {
	Generate(ctx context.Context, ictx InsightContext) (models.AIInsights, error)
}

// LLMInsightGenerator produces insights through an OpenRouter-hosted model.
type LLMInsightGenerator struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
	timeout   time.Duration
}

// NewLLMInsightGenerator builds the generator from environment configuration.
// Returns an error when OPENROUTER_API_KEY is not set.
func NewLLMInsightGenerator() (*LLMInsightGenerator, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY not set")
	}

	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	modelName := os.Getenv("LLM_MODEL")
	if modelName == "" {
		modelName = defaultLLMModel
	}

	chatModel, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}

	rpm := envInt("LLM_RPM", defaultLLMRPM)
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)

	timeoutSecs := envInt("LLM_TIMEOUT_SECONDS", defaultLLMTimeoutSecs)

	return &LLMInsightGenerator{
		chatModel: chatModel,
		limiter:   limiter,
		timeout:   time.Duration(timeoutSecs) * time.Second,
	}, nil
}

// Generate performs a single model call bounded by the configured timeout.
// There is no retry: any failure is reported to the caller, which degrades
// to the deterministic fallback instead of looping.
func (g *LLMInsightGenerator) Generate(ctx context.Context, ictx InsightContext) (models.AIInsights, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return models.AIInsights{}, err
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a JSON generator. Output only a JSON string, no markdown."},
		{Role: schema.User, Content: buildInsightPrompt(ictx)},
	}

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return models.AIInsights{}, err
	}

	return parseInsightPayload(resp.Content)
}

func buildInsightPrompt(ictx InsightContext) string {
	var sb strings.Builder
	sb.WriteString("You are a procurement analyst reviewing vendor quotations for a construction materials RFQ.\n\n")
	sb.WriteString("VENDOR RANKING:\n")
	for _, v := range ictx.Vendors {
		categories := ""
		if len(v.CategoryWinners) > 0 {
			categories = " [" + strings.Join(v.CategoryWinners, ", ") + "]"
		}
		fmt.Fprintf(&sb, "%d. %s: ₹%.0f/unit, %s, %d days delivery, score %.2f/10%s\n",
			v.Rank, v.VendorName, v.Price, paymentPhrase(v.PaymentTermsDays), v.DeliveryDays, v.Score, categories)
	}
	fmt.Fprintf(&sb, "\nUSER PRIORITY: %s\n", ictx.Priority)
	if len(ictx.Vendors) > 0 {
		fmt.Fprintf(&sb, "RECOMMENDED VENDOR: %s\n", ictx.Vendors[0].VendorName)
	}
	if ictx.TotalVendors > len(ictx.Vendors) {
		fmt.Fprintf(&sb, "(%d more vendors ranked below)\n", ictx.TotalVendors-len(ictx.Vendors))
	}
	sb.WriteString(`
Respond with ONLY a JSON object in exactly this format:
{
	"primary_recommendation": "Why the top vendor is the best choice and how they meet the stated priority. Max 100 words, start with the vendor name.",
	"alternate_strategy": "A split award or backup supplier strategy using the other vendors. Max 80 words.",
	"risk_consideration": "Payment, delivery and reliability risks of the top vendor with mitigations. Max 80 words.",
	"project_impact": "Cost and schedule impact of choosing the top vendor, with concrete percentages. Max 80 words.",
	"negotiation_tips": ["exactly three short actionable negotiation tips"]
}`)
	return sb.String()
}

type insightPayload struct {
	PrimaryRecommendation string   `json:"primary_recommendation"`
	AlternateStrategy     string   `json:"alternate_strategy"`
	RiskConsideration     string   `json:"risk_consideration"`
	ProjectImpact         string   `json:"project_impact"`
	NegotiationTips       []string `json:"negotiation_tips"`
}

// parseInsightPayload strips markdown fences, decodes the payload, and fills
// any missing field with a labeled placeholder. A payload with no usable
// narrative at all is treated as a failed call.
func parseInsightPayload(content string) (models.AIInsights, error) {
	cleanContent := strings.TrimSpace(content)
	cleanContent = strings.TrimPrefix(cleanContent, "```json")
	cleanContent = strings.TrimPrefix(cleanContent, "```")
	cleanContent = strings.TrimSuffix(cleanContent, "```")
	cleanContent = strings.TrimSpace(cleanContent)

	var payload insightPayload
	if err := json.Unmarshal([]byte(cleanContent), &payload); err != nil {
		return models.AIInsights{}, fmt.Errorf("failed to parse insight response: %w", err)
	}

	if payload.PrimaryRecommendation == "" && payload.AlternateStrategy == "" &&
		payload.RiskConsideration == "" && payload.ProjectImpact == "" {
		return models.AIInsights{}, errors.New("insight response contains no narrative fields")
	}

	insights := models.AIInsights{
		PrimaryRecommendation: payload.PrimaryRecommendation,
		AlternateStrategy:     payload.AlternateStrategy,
		RiskConsideration:     payload.RiskConsideration,
		ProjectImpact:         payload.ProjectImpact,
		NegotiationTips:       payload.NegotiationTips,
	}
	if insights.PrimaryRecommendation == "" {
		insights.PrimaryRecommendation = insightPlaceholder
	}
	if insights.AlternateStrategy == "" {
		insights.AlternateStrategy = insightPlaceholder
	}
	if insights.RiskConsideration == "" {
		insights.RiskConsideration = insightPlaceholder
	}
	if insights.ProjectImpact == "" {
		insights.ProjectImpact = insightPlaceholder
	}
	if len(insights.NegotiationTips) == 0 {
		insights.NegotiationTips = []string{insightPlaceholder}
	}
	if len(insights.NegotiationTips) > 3 {
		insights.NegotiationTips = insights.NegotiationTips[:3]
	}
	return insights, nil
}

// InsightService wraps a generator with the fallback policy. A nil generator
// means LLM insights are disabled and every request uses the fallback.
type InsightService struct {
	generator InsightGenerator
}

// NewInsightService wires the LLM generator when configured, otherwise runs
// fallback-only.
func NewInsightService() *InsightService {
	gen, err := NewLLMInsightGenerator()
	if err != nil {
		utils.Log.Warnf("AI insights disabled, using fallback: %v", err)
		return &InsightService{}
	}
	utils.Log.Info("AI insight generator initialized")
	return &InsightService{generator: gen}
}

// NewInsightServiceWith builds a service around an explicit generator.
func NewInsightServiceWith(gen InsightGenerator) *InsightService {
	return &InsightService{generator: gen}
}

// Generate returns insights for a ranking together with their source. It
// never fails: any generator error, timeout, or cancellation degrades to the
// deterministic fallback so the ranking itself is always delivered.
func (s *InsightService) Generate(ctx context.Context, rfqNo string, plantCode int, ranking []models.RankingResult, priority string) (models.AIInsights, string) {
	if s.generator == nil {
		return FallbackInsights(ranking, priority), InsightSourceFallback
	}

	ictx := BuildInsightContext(ranking, priority, rfqNo, plantCode)
	insights, err := s.generator.Generate(ctx, ictx)
	if err != nil {
		utils.Log.Warnf("Insight generation failed, using fallback: %v", err)
		return FallbackInsights(ranking, priority), InsightSourceFallback
	}
	return insights, InsightSourceLLM
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
