package services

import (
	"strings"
	"testing"

	"vendor-comparison/models"
)

func TestProcessTemplate(t *testing.T) {
	es := &EmailService{}
	got := es.processTemplate("RFQ {{rfq_no}} for plant {{plant_code}}", map[string]string{
		"rfq_no":     "RFQ-2024-1001",
		"plant_code": "1100",
	})
	want := "RFQ RFQ-2024-1001 for plant 1100"
	if got != want {
		t.Errorf("processTemplate = %q, want %q", got, want)
	}
}

func TestConvertHTMLToText(t *testing.T) {
	text := convertHTMLToText("<h2>Report</h2><p>Line one</p><ul><li>first</li><li>second</li></ul>")

	if strings.Contains(text, "<") {
		t.Errorf("plain text still contains markup: %q", text)
	}
	for _, part := range []string{"Report", "Line one", "- first", "- second"} {
		if !strings.Contains(text, part) {
			t.Errorf("plain text missing %q: %q", part, text)
		}
	}
}

func TestBuildReportVariables(t *testing.T) {
	result := &models.ComparisonResponse{
		RFQNo:     "RFQ-2024-1001",
		PlantCode: 1100,
		Priority:  PriorityBalanced,
		Ranking: []models.RankingResult{
			{
				Rank:             1,
				VendorName:       "Beta",
				Score:            6.67,
				Price:            1350,
				PaymentTermsDays: 60,
				DeliveryDays:     10,
				CategoryWinners:  []string{CategoryBestPrice},
			},
			{
				Rank:       2,
				VendorName: "Alpha",
				Score:      3.33,
				Price:      1500,
			},
		},
		AIInsights: models.AIInsights{
			PrimaryRecommendation: "Pick Beta",
			ProjectImpact:         "Saves 10%",
		},
		Metadata: models.AnalysisMetadata{TotalVendors: 2, AnalysisDate: "2024-12-09T14:05:11+05:30"},
	}

	vars := buildReportVariables(result)

	if vars["winner_name"] != "Beta" {
		t.Errorf("winner_name = %q, want Beta", vars["winner_name"])
	}
	if vars["winner_score"] != "6.67" {
		t.Errorf("winner_score = %q, want 6.67", vars["winner_score"])
	}
	if vars["winner_payment"] != "60 days credit" {
		t.Errorf("winner_payment = %q, want 60 days credit", vars["winner_payment"])
	}
	if vars["winner_price"] != "1,350.00" {
		t.Errorf("winner_price = %q, want 1,350.00", vars["winner_price"])
	}
	if !strings.Contains(vars["ranking_rows"], "Alpha") || !strings.Contains(vars["ranking_rows"], "Beta") {
		t.Errorf("ranking_rows missing vendors: %q", vars["ranking_rows"])
	}
	if vars["total_vendors"] != "2" {
		t.Errorf("total_vendors = %q, want 2", vars["total_vendors"])
	}
}

func TestEmailService_Enabled(t *testing.T) {
	tests := []struct {
		name string
		es   EmailService
		want bool
	}{
		{"fully configured", EmailService{host: "smtp.example.in", username: "reports", password: "secret"}, true},
		{"missing host", EmailService{username: "reports", password: "secret"}, false},
		{"missing user", EmailService{host: "smtp.example.in", password: "secret"}, false},
		{"missing password", EmailService{host: "smtp.example.in", username: "reports"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.es.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSendComparisonReport_RequiresConfiguration(t *testing.T) {
	es := &EmailService{}
	err := es.SendComparisonReport(&models.ComparisonResponse{
		Ranking: []models.RankingResult{{Rank: 1, VendorName: "Alpha"}},
	}, []string{"buyer@example.in"}, nil)
	if err == nil || !strings.Contains(err.Error(), "SMTP not configured") {
		t.Errorf("err = %v, want SMTP not configured", err)
	}
}

func TestSendComparisonReport_RequiresRecipientsAndRanking(t *testing.T) {
	es := &EmailService{host: "smtp.example.in", username: "reports", password: "secret", from: "reports@example.in"}

	err := es.SendComparisonReport(&models.ComparisonResponse{
		Ranking: []models.RankingResult{{Rank: 1, VendorName: "Alpha"}},
	}, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "no recipients") {
		t.Errorf("err = %v, want no recipients", err)
	}

	err = es.SendComparisonReport(&models.ComparisonResponse{}, []string{"buyer@example.in"}, nil)
	if err == nil || !strings.Contains(err.Error(), "no ranking") {
		t.Errorf("err = %v, want no ranking", err)
	}
}
