package models

// AnalyzeRFQRequest is the request body for analyzing RFQ vendor quotations.
type AnalyzeRFQRequest struct {
	RFQNo     string `json:"rfq_no" binding:"required" example:"RFQ-2024-1001"`
	PlantCode int    `json:"plant_code" binding:"required" example:"1100"`
	Priority  string `json:"priority" example:"balanced"`
}

// ManualVendorEntry is a single vendor row entered by hand, without an RFQ.
type ManualVendorEntry struct {
	VendorName       string  `json:"vendor_name" example:"Alpha Traders"`
	Price            float64 `json:"price" example:"150"`
	PaymentTermsDays int     `json:"payment_terms_days" example:"30"`
	DeliveryDays     int     `json:"delivery_days" example:"7"`
}

// AnalyzeManualRequest is the request body for comparing manually entered vendors.
type AnalyzeManualRequest struct {
	Vendors  []ManualVendorEntry `json:"vendors" binding:"required"`
	Priority string              `json:"priority" example:"balanced"`
}

// MaterialInfo represents one quoted line item inside a vendor's quotation.
type MaterialInfo struct {
	MatCode string  `json:"mat_code" example:"MAT-00012"`
	MatText string  `json:"mat_text" example:"OPC Cement 53 Grade"`
	Price   float64 `json:"price" example:"385.5"`
	Qty     float64 `json:"qty" example:"200"`
	UOM     string  `json:"uom" example:"BAG"`
}

// VendorContact holds the vendor contact details from the quotation header.
type VendorContact struct {
	Email  string `json:"email" example:"sales@alphatraders.in"`
	Person string `json:"person" example:"R. Sharma"`
	Phone  string `json:"phone" example:"+91-9810012345"`
}

// RankingResult is one ranked vendor in the comparison output.
type RankingResult struct {
	Rank             int            `json:"rank" example:"1"`
	VendorName       string         `json:"vendor_name" example:"Beta Supplies"`
	Score            float64        `json:"score" example:"7.25"`
	Price            float64        `json:"price" example:"135"`
	PaymentTermsDays int            `json:"payment_terms_days" example:"60"`
	DeliveryDays     int            `json:"delivery_days" example:"10"`
	CategoryWinners  []string       `json:"category_winners"`
	Materials        []MaterialInfo `json:"materials"`
	Contact          *VendorContact `json:"contact,omitempty"`
}

// AIInsights is the structured decision narrative attached to a comparison.
type AIInsights struct {
	PrimaryRecommendation string   `json:"primary_recommendation"`
	AlternateStrategy     string   `json:"alternate_strategy"`
	RiskConsideration     string   `json:"risk_consideration"`
	ProjectImpact         string   `json:"project_impact"`
	NegotiationTips       []string `json:"negotiation_tips"`
}

// AnalysisMetadata describes how and when a comparison was produced.
type AnalysisMetadata struct {
	TotalVendors   int    `json:"total_vendors" example:"4"`
	TotalMaterials int    `json:"total_materials,omitempty" example:"6"`
	AnalysisDate   string `json:"analysis_date" example:"2024-12-09T14:05:11+05:30"`
	AnalysisID     string `json:"analysis_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	InsightsSource string `json:"insights_source" example:"fallback"`
	Source         string `json:"source,omitempty" example:"manual_entry"`
}

// ComparisonResponse is the full vendor comparison payload.
type ComparisonResponse struct {
	RFQNo            string            `json:"rfq_no,omitempty" example:"RFQ-2024-1001"`
	PlantCode        int               `json:"plant_code,omitempty" example:"1100"`
	Priority         string            `json:"priority" example:"balanced"`
	Ranking          []RankingResult   `json:"ranking"`
	AIInsights       AIInsights        `json:"ai_insights"`
	LineItemAnalysis *LineItemAnalysis `json:"line_item_analysis,omitempty"`
	Metadata         AnalysisMetadata  `json:"metadata"`
}

// ErrorResponse is the error body returned by the comparison endpoints.
type ErrorResponse struct {
	Error      string `json:"error" example:"Invalid Priority"`
	Detail     string `json:"detail" example:"priority must be one of: balanced, low_price, fast_delivery, payment_terms"`
	StatusCode int    `json:"status_code" example:"400"`
}

// ExportRequest is the request body for the Excel and PDF export endpoints.
type ExportRequest struct {
	RFQNo     string `json:"rfq_no" binding:"required" example:"RFQ-2024-1001"`
	PlantCode int    `json:"plant_code" binding:"required" example:"1100"`
	Priority  string `json:"priority" example:"balanced"`
	IncludeAI bool   `json:"include_ai" example:"false"`
}

// EmailReportRequest is the request body for mailing a comparison report.
type EmailReportRequest struct {
	RFQNo      string   `json:"rfq_no" binding:"required" example:"RFQ-2024-1001"`
	PlantCode  int      `json:"plant_code" binding:"required" example:"1100"`
	Priority   string   `json:"priority" example:"balanced"`
	Recipients []string `json:"recipients" binding:"required"`
	CC         []string `json:"cc,omitempty"`
}
