package models

// MaterialVendorQuote is one vendor's quote for a single material line.
type MaterialVendorQuote struct {
	VendorName       string  `json:"vendor_name"`
	VendorNo         string  `json:"vendor_no"`
	Price            float64 `json:"price"`
	PaymentTermsDays int     `json:"payment_terms_days"`
	DeliveryDays     int     `json:"delivery_days"`
	TotalValue       float64 `json:"total_value"`
	Score            float64 `json:"score"`
	RankForMaterial  int     `json:"rank_for_this_material"`
	IsBestPrice      bool    `json:"is_best_price"`
	IsBestPayment    bool    `json:"is_best_payment"`
	IsBestDelivery   bool    `json:"is_best_delivery"`
	SavingsVsWorst   float64 `json:"savings_vs_worst"`
}

// AlternativeVendor is the runner-up suggestion for a material.
type AlternativeVendor struct {
	VendorName string  `json:"vendor_name"`
	Price      float64 `json:"price"`
	Reason     string  `json:"reason"`
}

// RecommendedVendor is the winning quote for a single material.
type RecommendedVendor struct {
	VendorName        string             `json:"vendor_name"`
	VendorNo          string             `json:"vendor_no"`
	Price             float64            `json:"price"`
	PaymentTermsDays  int                `json:"payment_terms_days"`
	DeliveryDays      int                `json:"delivery_days"`
	TotalValue        float64            `json:"total_value"`
	Score             float64            `json:"score"`
	Reason            string             `json:"reason"`
	Savings           float64            `json:"savings"`
	SavingsPercentage float64            `json:"savings_percentage"`
	Alternative       *AlternativeVendor `json:"alternative"`
}

// MaterialAnalysis is the per-material comparison across all quoting vendors.
type MaterialAnalysis struct {
	MatCode           string                `json:"mat_code"`
	MatText           string                `json:"mat_text"`
	Qty               float64               `json:"qty"`
	UOM               string                `json:"uom"`
	VendorQuotes      []MaterialVendorQuote `json:"vendor_quotes"`
	RecommendedVendor RecommendedVendor     `json:"recommended_vendor"`
}

// VendorAllocation is one vendor's share of a split-award purchase order.
type VendorAllocation struct {
	VendorName        string   `json:"vendor_name"`
	Materials         []string `json:"materials"`
	MaterialCount     int      `json:"material_count"`
	TotalValue        float64  `json:"total_value"`
	PercentageOfOrder float64  `json:"percentage_of_order"`
}

// SingleVendorComparison contrasts the split award against the cheapest
// vendor able to supply every material alone.
type SingleVendorComparison struct {
	SingleVendorOption string  `json:"single_vendor_option"`
	SingleVendorCost   float64 `json:"single_vendor_cost"`
	SplitAwardCost     float64 `json:"split_award_cost"`
	Savings            float64 `json:"savings"`
	SavingsPercentage  float64 `json:"savings_percentage"`
}

// SplitAwardStrategy summarises whether splitting the order between the
// per-material winners beats awarding everything to one vendor.
type SplitAwardStrategy struct {
	IsRecommended         bool                    `json:"is_recommended"`
	TotalCostSplit        float64                 `json:"total_cost_split"`
	TotalCostSingleVendor float64                 `json:"total_cost_single_vendor"`
	TotalSavings          float64                 `json:"total_savings"`
	SavingsPercentage     float64                 `json:"savings_percentage"`
	VendorCount           int                     `json:"vendor_count"`
	VendorAllocation      []VendorAllocation      `json:"vendor_allocation"`
	ComparisonVsSingle    *SingleVendorComparison `json:"comparison_vs_single_vendor"`
}

// LineItemAnalysis is the material-level view of an RFQ comparison.
type LineItemAnalysis struct {
	Materials          []MaterialAnalysis `json:"materials"`
	SplitAwardStrategy SplitAwardStrategy `json:"split_award_strategy"`
}
