package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendor-comparison/models"
	"vendor-comparison/services"
)

// AnalyzeRFQ godoc
// @Summary      Analyze RFQ vendor quotations from database
// @Description  Fetches quotations for the RFQ, ranks vendors by the chosen priority, analyzes best vendor per material, and attaches AI insights
// @Tags         vendor-comparison
// @Accept       json
// @Produce      json
// @Param        body  body      models.AnalyzeRFQRequest  true  "Analysis request"
// @Success      200   {object}  models.ComparisonResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/vendor-comparison/analyze [post]
func AnalyzeRFQ(db *sql.DB, insights *services.InsightService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnalyzeRFQRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, ok := runRFQAnalysis(c, db, insights, req.RFQNo, req.PlantCode, req.Priority, true)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// AnalyzeManual godoc
// @Summary      Analyze manually entered vendor data
// @Description  Ranks vendors supplied directly in the request body, without touching the database
// @Tags         vendor-comparison
// @Accept       json
// @Produce      json
// @Param        body  body      models.AnalyzeManualRequest  true  "Manual vendor entries"
// @Success      200   {object}  models.ComparisonResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/vendor-comparison/analyze-manual [post]
func AnalyzeManual(insights *services.InsightService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnalyzeManualRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		engine, err := services.NewComparisonEngine(req.Priority)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:      "Invalid Priority",
				Detail:     err.Error(),
				StatusCode: http.StatusBadRequest,
			})
			return
		}
		priority := engine.Priority()

		if len(req.Vendors) == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:      "No Quotations Found",
				Detail:     "vendors list is empty",
				StatusCode: http.StatusBadRequest,
			})
			return
		}
		if len(req.Vendors) < 2 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:      "Insufficient Vendors",
				Detail:     "at least 2 vendors are required for comparison",
				StatusCode: http.StatusBadRequest,
			})
			return
		}

		quotations := make([]models.VendorQuotation, 0, len(req.Vendors))
		for _, v := range req.Vendors {
			quotations = append(quotations, models.VendorQuotation{
				VendorName:       v.VendorName,
				Price:            v.Price,
				PaymentTermsDays: v.PaymentTermsDays,
				DeliveryDays:     v.DeliveryDays,
				Materials: []models.MaterialInfo{{
					MatCode: "MANUAL",
					MatText: "Manual entry",
					Price:   v.Price,
					Qty:     1,
					UOM:     "EA",
				}},
			})
		}

		ranking, err := engine.RankVendors(quotations)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:      "Analysis Failed",
				Detail:     err.Error(),
				StatusCode: http.StatusInternalServerError,
			})
			return
		}

		aiInsights, source := insights.Generate(c.Request.Context(), "", 0, ranking, priority)

		c.JSON(http.StatusOK, models.ComparisonResponse{
			Priority:   priority,
			Ranking:    ranking,
			AIInsights: aiInsights,
			Metadata: models.AnalysisMetadata{
				TotalVendors:   len(ranking),
				AnalysisDate:   time.Now().Format(time.RFC3339),
				AnalysisID:     uuid.New().String(),
				InsightsSource: source,
				Source:         "manual_entry",
			},
		})
	}
}
