package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendor-comparison/models"
	"vendor-comparison/repository"
	"vendor-comparison/services"
	"vendor-comparison/utils"
)

// runRFQAnalysis executes the database-backed comparison pipeline shared by
// the analyze, export, and email endpoints: fetch, validate, rank, line-item
// analysis, and optionally insights. On failure it writes the error response
// itself and returns ok=false.
func runRFQAnalysis(c *gin.Context, db *sql.DB, insights *services.InsightService, rfqNo string, plantCode int, priority string, withInsights bool) (*models.ComparisonResponse, bool) {
	engine, err := services.NewComparisonEngine(priority)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:      "Invalid Priority",
			Detail:     err.Error(),
			StatusCode: http.StatusBadRequest,
		})
		return nil, false
	}
	priority = engine.Priority()

	utils.Log.Infof("Fetching quotations for RFQ: %s, plant: %d", rfqNo, plantCode)

	rows, err := repository.FetchVendorQuotations(c.Request.Context(), db, rfqNo, plantCode)
	if err != nil {
		utils.Log.Errorf("Quotation fetch failed for RFQ %s: %v", rfqNo, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:      "Analysis Failed",
			Detail:     err.Error(),
			StatusCode: http.StatusInternalServerError,
		})
		return nil, false
	}

	if len(rows) == 0 {
		diagnostics := repository.DiagnoseMissingQuotations(c.Request.Context(), db, rfqNo, plantCode)
		c.JSON(http.StatusNotFound, gin.H{
			"error":       "No Vendor Quotations Found",
			"message":     fmt.Sprintf("No vendor quotations found for RFQ %s at plant %d", rfqNo, plantCode),
			"rfq_no":      rfqNo,
			"plant_code":  plantCode,
			"diagnostics": diagnostics,
			"help":        "Please check the details below and take appropriate action",
		})
		return nil, false
	}
	utils.Log.Infof("Fetched %d quotation records", len(rows))

	quotations, err := repository.TransformToComparisonFormat(rows)
	if err != nil {
		var malformed *repository.MalformedRecordError
		if errors.As(err, &malformed) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:      "Malformed Quotation Record",
				Detail:     err.Error(),
				StatusCode: http.StatusBadRequest,
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:      "Analysis Failed",
			Detail:     err.Error(),
			StatusCode: http.StatusInternalServerError,
		})
		return nil, false
	}

	ranking, err := engine.RankVendors(quotations)
	if err != nil {
		if errors.Is(err, services.ErrEmptyVendorSet) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:      "No Vendor Quotations Found",
				Detail:     err.Error(),
				StatusCode: http.StatusNotFound,
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:      "Analysis Failed",
			Detail:     err.Error(),
			StatusCode: http.StatusInternalServerError,
		})
		return nil, false
	}

	lineEngine, err := services.NewLineItemEngine(priority)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:      "Analysis Failed",
			Detail:     err.Error(),
			StatusCode: http.StatusInternalServerError,
		})
		return nil, false
	}
	analysis := lineEngine.AnalyzeMaterials(rows)

	var aiInsights models.AIInsights
	source := ""
	if withInsights {
		aiInsights, source = insights.Generate(c.Request.Context(), rfqNo, plantCode, ranking, priority)
	}

	return &models.ComparisonResponse{
		RFQNo:            rfqNo,
		PlantCode:        plantCode,
		Priority:         priority,
		Ranking:          ranking,
		AIInsights:       aiInsights,
		LineItemAnalysis: &analysis,
		Metadata: models.AnalysisMetadata{
			TotalVendors:   len(ranking),
			TotalMaterials: len(analysis.Materials),
			AnalysisDate:   time.Now().Format(time.RFC3339),
			AnalysisID:     uuid.New().String(),
			InsightsSource: source,
		},
	}, true
}
