package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendor-comparison/models"
	"vendor-comparison/services"
	"vendor-comparison/utils"
)

// EmailComparisonReport godoc
// @Summary      Email the comparison report
// @Description  Runs the full analysis for the RFQ and sends a plain-text report to the given recipients
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        body  body      models.EmailReportRequest  true  "Email report request"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/vendor-comparison/email-report [post]
func EmailComparisonReport(db *sql.DB, insights *services.InsightService, mailer *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EmailReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !mailer.Enabled() {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:      "Email Not Configured",
				Detail:     "set SMTP_HOST, SMTP_USER and SMTP_PASSWORD to enable report emails",
				StatusCode: http.StatusServiceUnavailable,
			})
			return
		}

		result, ok := runRFQAnalysis(c, db, insights, req.RFQNo, req.PlantCode, req.Priority, true)
		if !ok {
			return
		}

		if err := mailer.SendComparisonReport(result, req.Recipients, req.CC); err != nil {
			utils.Log.Errorf("Report email failed for RFQ %s: %v", req.RFQNo, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:      "Email Delivery Failed",
				Detail:     err.Error(),
				StatusCode: http.StatusInternalServerError,
			})
			return
		}

		utils.Log.Infof("Comparison report for RFQ %s sent to %d recipients", req.RFQNo, len(req.Recipients)+len(req.CC))
		c.JSON(http.StatusOK, gin.H{
			"message":     "Comparison report sent",
			"rfq_no":      req.RFQNo,
			"recipients":  len(req.Recipients) + len(req.CC),
			"analysis_id": result.Metadata.AnalysisID,
		})
	}
}
