package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vendor-comparison/models"
	"vendor-comparison/repository"
	"vendor-comparison/utils"
)

// ListRecentRFQs godoc
// @Summary      List recent RFQs with vendor quotations
// @Description  Returns RFQs ordered by most recent quotation activity, for dropdown selection
// @Tags         rfq
// @Produce      json
// @Param        plant_code  query     int  false  "Plant code"  default(1100)
// @Param        limit       query     int  false  "Max results"  default(10)
// @Success      200  {object}  models.RFQListResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/rfq/list [get]
func ListRecentRFQs(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		plantCode, err := strconv.Atoi(c.DefaultQuery("plant_code", "1100"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "plant_code must be an integer"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}

		rfqs, err := repository.ListRecentRFQs(c.Request.Context(), gdb, plantCode, limit)
		if err != nil {
			utils.Log.Errorf("RFQ list query failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:      "Failed to fetch RFQ list",
				Detail:     err.Error(),
				StatusCode: http.StatusInternalServerError,
			})
			return
		}

		c.JSON(http.StatusOK, models.RFQListResponse{
			RFQs:  rfqs,
			Total: len(rfqs),
		})
	}
}
