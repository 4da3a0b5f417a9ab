package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"vendor-comparison/models"
	"vendor-comparison/services"
	"vendor-comparison/utils"
)

// ExportComparisonExcel godoc
// @Summary      Export comparison analysis as Excel workbook
// @Description  Runs the full analysis for the RFQ and streams a styled workbook with ranking, line-item, and insight sheets
// @Tags         export
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  models.ExportRequest  true  "Export request"
// @Success      200   {file}    file  "Excel file"
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/vendor-comparison/export/excel [post]
func ExportComparisonExcel(db *sql.DB, insights *services.InsightService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, ok := runRFQAnalysis(c, db, insights, req.RFQNo, req.PlantCode, req.Priority, req.IncludeAI)
		if !ok {
			return
		}

		// Create a new Excel file
		f := excelize.NewFile()
		defer func() {
			if err := f.Close(); err != nil {
				utils.Log.Warnf("Error closing Excel file: %v", err)
			}
		}()

		rankingSheet := "Ranking"
		index, err := f.NewSheet(rankingSheet)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating ranking sheet"})
			return
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1") // Delete default sheet

		titleStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{
				Bold:   true,
				Size:   14,
				Family: "Arial",
				Color:  "#FFFFFF",
			},
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{"#4472C4"},
				Pattern: 1,
			},
			Alignment: &excelize.Alignment{
				Horizontal: "left",
				Vertical:   "center",
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating title style"})
			return
		}

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{
				Bold:   true,
				Size:   12,
				Family: "Arial",
				Color:  "#FFFFFF",
			},
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{"#4472C4"},
				Pattern: 1,
			},
			Alignment: &excelize.Alignment{
				Horizontal: "left",
				Vertical:   "center",
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating header style"})
			return
		}

		sectionStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{
				Bold:   true,
				Size:   12,
				Family: "Arial",
				Color:  "#FFFFFF",
			},
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{"#70AD47"},
				Pattern: 1,
			},
			Alignment: &excelize.Alignment{
				Horizontal: "left",
				Vertical:   "center",
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating section style"})
			return
		}

		// Summary block
		f.SetCellValue(rankingSheet, "A1", "Vendor Comparison Report")
		f.SetCellValue(rankingSheet, "A2", "RFQ No")
		f.SetCellValue(rankingSheet, "B2", result.RFQNo)
		f.SetCellValue(rankingSheet, "A3", "Plant Code")
		f.SetCellValue(rankingSheet, "B3", result.PlantCode)
		f.SetCellValue(rankingSheet, "A4", "Priority")
		f.SetCellValue(rankingSheet, "B4", result.Priority)
		f.SetCellValue(rankingSheet, "A5", "Total Vendors")
		f.SetCellValue(rankingSheet, "B5", result.Metadata.TotalVendors)
		f.SetCellValue(rankingSheet, "A6", "Generated")
		f.SetCellValue(rankingSheet, "B6", result.Metadata.AnalysisDate)

		// Ranking table
		headers := []string{"Rank", "Vendor", "Score", "Price", "Payment Days", "Delivery Days", "Category Winners"}
		headerRow := 8
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating header cell name"})
				return
			}
			f.SetCellValue(rankingSheet, cell, h)
		}

		for rowIdx, r := range result.Ranking {
			values := []interface{}{
				r.Rank,
				r.VendorName,
				r.Score,
				r.Price,
				r.PaymentTermsDays,
				r.DeliveryDays,
				strings.Join(r.CategoryWinners, ", "),
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, headerRow+1+rowIdx)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating data cell name"})
					return
				}
				f.SetCellValue(rankingSheet, cell, v)
			}
		}

		f.SetCellStyle(rankingSheet, "A1", "G1", titleStyle)
		headerEnd, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
		f.SetCellStyle(rankingSheet, "A8", headerEnd, headerStyle)
		f.SetColWidth(rankingSheet, "A", "A", 10)
		f.SetColWidth(rankingSheet, "B", "B", 32)
		f.SetColWidth(rankingSheet, "C", "F", 15)
		f.SetColWidth(rankingSheet, "G", "G", 45)
		f.SetRowHeight(rankingSheet, 1, 30)
		f.SetRowHeight(rankingSheet, headerRow, 22)

		if result.LineItemAnalysis != nil && len(result.LineItemAnalysis.Materials) > 0 {
			if err := writeLineItemSheet(f, result.LineItemAnalysis, titleStyle, headerStyle, sectionStyle); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing line item sheet"})
				return
			}
		}

		if req.IncludeAI {
			if err := writeInsightSheet(f, result, titleStyle, headerStyle); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing insight sheet"})
				return
			}
		}

		// Set the response headers for Excel file download
		filename := exportFilename(result.RFQNo, result.PlantCode, "xlsx")
		if err := f.SaveAs(exportCopyPath(filename)); err != nil {
			utils.Log.Warnf("Could not save export copy %s: %v", filename, err)
		}
		escaped := url.PathEscape(filename)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", filename, escaped))

		// Write the Excel file to the response
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing Excel file"})
			return
		}
	}
}

func writeLineItemSheet(f *excelize.File, analysis *models.LineItemAnalysis, titleStyle, headerStyle, sectionStyle int) error {
	sheet := "Line Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Line Item Analysis")
	f.SetCellStyle(sheet, "A1", "H1", titleStyle)

	row := 3
	for _, m := range analysis.Materials {
		sectionCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, sectionCell, fmt.Sprintf("%s - %s (%g %s)", m.MatCode, m.MatText, m.Qty, m.UOM))
		sectionEnd, _ := excelize.CoordinatesToCellName(8, row)
		f.SetCellStyle(sheet, sectionCell, sectionEnd, sectionStyle)
		row++

		headers := []string{"Vendor", "Price", "Total Value", "Score", "Rank", "Best Price", "Best Payment", "Best Delivery"}
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, h)
		}
		headerStart, _ := excelize.CoordinatesToCellName(1, row)
		headerEnd, _ := excelize.CoordinatesToCellName(len(headers), row)
		f.SetCellStyle(sheet, headerStart, headerEnd, headerStyle)
		row++

		for _, q := range m.VendorQuotes {
			values := []interface{}{
				q.VendorName,
				q.Price,
				q.TotalValue,
				q.Score,
				q.RankForMaterial,
				yesNo(q.IsBestPrice),
				yesNo(q.IsBestPayment),
				yesNo(q.IsBestDelivery),
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return err
				}
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		recCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		rec := m.RecommendedVendor
		f.SetCellValue(sheet, recCell, fmt.Sprintf("Recommended: %s - %s | Savings: %.2f (%.2f%%)",
			rec.VendorName, rec.Reason, rec.Savings, rec.SavingsPercentage))
		row += 2
	}

	// Split award summary
	s := analysis.SplitAwardStrategy
	sectionCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	f.SetCellValue(sheet, sectionCell, "Split Award Strategy")
	sectionEnd, _ := excelize.CoordinatesToCellName(8, row)
	f.SetCellStyle(sheet, sectionCell, sectionEnd, sectionStyle)
	row++

	f.SetCellValue(sheet, mustCell(1, row), "Recommended")
	f.SetCellValue(sheet, mustCell(2, row), yesNo(s.IsRecommended))
	row++
	f.SetCellValue(sheet, mustCell(1, row), "Split Award Total")
	f.SetCellValue(sheet, mustCell(2, row), s.TotalCostSplit)
	row++
	f.SetCellValue(sheet, mustCell(1, row), "Best Single Vendor Total")
	f.SetCellValue(sheet, mustCell(2, row), s.TotalCostSingleVendor)
	row++
	f.SetCellValue(sheet, mustCell(1, row), "Savings")
	f.SetCellValue(sheet, mustCell(2, row), s.TotalSavings)
	f.SetCellValue(sheet, mustCell(3, row), fmt.Sprintf("%.2f%%", s.SavingsPercentage))
	row++

	for _, a := range s.VendorAllocation {
		f.SetCellValue(sheet, mustCell(1, row), a.VendorName)
		f.SetCellValue(sheet, mustCell(2, row), strings.Join(a.Materials, ", "))
		f.SetCellValue(sheet, mustCell(3, row), a.TotalValue)
		f.SetCellValue(sheet, mustCell(4, row), fmt.Sprintf("%.2f%%", a.PercentageOfOrder))
		row++
	}

	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "H", 16)
	f.SetRowHeight(sheet, 1, 30)
	return nil
}

func writeInsightSheet(f *excelize.File, result *models.ComparisonResponse, titleStyle, headerStyle int) error {
	sheet := "AI Insights"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("AI Insights (%s)", result.Metadata.InsightsSource))
	f.SetCellStyle(sheet, "A1", "B1", titleStyle)

	sections := []struct {
		label string
		text  string
	}{
		{"Primary Recommendation", result.AIInsights.PrimaryRecommendation},
		{"Alternate Strategy", result.AIInsights.AlternateStrategy},
		{"Risk Consideration", result.AIInsights.RiskConsideration},
		{"Project Impact", result.AIInsights.ProjectImpact},
		{"Negotiation Tips", strings.Join(result.AIInsights.NegotiationTips, "\n")},
	}
	for i, s := range sections {
		labelCell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		textCell, err := excelize.CoordinatesToCellName(2, i+3)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, labelCell, s.label)
		f.SetCellValue(sheet, textCell, s.text)
		f.SetCellStyle(sheet, labelCell, labelCell, headerStyle)
	}

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 110)
	f.SetRowHeight(sheet, 1, 30)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}

func mustCell(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
