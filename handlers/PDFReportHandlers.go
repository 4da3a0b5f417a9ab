package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"vendor-comparison/models"
	"vendor-comparison/services"
	"vendor-comparison/utils"
)

// generateQRCodeImage generates a QR code image for the given data
func generateQRCodeImage(data interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(string(jsonData), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	img := qr.Image(200) // 200x200 pixels

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// pdfSafe maps the rupee sign and strips characters the core PDF fonts
// cannot encode.
func pdfSafe(s string) string {
	s = strings.ReplaceAll(s, "₹", "Rs. ")
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// ExportComparisonPDF godoc
// @Summary      Export comparison analysis as PDF report
// @Description  Runs the full analysis for the RFQ and streams a PDF with ranking table, material recommendations, and insights
// @Tags         export
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  models.ExportRequest  true  "Export request"
// @Success      200   {file}    file  "PDF file"
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/vendor-comparison/export/pdf [post]
func ExportComparisonPDF(db *sql.DB, insights *services.InsightService) gin.HandlerFunc {
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
		winner := result.Ranking[0]

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()

		// Title with black background
		pdf.SetFillColor(0, 0, 0)       // Black background
		pdf.SetTextColor(255, 255, 255) // White text
		pdf.SetFont("Arial", "B", 18)
		pdf.CellFormat(190, 12, "Vendor Comparison Report", "1", 1, "C", true, 0, "")
		pdf.SetFillColor(255, 255, 255) // Reset to white
		pdf.SetTextColor(0, 0, 0)       // Reset to black
		pdf.Ln(4)

		// Report metadata block
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(100, 8, fmt.Sprintf("RFQ: %s", pdfSafe(result.RFQNo)))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(100, 6, fmt.Sprintf("Plant Code: %d", result.PlantCode))
		pdf.Ln(6)
		pdf.Cell(100, 6, fmt.Sprintf("Priority: %s", result.Priority))
		pdf.Ln(6)
		pdf.Cell(100, 6, fmt.Sprintf("Recommended Vendor: %s", pdfSafe(winner.VendorName)))
		pdf.Ln(6)
		pdf.Cell(100, 6, fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02 15:04:05")))

		// QR code on the right side
		qrData := struct {
			RFQNo      string `json:"rfq_no"`
			PlantCode  int    `json:"plant_code"`
			Winner     string `json:"winner"`
			AnalysisID string `json:"analysis_id"`
			IsValid    bool   `json:"is_valid"`
		}{
			RFQNo:      result.RFQNo,
			PlantCode:  result.PlantCode,
			Winner:     winner.VendorName,
			AnalysisID: result.Metadata.AnalysisID,
			IsValid:    true,
		}
		qrCodeBytes, err := generateQRCodeImage(qrData)
		if err != nil {
			utils.Log.Warnf("QR code generation failed: %v", err)
		}
		if qrCodeBytes != nil {
			imageName := "qr_" + result.Metadata.AnalysisID
			pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(qrCodeBytes))

			pdf.SetXY(160, 28)
			pdf.ImageOptions(imageName, 160, 28, 30, 30, false, gofpdf.ImageOptions{ImageType: "JPEG"}, 0, "")

			pdf.SetXY(160, 60)
			pdf.SetFont("Arial", "B", 8)
			pdf.Cell(30, 4, "Scan for Details")
		}

		pdf.SetY(68)

		// Ranking section
		pdf.SetFillColor(0, 0, 0)       // Black background
		pdf.SetTextColor(255, 255, 255) // White text
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 10, "Vendor Ranking", "1", 1, "C", true, 0, "")
		pdf.SetFillColor(255, 255, 255) // Reset to white
		pdf.SetTextColor(0, 0, 0)       // Reset to black
		pdf.Ln(2)

		pdf.SetFillColor(50, 50, 50)    // Dark gray background
		pdf.SetTextColor(255, 255, 255) // White text
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(12, 8, "Rank", "1", 0, "C", true, 0, "")
		pdf.CellFormat(55, 8, "Vendor", "1", 0, "C", true, 0, "")
		pdf.CellFormat(18, 8, "Score", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Price (Rs.)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 8, "Pay Days", "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 8, "Del Days", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 8, "Categories", "1", 1, "C", true, 0, "")
		pdf.SetFillColor(255, 255, 255) // Reset to white
		pdf.SetTextColor(0, 0, 0)       // Reset to black

		pdf.SetFont("Arial", "", 9)
		for _, r := range result.Ranking {
			if pdf.GetY() > 250 {
				pdf.AddPage()
				// Repeat header with styling
				pdf.SetFillColor(50, 50, 50)
				pdf.SetTextColor(255, 255, 255)
				pdf.SetFont("Arial", "B", 9)
				pdf.CellFormat(12, 8, "Rank", "1", 0, "C", true, 0, "")
				pdf.CellFormat(55, 8, "Vendor", "1", 0, "C", true, 0, "")
				pdf.CellFormat(18, 8, "Score", "1", 0, "C", true, 0, "")
				pdf.CellFormat(30, 8, "Price (Rs.)", "1", 0, "C", true, 0, "")
				pdf.CellFormat(20, 8, "Pay Days", "1", 0, "C", true, 0, "")
				pdf.CellFormat(20, 8, "Del Days", "1", 0, "C", true, 0, "")
				pdf.CellFormat(35, 8, "Categories", "1", 1, "C", true, 0, "")
				pdf.SetFillColor(255, 255, 255)
				pdf.SetTextColor(0, 0, 0)
				pdf.SetFont("Arial", "", 9)
			}

			pdf.CellFormat(12, 6, fmt.Sprintf("%d", r.Rank), "1", 0, "C", false, 0, "")
			pdf.CellFormat(55, 6, pdfSafe(truncate(r.VendorName, 32)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(18, 6, fmt.Sprintf("%.2f", r.Score), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", r.Price), "1", 0, "R", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", r.PaymentTermsDays), "1", 0, "C", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", r.DeliveryDays), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, pdfSafe(truncate(strings.Join(r.CategoryWinners, ", "), 24)), "1", 1, "L", false, 0, "")
		}

		// Material recommendations section
		if result.LineItemAnalysis != nil && len(result.LineItemAnalysis.Materials) > 0 {
			pdf.Ln(6)
			pdf.SetFillColor(0, 0, 0)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(190, 10, "Material Recommendations", "1", 1, "C", true, 0, "")
			pdf.SetFillColor(255, 255, 255)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(2)

			pdf.SetFillColor(50, 50, 50)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(30, 8, "Material", "1", 0, "C", true, 0, "")
			pdf.CellFormat(50, 8, "Description", "1", 0, "C", true, 0, "")
			pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
			pdf.CellFormat(45, 8, "Recommended", "1", 0, "C", true, 0, "")
			pdf.CellFormat(25, 8, "Savings (Rs.)", "1", 0, "C", true, 0, "")
			pdf.CellFormat(20, 8, "Savings %", "1", 1, "C", true, 0, "")
			pdf.SetFillColor(255, 255, 255)
			pdf.SetTextColor(0, 0, 0)

			pdf.SetFont("Arial", "", 8)
			for _, m := range result.LineItemAnalysis.Materials {
				if pdf.GetY() > 250 {
					pdf.AddPage()
					// Repeat header with styling
					pdf.SetFillColor(50, 50, 50)
					pdf.SetTextColor(255, 255, 255)
					pdf.SetFont("Arial", "B", 9)
					pdf.CellFormat(30, 8, "Material", "1", 0, "C", true, 0, "")
					pdf.CellFormat(50, 8, "Description", "1", 0, "C", true, 0, "")
					pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
					pdf.CellFormat(45, 8, "Recommended", "1", 0, "C", true, 0, "")
					pdf.CellFormat(25, 8, "Savings (Rs.)", "1", 0, "C", true, 0, "")
					pdf.CellFormat(20, 8, "Savings %", "1", 1, "C", true, 0, "")
					pdf.SetFillColor(255, 255, 255)
					pdf.SetTextColor(0, 0, 0)
					pdf.SetFont("Arial", "", 8)
				}

				rec := m.RecommendedVendor
				pdf.CellFormat(30, 6, pdfSafe(truncate(m.MatCode, 18)), "1", 0, "L", false, 0, "")
				pdf.CellFormat(50, 6, pdfSafe(truncate(m.MatText, 32)), "1", 0, "L", false, 0, "")
				pdf.CellFormat(20, 6, fmt.Sprintf("%g %s", m.Qty, truncate(m.UOM, 5)), "1", 0, "C", false, 0, "")
				pdf.CellFormat(45, 6, pdfSafe(truncate(rec.VendorName, 28)), "1", 0, "L", false, 0, "")
				pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", rec.Savings), "1", 0, "R", false, 0, "")
				pdf.CellFormat(20, 6, fmt.Sprintf("%.1f%%", rec.SavingsPercentage), "1", 1, "C", false, 0, "")
			}

			s := result.LineItemAnalysis.SplitAwardStrategy
			pdf.Ln(4)
			pdf.SetFont("Arial", "B", 10)
			if s.IsRecommended {
				pdf.MultiCell(190, 6, fmt.Sprintf(
					"Split award recommended across %d vendors: Rs. %.2f total vs Rs. %.2f from best single vendor (%.2f%% savings)",
					s.VendorCount, s.TotalCostSplit, s.TotalCostSingleVendor, s.SavingsPercentage), "0", "L", false)
			} else {
				pdf.MultiCell(190, 6, "Split award offers no savings for this RFQ; a single vendor award is preferable.", "0", "L", false)
			}
		}

		// AI insights section
		if req.IncludeAI {
			pdf.Ln(4)
			pdf.SetFillColor(0, 0, 0)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(190, 10, "AI Insights", "1", 1, "C", true, 0, "")
			pdf.SetFillColor(255, 255, 255)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(2)

			sections := []struct {
				label string
				text  string
			}{
				{"Primary Recommendation", result.AIInsights.PrimaryRecommendation},
				{"Alternate Strategy", result.AIInsights.AlternateStrategy},
				{"Risk Consideration", result.AIInsights.RiskConsideration},
				{"Project Impact", result.AIInsights.ProjectImpact},
			}
			for _, section := range sections {
				if pdf.GetY() > 240 {
					pdf.AddPage()
				}
				pdf.SetFont("Arial", "B", 10)
				pdf.Cell(190, 6, section.label)
				pdf.Ln(6)
				pdf.SetFont("Arial", "", 9)
				pdf.MultiCell(190, 5, pdfSafe(section.text), "0", "L", false)
				pdf.Ln(2)
			}

			if len(result.AIInsights.NegotiationTips) > 0 {
				if pdf.GetY() > 240 {
					pdf.AddPage()
				}
				pdf.SetFont("Arial", "B", 10)
				pdf.Cell(190, 6, "Negotiation Tips")
				pdf.Ln(6)
				pdf.SetFont("Arial", "", 9)
				for i, tip := range result.AIInsights.NegotiationTips {
					pdf.MultiCell(190, 5, pdfSafe(fmt.Sprintf("%d. %s", i+1, tip)), "0", "L", false)
				}
			}
		}

		// Footer
		pdf.SetY(-20)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(190, 6, "This is a computer-generated report. Generated on: "+time.Now().Format("2006-01-02 15:04:05"))

		// Output PDF
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}

		filename := exportFilename(result.RFQNo, result.PlantCode, "pdf")
		saveExportCopy(filename, buf.Bytes())

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
