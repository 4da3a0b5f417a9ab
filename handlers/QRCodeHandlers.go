package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"vendor-comparison/services"
	"vendor-comparison/utils"
)

// drawString renders s onto img at the given baseline position.
func drawString(img *image.RGBA, x, y int, s string, face font.Face, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// qrSummary is the payload encoded into the QR code itself.
type qrSummary struct {
	RFQNo        string  `json:"rfq_no"`
	PlantCode    int     `json:"plant_code"`
	Priority     string  `json:"priority"`
	Winner       string  `json:"winner"`
	Score        float64 `json:"score"`
	TotalVendors int     `json:"total_vendors"`
	IsValid      bool    `json:"is_valid"`
}

// GenerateComparisonQR godoc
// @Summary      Generate QR code for an RFQ comparison
// @Description  Encodes the RFQ analysis summary as a QR code JPEG with a labeled caption area
// @Tags         qr
// @Produce      image/jpeg
// @Param        rfq_no      query     string  true   "RFQ number"
// @Param        plant_code  query     int     false  "Plant code"  default(1100)
// @Param        priority    query     string  false  "Ranking priority"  default(balanced)
// @Success      200  {file}    file  "JPEG image"
// @Failure      400  {object}  utils.Response
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/vendor-comparison/qr [get]
func GenerateComparisonQR(db *sql.DB, insights *services.InsightService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rfqNo := c.Query("rfq_no")
		if rfqNo == "" {
			utils.ErrorResponse(c, "rfq_no query parameter is required", http.StatusBadRequest)
			return
		}
		plantCode, err := strconv.Atoi(c.DefaultQuery("plant_code", "1100"))
		if err != nil {
			utils.ErrorResponse(c, "Invalid plant code", http.StatusBadRequest)
			return
		}
		priority := c.DefaultQuery("priority", "balanced")

		result, ok := runRFQAnalysis(c, db, insights, rfqNo, plantCode, priority, false)
		if !ok {
			return
		}
		winner := result.Ranking[0]

		jsonData, err := json.Marshal(qrSummary{
			RFQNo:        result.RFQNo,
			PlantCode:    result.PlantCode,
			Priority:     result.Priority,
			Winner:       winner.VendorName,
			Score:        winner.Score,
			TotalVendors: result.Metadata.TotalVendors,
			IsValid:      true,
		})
		if err != nil {
			utils.ErrorResponse(c, "Failed to marshal analysis data", http.StatusInternalServerError)
			return
		}

		qr, err := qrcode.New(string(jsonData), qrcode.Medium)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}
		qrImg := qr.Image(512)

		// QR code on top, caption rows below a separator line.
		qrSize := qrImg.Bounds().Dy()
		padding := 30
		lineHeight := 28
		captions := []struct {
			label string
			value string
		}{
			{"RFQ No:", truncateLabel(result.RFQNo, 30)},
			{"Plant:", strconv.Itoa(result.PlantCode)},
			{"Winner:", truncateLabel(winner.VendorName, 28)},
			{"Score:", strconv.FormatFloat(winner.Score, 'f', 2, 64) + " / 10"},
			{"Date:", time.Now().Format("2006-01-02")},
		}

		captionHeight := len(captions)*lineHeight + padding
		combined := image.NewRGBA(image.Rect(0, 0, qrSize, qrSize+padding+captionHeight))
		draw.Draw(combined, combined.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
		draw.Draw(combined, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

		separatorY := qrSize + padding/2
		for x := 0; x < qrSize; x++ {
			combined.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
		}

		startY := qrSize + padding + lineHeight
		xPos := 20
		labelCol := color.RGBA{30, 30, 30, 255}
		for i, row := range captions {
			y := startY + i*lineHeight
			drawString(combined, xPos, y, row.label, inconsolata.Bold8x16, labelCol)
			drawString(combined, xPos+140, y, row.value, inconsolata.Regular8x16, color.Black)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, combined, nil); err != nil {
			c.String(http.StatusInternalServerError, "JPEG encoding failed")
			return
		}

		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}
