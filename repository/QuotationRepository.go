package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"vendor-comparison/models"
	"vendor-comparison/utils"

	"gorm.io/gorm"
)

// MalformedRecordError reports a quotation record that cannot be used for
// comparison, naming the offending vendor and material line.
type MalformedRecordError struct {
	VendorName string
	MatCode    string
	Field      string
	Reason     string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed quotation record for vendor %q material %q: field %s %s",
		e.VendorName, e.MatCode, e.Field, e.Reason)
}

// paymentTermDays maps ERP payment term codes to credit days.
var paymentTermDays = map[string]int{
	"00":  0,
	"01":  90,
	"02":  30,
	"03":  45,
	"04":  60,
	"05":  90,
	"000": 0,
	"015": 15,
	"030": 30,
	"045": 45,
	"060": 60,
	"090": 90,
}

// MapPaymentTerm converts a payment term code to the number of credit days.
// Unknown codes map to 0 (advance payment).
func MapPaymentTerm(payTermCode string) int {
	return paymentTermDays[payTermCode]
}

// FetchVendorQuotations returns all joined header+item quotation records
// for the given RFQ, ordered by material code and price.
func FetchVendorQuotations(ctx context.Context, db *sql.DB, rfqNo string, plantCode int) ([]models.QuotationRow, error) {
	query := `
		SELECT
			h.vendor_no,
			h.vendor_name,
			h.pay_term,
			h.vendor_email,
			h.vendor_contact_person,
			h.vendor_contact_phone,
			t.mat_code,
			t.mat_text,
			t.basic_price,
			t.delivery_days,
			t.qty,
			t.uom
		FROM mm_pur_vquot_t t
		JOIN mm_pur_vquot_h h
			ON t.plant_code = h.plant_code
			AND t.fyear = h.fyear
			AND t.doc_no = h.doc_no
		WHERE h.rfq_no = $1
			AND t.plant_code = $2
		ORDER BY t.mat_code, t.basic_price
	`

	qctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	rows, err := db.QueryContext(qctx, query, rfqNo, plantCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor quotations for RFQ %s: %w", rfqNo, err)
	}
	defer rows.Close()

	var results []models.QuotationRow
	for rows.Next() {
		var (
			r            models.QuotationRow
			payTerm      sql.NullString
			email        sql.NullString
			person       sql.NullString
			phone        sql.NullString
			matText      sql.NullString
			uom          sql.NullString
			basicPrice   sql.NullFloat64
			deliveryDays sql.NullInt64
			qty          sql.NullFloat64
		)
		if err := rows.Scan(
			&r.VendorNo,
			&r.VendorName,
			&payTerm,
			&email,
			&person,
			&phone,
			&r.MatCode,
			&matText,
			&basicPrice,
			&deliveryDays,
			&qty,
			&uom,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation row: %w", err)
		}
		r.PayTerm = payTerm.String
		r.VendorEmail = email.String
		r.VendorContactPerson = person.String
		r.VendorContactPhone = phone.String
		r.MatText = matText.String
		r.UOM = uom.String
		if basicPrice.Valid {
			v := basicPrice.Float64
			r.BasicPrice = &v
		}
		if deliveryDays.Valid {
			r.DeliveryDays = int(deliveryDays.Int64)
		}
		if qty.Valid {
			v := qty.Float64
			r.Qty = &v
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotation rows: %w", err)
	}

	return results, nil
}

// TransformToComparisonFormat groups joined quotation rows by vendor and
// aggregates them into one comparable record per vendor. The aggregate
// price is the total quoted value (sum of price times quantity), delivery
// is the slowest line, and payment terms come from the quotation header.
// A record with a missing or non-positive price or quantity, a negative
// delivery, or an empty vendor name aborts with a MalformedRecordError.
func TransformToComparisonFormat(rows []models.QuotationRow) ([]models.VendorQuotation, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	byVendor := make(map[string]*models.VendorQuotation)
	var order []string

	for _, r := range rows {
		if err := validateRow(r); err != nil {
			return nil, err
		}

		v, ok := byVendor[r.VendorName]
		if !ok {
			v = &models.VendorQuotation{
				VendorName:       r.VendorName,
				VendorNo:         r.VendorNo,
				PaymentTermsDays: MapPaymentTerm(r.PayTerm),
				Contact: &models.VendorContact{
					Email:  r.VendorEmail,
					Person: r.VendorContactPerson,
					Phone:  r.VendorContactPhone,
				},
			}
			byVendor[r.VendorName] = v
			order = append(order, r.VendorName)
		}

		v.Materials = append(v.Materials, models.MaterialInfo{
			MatCode: r.MatCode,
			MatText: r.MatText,
			Price:   *r.BasicPrice,
			Qty:     *r.Qty,
			UOM:     r.UOM,
		})
		v.Price += *r.BasicPrice * *r.Qty
		if r.DeliveryDays > v.DeliveryDays {
			v.DeliveryDays = r.DeliveryDays
		}
	}

	result := make([]models.VendorQuotation, 0, len(order))
	for _, name := range order {
		v := byVendor[name]
		v.Price = math.Round(v.Price*100) / 100
		result = append(result, *v)
	}

	return result, nil
}

func validateRow(r models.QuotationRow) error {
	if r.VendorName == "" {
		return &MalformedRecordError{VendorName: r.VendorName, MatCode: r.MatCode, Field: "vendor_name", Reason: "is missing"}
	}
	if r.BasicPrice == nil {
		return &MalformedRecordError{VendorName: r.VendorName, MatCode: r.MatCode, Field: "basic_price", Reason: "is missing"}
	}
	if *r.BasicPrice <= 0 {
		return &MalformedRecordError{VendorName: r.VendorName, MatCode: r.MatCode, Field: "basic_price", Reason: "must be greater than zero"}
	}
	if r.Qty == nil {
		return &MalformedRecordError{VendorName: r.VendorName, MatCode: r.MatCode, Field: "qty", Reason: "is missing"}
	}
	if *r.Qty <= 0 {
		return &MalformedRecordError{VendorName: r.VendorName, MatCode: r.MatCode, Field: "qty", Reason: "must be greater than zero"}
	}
	if r.DeliveryDays < 0 {
		return &MalformedRecordError{VendorName: r.VendorName, MatCode: r.MatCode, Field: "delivery_days", Reason: "must not be negative"}
	}
	return nil
}

// DiagnoseMissingQuotations probes the quotation tables to explain why an
// RFQ lookup produced no joined rows. Probe failures are reported inside
// the diagnostics rather than as an error so the 404 path never breaks.
func DiagnoseMissingQuotations(ctx context.Context, db *sql.DB, rfqNo string, plantCode int) models.QuotationDiagnostics {
	diag := models.QuotationDiagnostics{
		RFQNo:     rfqNo,
		PlantCode: plantCode,
	}

	qctx, cancel := utils.GetSlowQueryContext(ctx)
	defer cancel()

	var headerCount int
	if err := db.QueryRowContext(qctx, `
		SELECT COUNT(*)
		FROM mm_pur_vquot_h
		WHERE rfq_no = $1 AND plant_code = $2
	`, rfqNo, plantCode).Scan(&headerCount); err != nil {
		diag.PossibleReasons = append(diag.PossibleReasons, fmt.Sprintf("Diagnostic query failed: %v", err))
		diag.ActionRequired = append(diag.ActionRequired, "Check database connectivity")
		return diag
	}
	diag.Checks.RFQExistsInHeader = headerCount > 0
	diag.Checks.VendorCountInHeader = headerCount

	var lineCount int
	if err := db.QueryRowContext(qctx, `
		SELECT COUNT(*)
		FROM mm_pur_vquot_t
		WHERE rfq_no = $1 AND plant_code = $2
	`, rfqNo, plantCode).Scan(&lineCount); err == nil {
		diag.Checks.HasLineItems = lineCount > 0
		diag.Checks.LineItemCount = lineCount
	}

	if headerCount > 0 {
		rows, err := db.QueryContext(qctx, `
			SELECT vendor_no, vendor_name
			FROM mm_pur_vquot_h
			WHERE rfq_no = $1 AND plant_code = $2
		`, rfqNo, plantCode)
		if err == nil {
			for rows.Next() {
				var v models.HeaderVendor
				if err := rows.Scan(&v.VendorNo, &v.VendorName); err == nil {
					diag.Checks.VendorsInHeader = append(diag.Checks.VendorsInHeader, v)
				}
			}
			rows.Close()
		}
	}

	if lineCount > 0 {
		rows, err := db.QueryContext(qctx, `
			SELECT DISTINCT mat_code, mat_text
			FROM mm_pur_vquot_t
			WHERE rfq_no = $1 AND plant_code = $2
		`, rfqNo, plantCode)
		if err == nil {
			for rows.Next() {
				var m models.HeaderMaterial
				var matText sql.NullString
				if err := rows.Scan(&m.MatCode, &matText); err == nil {
					m.MatText = matText.String
					diag.Checks.Materials = append(diag.Checks.Materials, m)
				}
			}
			rows.Close()
		}
	}

	var joinCount int
	if err := db.QueryRowContext(qctx, `
		SELECT COUNT(*)
		FROM mm_pur_vquot_t t
		JOIN mm_pur_vquot_h h
			ON t.plant_code = h.plant_code
			AND t.fyear = h.fyear
			AND t.doc_no = h.doc_no
		WHERE h.rfq_no = $1 AND t.plant_code = $2
	`, rfqNo, plantCode).Scan(&joinCount); err == nil {
		diag.Checks.JoinSuccessful = joinCount > 0
		diag.Checks.JoinedRecords = joinCount
	}

	if !diag.Checks.RFQExistsInHeader {
		diag.PossibleReasons = append(diag.PossibleReasons, fmt.Sprintf("RFQ %s does not exist in system for plant %d", rfqNo, plantCode))
		diag.ActionRequired = append(diag.ActionRequired, "Verify RFQ number is correct")
	}
	if diag.Checks.RFQExistsInHeader && !diag.Checks.HasLineItems {
		diag.PossibleReasons = append(diag.PossibleReasons, "RFQ exists but has no line items")
		diag.ActionRequired = append(diag.ActionRequired, "Contact administrator to add materials to RFQ")
	}
	if diag.Checks.RFQExistsInHeader && diag.Checks.HasLineItems && !diag.Checks.JoinSuccessful {
		diag.PossibleReasons = append(diag.PossibleReasons, "Data mismatch between header and line items (fyear or doc_no mismatch)")
		diag.ActionRequired = append(diag.ActionRequired, "Contact database administrator to fix data integrity")
	}
	if diag.Checks.VendorCountInHeader == 0 {
		diag.PossibleReasons = append(diag.PossibleReasons, "No vendors have submitted quotations yet")
		diag.ActionRequired = append(diag.ActionRequired, "Wait for vendors to submit quotations")
	}

	return diag
}

type rfqListRow struct {
	RFQNo       string
	RFQYear     string
	VendorCount int
	LastUpdated time.Time
}

// ListRecentRFQs returns the most recently updated RFQs for a plant with
// their vendor counts.
func ListRecentRFQs(ctx context.Context, gdb *gorm.DB, plantCode, limit int) ([]models.RFQSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	qctx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	var rows []rfqListRow
	err := gdb.WithContext(qctx).
		Model(&models.QuotationHeader{}).
		Select("rfq_no, rfq_year, COUNT(DISTINCT vendor_no) AS vendor_count, MAX(createdon) AS last_updated").
		Where("plant_code = ?", plantCode).
		Group("rfq_no, rfq_year").
		Order("last_updated DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent RFQs for plant %d: %w", plantCode, err)
	}

	summaries := make([]models.RFQSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, models.RFQSummary{
			RFQNo:       r.RFQNo,
			RFQYear:     r.RFQYear,
			VendorCount: r.VendorCount,
			LastUpdated: r.LastUpdated.Format(time.RFC3339),
		})
	}
	return summaries, nil
}
