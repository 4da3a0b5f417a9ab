package models

import (
	"time"
)

// QuotationHeader represents the mm_pur_vquot_h table with GORM tags.
// One row per vendor quotation document against an RFQ.
type QuotationHeader struct {
	ID                  uint      `gorm:"primaryKey;column:id" json:"id"`
	PlantCode           int       `gorm:"column:plant_code;not null;index:idx_vquot_h_rfq" json:"plant_code"`
	FYear               string    `gorm:"column:fyear;not null" json:"fyear"`
	DocNo               string    `gorm:"column:doc_no;not null" json:"doc_no"`
	RFQNo               string    `gorm:"column:rfq_no;not null;index:idx_vquot_h_rfq" json:"rfq_no"`
	RFQYear             string    `gorm:"column:rfq_year" json:"rfq_year"`
	VendorNo            string    `gorm:"column:vendor_no;not null" json:"vendor_no"`
	VendorName          string    `gorm:"column:vendor_name;not null" json:"vendor_name"`
	PayTerm             string    `gorm:"column:pay_term" json:"pay_term"`
	VendorEmail         string    `gorm:"column:vendor_email" json:"vendor_email"`
	VendorContactPerson string    `gorm:"column:vendor_contact_person" json:"vendor_contact_person"`
	VendorContactPhone  string    `gorm:"column:vendor_contact_phone" json:"vendor_contact_phone"`
	CreatedOn           time.Time `gorm:"column:createdon" json:"createdon"`
}

// TableName specifies the table name for QuotationHeader
func (QuotationHeader) TableName() string {
	return "mm_pur_vquot_h"
}

// QuotationItem represents the mm_pur_vquot_t table with GORM tags.
// One row per quoted material line under a quotation document.
type QuotationItem struct {
	ID           uint     `gorm:"primaryKey;column:id" json:"id"`
	PlantCode    int      `gorm:"column:plant_code;not null;index:idx_vquot_t_rfq" json:"plant_code"`
	FYear        string   `gorm:"column:fyear;not null" json:"fyear"`
	DocNo        string   `gorm:"column:doc_no;not null" json:"doc_no"`
	RFQNo        string   `gorm:"column:rfq_no;not null;index:idx_vquot_t_rfq" json:"rfq_no"`
	MatCode      string   `gorm:"column:mat_code;not null" json:"mat_code"`
	MatText      string   `gorm:"column:mat_text" json:"mat_text"`
	BasicPrice   *float64 `gorm:"column:basic_price;type:numeric(14,2)" json:"basic_price"`
	DeliveryDays int      `gorm:"column:delivery_days;default:0" json:"delivery_days"`
	Qty          *float64 `gorm:"column:qty;type:numeric(14,3)" json:"qty"`
	UOM          string   `gorm:"column:uom" json:"uom"`
}

// TableName specifies the table name for QuotationItem
func (QuotationItem) TableName() string {
	return "mm_pur_vquot_t"
}

// QuotationRow is one joined header+item record as fetched for an RFQ.
// Price and quantity stay nullable here so the transform step can reject
// incomplete records instead of silently zeroing them.
type QuotationRow struct {
	VendorNo            string   `json:"vendor_no"`
	VendorName          string   `json:"vendor_name"`
	PayTerm             string   `json:"pay_term"`
	VendorEmail         string   `json:"vendor_email"`
	VendorContactPerson string   `json:"vendor_contact_person"`
	VendorContactPhone  string   `json:"vendor_contact_phone"`
	MatCode             string   `json:"mat_code"`
	MatText             string   `json:"mat_text"`
	BasicPrice          *float64 `json:"basic_price"`
	DeliveryDays        int      `json:"delivery_days"`
	Qty                 *float64 `json:"qty"`
	UOM                 string   `json:"uom"`
}

// VendorQuotation is one vendor's aggregated quotation, ready for ranking.
type VendorQuotation struct {
	VendorName       string         `json:"vendor_name"`
	VendorNo         string         `json:"vendor_no"`
	Price            float64        `json:"price"`
	PaymentTermsDays int            `json:"payment_terms_days"`
	DeliveryDays     int            `json:"delivery_days"`
	Materials        []MaterialInfo `json:"materials"`
	Contact          *VendorContact `json:"contact,omitempty"`
}

// RFQSummary is one row of the recent-RFQ listing.
type RFQSummary struct {
	RFQNo       string `json:"rfq_no" example:"RFQ-2024-1001"`
	RFQYear     string `json:"rfq_year" example:"2024"`
	VendorCount int    `json:"vendor_count" example:"4"`
	LastUpdated string `json:"last_updated" example:"2024-12-01T09:30:00Z"`
}

// RFQListResponse wraps the recent-RFQ listing.
type RFQListResponse struct {
	RFQs  []RFQSummary `json:"rfqs"`
	Total int          `json:"total" example:"10"`
}

// HeaderVendor identifies a vendor found in the quotation header table.
type HeaderVendor struct {
	VendorNo   string `json:"vendor_no"`
	VendorName string `json:"vendor_name"`
}

// HeaderMaterial identifies a material found in the quotation item table.
type HeaderMaterial struct {
	MatCode string `json:"mat_code"`
	MatText string `json:"mat_text"`
}

// DiagnosticChecks holds the raw table probes run when an RFQ lookup
// returns nothing.
type DiagnosticChecks struct {
	RFQExistsInHeader   bool             `json:"rfq_exists_in_header"`
	VendorCountInHeader int              `json:"vendor_count_in_header"`
	HasLineItems        bool             `json:"has_line_items"`
	LineItemCount       int              `json:"line_item_count"`
	VendorsInHeader     []HeaderVendor   `json:"vendors_in_header,omitempty"`
	Materials           []HeaderMaterial `json:"materials,omitempty"`
	JoinSuccessful      bool             `json:"join_successful"`
	JoinedRecords       int              `json:"joined_records"`
}

// QuotationDiagnostics explains why an RFQ produced no joined quotation rows.
type QuotationDiagnostics struct {
	RFQNo           string           `json:"rfq_no"`
	PlantCode       int              `json:"plant_code"`
	Checks          DiagnosticChecks `json:"checks"`
	PossibleReasons []string         `json:"possible_reasons"`
	ActionRequired  []string         `json:"action_required"`
}
