package storage

import (
	"log"
	"os"
	"time"

	"vendor-comparison/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var gormDB *gorm.DB

// InitGormDB initializes GORM database connection
func InitGormDB() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := quotationDSN() + " TimeZone=Asia/Kolkata"

	var err error
	gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
		DryRun:                                   false,
		DisableAutomaticPing:                     false,
	})
	if err != nil {
		log.Fatal("Failed to connect to database with GORM:", err)
	}

	// Get the underlying sql.DB object
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// Set connection pool settings optimized for performance
	sqlDB.SetMaxIdleConns(10)                  // Increased for better connection reuse
	sqlDB.SetMaxOpenConns(50)                  // Increased for better concurrency
	sqlDB.SetConnMaxLifetime(10 * time.Minute) // Increased connection lifetime
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)  // Close idle connections after 5 minutes

	autoMigrateModels()

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seedDemoData()
	}

	return gormDB
}

// GetGormDB returns the GORM database instance
func GetGormDB() *gorm.DB {
	return gormDB
}

// autoMigrateModels creates or updates the quotation tables
func autoMigrateModels() {
	err := gormDB.AutoMigrate(
		&models.QuotationHeader{},
		&models.QuotationItem{},
	)
	if err != nil {
		log.Fatal("Failed to auto-migrate quotation tables:", err)
	}
}

// seedDemoData loads a sample RFQ so the comparison endpoints can be tried
// without an upstream ERP feed. Skipped when any header rows already exist.
func seedDemoData() {
	var count int64
	if err := gormDB.Model(&models.QuotationHeader{}).Count(&count).Error; err != nil {
		log.Printf("Demo seed skipped, header count failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	f := func(v float64) *float64 { return &v }

	headers := []models.QuotationHeader{
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0001", RFQNo: "RFQ-2024-1001", RFQYear: "2024", VendorNo: "V1001", VendorName: "Alpha Traders", PayTerm: "030", VendorEmail: "sales@alphatraders.in", VendorContactPerson: "R. Sharma", VendorContactPhone: "+91-9810012345", CreatedOn: now.AddDate(0, 0, -3)},
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0002", RFQNo: "RFQ-2024-1001", RFQYear: "2024", VendorNo: "V1002", VendorName: "Beta Supplies", PayTerm: "060", VendorEmail: "quotes@betasupplies.in", VendorContactPerson: "K. Iyer", VendorContactPhone: "+91-9822045678", CreatedOn: now.AddDate(0, 0, -2)},
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0003", RFQNo: "RFQ-2024-1001", RFQYear: "2024", VendorNo: "V1003", VendorName: "Gamma Corp", PayTerm: "000", VendorEmail: "rfq@gammacorp.in", VendorContactPerson: "S. Patel", VendorContactPhone: "+91-9833078901", CreatedOn: now.AddDate(0, 0, -1)},
	}
	items := []models.QuotationItem{
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0001", RFQNo: "RFQ-2024-1001", MatCode: "MAT-00012", MatText: "OPC Cement 53 Grade", BasicPrice: f(385.50), DeliveryDays: 7, Qty: f(200), UOM: "BAG"},
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0001", RFQNo: "RFQ-2024-1001", MatCode: "MAT-00047", MatText: "TMT Steel Bar 12mm", BasicPrice: f(52300), DeliveryDays: 10, Qty: f(5), UOM: "MT"},
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0002", RFQNo: "RFQ-2024-1001", MatCode: "MAT-00012", MatText: "OPC Cement 53 Grade", BasicPrice: f(379.00), DeliveryDays: 12, Qty: f(200), UOM: "BAG"},
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0002", RFQNo: "RFQ-2024-1001", MatCode: "MAT-00047", MatText: "TMT Steel Bar 12mm", BasicPrice: f(51150), DeliveryDays: 12, Qty: f(5), UOM: "MT"},
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0003", RFQNo: "RFQ-2024-1001", MatCode: "MAT-00012", MatText: "OPC Cement 53 Grade", BasicPrice: f(392.25), DeliveryDays: 4, Qty: f(200), UOM: "BAG"},
		{PlantCode: 1100, FYear: "2024", DocNo: "VQ-0003", RFQNo: "RFQ-2024-1001", MatCode: "MAT-00047", MatText: "TMT Steel Bar 12mm", BasicPrice: f(53400), DeliveryDays: 4, Qty: f(5), UOM: "MT"},
	}

	if err := gormDB.Create(&headers).Error; err != nil {
		log.Printf("Demo seed failed on headers: %v", err)
		return
	}
	if err := gormDB.Create(&items).Error; err != nil {
		log.Printf("Demo seed failed on items: %v", err)
		return
	}
	log.Printf("Seeded demo RFQ RFQ-2024-1001 with %d vendors and %d line items", len(headers), len(items))
}
