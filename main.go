// @title           Vendor Comparison API
// @version         1.0
// @description     AI-assisted vendor quotation ranking and insight assembly for procurement RFQs.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @host      localhost:8000

// @BasePath  /

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "vendor-comparison/docs"
	"vendor-comparison/handlers"
	"vendor-comparison/services"
	"vendor-comparison/storage"
	"vendor-comparison/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// cssInjectorWriter captures Swagger UI HTML so a custom stylesheet link can be injected.
type cssInjectorWriter struct {
	gin.ResponseWriter
	body *strings.Builder
}

func (w *cssInjectorWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *cssInjectorWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *cssInjectorWriter) Header() http.Header {
	return w.ResponseWriter.Header()
}

func (w *cssInjectorWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
}

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	// Procurement dashboard dev/staging origins
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:8000",
		"http://localhost:8080",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "X-XSRF-TOKEN",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
		"Accept-Language", "Accept-Charset", "DNT", "Connection",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	// Content-Disposition must be exposed so browsers can read export filenames
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour // Cache preflight requests for 12 hours
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
			if cronLogger != nil {
				cronLogger.Printf("%s completed successfully", name)
			}
		}
	}()
}

// purgeExpiredExports removes export copies older than the retention window.
func purgeExpiredExports(ctx context.Context, dir string, retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				log.Printf("[export-purge] failed to remove %s: %v", entry.Name(), err)
				continue
			}
			removed++
		}
	}
	log.Printf("[export-purge] removed=%d retention_days=%d dir=%s", removed, retentionDays, dir)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	utils.InitLogger()

	db := storage.InitDB()
	// Initialize GORM database
	gdb := storage.InitGormDB()

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	insightService := services.NewInsightService()
	mailer := services.NewEmailService()
	if !mailer.Enabled() {
		log.Println("SMTP not configured. Email reports will be disabled.")
	}

	retentionDays := 7
	if v := os.Getenv("EXPORT_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			retentionDays = n
		}
	}

	// Setup cron job to purge stale export copies daily at 2:30 AM
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	// Open a file for cron error logging
	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 2 * * *", func() {
		// ------------------ CRON LOCK ------------------
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			if cronLogger != nil {
				cronLogger.Println("Previous cron still running. Skipping this run.")
			}
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job (2:30 AM)")
		if cronLogger != nil {
			cronLogger.Println("Starting daily maintenance cron job (2:30 AM)")
		}

		// ------------------ TIMEOUT CONTEXT ------------------
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "PurgeExpiredExports", func(ctx context.Context) error {
			return purgeExpiredExports(ctx, handlers.ExportDirPath(), retentionDays)
		}, cronLogger)

		// ------------------ WAIT WITH CANCELLATION ------------------

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
			if cronLogger != nil {
				cronLogger.Println("All cron jobs finished")
			}
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}

		log.Println("Daily cron cycle completed")
		if cronLogger != nil {
			cronLogger.Println("Daily cron cycle completed")
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}

	c.Start()

	r := gin.Default()

	r.Use(cors.New(CORSConfig()))

	// ==================== 1. SERVICE STATUS ====================
	r.GET("/", handlers.Root())
	r.GET("/health", handlers.HealthCheck(db))

	// ==================== 2. VENDOR COMPARISON ====================
	r.POST("/api/vendor-comparison/analyze", handlers.AnalyzeRFQ(db, insightService))
	r.POST("/api/vendor-comparison/analyze-manual", handlers.AnalyzeManual(insightService))

	// ==================== 3. RFQ DISCOVERY ====================
	r.GET("/api/rfq/list", handlers.ListRecentRFQs(gdb))

	// ==================== 4. EXPORTS ====================
	r.POST("/api/vendor-comparison/export/excel", handlers.ExportComparisonExcel(db, insightService))
	r.POST("/api/vendor-comparison/export/pdf", handlers.ExportComparisonPDF(db, insightService))

	// ==================== 5. QR CODE ====================
	r.GET("/api/vendor-comparison/qr", handlers.GenerateComparisonQR(db, insightService))

	// ==================== 6. EMAIL REPORTS ====================
	r.POST("/api/vendor-comparison/email-report", handlers.EmailComparisonReport(db, insightService, mailer))

	// ==================== 7. SWAGGER ====================
	r.GET("/swagger/*any", func(c *gin.Context) {
		// Handle specific routes first to avoid conflicts
		if c.Param("any") == "/custom.css" {
			c.Header("Content-Type", "text/css")
			c.String(http.StatusOK, `
/* Vendor comparison API docs theme */
.swagger-ui .topbar {
  background: #1f2a37;
  border-bottom: 3px solid #0f9d8f;
  padding: 14px 0;
}

.swagger-ui .info {
  margin: 32px 0;
}

.swagger-ui .info .title {
  color: #1f2a37;
  font-size: 32px;
  font-weight: 600;
}

.swagger-ui .info .title small.version-stamp {
  background-color: #0f9d8f;
}

.swagger-ui .info .description {
  color: #4b5563;
  font-size: 15px;
  line-height: 1.7;
  max-width: 720px;
}

.swagger-ui .opblock-tag {
  color: #1f2a37;
  border-bottom: 1px solid #e5e7eb;
}

.swagger-ui .opblock.opblock-post {
  border-color: #0f9d8f;
  background: rgba(15, 157, 143, 0.06);
}

.swagger-ui .opblock.opblock-post .opblock-summary-method {
  background: #0f9d8f;
}

.swagger-ui .opblock.opblock-get {
  border-color: #2563eb;
  background: rgba(37, 99, 235, 0.06);
}

.swagger-ui .btn.execute {
  background-color: #0f9d8f;
  border-color: #0f9d8f;
}

.swagger-ui table thead tr th {
  color: #1f2a37;
}

.swagger-ui .scheme-container {
  background: #f9fafb;
  box-shadow: none;
  border-bottom: 1px solid #e5e7eb;
}
`)
			return
		}

		if c.Param("any") == "/doc.json" {
			// Prefer the processed swagger.json file when present
			swaggerJSON, err := os.ReadFile("docs/swagger.json")
			if err == nil && len(swaggerJSON) > 100 {
				c.Header("Content-Type", "application/json")
				c.String(http.StatusOK, string(swaggerJSON))
				return
			}

			doc, err := swag.ReadDoc("swagger")
			if err == nil {
				c.Header("Content-Type", "application/json")
				c.String(http.StatusOK, doc)
				return
			}

			c.JSON(http.StatusNotFound, gin.H{"error": "swagger document unavailable"})
			return
		}

		// Intercept Swagger UI HTML to inject custom CSS
		if c.Param("any") == "/index.html" || c.Param("any") == "/" {
			originalWriter := c.Writer
			captureWriter := &cssInjectorWriter{
				ResponseWriter: originalWriter,
				body:           &strings.Builder{},
			}
			c.Writer = captureWriter

			ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"))(c)

			c.Writer = originalWriter

			html := captureWriter.body.String()

			// Inject CSS link before </head> tag
			if strings.Contains(html, "</head>") {
				cssLink := `    <link rel="stylesheet" type="text/css" href="/swagger/custom.css">
`
				html = strings.Replace(html, "</head>", cssLink+"</head>", 1)
				for k, v := range captureWriter.Header() {
					if k != "Content-Length" {
						c.Header(k, strings.Join(v, ", "))
					}
				}
				c.Header("Content-Type", "text/html; charset=utf-8")
				c.Header("Content-Length", strconv.Itoa(len(html)))
				c.String(http.StatusOK, html)
				return
			}

			// If no head tag, serve original response
			c.String(http.StatusOK, html)
			return
		}

		// Serve Swagger UI for all other routes (static files, etc.)
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"))(c)
	})

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// Validate port is numeric
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduling cron runs and wait for any in-flight job
	cronCtx := c.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(10 * time.Second):
		log.Println("Warning: cron job still running at shutdown")
	}

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
