package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"vendor-comparison/models"
)

// comparisonReportTemplate is the built-in HTML layout for report emails.
// Variables use the {{name}} convention and are filled by processTemplate.
const comparisonReportTemplate = `<h2>Vendor Comparison Report</h2>
<p>RFQ: {{rfq_no}} | Plant: {{plant_code}} | Priority: {{priority}}</p>
<h3>Recommended Vendor: {{winner_name}} (Score: {{winner_score}}/10)</h3>
<p>Price: ₹{{winner_price}} | Payment: {{winner_payment}} | Delivery: {{winner_delivery}} days</p>
<h3>Full Ranking</h3>
<table>
<tr><th>Rank</th><th>Vendor</th><th>Score</th><th>Price</th><th>Payment Days</th><th>Delivery Days</th><th>Categories</th></tr>
{{ranking_rows}}
</table>
<h3>Primary Recommendation</h3>
<p>{{primary_recommendation}}</p>
<h3>Project Impact</h3>
<p>{{project_impact}}</p>
<p>Analyzed {{total_vendors}} vendors on {{analysis_date}}.</p>
`

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	// Parse the HTML
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// If parsing fails, return the original content
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			// Add line breaks for block elements
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "table":
				text.WriteString("\n")
			case "tr":
				text.WriteString("\n")
			case "td", "th":
				text.WriteString(" | ")
			}
		}

		// Recursively process child nodes
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}

	extractText(doc)

	result := text.String()

	// Clean up the text
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n") // Remove excessive line breaks
	result = strings.TrimSpace(result)                    // Remove leading/trailing whitespace

	return result
}

// EmailService sends comparison reports over SMTP.
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewEmailService creates a new email service instance from environment
// configuration. Sending fails until SMTP_HOST, SMTP_USER and SMTP_PASSWORD
// are all set.
func NewEmailService() *EmailService {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

// Enabled reports whether SMTP credentials are configured.
func (es *EmailService) Enabled() bool {
	return es.host != "" && es.username != "" && es.password != ""
}

// SendComparisonReport emails the analysis result to the given recipients.
func (es *EmailService) SendComparisonReport(result *models.ComparisonResponse, recipients, cc []string) error {
	if !es.Enabled() {
		return fmt.Errorf("SMTP not configured: set SMTP_HOST, SMTP_USER and SMTP_PASSWORD")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients provided")
	}
	if len(result.Ranking) == 0 {
		return fmt.Errorf("no ranking to report")
	}

	subject := fmt.Sprintf("Vendor Comparison Report - RFQ %s (%s priority)", result.RFQNo, result.Priority)
	if result.RFQNo == "" {
		subject = fmt.Sprintf("Vendor Comparison Report (%s priority)", result.Priority)
	}

	body := es.processTemplate(comparisonReportTemplate, buildReportVariables(result))

	// Convert HTML body to plain text for email sending
	plainTextBody := convertHTMLToText(body)

	return es.sendEmail(recipients, cc, subject, plainTextBody)
}

// pricePrinter renders amounts with digit grouping, e.g. 152,000.50.
var pricePrinter = message.NewPrinter(language.English)

func formatAmount(v float64) string {
	return pricePrinter.Sprintf("%.2f", v)
}

func buildReportVariables(result *models.ComparisonResponse) map[string]string {
	winner := result.Ranking[0]

	var rows strings.Builder
	for _, r := range result.Ranking {
		fmt.Fprintf(&rows, "<tr><td>%d</td><td>%s</td><td>%.2f</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>\n",
			r.Rank, r.VendorName, r.Score, formatAmount(r.Price), r.PaymentTermsDays, r.DeliveryDays, strings.Join(r.CategoryWinners, ", "))
	}

	return map[string]string{
		"rfq_no":                 result.RFQNo,
		"plant_code":             fmt.Sprintf("%d", result.PlantCode),
		"priority":               result.Priority,
		"winner_name":            winner.VendorName,
		"winner_score":           fmt.Sprintf("%.2f", winner.Score),
		"winner_price":           formatAmount(winner.Price),
		"winner_payment":         paymentPhrase(winner.PaymentTermsDays),
		"winner_delivery":        fmt.Sprintf("%d", winner.DeliveryDays),
		"ranking_rows":           rows.String(),
		"primary_recommendation": result.AIInsights.PrimaryRecommendation,
		"project_impact":         result.AIInsights.ProjectImpact,
		"total_vendors":          fmt.Sprintf("%d", result.Metadata.TotalVendors),
		"analysis_date":          result.Metadata.AnalysisDate,
	}
}

// processTemplate processes a template string with variable substitution
func (es *EmailService) processTemplate(templateStr string, variables map[string]string) string {
	// Replace variables in the template
	result := templateStr
	for key, value := range variables {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// sendEmail sends an email using SMTP with optional CC
func (es *EmailService) sendEmail(to, cc []string, subject, body string) error {
	auth := smtp.PlainAuth(
		"",
		es.username,
		es.password,
		es.host,
	)

	toList := make([]string, 0, len(to)+len(cc))
	toList = append(toList, to...)

	// Add CC recipients if provided
	if len(cc) > 0 {
		toList = append(toList, cc...)
	}

	// Build email headers
	headers := []string{
		"From: " + es.from,
		"To: " + strings.Join(to, ", "),
	}

	// Add CC header if CC recipients exist
	if len(cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(cc, ", "))
	}

	headers = append(headers,
		"Subject: "+subject,
		"",
		body,
	)

	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	err := smtp.SendMail(
		es.host+":"+es.port,
		auth,
		es.from,
		toList,
		msg,
	)

	return err
}
