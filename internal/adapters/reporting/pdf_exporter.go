package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// PDFExporter renders exposure reports and individual alerts to PDF.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportExposureReport generates a PDF from an exposure report.
func (e *PDFExporter) ExportExposureReport(report *domain.ExposureReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addTitle(pdf, "Network Exposure Report")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	e.addScoreBox(pdf, report.AverageRisk, "Average Risk")

	// Severity distribution
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, "Alert Distribution", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for _, sev := range []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d", sev.Title(), report.BySeverity[sev]), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Anomalous observations: %d", report.AnomalyCount), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	e.addTopRisks(pdf, report.TopRisks)
	e.addRecommendations(pdf, report.Recommendations)

	return e.output(pdf)
}

// ExportAlert generates a PDF for a single alert, including the ranked
// anomaly insights.
func (e *PDFExporter) ExportAlert(alert domain.AlertRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addTitle(pdf, alert.Title)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Alert %s - generated %s", alert.ID, alert.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	e.addScoreBox(pdf, alert.Analysis.RiskScore, "Risk Score")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.MultiCell(0, 6, alert.Description, "", "L", false)
	if alert.RelatedIP != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Related IP: %s", alert.RelatedIP), "", 1, "L", false, 0, "")
	}
	if alert.RecommendedAction != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Recommended action: %s", alert.RecommendedAction), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Insight table
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, "Anomaly Insights", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(55, 7, "Feature", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Contribution", "1", 0, "R", true, 0, "")
	pdf.CellFormat(105, 7, "Description", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, ins := range alert.Analysis.Insights {
		pdf.CellFormat(55, 7, ins.Feature, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.3f", ins.Contribution), "1", 0, "R", false, 0, "")
		pdf.CellFormat(105, 7, ins.Description, "1", 1, "L", false, 0, "")
	}

	return e.output(pdf)
}

func (e *PDFExporter) addTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 14, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) addScoreBox(pdf *gofpdf.Fpdf, score float64, label string) {
	r, g, b := e.riskColor(score)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(60, 14, fmt.Sprintf("%s: %.2f / 10", label, score), "", 1, "C", true, 0, "")
	pdf.Ln(6)
}

func (e *PDFExporter) addTopRisks(pdf *gofpdf.Fpdf, risks []domain.AlertSummary) {
	if len(risks) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, "Top Risks", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(70, 7, "Alert", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Severity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Risk", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Related IP", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, risk := range risks {
		pdf.CellFormat(70, 7, risk.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, string(risk.Severity), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", risk.RiskScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, risk.RelatedIP, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, recs []string) {
	if len(recs) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, "Recommendations", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for i, rec := range recs {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, rec), "", "L", false)
	}
}

func (e *PDFExporter) riskColor(score float64) (int, int, int) {
	switch {
	case score >= 7:
		return 192, 57, 43 // red
	case score >= 5:
		return 230, 126, 34 // orange
	case score >= 3:
		return 241, 196, 15 // yellow
	default:
		return 39, 174, 96 // green
	}
}

func (e *PDFExporter) output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
