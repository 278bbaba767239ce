package reports

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"

	"github.com/aristath/pension/internal/modules/retirement"
)

// PDFFilename is the attachment name used for downloaded and emailed reports.
const PDFFilename = "financial-analysis-report.pdf"

// Page geometry in millimetres. Top and bottom margins are half an inch.
const (
	pdfMarginX      = 19.05
	pdfMarginY      = 12.7
	pdfColumnWidth  = 76.2
	pdfLineHeight   = 6.0
	pdfSectionSpace = 5.0
)

// Brand colours.
var (
	colorBrand   = [3]int{0x66, 0x7e, 0xea}
	colorHeading = [3]int{0x2d, 0x37, 0x48}
	colorText    = [3]int{0x33, 0x33, 0x33}
	colorRowFill = [3]int{0xf5, 0xf5, 0xdc}
)

// PDFRenderer lays out analysis reports on US Letter pages.
// The core Helvetica font only covers cp1252, so other runes such as the
// recommendation icons are dropped.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render writes the PDF report for analysis to w.
func (r *PDFRenderer) Render(w io.Writer, analysis retirement.AnalysisResult) error {
	v := newView(analysis)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMarginX, pdfMarginY, pdfMarginX)
	pdf.SetAutoPageBreak(true, pdfMarginY)
	pdf.SetTitle("Financial Analysis Report", true)
	pdf.SetCreator("Athlete Pension API", true)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(latinOnly(s)) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMarginY)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(0x71, 0x80, 0x96)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(colorBrand[0], colorBrand[1], colorBrand[2])
	pdf.CellFormat(0, 12, "Financial Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
	pdf.CellFormat(0, pdfLineHeight, "Comprehensive Retirement Planning Analysis", "", 1, "C", false, 0, "")
	pdf.Ln(pdfSectionSpace * 2)

	// Status
	labelled := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(pdf.GetStringWidth(label+" ")+1, pdfLineHeight, text(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, pdfLineHeight, text(value), "", 1, "L", false, 0, "")
	}
	status := v.StatusText
	if v.OnTrack {
		status += "!"
	}
	labelled("Status:", status)
	labelled("Feasibility Score:", v.FeasibilityScore+"/100")
	labelled("Urgency Level:", v.Urgency)

	heading := func(title string) {
		pdf.Ln(pdfSectionSpace)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(colorHeading[0], colorHeading[1], colorHeading[2])
		pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
	}

	// Metrics table
	heading("Key Financial Metrics")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(colorBrand[0], colorBrand[1], colorBrand[2])
	pdf.SetTextColor(0xf5, 0xf5, 0xf5)
	pdf.CellFormat(pdfColumnWidth, 9, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColumnWidth, 9, "Value", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetFillColor(colorRowFill[0], colorRowFill[1], colorRowFill[2])
	pdf.SetTextColor(colorText[0], colorText[1], colorText[2])
	rows := [][2]string{
		{"Required Corpus", v.RequiredCorpus},
		{"Projected Wealth at Retirement", v.ProjectedWealth},
		{v.GapLabel, v.GapAmount},
		{"Monthly Savings Needed", v.MonthlySavings},
		{"Savings Rate Required", v.SavingsRate + " of income"},
	}
	for _, row := range rows {
		pdf.CellFormat(pdfColumnWidth, 8, text(row[0]), "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfColumnWidth, 8, text(row[1]), "1", 1, "L", true, 0, "")
	}

	// Timeline
	heading("Your Timeline")
	labelled("Current Age:", fmt.Sprintf("%d years", v.CurrentAge))
	labelled("Retirement Age:", fmt.Sprintf("%d years", v.RetirementAge))
	labelled("Years to Save:", fmt.Sprintf("%d years", v.YearsToRetirement))

	// Recommendations
	heading("Personalized Recommendations")
	pdf.SetFont("Helvetica", "", 11)
	for i, rec := range v.Recommendations {
		pdf.MultiCell(0, pdfLineHeight, text(fmt.Sprintf("%d. %s", i+1, rec)), "", "L", false)
		pdf.Ln(2)
	}

	// Assumptions
	heading("Calculation Assumptions")
	labelled("Withdrawal Rate:", v.WithdrawalRate+" (4% rule)")
	labelled("Pre-Retirement Growth:", v.GrowthPre+" CAGR")
	labelled("Post-Retirement Growth:", v.GrowthPost)
	labelled("Inflation Rate:", v.InflationRate)
	labelled("Tax Rate on Gains:", v.TaxRate)

	pdf.Ln(pdfSectionSpace * 2)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, text("Disclaimer: "+v.Disclaimer), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// latinOnly drops runes outside Latin-1 and general punctuation, then trims.
func latinOnly(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r <= unicode.MaxLatin1:
			return r
		case r >= 0x2010 && r <= 0x2027, r == '€':
			return r
		default:
			return -1
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
