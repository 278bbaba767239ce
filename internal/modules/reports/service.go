package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/clients/smtp"
	"github.com/aristath/pension/internal/modules/retirement"
	"github.com/aristath/pension/internal/utils"
)

// Mailer delivers one email. *smtp.Client implements it.
type Mailer interface {
	Send(ctx context.Context, msg smtp.Message) (smtp.Delivery, error)
}

// Receipt confirms an emailed report.
type Receipt struct {
	ReportID  string `json:"report_id"`
	Recipient string `json:"recipient"`
	Simulated bool   `json:"simulated"`
}

// Service produces report documents and emails them.
type Service struct {
	mailer    Mailer
	email     *EmailRenderer
	pdf       *PDFRenderer
	domain    string
	generated *prometheus.CounterVec
	log       zerolog.Logger
}

// NewService creates a report service. senderDomain is used for message ids.
// reg may be nil.
func NewService(mailer Mailer, senderDomain string, reg prometheus.Registerer, log zerolog.Logger) (*Service, error) {
	email, err := NewEmailRenderer()
	if err != nil {
		return nil, err
	}
	if senderDomain == "" {
		senderDomain = "localhost"
	}

	return &Service{
		mailer: mailer,
		email:  email,
		pdf:    NewPDFRenderer(),
		domain: senderDomain,
		generated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pension_reports_generated_total",
			Help: "Reports rendered, by format.",
		}, []string{"format"}),
		log: log.With().Str("component", "reports_service").Logger(),
	}, nil
}

// EmailReport renders analysis as an email with the PDF attached and sends it to to.
func (s *Service) EmailReport(ctx context.Context, to string, analysis retirement.AnalysisResult) (Receipt, error) {
	timer := utils.NewTimer("email_report", s.log)
	defer timer.Stop()

	reportID := uuid.NewString()

	html, err := s.email.Render(analysis)
	if err != nil {
		return Receipt{}, err
	}
	text, err := s.email.RenderText(analysis)
	if err != nil {
		return Receipt{}, err
	}

	var pdf bytes.Buffer
	if err := s.pdf.Render(&pdf, analysis); err != nil {
		return Receipt{}, err
	}
	s.generated.WithLabelValues("email").Inc()

	delivery, err := s.mailer.Send(ctx, smtp.Message{
		ID:          fmt.Sprintf("%s@%s", reportID, s.domain),
		To:          to,
		Subject:     EmailSubject,
		HTML:        html,
		Text:        text,
		Attachments: []smtp.Attachment{{Name: PDFFilename, Data: pdf.Bytes()}},
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to send report %s: %w", reportID, err)
	}

	s.log.Info().
		Str("report_id", reportID).
		Bool("simulated", delivery.Simulated).
		Msg("Report emailed")

	return Receipt{ReportID: reportID, Recipient: to, Simulated: delivery.Simulated}, nil
}

// PDFReport writes the PDF report for analysis to w.
func (s *Service) PDFReport(w io.Writer, analysis retirement.AnalysisResult) error {
	timer := utils.NewTimer("pdf_report", s.log)
	defer timer.Stop()

	if err := s.pdf.Render(w, analysis); err != nil {
		return err
	}
	s.generated.WithLabelValues("pdf").Inc()
	return nil
}

// HTMLReport writes the HTML email body for analysis to w.
func (s *Service) HTMLReport(w io.Writer, analysis retirement.AnalysisResult) error {
	html, err := s.email.Render(analysis)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, html); err != nil {
		return fmt.Errorf("failed to write html report: %w", err)
	}
	s.generated.WithLabelValues("html").Inc()
	return nil
}
