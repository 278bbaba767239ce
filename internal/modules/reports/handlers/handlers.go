// Package handlers provides HTTP handlers for emailed and downloadable reports.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/modules/reports"
	"github.com/aristath/pension/internal/modules/retirement"
	"github.com/aristath/pension/internal/utils"
)

// maxBodyBytes caps report request bodies.
const maxBodyBytes = 1 << 20

// ReportService is the part of reports.Service the handlers need.
type ReportService interface {
	EmailReport(ctx context.Context, to string, analysis retirement.AnalysisResult) (reports.Receipt, error)
	PDFReport(w io.Writer, analysis retirement.AnalysisResult) error
}

// Handler handles report HTTP requests
type Handler struct {
	service  ReportService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler creates a new reports handler
func NewHandler(service ReportService, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: utils.NewValidator(),
		log:      log.With().Str("handler", "reports").Logger(),
	}
}

// EmailReportRequest is the body of POST /api/v1/financial/email-report
type EmailReportRequest struct {
	Email    string                     `json:"email" validate:"required,email"`
	Analysis *retirement.AnalysisResult `json:"analysis" validate:"required"`
}

// PDFReportRequest is the body of POST /api/v1/financial/generate-pdf
type PDFReportRequest struct {
	Analysis *retirement.AnalysisResult `json:"analysis" validate:"required"`
}

// EmailReportResponse is the success body of the email endpoint.
type EmailReportResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ReportID string `json:"report_id"`
	Note     string `json:"note,omitempty"`
}

// HandleEmailReport handles POST /api/v1/financial/email-report
func (h *Handler) HandleEmailReport(w http.ResponseWriter, r *http.Request) {
	var req EmailReportRequest
	if !h.decode(w, r, &req) {
		return
	}

	receipt, err := h.service.EmailReport(r.Context(), req.Email, *req.Analysis)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to email report")
		h.writeError(w, http.StatusInternalServerError, "Error sending email", nil)
		return
	}

	resp := EmailReportResponse{
		Success:  true,
		Message:  fmt.Sprintf("Report sent to %s", receipt.Recipient),
		ReportID: receipt.ReportID,
	}
	if receipt.Simulated {
		resp.Note = "In development mode - email sending is simulated"
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleGeneratePDF handles POST /api/v1/financial/generate-pdf
func (h *Handler) HandleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req PDFReportRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Render fully before writing so failures can still return JSON.
	var buf bytes.Buffer
	if err := h.service.PDFReport(&buf, *req.Analysis); err != nil {
		h.log.Error().Err(err).Msg("Failed to generate PDF report")
		h.writeError(w, http.StatusInternalServerError, "Error generating PDF", nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+reports.PDFFilename)
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn().Err(err).Msg("Failed to write PDF response")
	}
}

// decode reads and validates a JSON body, writing a 400 response on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.log.Debug().Err(err).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid report request", utils.ValidationMessages(err))
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	body := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	h.writeJSON(w, status, body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
