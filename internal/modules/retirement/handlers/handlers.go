// Package handlers provides the HTTP handler for retirement analyses.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/modules/assumptions"
	"github.com/aristath/pension/internal/modules/retirement"
	"github.com/aristath/pension/internal/utils"
)

// Analyzer runs one analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, req retirement.Request) (retirement.AnalysisResult, error)
}

// Handler handles retirement analysis HTTP requests
type Handler struct {
	analyzer Analyzer
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler creates a new retirement analysis handler
func NewHandler(analyzer Analyzer, log zerolog.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		validate: utils.NewValidator(),
		log:      log.With().Str("handler", "retirement").Logger(),
	}
}

// AnalyzeRequest is the body of POST /api/v1/financial/analyze.
// Rate fields left out fall back to the selected assumption profile.
type AnalyzeRequest struct {
	Age                   int     `json:"age" validate:"gte=18,lte=100"`
	RetirementAge         int     `json:"retirement_age" validate:"gte=18,lte=100"`
	CurrentWealth         float64 `json:"current_wealth" validate:"gte=0"`
	CurrentIncome         float64 `json:"current_income" validate:"gt=0"`
	MonthlyPayoutRequired float64 `json:"monthly_payout_required" validate:"gt=0"`

	WithdrawalRate           *float64 `json:"withdrawal_rate,omitempty" validate:"omitempty,gt=0,lte=1"`
	GrowthRatePreRetirement  *float64 `json:"growth_rate_pre_retirement,omitempty" validate:"omitempty,gte=-1,lte=1"`
	GrowthRatePostRetirement *float64 `json:"growth_rate_post_retirement,omitempty" validate:"omitempty,gte=-1,lte=1"`
	InflationRate            *float64 `json:"inflation_rate,omitempty" validate:"omitempty,gte=-1,lte=1"`
	TaxRate                  *float64 `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`

	// Profile names an assumption profile; empty selects the default.
	Profile string `json:"profile,omitempty" validate:"omitempty,max=64"`
	// Language overrides the Accept-Language header for recommendation text.
	Language string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// toRequest converts the HTTP body into a service request.
func (req AnalyzeRequest) toRequest(acceptLanguage string) retirement.Request {
	lang := req.Language
	if lang == "" {
		lang = acceptLanguage
	}
	return retirement.Request{
		Profile: retirement.Profile{
			CurrentAge:            req.Age,
			RetirementAge:         req.RetirementAge,
			CurrentWealth:         req.CurrentWealth,
			CurrentIncome:         req.CurrentIncome,
			MonthlyPayoutRequired: req.MonthlyPayoutRequired,
		},
		AssumptionProfile: req.Profile,
		Overrides: retirement.Overrides{
			WithdrawalRate:           req.WithdrawalRate,
			GrowthRatePreRetirement:  req.GrowthRatePreRetirement,
			GrowthRatePostRetirement: req.GrowthRatePostRetirement,
			InflationRate:            req.InflationRate,
			TaxRate:                  req.TaxRate,
		},
		Language: lang,
	}
}

// AnalyzeResponse is the success body of the analyze endpoint.
type AnalyzeResponse struct {
	Success  bool                      `json:"success"`
	Analysis retirement.AnalysisResult `json:"analysis"`
	Message  string                    `json:"message"`
}

// HandleAnalyze handles POST /api/v1/financial/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug().Err(err).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid analysis request", utils.ValidationMessages(err))
		return
	}

	if req.RetirementAge <= req.Age {
		h.writeError(w, http.StatusBadRequest, "Retirement age must be greater than current age", nil)
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), req.toRequest(r.Header.Get("Accept-Language")))
	if err != nil {
		status, message := classifyError(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("Financial analysis failed")
		}
		h.writeError(w, status, message, nil)
		return
	}

	h.writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success:  true,
		Analysis: analysis,
		Message:  "Financial analysis completed successfully",
	})
}

// classifyError maps analysis errors to a status code and a client-safe message.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, assumptions.ErrProfileNotFound):
		return http.StatusBadRequest, "Unknown assumption profile"
	case errors.Is(err, retirement.ErrInvalidWithdrawalRate):
		return http.StatusBadRequest, "Withdrawal rate must be positive"
	case errors.Is(err, retirement.ErrInvalidHorizon):
		return http.StatusBadRequest, "Retirement age must be greater than current age"
	default:
		return http.StatusInternalServerError, "Error performing financial analysis"
	}
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
