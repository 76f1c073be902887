package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"stamprally/internal/delivery/http/helpers"
	"stamprally/internal/delivery/http/middleware"
	"stamprally/internal/domain"
)

type StampController struct {
	Logger  *slog.Logger
	Service domain.StampService
}

func NewStampController(logger *slog.Logger, svc domain.StampService) *StampController {
	return &StampController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitStampRequest is the request body for POST /events/{eventID}/stamps.
type SubmitStampRequest struct {
	StoreCode string `json:"store_code"`
}

// Validate implements helpers.Validator.
func (r *SubmitStampRequest) Validate() []string {
	r.StoreCode = strings.TrimSpace(strings.ToLower(r.StoreCode))
	if r.StoreCode == "" {
		return []string{"store_code is required"}
	}
	return nil
}

// SubmitStamp godoc
// @Summary Submit a stamp for a store visit
// @Description Records one visit at the given store for the current visitor. Expected failures (rate limit, visit cap, inactive event) are returned with HTTP 200 and success=false inside the result; the scan UI presents them as normal outcomes.
// @Tags stamps
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body controllers.SubmitStampRequest true "Store code (a-d)"
// @Success 200 {object} domain.StampResult
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events/{eventID}/stamps [post]
func (c *StampController) SubmitStamp(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	var req SubmitStampRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	c.process(w, r, eventID, req.StoreCode)
}

// SubmitScanRequest is the request body for POST /stamps/scan: a raw QR
// payload, either scanned or typed by hand.
type SubmitScanRequest struct {
	Code string `json:"code"`
}

// Validate implements helpers.Validator.
func (r *SubmitScanRequest) Validate() []string {
	r.Code = strings.TrimSpace(r.Code)
	if r.Code == "" {
		return []string{"code is required"}
	}
	return nil
}

// SubmitScan godoc
// @Summary Submit a scanned QR payload
// @Description Parses a bingo://stamp/{eventId}/{storeCode} payload and records the visit. The same endpoint serves the manual-entry fallback.
// @Tags stamps
// @Accept json
// @Produce json
// @Param body body controllers.SubmitScanRequest true "Raw QR payload"
// @Success 200 {object} domain.StampResult
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /stamps/scan [post]
func (c *StampController) SubmitScan(w http.ResponseWriter, r *http.Request) {
	var req SubmitScanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	eventID, store, err := domain.ParseStampURI(req.Code)
	if err != nil {
		// Malformed payloads are an expected outcome for the scan UI.
		helpers.WriteJSONSuccess(w, http.StatusOK, &domain.StampResult{
			Success: false,
			Message: "Invalid QR code",
			Error:   &domain.StampError{Code: domain.StampErrInvalidInput, Message: "Invalid QR code"},
		})
		return
	}

	c.process(w, r, eventID, string(store))
}

func (c *StampController) process(w http.ResponseWriter, r *http.Request, eventID, storeCode string) {
	visitorID, ok := middleware.VisitorIDFromContext(r.Context())
	if !ok {
		// The identity middleware should always have run; treat absence
		// as a broken precondition, not a stamp failure.
		c.Logger.ErrorContext(r.Context(), "visitor id missing from context", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "visitor identity unavailable")
		return
	}

	result := c.Service.SubmitStamp(r.Context(), eventID, visitorID, storeCode)
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
