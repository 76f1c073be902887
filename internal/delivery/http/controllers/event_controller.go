package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"stamprally/internal/delivery/http/helpers"
	"stamprally/internal/domain"
)

const dateLayout = "2006-01-02"

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// StoreInput is one store entry in an event creation request.
type StoreInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	InstagramURL string `json:"instagram_url"`
	TwitterURL   string `json:"twitter_url"`
	TikTokURL    string `json:"tiktok_url"`
}

// PrizeInput is one prize entry in an event creation request.
type PrizeInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ValidUntil  string `json:"valid_until"` // YYYY-MM-DD
}

// CreateEventRequest is the request body for POST /admin/events.
type CreateEventRequest struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	StartDate   string                `json:"start_date"` // YYYY-MM-DD
	EndDate     string                `json:"end_date"`   // YYYY-MM-DD
	Conditions  string                `json:"conditions"`
	Stores      map[string]StoreInput `json:"stores"` // keyed a-d
	Prizes      map[string]PrizeInput `json:"prizes"` // keyed line1-line3
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, err := time.Parse(dateLayout, r.StartDate); err != nil {
		errs = append(errs, "start_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, r.EndDate); err != nil {
		errs = append(errs, "end_date must be YYYY-MM-DD")
	}
	for _, code := range domain.StoreCodes {
		if _, ok := r.Stores[string(code)]; !ok {
			errs = append(errs, "stores."+string(code)+" is required")
		}
	}
	for _, key := range []string{"line1", "line2", "line3"} {
		if _, ok := r.Prizes[key]; !ok {
			errs = append(errs, "prizes."+key+" is required")
		}
	}
	return errs
}

func (r *CreateEventRequest) toInput() (domain.CreateEventInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return domain.CreateEventInput{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return domain.CreateEventInput{}, err
	}

	stores := make(map[domain.StoreCode]domain.StorePrizeInput, len(domain.StoreCodes))
	for _, code := range domain.StoreCodes {
		in := r.Stores[string(code)]
		stores[code] = domain.StorePrizeInput{
			Name:         in.Name,
			Description:  in.Description,
			InstagramURL: in.InstagramURL,
			TwitterURL:   in.TwitterURL,
			TikTokURL:    in.TikTokURL,
		}
	}

	prizes := make(map[int]domain.PrizeInput, domain.MaxPrizeLines)
	lineKeys := map[int]string{1: "line1", 2: "line2", 3: "line3"}
	for line := 1; line <= domain.MaxPrizeLines; line++ {
		in := r.Prizes[lineKeys[line]]
		prize := domain.PrizeInput{Name: in.Name, Description: in.Description}
		if in.ValidUntil != "" {
			until, err := time.Parse(dateLayout, in.ValidUntil)
			if err != nil {
				return domain.CreateEventInput{}, err
			}
			prize.ValidUntil = &until
		}
		prizes[line] = prize
	}

	return domain.CreateEventInput{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   start,
		// The event runs through the whole end date.
		EndDate:    end.Add(24*time.Hour - time.Second),
		Conditions: r.Conditions,
		Stores:     stores,
		Prizes:     prizes,
	}, nil
}

// CreateEventResponse is the success payload for POST /admin/events.
type CreateEventResponse struct {
	Event   *domain.Event    `json:"event"`
	QRCodes domain.QRCodeSet `json:"qr_codes"`
}

// CreateEvent godoc
// @Summary Create a stamp-rally event
// @Description Creates the event with its four stores and three line prizes, and returns the generated stamp QR codes. The event starts in draft status.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event definition"
// @Success 201 {object} helpers.APIResponse "data contains event and qr_codes"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	event, qrCodes, err := c.Service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{Event: event, QRCodes: qrCodes})
}

// ListEvents godoc
// @Summary List all events
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event with its stores and prizes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains event, stores, prizes"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	detail, err := c.Service.Get(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// UpdateStatusRequest is the request body for PATCH /admin/events/{eventID}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements helpers.Validator.
func (r *UpdateStatusRequest) Validate() []string {
	if _, err := domain.ParseEventStatus(r.Status); err != nil {
		return []string{"status must be one of: draft, active, ended"}
	}
	return nil
}

// UpdateStatus godoc
// @Summary Update an event's lifecycle status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body controllers.UpdateStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/status [patch]
func (c *EventController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.UpdateStatus(r.Context(), r.PathValue("eventID"), domain.EventStatus(req.Status)); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": req.Status})
}

// RegenerateQRCodes godoc
// @Summary Regenerate the stamp QR codes for an event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data maps store codes to PNG data URLs"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/qrcodes [post]
func (c *EventController) RegenerateQRCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := c.Service.RegenerateQRCodes(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, codes)
}

// Statistics godoc
// @Summary Get participation statistics for an event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains event statistics"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/statistics [get]
func (c *EventController) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Statistics(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// RedeemRequest is the request body for POST /admin/events/{eventID}/redemptions.
type RedeemRequest struct {
	VisitorID string `json:"visitor_id"`
	LineCount int    `json:"line_count"`
	StoreCode string `json:"store_code"`
}

// Validate implements helpers.Validator.
func (r *RedeemRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.VisitorID) == "" {
		errs = append(errs, "visitor_id is required")
	}
	if r.LineCount < 1 || r.LineCount > domain.MaxPrizeLines {
		errs = append(errs, "line_count must be 1-3")
	}
	if _, err := domain.ParseStoreCode(r.StoreCode); err != nil {
		errs = append(errs, "store_code must be one of: a, b, c, d")
	}
	return errs
}

// Redeem godoc
// @Summary Redeem a visitor's line achievement at a store
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body controllers.RedeemRequest true "Redemption"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already redeemed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/redemptions [post]
func (c *EventController) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	err := c.Service.RedeemAchievement(r.Context(), req.VisitorID, r.PathValue("eventID"), req.LineCount, domain.StoreCode(req.StoreCode))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRedeemed) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "achievement already redeemed")
			return
		}
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"redeemed": true})
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
