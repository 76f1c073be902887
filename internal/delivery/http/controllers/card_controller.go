package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"stamprally/internal/delivery/http/helpers"
	"stamprally/internal/delivery/http/middleware"
	"stamprally/internal/domain"
)

type CardController struct {
	Logger  *slog.Logger
	Service domain.CardService
}

func NewCardController(logger *slog.Logger, svc domain.CardService) *CardController {
	return &CardController{
		Logger:  logger,
		Service: svc,
	}
}

// GetActiveEvent godoc
// @Summary Get the currently running event
// @Description Returns the most recently created active event, used by the scan page to resolve the event.
// @Tags card
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/active [get]
func (c *CardController) GetActiveEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetActiveEvent(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no active event")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetCard godoc
// @Summary Get the visitor's bingo card for an event
// @Description Returns event, store, and prize details together with the visitor's progress, evaluated cell states, and recorded line achievements.
// @Tags card
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the bingo card"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/card [get]
func (c *CardController) GetCard(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	visitorID, ok := middleware.VisitorIDFromContext(r.Context())
	if !ok {
		c.Logger.ErrorContext(r.Context(), "visitor id missing from context", "path", r.URL.Path)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "visitor identity unavailable")
		return
	}

	card, err := c.Service.GetCard(r.Context(), eventID, visitorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, card)
}
