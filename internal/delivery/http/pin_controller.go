package http

import (
	"net/http"

	h "github.com/JakeWimberley/Weathredds/internal/delivery/http/helpers"
	"github.com/JakeWimberley/Weathredds/internal/delivery/http/middleware"
	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// PinResponse is the response body for POST /events/{eventID}/pin.
type PinResponse struct {
	Status string `json:"status"`
}

type PinController struct {
	Service domain.PinService
}

func NewPinController(svc domain.PinService) *PinController {
	return &PinController{Service: svc}
}

// Toggle godoc
// @Summary Toggle a pin
// @Description Pin the event to the caller's board, or unpin it if already pinned.
// @Tags pins
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains status pinned or unpinned"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/pin [post]
func (c *PinController) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	pinned, err := c.Service.TogglePin(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	status := "unpinned"
	if pinned {
		status = "pinned"
	}
	h.WriteJSONSuccess(w, http.StatusOK, PinResponse{Status: status})
}

// List godoc
// @Summary List pinned events
// @Description The caller's pinned events, most recently pinned first.
// @Tags pins
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Router /pins [get]
func (c *PinController) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	events, err := c.Service.ListPinned(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}
