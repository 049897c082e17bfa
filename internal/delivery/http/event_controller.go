package http

import (
	"net/http"
	"strings"
	"time"

	h "github.com/JakeWimberley/Weathredds/internal/delivery/http/helpers"
	"github.com/JakeWimberley/Weathredds/internal/delivery/http/middleware"
	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsPublic    bool       `json:"is_public"`
	IsPermanent bool       `json:"is_permanent"`
	ThreadIDs   []string   `json:"thread_ids"`
	Pin         bool       `json:"pin"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if !c.IsPermanent && (c.StartDate == nil || c.EndDate == nil) {
		errs = append(errs, "a non-permanent event needs start_date and end_date")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// Absent fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsPublic    *bool      `json:"is_public"`
	IsPermanent *bool      `json:"is_permanent"`
}

// InviteRequest is the request body for POST /events/{eventID}/invitations.
type InviteRequest struct {
	Emails []string `json:"emails"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	if len(i.Emails) == 0 {
		return []string{"emails is required"}
	}
	return nil
}

// InviteResponse reports how many invitations went out.
type InviteResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

type EventController struct {
	Service domain.EventService
}

func NewEventController(svc domain.EventService) *EventController {
	return &EventController{Service: svc}
}

// Create godoc
// @Summary Create an event
// @Description Create an event, optionally attaching existing threads and pinning it for the creator. Permanent events carry no dates.
// @Tags events
// @Accept json
// @Produce json
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		Title:       strings.TrimSpace(req.Title),
		OwnerID:     userID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsPublic:    req.IsPublic,
		IsPermanent: req.IsPermanent,
	}
	created, err := c.Service.CreateEvent(r.Context(), event, req.ThreadIDs, req.Pin)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, created)
}

// Get godoc
// @Summary Get an event page
// @Description The event with its tags, the caller's pin status, and each thread's discussions newest first. Private events are visible to their owner only.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event page"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	page, err := c.Service.GetEventPage(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, page)
}

// Update godoc
// @Summary Update an event
// @Description Owner only. Absent fields are left unchanged; date invariants are checked against the merged result.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.UpdateEvent(r.Context(), r.PathValue("eventID"), userID,
		req.Title, req.StartDate, req.EndDate, req.IsPublic, req.IsPermanent)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Timeline godoc
// @Summary List the timeline
// @Description Every event the caller owns plus every public event, ordered by start date.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Router /events [get]
func (c *EventController) Timeline(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	events, err := c.Service.ListTimeline(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// AtTime godoc
// @Summary Events spanning a time point
// @Description Visible events whose date range covers the given compact timestamp (YYYYMMDD_HHMM). With threadId, each result carries whether that thread is already attached.
// @Tags events
// @Produce json
// @Param when query string true "Compact timestamp, e.g. 20260115_0630"
// @Param threadId query string false "Thread ID to test association against"
// @Success 200 {object} helpers.APIResponse "data contains the matches"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/at [get]
func (c *EventController) AtTime(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	at, err := h.ParseCompactTime(r.URL.Query().Get("when"))
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	results, err := c.Service.EventsAtTime(r.Context(), at, r.URL.Query().Get("threadId"), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, results)
}

// Invite godoc
// @Summary Send event invitations
// @Description Owner only. Records an invitation row and emails each address; failures are reported per address.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body InviteRequest true "Addresses to invite"
// @Success 200 {object} helpers.APIResponse "data contains sent count and failed addresses"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitations [post]
func (c *EventController) Invite(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req InviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	sent, failed, err := c.Service.SendInvitations(r.Context(), r.PathValue("eventID"), userID, req.Emails)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, InviteResponse{Sent: sent, Failed: failed})
}
