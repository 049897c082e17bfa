package http

import (
	"net/http"
	"strings"
	"time"

	h "github.com/JakeWimberley/Weathredds/internal/delivery/http/helpers"
	"github.com/JakeWimberley/Weathredds/internal/delivery/http/middleware"
	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// CreateThreadRequest is the request body for POST /threads.
type CreateThreadRequest struct {
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	ValidDate    time.Time `json:"valid_date"`
	IsExtensible bool      `json:"is_extensible"`
	EventIDs     []string  `json:"event_ids"`
}

// Validate implements Validator.
func (c CreateThreadRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Text) == "" {
		errs = append(errs, "text is required")
	}
	if c.ValidDate.IsZero() {
		errs = append(errs, "valid_date is required")
	}
	return errs
}

// ExtendThreadRequest is the request body for POST /threads/{threadID}/discussions.
type ExtendThreadRequest struct {
	Text string `json:"text"`
}

// Validate implements Validator.
func (e ExtendThreadRequest) Validate() []string {
	if strings.TrimSpace(e.Text) == "" {
		return []string{"text is required"}
	}
	return nil
}

// UpdateThreadRequest is the request body for PATCH /threads/{threadID}.
type UpdateThreadRequest struct {
	Title     *string    `json:"title"`
	ValidDate *time.Time `json:"valid_date"`
}

// ReassignEventsRequest is the request body for PUT /threads/{threadID}/events.
// AllEventIDs is the candidate set shown to the user; SelectedEventIDs is the
// subset to keep attached.
type ReassignEventsRequest struct {
	AllEventIDs      []string `json:"all_event_ids"`
	SelectedEventIDs []string `json:"selected_event_ids"`
}

// Validate implements Validator.
func (r ReassignEventsRequest) Validate() []string {
	if len(r.AllEventIDs) == 0 {
		return []string{"all_event_ids is required"}
	}
	return nil
}

// FreezeResponse is the response body for POST /threads/{threadID}/freeze.
type FreezeResponse struct {
	Status string `json:"status"`
}

type ThreadController struct {
	Service domain.ThreadService
}

func NewThreadController(svc domain.ThreadService) *ThreadController {
	return &ThreadController{Service: svc}
}

// Create godoc
// @Summary Create a thread
// @Description Create a thread with its first discussion, authored by the caller, and attach it to the given events. Every target event must be public or owned by the caller.
// @Tags threads
// @Accept json
// @Produce json
// @Param body body CreateThreadRequest true "Thread data"
// @Success 201 {object} helpers.APIResponse "data contains the created thread"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /threads [post]
func (c *ThreadController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req CreateThreadRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	thread, err := c.Service.CreateThread(r.Context(), userID, req.Title, req.Text,
		req.ValidDate, req.IsExtensible, req.EventIDs)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, thread)
}

// Get godoc
// @Summary Get a thread page
// @Description The thread with its discussions newest first, associated events, the steward, and whether the caller may edit. Visible to the steward or anyone who can see an associated public event.
// @Tags threads
// @Produce json
// @Param threadID path string true "Thread ID"
// @Success 200 {object} helpers.APIResponse "data contains the thread page"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /threads/{threadID} [get]
func (c *ThreadController) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	page, err := c.Service.GetThreadPage(r.Context(), r.PathValue("threadID"), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, page)
}

// Extend godoc
// @Summary Extend a thread
// @Description Add a discussion. Requires the thread to be extensible and the caller to have view access.
// @Tags threads
// @Accept json
// @Produce json
// @Param threadID path string true "Thread ID"
// @Param body body ExtendThreadRequest true "Discussion text"
// @Success 201 {object} helpers.APIResponse "data contains the new discussion"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /threads/{threadID}/discussions [post]
func (c *ThreadController) Extend(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req ExtendThreadRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	d, err := c.Service.ExtendThread(r.Context(), r.PathValue("threadID"), userID, req.Text)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, d)
}

// Update godoc
// @Summary Update a thread
// @Description Change title or valid date. Steward only, and only while the thread is extensible.
// @Tags threads
// @Accept json
// @Produce json
// @Param threadID path string true "Thread ID"
// @Param body body UpdateThreadRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated thread"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /threads/{threadID} [patch]
func (c *ThreadController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req UpdateThreadRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	thread, err := c.Service.UpdateThread(r.Context(), r.PathValue("threadID"), userID, req.Title, req.ValidDate)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, thread)
}

// Freeze godoc
// @Summary Toggle a thread frozen
// @Description Flip the thread's extensibility. Any authenticated user may do this; a frozen thread accepts no new discussions or edits.
// @Tags threads
// @Produce json
// @Param threadID path string true "Thread ID"
// @Success 200 {object} helpers.APIResponse "data contains status frozen or unfrozen"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /threads/{threadID}/freeze [post]
func (c *ThreadController) Freeze(w http.ResponseWriter, r *http.Request) {
	frozen, err := c.Service.ToggleFrozen(r.Context(), r.PathValue("threadID"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	status := "unfrozen"
	if frozen {
		status = "frozen"
	}
	h.WriteJSONSuccess(w, http.StatusOK, FreezeResponse{Status: status})
}

// ReassignEvents godoc
// @Summary Reassign a thread's events
// @Description Steward only. Keeps the thread attached to the selected events and detaches it from the rest of the candidate set. The whole set is validated before anything changes.
// @Tags threads
// @Accept json
// @Produce json
// @Param threadID path string true "Thread ID"
// @Param body body ReassignEventsRequest true "Candidate and selected event IDs"
// @Success 204 "no content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /threads/{threadID}/events [put]
func (c *ThreadController) ReassignEvents(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req ReassignEventsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.ReassignEvents(r.Context(), r.PathValue("threadID"), userID,
		req.AllEventIDs, req.SelectedEventIDs); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Period godoc
// @Summary Threads for a period
// @Description Threads whose valid date falls in [from, to], filtered to those the caller may view. Timestamps are compact (YYYYMMDD_HHMM).
// @Tags threads
// @Produce json
// @Param from query string true "Start of period"
// @Param to query string true "End of period"
// @Success 200 {object} helpers.APIResponse "data contains the thread list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /threads/period [get]
func (c *ThreadController) Period(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	from, err := h.ParseCompactTime(r.URL.Query().Get("from"))
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	to, err := h.ParseCompactTime(r.URL.Query().Get("to"))
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	threads, err := c.Service.ThreadsForPeriod(r.Context(), from, to, userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, threads)
}

// Recent godoc
// @Summary Recently active threads
// @Description Threads the caller posted a discussion to within the last three days, most recent first.
// @Tags threads
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the thread list"
// @Router /threads/recent [get]
func (c *ThreadController) Recent(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	threads, err := c.Service.RecentThreads(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, threads)
}
