package http

import (
	"net/http"
	"strings"

	h "github.com/JakeWimberley/Weathredds/internal/delivery/http/helpers"
	"github.com/JakeWimberley/Weathredds/internal/delivery/http/middleware"
	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// ToggleTagRequest is the request body for POST /events/{eventID}/tags/toggle.
type ToggleTagRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (t ToggleTagRequest) Validate() []string {
	if strings.TrimSpace(t.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

type TagController struct {
	Service domain.TagService
}

func NewTagController(svc domain.TagService) *TagController {
	return &TagController{Service: svc}
}

// Toggle godoc
// @Summary Toggle a tag on an event
// @Description Owner only. Sanitizes the name, creates the tag on first use, and adds it to the event or removes it if already present. Returns the event's resulting tags.
// @Tags tags
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body ToggleTagRequest true "Tag name"
// @Success 200 {object} helpers.APIResponse "data contains the event's tags"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/tags/toggle [post]
func (c *TagController) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req ToggleTagRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	tags, err := c.Service.ToggleTag(r.Context(), r.PathValue("eventID"), userID, req.Name)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, tags)
}

// Cloud godoc
// @Summary Tag cloud
// @Description Every tag with its event count and a display size from 0 to 5 scaled by the most popular tag.
// @Tags tags
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the tag cloud entries"
// @Router /tags [get]
func (c *TagController) Cloud(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Service.TagCloud(r.Context())
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, entries)
}

// Events godoc
// @Summary Events for a tag
// @Description The tag's events the caller may see (owned or public), with a flag when private events were withheld.
// @Tags tags
// @Produce json
// @Param tagName path string true "Tag name"
// @Success 200 {object} helpers.APIResponse "data contains events and a some_private flag"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tags/{tagName}/events [get]
func (c *TagController) Events(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	res, err := c.Service.EventsForTag(r.Context(), r.PathValue("tagName"), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, res)
}
