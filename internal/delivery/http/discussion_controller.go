package http

import (
	"net/http"

	h "github.com/JakeWimberley/Weathredds/internal/delivery/http/helpers"
	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type DiscussionController struct {
	Service domain.DiscussionService
}

func NewDiscussionController(svc domain.DiscussionService) *DiscussionController {
	return &DiscussionController{Service: svc}
}

// List godoc
// @Summary All discussions grouped by valid date
// @Description Every discussion on the site, grouped by valid date ascending; within a date, newest created first.
// @Tags discussions
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the groups"
// @Router /discussions [get]
func (c *DiscussionController) List(w http.ResponseWriter, r *http.Request) {
	groups, err := c.Service.ListByValidDate(r.Context())
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, groups)
}
