package http

import (
	"net/http"

	h "github.com/JakeWimberley/Weathredds/internal/delivery/http/helpers"
	"github.com/JakeWimberley/Weathredds/internal/delivery/http/middleware"
	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// SearchRequest is the request body for POST /search. Months are calendar
// month numbers; 99 matches every month. An empty month list matches nothing,
// as does empty text for the thread side.
type SearchRequest struct {
	Tags   []string `json:"tags"`
	Months []int    `json:"months"`
	Text   string   `json:"text"`
}

// Validate implements Validator.
func (s SearchRequest) Validate() []string {
	var errs []string
	for _, m := range s.Months {
		if (m < 1 || m > 12) && m != domain.MonthAll {
			errs = append(errs, "months must be 1-12 or 99")
			break
		}
	}
	return errs
}

type SearchController struct {
	Service domain.SearchService
}

func NewSearchController(svc domain.SearchService) *SearchController {
	return &SearchController{Service: svc}
}

// Search godoc
// @Summary Search events and threads
// @Description Events match by tag intersection and start/end month; threads match by valid-date month and a case-insensitive substring of the title or discussion text.
// @Tags search
// @Accept json
// @Produce json
// @Param body body SearchRequest true "Search terms"
// @Success 200 {object} helpers.APIResponse "data contains matching events and threads"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /search [post]
func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req SearchRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	query := domain.SearchQuery{Tags: req.Tags, Months: req.Months, Text: req.Text}
	result, err := c.Service.Search(r.Context(), query, userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, result)
}
