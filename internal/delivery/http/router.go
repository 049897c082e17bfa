package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/JakeWimberley/Weathredds/internal/delivery/http/middleware"
	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth       *AuthController
	Event      *EventController
	Thread     *ThreadController
	Tag        *TagController
	Pin        *PinController
	Search     *SearchController
	Discussion *DiscussionController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except auth and swagger requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.Create))
	mux.HandleFunc("GET /events", auth(c.Event.Timeline))
	mux.HandleFunc("GET /events/at", auth(c.Event.AtTime))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.Get))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.Update))
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(c.Event.Invite))

	// Threads
	mux.HandleFunc("POST /threads", auth(c.Thread.Create))
	mux.HandleFunc("GET /threads/recent", auth(c.Thread.Recent))
	mux.HandleFunc("GET /threads/period", auth(c.Thread.Period))
	mux.HandleFunc("GET /threads/{threadID}", auth(c.Thread.Get))
	mux.HandleFunc("PATCH /threads/{threadID}", auth(c.Thread.Update))
	mux.HandleFunc("POST /threads/{threadID}/discussions", auth(c.Thread.Extend))
	mux.HandleFunc("POST /threads/{threadID}/freeze", auth(c.Thread.Freeze))
	mux.HandleFunc("PUT /threads/{threadID}/events", auth(c.Thread.ReassignEvents))

	// Tags
	mux.HandleFunc("POST /events/{eventID}/tags/toggle", auth(c.Tag.Toggle))
	mux.HandleFunc("GET /tags", auth(c.Tag.Cloud))
	mux.HandleFunc("GET /tags/{tagName}/events", auth(c.Tag.Events))

	// Pins
	mux.HandleFunc("POST /events/{eventID}/pin", auth(c.Pin.Toggle))
	mux.HandleFunc("GET /pins", auth(c.Pin.List))

	// Discussions
	mux.HandleFunc("GET /discussions", auth(c.Discussion.List))

	// Search
	mux.HandleFunc("POST /search", auth(c.Search.Search))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
