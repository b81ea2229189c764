package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
	"github.com/secmon-lab/studymate/pkg/utils/safe"
)

// DefaultMaxUploadBytes limits the size of uploaded documents.
const DefaultMaxUploadBytes int64 = 20 << 20

type Server struct {
	router             *chi.Mux
	uc                 *usecase.UseCases
	maxUploadBytes     int64
	allowedOrigins     []string
	slackSigningSecret string
}

type Options func(*Server)

func WithMaxUploadBytes(n int64) Options {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithAllowedOrigins restricts CORS. All origins are allowed by default.
func WithAllowedOrigins(origins []string) Options {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithSlackWebhook enables /hooks/slack/event. Requests are verified with
// the signing secret.
func WithSlackWebhook(signingSecret string) Options {
	return func(s *Server) {
		s.slackSigningSecret = signingSecret
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		uc:             uc,
		maxUploadBytes: DefaultMaxUploadBytes,
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler)

	r.Post("/chat", chatHandler(uc.Router))
	r.Get("/memories", memoriesHandler(uc.Memory))
	r.Post("/calendar", calendarHandler(uc.Calendar))

	r.Group(func(r chi.Router) {
		r.Use(limitBody(s.maxUploadBytes))
		r.Post("/chat-pdf", uploadHandler(uc.Summary, uploadPDF))
		r.Post("/chat-ocr", uploadHandler(uc.Summary, uploadImage))
		r.Post("/chat-pptx", uploadHandler(uc.Summary, uploadPPTX))
	})

	// Slack webhook endpoint - No auth required, uses signature verification
	if s.slackSigningSecret != "" && uc.Slack.Enabled() {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))
			r.Post("/event", NewSlackWebhookHandler(uc.Slack).ServeHTTP)
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// writeJSON encodes resp with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, resp any) {
	data, err := json.Marshal(resp)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// decodeJSON reads a JSON request body into v. Unknown fields are allowed.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}
