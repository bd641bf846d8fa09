package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

type options struct {
	requestTimeout time.Duration
	trustProxy     bool
}

type Option func(*options)

// WithRequestTimeout bounds every request's context. Zero keeps the default.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithTrustedProxy takes the client address from X-Forwarded-For / X-Real-IP.
// Only enable it behind a proxy that overwrites those headers.
func WithTrustedProxy(trust bool) Option {
	return func(o *options) { o.trustProxy = trust }
}

func New(opts ...Option) *Server {
	o := options{requestTimeout: 15 * time.Second}
	for _, fn := range opts {
		fn(&o)
	}

	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	if o.trustProxy {
		m.Use(chimw.RealIP)
	}
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(chimw.StripSlashes)
	m.Use(Timeout(o.requestTimeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	// unmatched routes answer in the same problem+json shape as handlers
	m.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	m.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" not supported on "+r.URL.Path)
	})

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
