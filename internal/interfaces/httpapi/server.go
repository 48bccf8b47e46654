package httpapi

import (
	"net/http"

	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

// RouterConfig carries the knobs the router needs beyond its handler.
type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	SwaggerEnabled bool
}

// NewRouter assembles the full middleware chain around the route table.
// Tracing sits outermost so every other middleware logs inside the
// request span.
func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "fantasy-cricket-http"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)

	var chain http.Handler = recoverPanic(logger)(mux)
	chain = CORS(cfg.AllowedOrigins)(chain)
	chain = RequestLogging(logger)(chain)
	chain = RequestTracing(cfg.ServiceName)(chain)

	return chain
}

func recoverPanic(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
					)
					writeInternalError(r.Context(), w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
