package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Calendar   *CalendarHandler
	Middleware []func(http.Handler) http.Handler
}

// NewRouter exposes the single route of the service: GET /{username}.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Calendar != nil {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			username := strings.Trim(r.URL.Path, "/")
			if username == "" || strings.Contains(username, "/") {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithUsername(r.Context(), username)
			cfg.Calendar.Get(w, r.WithContext(ctx))
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
