package httpx

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	// GraphQL is the mounted API handler; the session middleware runs in
	// front of it so resolvers always see a resolved auth state.
	GraphQL http.Handler
	Auth    SessionAuthenticator

	CookieName string

	// CORSAllowedOrigin is the frontend origin allowed to send credentials.
	CORSAllowedOrigin string

	// StaticDir, when set, serves the built frontend with an index.html
	// fallback for client-side routes.
	StaticDir string

	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP handler chain.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.Handle("POST /graphql", services.GraphQL)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.StaticDir != "" {
		mux.Handle("GET /", spaHandler(services.StaticDir))
	}

	var handler http.Handler = mux
	handler = Session(SessionConfig{
		Auth:       services.Auth,
		CookieName: services.CookieName,
		Logger:     logger,
	})(handler)
	if services.CORSAllowedOrigin != "" {
		handler = CORS(services.CORSAllowedOrigin)(handler)
	}
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler
}

// spaHandler serves static frontend files, falling back to index.html for
// paths handled by the client-side router.
func spaHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		if strings.Contains(filepath.Base(r.URL.Path), ".") {
			// Missing asset, not a client route.
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}
