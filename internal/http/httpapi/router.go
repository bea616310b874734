package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"texttoimage/internal/http/handlers"
	"texttoimage/internal/middleware"
)

// NewRouter wires the HTTP surface: the two image operations, health probes
// and optional static assets.
func NewRouter(app *handlers.App, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Locale,
		middleware.CORS(app.Config.AllowedOrigins),
		middleware.Logger(app.Logger, countryLookup),
	)
	if app.Config.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))
	}

	r.Get("/", app.Root)
	r.Get("/health", app.Health)

	r.Route("/images", func(r chi.Router) {
		r.Post("/generate", app.ImagesGenerate)
		r.Post("/overlay", app.ImagesOverlay)
	})

	if dir := app.Config.StaticDir; dir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}
