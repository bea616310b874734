package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"texttoimage/internal/domain"
	"texttoimage/internal/infra"
	"texttoimage/internal/middleware"
	"texttoimage/internal/overlay"
	"texttoimage/internal/providers/image"
)

// App carries the handler dependencies. Everything is injected so tests can
// swap the generator and compositor for stubs.
type App struct {
	Config     *infra.Config
	Logger     infra.Logger
	Generator  image.Generator
	Compositor *overlay.Compositor
}

func NewApp(cfg *infra.Config, logger infra.Logger, generator image.Generator, compositor *overlay.Compositor) *App {
	return &App{Config: cfg, Logger: logger, Generator: generator, Compositor: compositor}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, errorBody{Code: code, Message: messageFor(code, locale), Detail: detail})
}

// fail maps a domain error onto the HTTP status and error code contract.
// Provider failures surface the upstream status verbatim.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var perr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		a.error(w, r, http.StatusBadRequest, "invalid_parameter", err.Error())
	case errors.Is(err, domain.ErrImageDecode):
		a.error(w, r, http.StatusBadRequest, "image_decode_failed", err.Error())
	case errors.Is(err, domain.ErrImageFetch):
		a.error(w, r, http.StatusBadGateway, "image_fetch_failed", err.Error())
	case errors.Is(err, domain.ErrFontUnavailable):
		a.error(w, r, http.StatusInternalServerError, "font_unavailable", err.Error())
	case errors.As(err, &perr):
		status := perr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		a.error(w, r, status, "provider_error", perr.Message)
	default:
		a.error(w, r, http.StatusInternalServerError, "internal", err.Error())
	}
}
