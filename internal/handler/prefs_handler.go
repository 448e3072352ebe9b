package handler

import (
	"encoding/json"
	"net/http"

	"github.com/minhphat/retail-crm-go/internal/prefs"
	"github.com/minhphat/retail-crm-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Preference Handlers
// ============================================================

func getThemeHandler(store *prefs.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Current())
	}
}

// setThemeHandler sets or toggles the theme. An empty theme in the body means
// toggle.
func setThemeHandler(store *prefs.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/prefs/theme")
		defer span.End()

		var req struct {
			Theme string `json:"theme"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var p prefs.Preferences
		if req.Theme == "" {
			p = store.ToggleTheme(ctx)
		} else {
			p = store.SetTheme(ctx, req.Theme)
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// ============================================================
// Warranty Handlers
// ============================================================

func warrantyUpcomingHandler(svc *service.Warranty, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/warranty/upcoming")
		defer span.End()

		notices := svc.Upcoming()
		writeJSON(w, http.StatusOK, map[string]any{
			"notices": notices,
			"count":   len(notices),
		})
	}
}
