package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pennywise/internal/month"
	"github.com/MrJamesThe3rd/pennywise/internal/render"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/viewstate"
)

// Handler serves the rendered view models, so web clients draw exactly what
// the terminal client does.
type Handler struct {
	svc *transaction.Service
	now func() time.Time
}

func NewHandler(svc *transaction.Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{view}", h.view)
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	v, ok := viewstate.ParseView(chi.URLParam(r, "view"))
	if !ok {
		http.Error(w, "unknown view", http.StatusNotFound)
		return
	}

	machine := viewstate.New(h.svc, viewstate.WithClock(h.now))
	if err := machine.NavigateTo(r.Context(), v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s := r.URL.Query().Get("month"); s != "" {
		key, err := month.Parse(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := machine.Dispatch(r.Context(), viewstate.SetMonth{Month: key}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, render.Build(machine.State(), h.svc.All(), h.now()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
