package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"zoocore/internal/core"
)

func (h *Handler) zooRoutes(r chi.Router) {
	r.Get("/", h.listZoos)
	r.Post("/", h.createZoo)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.getZoo)
		r.Put("/", h.updateZoo)
		r.Delete("/", h.deleteZoo)
		r.Get("/constraints", h.zooConstraints)
		r.Get("/feeding-time", h.zooFeeding)
		r.Get("/sunrise", h.zooTransition(core.Sunrise))
		r.Get("/sunset", h.zooTransition(core.Sunset))
		r.Get("/day-cycle", h.zooDayCycle)
		r.Get("/reports", h.listReports)
		r.Post("/reports", h.archiveReport)
	})
}

func (h *Handler) listZoos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.ZooFilter{Search: q.Get("search")}
	if raw := strings.TrimSpace(q.Get("min_enclosures")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, r, badRequest("min_enclosures must be a non-negative integer"))
			return
		}
		filter.MinEnclosures = n
	}
	zoos, err := h.svc.ListZoos(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, zoos)
}

func (h *Handler) createZoo(w http.ResponseWriter, r *http.Request) {
	var req zooRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	var zoo core.Zoo
	_ = req.apply(&zoo)
	created, res, err := h.svc.CreateZoo(r.Context(), zoo)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMutationBody(created, res))
}

func (h *Handler) getZoo(w http.ResponseWriter, r *http.Request) {
	zoo, err := h.svc.GetZoo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, zoo)
}

func (h *Handler) updateZoo(w http.ResponseWriter, r *http.Request) {
	var req zooRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, res, err := h.svc.UpdateZoo(r.Context(), chi.URLParam(r, "id"), req.apply)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMutationBody(updated, res))
}

func (h *Handler) deleteZoo(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.DeleteZoo(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) zooConstraints(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.ZooConstraints(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReportBody(report))
}

func (h *Handler) zooFeeding(w http.ResponseWriter, r *http.Request) {
	feeding, err := h.svc.ZooFeeding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feeding)
}

func (h *Handler) zooTransition(transition core.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cycle, err := h.svc.ZooDayCycle(r.Context(), chi.URLParam(r, "id"), transition)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cycle)
	}
}
