package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"zoocore/internal/core"
)

func (h *Handler) enclosureRoutes(r chi.Router) {
	r.Get("/", h.listEnclosures)
	r.Post("/", h.createEnclosure)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.getEnclosure)
		r.Put("/", h.updateEnclosure)
		r.Delete("/", h.deleteEnclosure)
		r.Get("/constraints", h.enclosureConstraints)
		r.Get("/feeding-time", h.enclosureFeeding)
		r.Get("/sunrise", h.enclosureTransition(core.Sunrise))
		r.Get("/sunset", h.enclosureTransition(core.Sunset))
	})
}

func (h *Handler) listEnclosures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.EnclosureFilter{Search: q.Get("search"), ZooID: q.Get("zoo_id")}
	var err error
	if filter.Climate, err = parseOptional(q.Get("climate"), core.ParseClimate); err != nil {
		h.writeError(w, r, err)
		return
	}
	if filter.HabitatType, err = parseOptional(q.Get("habitat_type"), core.ParseHabitatType); err != nil {
		h.writeError(w, r, err)
		return
	}
	if filter.SecurityLevel, err = parseOptional(q.Get("security_level"), core.ParseSecurityLevel); err != nil {
		h.writeError(w, r, err)
		return
	}
	enclosures, err := h.svc.ListEnclosures(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, enclosures)
}

func (h *Handler) createEnclosure(w http.ResponseWriter, r *http.Request) {
	var req enclosureRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	var enclosure core.Enclosure
	if err := req.apply(&enclosure); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, res, err := h.svc.CreateEnclosure(r.Context(), enclosure)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMutationBody(created, res))
}

func (h *Handler) getEnclosure(w http.ResponseWriter, r *http.Request) {
	enclosure, err := h.svc.GetEnclosure(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, enclosure)
}

func (h *Handler) updateEnclosure(w http.ResponseWriter, r *http.Request) {
	var req enclosureRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, res, err := h.svc.UpdateEnclosure(r.Context(), chi.URLParam(r, "id"), req.apply)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMutationBody(updated, res))
}

func (h *Handler) deleteEnclosure(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.DeleteEnclosure(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) enclosureConstraints(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.EnclosureConstraints(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReportBody(report))
}

func (h *Handler) enclosureFeeding(w http.ResponseWriter, r *http.Request) {
	feeding, err := h.svc.EnclosureFeeding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feeding)
}

func (h *Handler) enclosureTransition(transition core.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cycle, err := h.svc.EnclosureDayCycle(r.Context(), chi.URLParam(r, "id"), transition)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cycle)
	}
}
