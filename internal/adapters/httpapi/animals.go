package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"zoocore/internal/core"
)

func (h *Handler) animalRoutes(r chi.Router) {
	r.Get("/", h.listAnimals)
	r.Post("/", h.createAnimal)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.getAnimal)
		r.Put("/", h.updateAnimal)
		r.Delete("/", h.deleteAnimal)
		r.Put("/enclosure", h.assignAnimal)
		r.Get("/constraints", h.animalConstraints)
		r.Get("/check-constraints", h.checkAnimalConstraints)
		r.Get("/feeding-time", h.animalFeeding)
		r.Get("/sunrise", h.animalTransition(core.Sunrise))
		r.Get("/sunset", h.animalTransition(core.Sunset))
	})
}

func (h *Handler) listAnimals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.AnimalFilter{
		Search:      q.Get("search"),
		CategoryID:  q.Get("category_id"),
		EnclosureID: q.Get("enclosure_id"),
	}
	var err error
	if filter.Size, err = parseOptional(q.Get("size"), core.ParseAnimalSize); err != nil {
		h.writeError(w, r, err)
		return
	}
	if filter.DietaryClass, err = parseOptional(q.Get("dietary_class"), core.ParseDietaryClass); err != nil {
		h.writeError(w, r, err)
		return
	}
	if filter.ActivityPattern, err = parseOptional(q.Get("activity_pattern"), core.ParseActivityPattern); err != nil {
		h.writeError(w, r, err)
		return
	}
	if filter.SecurityRequirement, err = parseOptional(q.Get("security_requirement"), core.ParseSecurityLevel); err != nil {
		h.writeError(w, r, err)
		return
	}
	animals, err := h.svc.ListAnimals(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, animals)
}

func (h *Handler) createAnimal(w http.ResponseWriter, r *http.Request) {
	var req animalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	var animal core.Animal
	if err := req.apply(&animal); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, res, err := h.svc.CreateAnimal(r.Context(), animal)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMutationBody(created, res))
}

func (h *Handler) getAnimal(w http.ResponseWriter, r *http.Request) {
	animal, err := h.svc.GetAnimal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, animal)
}

func (h *Handler) updateAnimal(w http.ResponseWriter, r *http.Request) {
	var req animalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, res, err := h.svc.UpdateAnimal(r.Context(), chi.URLParam(r, "id"), req.apply)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMutationBody(updated, res))
}

func (h *Handler) assignAnimal(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, res, err := h.svc.AssignAnimalEnclosure(r.Context(), chi.URLParam(r, "id"), req.EnclosureID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMutationBody(updated, res))
}

func (h *Handler) deleteAnimal(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.DeleteAnimal(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) animalConstraints(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.AnimalConstraints(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReportBody(report))
}

func (h *Handler) checkAnimalConstraints(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CheckAnimalConstraints(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) animalFeeding(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.AnimalFeeding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedingBody{FeedingResult: result, Message: result.Message()})
}

func (h *Handler) animalTransition(transition core.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.svc.AnimalActivity(r.Context(), chi.URLParam(r, "id"), transition)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, activityBody{ActivityResult: result, Message: result.Message()})
	}
}
