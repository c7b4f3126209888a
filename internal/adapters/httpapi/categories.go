package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"zoocore/internal/core"
)

func (h *Handler) categoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Post("/", h.createCategory)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.getCategory)
		r.Put("/", h.updateCategory)
		r.Delete("/", h.deleteCategory)
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context(), core.CategoryFilter{Search: r.URL.Query().Get("search")})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	var category core.Category
	_ = req.apply(&category)
	created, res, err := h.svc.CreateCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMutationBody(created, res))
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.svc.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, res, err := h.svc.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.apply)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMutationBody(updated, res))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
