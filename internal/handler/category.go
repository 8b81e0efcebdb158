package handler

import (
	"net/http"

	"github.com/parlor-dev/parlor/internal/api"
	"github.com/parlor-dev/parlor/internal/domain"
	"github.com/parlor-dev/parlor/internal/utils"
)

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	category, err := h.category.Create(r.Context(), domain.CategoryCreationData{Topic: body.Topic, SortOrder: body.SortOrder})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.CategoryResponse{BoardCategory: *category})
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "category")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	category, err := h.category.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CategoryResponse{BoardCategory: *category})
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.category.GetAll(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CategoryListResponse{Categories: categories})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "category")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateCategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.category.Update(r.Context(), id, domain.CategoryUpdateData{Topic: body.Topic, SortOrder: body.SortOrder}); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "category")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.category.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
