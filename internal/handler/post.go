package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parlor-dev/parlor/internal/api"
	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	"github.com/parlor-dev/parlor/internal/middleware"
	"github.com/parlor-dev/parlor/internal/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUserFromContext(r)
	if principal == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	threadId, err := primitive.ObjectIDFromHex(body.ThreadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.Validation("Invalid thread id"))
		return
	}

	post, err := h.post.Create(r.Context(), domain.PostCreationData{
		Content:  body.Content,
		AuthorId: principal.AuthorId,
		ThreadId: threadId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.PostResponse{Post: *post})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.PostResponse{Post: *post})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.UpdateContent(r.Context(), id, body.Content); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
