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

const defaultPage = 1

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUserFromContext(r)
	if principal == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boardId, err := primitive.ObjectIDFromHex(body.BoardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.Validation("Invalid board id"))
		return
	}

	thread, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Topic:    body.Topic,
		AuthorId: principal.AuthorId,
		BoardId:  boardId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.ThreadResponse{Thread: *thread, Posts: []domain.Post{}})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, posts, err := h.thread.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ThreadResponse{Thread: *thread, Posts: posts})
}

func (h *Handler) GetThreadsByBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := objectIdVar(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page := defaultPage
	if pageQuery := r.URL.Query().Get("page"); pageQuery != "" {
		if page, err = parseIntParam(pageQuery, "page"); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	threads, err := h.thread.GetByBoard(r.Context(), boardId, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ThreadListResponse{Threads: threads})
}

func (h *Handler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.thread.UpdateTopic(r.Context(), id, body.Topic); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.thread.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
