package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parlor-dev/parlor/internal/api"
	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	"github.com/parlor-dev/parlor/internal/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	categoryId, err := primitive.ObjectIDFromHex(body.CategoryId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.Validation("Invalid category id"))
		return
	}

	board, err := h.board.Create(r.Context(), domain.BoardCreationData{
		Topic:       body.Topic,
		Description: body.Description,
		CategoryId:  categoryId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.BoardResponse{Board: *board})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.BoardResponse{Board: *board})
}

func (h *Handler) GetBoardsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "category")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boards, err := h.board.GetByCategory(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.BoardListResponse{Boards: boards})
}

// UpdateBoard renames or re-describes the board; a different category_id in
// the body moves it to that category.
func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	data := domain.BoardUpdateData{Topic: body.Topic, Description: body.Description}
	if body.CategoryId != nil {
		categoryId, err := primitive.ObjectIDFromHex(*body.CategoryId)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, internal_errors.Validation("Invalid category id"))
			return
		}
		data.CategoryId = &categoryId
	}

	if err := h.board.Update(r.Context(), id, data); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := objectIdVar(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
