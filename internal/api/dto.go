package api

import "github.com/parlor-dev/parlor/internal/domain"

// Request DTOs

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateCategoryRequest struct {
	Topic     string `json:"topic" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

type UpdateCategoryRequest struct {
	Topic     string `json:"topic" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

type CreateBoardRequest struct {
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description"`
	CategoryId  string `json:"category_id" validate:"required"`
}

// UpdateBoardRequest moves the board when category_id differs from its
// current category snapshot.
type UpdateBoardRequest struct {
	Topic       string  `json:"topic" validate:"required"`
	Description string  `json:"description"`
	CategoryId  *string `json:"category_id,omitempty"`
}

type CreateThreadRequest struct {
	Topic   string `json:"topic" validate:"required"`
	BoardId string `json:"board_id" validate:"required"`
}

type UpdateThreadRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type CreatePostRequest struct {
	Content  string `json:"content" validate:"required"`
	ThreadId string `json:"thread_id" validate:"required"`
}

type UpdatePostRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"` // for non-cookie clients
}

type UserResponse struct {
	domain.User
}

type CategoryResponse struct {
	domain.BoardCategory
}

type CategoryListResponse struct {
	Categories []domain.BoardCategory `json:"categories"`
}

type BoardResponse struct {
	domain.Board
}

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}

type ThreadResponse struct {
	domain.Thread
	Posts []domain.Post `json:"posts"`
}

type ThreadListResponse struct {
	Threads []domain.Thread `json:"threads"`
}

type PostResponse struct {
	domain.Post
}
