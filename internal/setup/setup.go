package setup

import (
	"context"

	"github.com/parlor-dev/parlor/internal/config"
	"github.com/parlor-dev/parlor/internal/handler"
	"github.com/parlor-dev/parlor/internal/jwt"
	"github.com/parlor-dev/parlor/internal/service"
	"github.com/parlor-dev/parlor/internal/storage/mongo"
	"github.com/parlor-dev/parlor/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *mongo.Storage
	Handler *handler.Handler
	Jwt     jwt.JwtService
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := mongo.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	user := service.NewUser(storage, jwtService, &utils.UserValidator{})
	category := service.NewCategory(storage, &utils.CategoryValidator{})
	board := service.NewBoard(storage, &utils.BoardValidator{})
	thread := service.NewThread(storage, &utils.ThreadValidator{}, cfg.Public.ThreadsPerPage)
	post := service.NewPost(storage, &utils.PostValidator{})

	h := handler.New(user, category, board, thread, post, storage, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Jwt:     jwtService,
		Config:  cfg,
	}, nil
}
