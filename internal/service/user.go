package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	"github.com/parlor-dev/parlor/internal/logger"
	"github.com/parlor-dev/parlor/internal/utils"
)

// to mock service in tests
type UserService interface {
	Register(ctx context.Context, data domain.UserCreationData) (*domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error)
	Get(ctx context.Context, id domain.UserId) (*domain.User, error)
	Delete(ctx context.Context, id domain.UserId) error
}

type User struct {
	storage   UserStorage
	jwt       Jwt
	validator UserValidator
}

type UserStorage interface {
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)
	User(ctx context.Context, id domain.UserId) (*domain.User, error)
	UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	UserByUsername(ctx context.Context, username domain.Username) (*domain.User, error)
	DeleteUser(ctx context.Context, id domain.UserId) error
}

type Jwt interface {
	NewToken(user *domain.User) (string, error)
}

type UserValidator interface {
	Username(username string) error
	Email(email string) error
}

func NewUser(storage UserStorage, jwt Jwt, validator UserValidator) UserService {
	return &User{storage, jwt, validator}
}

// Register creates a user with empty ownership lists. Username and email are
// unique case-insensitively, so both are stored lowercased.
func (u *User) Register(ctx context.Context, data domain.UserCreationData) (*domain.User, error) {
	username := strings.ToLower(utils.SanitizeTopic(data.Username))
	email := strings.ToLower(data.Email)

	if err := u.validator.Username(username); err != nil {
		return nil, err
	}
	if err := u.validator.Email(email); err != nil {
		return nil, err
	}

	if _, err := u.storage.UserByUsername(ctx, username); err == nil {
		return nil, internal_errors.Conflict("Username already taken")
	} else if !internal_errors.IsNotFound(err) {
		return nil, err
	}
	if _, err := u.storage.UserByEmail(ctx, email); err == nil {
		return nil, internal_errors.Conflict("Email already taken")
	} else if !internal_errors.IsNotFound(err) {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return nil, err
	}

	return u.storage.SaveUser(ctx, domain.User{
		Username: username,
		Email:    email,
		PassHash: string(passHash),
	})
}

func (u *User) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	email := strings.ToLower(creds.Email)

	user, err := u.storage.UserByEmail(ctx, email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", nil, &internal_errors.ErrorWithStatusCode{Message: "Wrong email or password", StatusCode: 401}
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", nil, &internal_errors.ErrorWithStatusCode{Message: "Wrong email or password", StatusCode: 401}
	}

	token, err := u.jwt.NewToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (u *User) Get(ctx context.Context, id domain.UserId) (*domain.User, error) {
	return u.storage.User(ctx, id)
}

// Delete rejects while the user still owns threads or posts; the content must
// be deleted (or its threads cascaded) first.
func (u *User) Delete(ctx context.Context, id domain.UserId) error {
	return u.storage.DeleteUser(ctx, id)
}
