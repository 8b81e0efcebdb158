package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
)

func (s *Storage) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	user.JoinedAt = time.Now().UTC()
	if user.Threads == nil {
		user.Threads = []domain.ThreadId{}
	}
	if user.Posts == nil {
		user.Posts = []domain.PostId{}
	}

	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, internal_errors.Conflict("Username or email already taken")
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	user.Id = res.InsertedID.(domain.UserId)
	return &user, nil
}

func (s *Storage) User(ctx context.Context, id domain.UserId) (*domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

func (s *Storage) UserByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal_errors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to fetch user by username: %w", err)
	}
	return &user, nil
}

// DeleteUser removes the user document only while both ownership lists are
// empty; the service layer rejects earlier, this filter closes the race.
func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": id, "threads": bson.M{"$size": 0}, "posts": bson.M{"$size": 0}})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		if _, err := s.User(ctx, id); err != nil {
			return err
		}
		return internal_errors.Conflict("User still owns threads or posts")
	}
	return nil
}
