package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/parlor-dev/parlor/internal/errors"
)

type CategoryValidator struct{}

func (v *CategoryValidator) Topic(topic string) error {
	return validateTopic(topic, 60)
}

func (v *CategoryValidator) SortOrder(sortOrder int) error {
	if sortOrder < 0 {
		return errors.Validation("Sort order must not be negative")
	}
	return nil
}

type BoardValidator struct{}

func (v *BoardValidator) Topic(topic string) error {
	return validateTopic(topic, 60)
}

func (v *BoardValidator) Description(description string) error {
	if utf8.RuneCountInString(description) > 500 {
		return errors.Validation("Description is too long")
	}
	return nil
}

type ThreadValidator struct{}

func (v *ThreadValidator) Topic(topic string) error {
	return validateTopic(topic, 120)
}

type PostValidator struct{}

func (v *PostValidator) Content(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.Validation("Content must not be empty")
	}
	if utf8.RuneCountInString(content) > 10_000 {
		return errors.Validation("Content is too long")
	}
	return nil
}

type UserValidator struct{}

func (v *UserValidator) Username(username string) error {
	if strings.TrimSpace(username) == "" {
		return errors.Validation("Username must not be empty")
	}
	if utf8.RuneCountInString(username) > 30 {
		return errors.Validation("Username is too long")
	}
	return nil
}

func (v *UserValidator) Email(email string) error {
	if !strings.Contains(email, "@") {
		return errors.Validation("Email is malformed")
	}
	return nil
}

func validateTopic(topic string, maxLen int) error {
	if strings.TrimSpace(topic) == "" {
		return errors.Validation("Topic must not be empty")
	}
	if utf8.RuneCountInString(topic) > maxLen {
		return errors.Validation("Topic is too long")
	}
	return nil
}
