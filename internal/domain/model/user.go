//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxUsernameLen = 64
	maxNameLen     = 255
	minPasswordLen = 6
)

// Gender is a display attribute used to pick a default profile picture.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether the gender value is supported.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	default:
		return false
	}
}

// User is the persisted credential record: unique login handle, salted hash
// of the secret, and profile attributes. The hash never leaves the data and
// verification layers.
type User struct {
	ID             string    `json:"id"              db:"id"`
	Username       string    `json:"username"        db:"username"`
	Name           string    `json:"name"            db:"name"`
	PasswordHash   string    `json:"-"               db:"password_hash"`
	Gender         Gender    `json:"gender"          db:"gender"`
	ProfilePicture string    `json:"profile_picture" db:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// CreateUserRequest carries inputs for registering a new user. Password is the
// plaintext secret; hashing happens in the service layer.
type CreateUserRequest struct {
	Username string
	Name     string
	Password string
	Gender   Gender
}

// Validate checks the create request fields.
func (r *CreateUserRequest) Validate() error {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		return errors.New("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return errors.New("username exceeds maximum length")
	}
	if strings.ContainsAny(username, " \t\n") {
		return errors.New("username must not contain whitespace")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxNameLen {
		return errors.New("name exceeds maximum length")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	if !r.Gender.Valid() {
		return errors.New("gender must be male or female")
	}
	return nil
}
