package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/pennywise/pennywise-api/internal/core"
	"github.com/pennywise/pennywise-api/internal/data"
	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users  core.UserRepository
	Auth   *AuthService
	Logger *slog.Logger
}

// UserService handles registration and user lookups. Registration signs the
// new account in directly, so it shares the session minting path with login.
type UserService struct {
	users  core.UserRepository
	auth   *AuthService
	logger *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:  opts.Users,
		auth:   opts.Auth,
		logger: logger,
	}
}

// SignUpInput groups parameters for registering a new account.
type SignUpInput struct {
	Username string
	Name     string
	Password string
	Gender   model.Gender

	// PriorSessionID is destroyed when the new account is signed in.
	PriorSessionID string
}

// SignUpResult contains the created user and its first session.
type SignUpResult struct {
	User    *model.User
	Session domainauth.Session
}

// SignUp registers a new account and signs it in. The plaintext password is
// hashed here and never stored.
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	req := &model.CreateUserRequest{
		Username: input.Username,
		Name:     input.Name,
		Password: input.Password,
		Gender:   input.Gender,
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	user, err := s.users.Create(ctx, req, string(hash), defaultProfilePicture(req.Gender, req.Username))
	if err != nil {
		if errors.Is(err, data.ErrUsernameExists) {
			return nil, apperrors.Conflict("username already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.auth.StartSession(ctx, user.ID, input.PriorSessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return &SignUpResult{User: user, Session: *session}, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFoundf("user %q not found", id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// defaultProfilePicture builds the placeholder avatar URL used when an
// account is created without a picture.
func defaultProfilePicture(gender model.Gender, username string) string {
	kind := "boy"
	if gender == model.GenderFemale {
		kind = "girl"
	}
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%s?username=%s", kind, username)
}
