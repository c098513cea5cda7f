package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/krmu/lostfound-api/internal/config"
	"github.com/krmu/lostfound-api/internal/model"
	"github.com/krmu/lostfound-api/internal/repository"
	"github.com/krmu/lostfound-api/shared/auth"
	"github.com/krmu/lostfound-api/shared/security"
)

// AuthUsecase defines the registration and login use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

// RegisterParams defines the parameters for account registration.
type RegisterParams struct {
	Username string
	Password string
	Role     model.Role
}

// LoginParams defines the parameters for login.
type LoginParams struct {
	Username string
	Password string
}

// LoginResult carries the signed token and the authenticated user.
type LoginResult struct {
	Token string
	User  *model.User
}

var (
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	cfg      *config.Config
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		cfg:      cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	_, err := u.userRepo.GetUserByUsername(ctx, params.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Username:     params.Username,
		PasswordHash: passwordHash,
		Role:         params.Role,
	})
	if err != nil {
		// The unique index closes the check-then-create window.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtAuth.GenerateToken(user.ID.Hex(), user.Role, u.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  user,
	}, nil
}
