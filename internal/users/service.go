package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/auth"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/config"
	pkgerrors "github.com/Taqieddin-qattousa/storefront-backend/pkg/errors"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/security"
	"gorm.io/gorm"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	Password  string
}

// Service defines the user-facing operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*RegisteredUserDTO, error)
	Get(ctx context.Context, id int64) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	Delete(ctx context.Context, id int64) (*UserDTO, error)
}

// ServiceParams collects the dependencies required to build the service.
type ServiceParams struct {
	Repo     Repository
	Password config.PasswordConfig
	JWT      config.JWTConfig
	Now      func() time.Time
}

type service struct {
	repo     Repository
	password config.PasswordConfig
	jwt      config.JWTConfig
	now      func() time.Time
}

// NewService builds a users service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt config required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		password: params.Password,
		jwt:      params.JWT,
		now:      now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*RegisteredUserDTO, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name required")
	}
	if lastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name required")
	}
	if input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password required")
	}

	hash, err := security.HashCredential(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash credential")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		FirstName:      firstName,
		LastName:       lastName,
		CredentialHash: hash,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &RegisteredUserDTO{
		User:  *FromModel(user),
		Token: token,
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*UserDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user "+strconv.FormatInt(id, 10)+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(list), nil
}

func (s *service) Delete(ctx context.Context, id int64) (*UserDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user "+strconv.FormatInt(id, 10)+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return FromModel(user), nil
}
