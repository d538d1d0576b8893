package application

import (
	"context"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

// UserService backs the admin-only /users endpoints.
type UserService struct {
	Repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

type UserInput struct {
	Name             string
	Email            string
	Password         string
	Role             entity.Role
	IsEmailConfirmed bool
}

type UserPatch struct {
	Name             *string
	Email            *string
	Password         *string
	Role             *entity.Role
	IsEmailConfirmed *bool
}

func (s *UserService) List(ctx context.Context, d *query.Descriptor) (Page[entity.User], error) {
	return listPage(ctx, d, s.Repo.List, s.Repo.Count)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*entity.User, error) {
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	if !in.Role.Valid() {
		return nil, apperror.Validation("Invalid role %q", in.Role)
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:             in.Name,
		Email:            normalizeEmail(in.Email),
		Role:             in.Role,
		Password:         hash,
		IsEmailConfirmed: in.IsEmailConfirmed,
	}
	u.Avatar = helpers.GravatarURL(u.Email)
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, p UserPatch) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = normalizeEmail(*p.Email)
		u.Avatar = helpers.GravatarURL(u.Email)
	}
	if p.Role != nil {
		if !p.Role.Valid() {
			return nil, apperror.Validation("Invalid role %q", *p.Role)
		}
		u.Role = *p.Role
	}
	if p.IsEmailConfirmed != nil {
		u.IsEmailConfirmed = *p.IsEmailConfirmed
	}
	if p.Password != nil {
		if u.Password, err = helpers.HashPassword(*p.Password); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
