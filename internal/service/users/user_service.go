package users

import (
	"context"
	"strings"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/repository"
)

type UserUseCase interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error)
}

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error) {
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)
	update.Phone = strings.TrimSpace(update.Phone)
	return s.repo.UpdateProfile(ctx, id, update)
}

var _ UserUseCase = (*UserService)(nil)
