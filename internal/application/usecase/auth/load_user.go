package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/devconnect-io/devconnect/internal/domain/user"
	"github.com/devconnect-io/devconnect/pkg/apperror"
)

// LoadUserUseCase resolves the identity behind an already verified token.
type LoadUserUseCase struct {
	userRepo user.Repository
}

func NewLoadUserUseCase(repo user.Repository) *LoadUserUseCase {
	return &LoadUserUseCase{userRepo: repo}
}

type LoadUserInput struct {
	UserID uuid.UUID
}

type LoadUserOutput struct {
	User *user.User
}

func (uc *LoadUserUseCase) Execute(ctx context.Context, input LoadUserInput) (*LoadUserOutput, error) {
	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// token is valid but the identity behind it is gone
			return nil, apperror.NewUnauthorized("Token is not valid")
		}
		return nil, err
	}
	return &LoadUserOutput{User: u}, nil
}
