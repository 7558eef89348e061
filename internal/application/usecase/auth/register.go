package auth

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/adapters/event"
	"github.com/devconnect-io/devconnect/internal/domain/user"
	"github.com/devconnect-io/devconnect/pkg/apperror"
	"github.com/devconnect-io/devconnect/pkg/auth"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

type RegisterUseCase struct {
	userRepo  user.Repository
	jwtSvc    *auth.JWTService
	publisher event.Publisher
	logger    logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, publisher event.Publisher, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  repo,
		jwtSvc:    jwtSvc,
		publisher: publisher,
		logger:    log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	Token string
}

func validateRegisterInput(input RegisterInput) []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, apperror.FieldError{Msg: "Name is required", Field: "name"})
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, apperror.FieldError{Msg: "Please include a valid email", Field: "email"})
	}
	if len(input.Password) < 6 {
		errs = append(errs, apperror.FieldError{Msg: "Please enter a password with 6 or more characters", Field: "password"})
	}
	return errs
}

// GravatarURL derives the avatar reference from the md5 digest of the
// normalized email address.
func GravatarURL(email string) string {
	digest := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", digest)
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if errs := validateRegisterInput(input); len(errs) > 0 {
		return nil, apperror.NewValidation(errs...)
	}

	_, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperror.NewValidation(apperror.FieldError{Msg: "User already exists"})
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Avatar:       GravatarURL(input.Email),
		PasswordHash: hash,
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(newUser.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", newUser.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	go func() {
		err := uc.publisher.PublishUserEvent(context.Background(), event.UserEventPayload{
			EventType:  event.UserEventTypeRegistered,
			UserID:     newUser.ID,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Warn("Failed to publish user registered event", zap.String("user_id", newUser.ID.String()), zap.Error(err))
		}
	}()

	return &RegisterOutput{Token: token}, nil
}
