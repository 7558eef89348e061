package auth

import (
	"context"
	"errors"
	"net/mail"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/internal/domain/user"
	"github.com/devconnect-io/devconnect/pkg/apperror"
	"github.com/devconnect-io/devconnect/pkg/auth"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

var tracer = otel.Tracer("auth_usecase")

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	var errs []apperror.FieldError
	if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, apperror.FieldError{Msg: "Please include a valid email", Field: "email"})
	}
	if input.Password == "" {
		errs = append(errs, apperror.FieldError{Msg: "Please include a valid password", Field: "password"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidation(errs...)
	}

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperror.NewValidation(apperror.FieldError{Msg: "Invalid credentials"})
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, apperror.NewValidation(apperror.FieldError{Msg: "Invalid credentials"})
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{Token: token}, nil
}
