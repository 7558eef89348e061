package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/adapters/event"
	"github.com/devconnect-io/devconnect/internal/domain/profile"
	"github.com/devconnect-io/devconnect/internal/domain/user"
	"github.com/devconnect-io/devconnect/pkg/apperror"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	publisher   event.Publisher
	logger      logger.Logger
}

func NewProfileUseCase(pRepo profile.Repository, uRepo user.Repository, publisher event.Publisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: pRepo,
		userRepo:    uRepo,
		publisher:   publisher,
		logger:      log,
	}
}

// ProfileWithUser pairs the aggregate with its owner's public identity
// fields for read responses.
type ProfileWithUser struct {
	Profile *profile.Profile
	User    *user.User
}

type GetOwnProfileInput struct {
	OwnerID uuid.UUID
}

func (uc *ProfileUseCase) ExecuteGetOwnProfile(ctx context.Context, input GetOwnProfileInput) (*ProfileWithUser, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, apperror.NewBadRequest("There is no profile for this user")
		}
		return nil, err
	}
	return uc.withUser(ctx, p), nil
}

type GetProfileByUserInput struct {
	UserID uuid.UUID
}

func (uc *ProfileUseCase) ExecuteGetProfileByUser(ctx context.Context, input GetProfileByUserInput) (*ProfileWithUser, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, apperror.NewBadRequest("Profile not found")
		}
		return nil, err
	}
	return uc.withUser(ctx, p), nil
}

func (uc *ProfileUseCase) ExecuteListProfiles(ctx context.Context) ([]*ProfileWithUser, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*ProfileWithUser, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, uc.withUser(ctx, p))
	}
	return out, nil
}

type UpsertProfileInput struct {
	OwnerID        uuid.UUID
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Social         profile.Social
}

// ExecuteUpsert creates the profile on first submission and performs a
// sparse update afterwards: only fields present in the request replace
// stored values. The social block is always replaced whole.
func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UpsertProfile")
	defer span.End()

	var errs []apperror.FieldError
	if input.Status == "" {
		errs = append(errs, apperror.FieldError{Msg: "Status is required", Field: "status"})
	}
	if input.Skills == "" {
		errs = append(errs, apperror.FieldError{Msg: "Skills is required", Field: "skills"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidation(errs...)
	}

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			span.RecordError(err)
			return nil, err
		}
		p = &profile.Profile{
			OwnerID:    input.OwnerID,
			Skills:     []string{},
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
		}
	}

	p.Status = input.Status
	p.Skills = profile.ParseSkills(input.Skills)
	if input.Company != "" {
		p.Company = input.Company
	}
	if input.Website != "" {
		p.Website = input.Website
	}
	if input.Location != "" {
		p.Location = input.Location
	}
	if input.Bio != "" {
		p.Bio = input.Bio
	}
	if input.GithubUsername != "" {
		p.GithubUsername = input.GithubUsername
	}
	p.Social = input.Social
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publishProfileEvent(event.ProfileEventTypeUpdated, input.OwnerID, "")
	return p, nil
}

type DeleteAccountInput struct {
	OwnerID uuid.UUID
}

// ExecuteDeleteAccount removes the profile and the identity that owns it.
// Anything dependent is swept downstream by consumers of user.deleted.
func (uc *ProfileUseCase) ExecuteDeleteAccount(ctx context.Context, input DeleteAccountInput) error {
	ctx, span := tracer.Start(ctx, "DeleteAccount")
	defer span.End()

	if err := uc.profileRepo.Delete(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.userRepo.Delete(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return err
	}

	go func() {
		err := uc.publisher.PublishUserEvent(context.Background(), event.UserEventPayload{
			EventType:  event.UserEventTypeDeleted,
			UserID:     input.OwnerID,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Warn("Failed to publish user deleted event", zap.String("user_id", input.OwnerID.String()), zap.Error(err))
		}
	}()

	return nil
}

func (uc *ProfileUseCase) withUser(ctx context.Context, p *profile.Profile) *ProfileWithUser {
	u, err := uc.userRepo.FindByID(ctx, p.OwnerID)
	if err != nil {
		uc.logger.Warn("Failed to load profile owner", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		u = nil
	}
	return &ProfileWithUser{Profile: p, User: u}
}

func (uc *ProfileUseCase) publishProfileEvent(eventType string, ownerID uuid.UUID, entryID string) {
	go func() {
		err := uc.publisher.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType:  eventType,
			OwnerID:    ownerID,
			EntryID:    entryID,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Warn("Failed to publish profile event", zap.String("owner_id", ownerID.String()), zap.String("event_type", eventType), zap.Error(err))
		}
	}()
}
