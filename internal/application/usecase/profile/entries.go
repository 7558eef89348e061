package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/devconnect-io/devconnect/adapters/event"
	"github.com/devconnect-io/devconnect/internal/domain/profile"
	"github.com/devconnect-io/devconnect/pkg/apperror"
)

type AddExperienceInput struct {
	OwnerID     uuid.UUID
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input AddExperienceInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "AddExperience")
	defer span.End()

	var errs []apperror.FieldError
	if input.Title == "" {
		errs = append(errs, apperror.FieldError{Msg: "Title is required", Field: "title"})
	}
	if input.Company == "" {
		errs = append(errs, apperror.FieldError{Msg: "Company is required", Field: "company"})
	}
	if input.From == "" {
		errs = append(errs, apperror.FieldError{Msg: "From date is required", Field: "from"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidation(errs...)
	}

	p, err := uc.loadOwnProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	entry := profile.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	p.AddExperience(entry)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publishProfileEvent(event.ProfileEventTypeExperienceAdded, input.OwnerID, entry.ID.String())
	return p, nil
}

type RemoveEntryInput struct {
	OwnerID uuid.UUID
	EntryID uuid.UUID
}

func (uc *ProfileUseCase) ExecuteRemoveExperience(ctx context.Context, input RemoveEntryInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "RemoveExperience")
	defer span.End()

	p, err := uc.loadOwnProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveExperience(input.EntryID) {
		return nil, apperror.NewBadRequest("Experience not found")
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publishProfileEvent(event.ProfileEventTypeExperienceRemoved, input.OwnerID, input.EntryID.String())
	return p, nil
}

type AddEducationInput struct {
	OwnerID      uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input AddEducationInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "AddEducation")
	defer span.End()

	var errs []apperror.FieldError
	if input.School == "" {
		errs = append(errs, apperror.FieldError{Msg: "School is required", Field: "school"})
	}
	if input.Degree == "" {
		errs = append(errs, apperror.FieldError{Msg: "Degree is required", Field: "degree"})
	}
	if input.FieldOfStudy == "" {
		errs = append(errs, apperror.FieldError{Msg: "Field of study is required", Field: "fieldofstudy"})
	}
	if input.From == "" {
		errs = append(errs, apperror.FieldError{Msg: "From date is required", Field: "from"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidation(errs...)
	}

	p, err := uc.loadOwnProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	entry := profile.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}
	p.AddEducation(entry)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publishProfileEvent(event.ProfileEventTypeEducationAdded, input.OwnerID, entry.ID.String())
	return p, nil
}

func (uc *ProfileUseCase) ExecuteRemoveEducation(ctx context.Context, input RemoveEntryInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "RemoveEducation")
	defer span.End()

	p, err := uc.loadOwnProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveEducation(input.EntryID) {
		return nil, apperror.NewBadRequest("Education not found")
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publishProfileEvent(event.ProfileEventTypeEducationRemoved, input.OwnerID, input.EntryID.String())
	return p, nil
}

func (uc *ProfileUseCase) loadOwnProfile(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, apperror.NewBadRequest("There is no profile for this user")
		}
		return nil, err
	}
	return p, nil
}
