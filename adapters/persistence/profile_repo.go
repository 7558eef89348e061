package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/internal/domain/profile"
	"github.com/devconnect-io/devconnect/pkg/apperror"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// postgresProfileRepo stores each profile as one row with JSONB columns
// for the nested collections. Every mutation writes the row whole, so the
// aggregate behaves as a single document: concurrent writers for the same
// owner race last-write-wins.
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT owner_id, company, website, location, status, skills, bio,
		       github_username, social, experience, education, updated_at
		FROM profiles
		WHERE owner_id = $1
	`
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&p.OwnerID,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Status,
		&skillsBytes,
		&p.Bio,
		&p.GithubUsername,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	r.unmarshalDocument(p, skillsBytes, socialBytes, experienceBytes, educationBytes)
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	builder := psql.
		Select("owner_id", "company", "website", "location", "status", "skills",
			"bio", "github_username", "social", "experience", "education", "updated_at").
		From("profiles")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p := &profile.Profile{}
		var skillsBytes, socialBytes, experienceBytes, educationBytes []byte
		if err := rows.Scan(
			&p.OwnerID,
			&p.Company,
			&p.Website,
			&p.Location,
			&p.Status,
			&skillsBytes,
			&p.Bio,
			&p.GithubUsername,
			&socialBytes,
			&experienceBytes,
			&educationBytes,
			&p.UpdatedAt,
		); err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		r.unmarshalDocument(p, skillsBytes, socialBytes, experienceBytes, educationBytes)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}

	return profiles, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social links", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `
		INSERT INTO profiles (owner_id, company, website, location, status, skills,
		                      bio, github_username, social, experience, education, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (owner_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			skills = EXCLUDED.skills,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		p.OwnerID,
		p.Company,
		p.Website,
		p.Location,
		p.Status,
		skillsBytes,
		p.Bio,
		p.GithubUsername,
		socialBytes,
		experienceBytes,
		educationBytes,
		p.UpdatedAt,
	)

	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) unmarshalDocument(p *profile.Profile, skills, social, experience, education []byte) {
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal skills", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social links", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
}
