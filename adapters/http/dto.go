package http

import (
	"time"

	"github.com/devconnect-io/devconnect/internal/domain/profile"
	"github.com/devconnect-io/devconnect/internal/domain/user"
	profileUC "github.com/devconnect-io/devconnect/internal/application/usecase/profile"
)

// Auth DTOs

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

// Profile DTOs

type ProfileOwnerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ProfileDTO struct {
	User           *ProfileOwnerDTO     `json:"user,omitempty"`
	OwnerID        string               `json:"owner_id"`
	Company        string               `json:"company,omitempty"`
	Website        string               `json:"website,omitempty"`
	Location       string               `json:"location,omitempty"`
	Status         string               `json:"status"`
	Skills         []string             `json:"skills"`
	Bio            string               `json:"bio,omitempty"`
	GithubUsername string               `json:"githubusername,omitempty"`
	Social         profile.Social       `json:"social"`
	Experience     []profile.Experience `json:"experience"`
	Education      []profile.Education  `json:"education"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile, u *user.User) ProfileDTO {
	dto := ProfileDTO{
		OwnerID:        p.OwnerID.String(),
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         p.Skills,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Social:         p.Social,
		Experience:     p.Experience,
		Education:      p.Education,
		UpdatedAt:      p.UpdatedAt,
	}
	if dto.Skills == nil {
		dto.Skills = []string{}
	}
	if dto.Experience == nil {
		dto.Experience = []profile.Experience{}
	}
	if dto.Education == nil {
		dto.Education = []profile.Education{}
	}
	if u != nil {
		dto.User = &ProfileOwnerDTO{
			ID:     u.ID.String(),
			Name:   u.Name,
			Avatar: u.Avatar,
		}
	}
	return dto
}

func ToProfileWithUserDTO(pw *profileUC.ProfileWithUser) ProfileDTO {
	return ToProfileDTO(pw.Profile, pw.User)
}

// UpsertProfileRequest carries the flat form the original client submits;
// skills is a comma separated string, social links are top level fields.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

func (r *UpsertProfileRequest) ToInput() profileUC.UpsertProfileInput {
	return profileUC.UpsertProfileInput{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Status:         r.Status,
		Skills:         r.Skills,
		Bio:            r.Bio,
		GithubUsername: r.GithubUsername,
		Social: profile.Social{
			Youtube:   r.Youtube,
			Twitter:   r.Twitter,
			Facebook:  r.Facebook,
			Linkedin:  r.Linkedin,
			Instagram: r.Instagram,
		},
	}
}

type AddExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type AddEducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}
