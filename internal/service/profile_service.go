// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/validation"
)

// ProfileService implements profile upsert and experience/education mutations.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// UpsertProfileInput carries the optional profile fields from the request
// body. Empty strings mean "not supplied" and never overwrite stored values.
type UpsertProfileInput struct {
	UserID         uint
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// SplitSkills normalizes a comma-delimited skills string into a trimmed,
// ordered list.
func SplitSkills(skills string) models.SkillList {
	parts := strings.Split(skills, ",")
	out := make(models.SkillList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// UpsertProfile creates the caller's profile or merges the supplied fields
// into the existing one. One profile per user is guaranteed by an atomic
// upsert keyed on user_id.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	var msgs []string
	if strings.TrimSpace(in.Status) == "" {
		msgs = append(msgs, "Status is required!")
	}
	if strings.TrimSpace(in.Skills) == "" {
		msgs = append(msgs, "Skills is required!")
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	skills := SplitSkills(in.Skills)

	profile := &models.Profile{
		UserID: in.UserID,
		Status: in.Status,
		Skills: skills,
	}
	updates := map[string]any{
		"status":     in.Status,
		"skills":     skills,
		"updated_at": time.Now(),
	}

	set := func(column string, value string, field *string) {
		if value == "" {
			return
		}
		*field = value
		updates[column] = value
	}
	set("company", in.Company, &profile.Company)
	set("website", in.Website, &profile.Website)
	set("location", in.Location, &profile.Location)
	set("bio", in.Bio, &profile.Bio)
	set("github_username", in.GithubUsername, &profile.GithubUsername)
	set("social_youtube", in.Youtube, &profile.Social.Youtube)
	set("social_twitter", in.Twitter, &profile.Social.Twitter)
	set("social_facebook", in.Facebook, &profile.Social.Facebook)
	set("social_linkedin", in.Linkedin, &profile.Social.Linkedin)
	set("social_instagram", in.Instagram, &profile.Social.Instagram)

	return s.profileRepo.Upsert(ctx, profile, updates)
}

// GetByUserID returns the profile owned by the given user, or a not-found
// error when none exists.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile not found!")
	}
	return profile, nil
}

// List returns the public profile directory.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// AddExperienceInput carries a new experience entry.
type AddExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience validates and prepends a work history entry to the caller's
// profile. An absent end date is equivalent to current=true.
func (s *ProfileService) AddExperience(ctx context.Context, in AddExperienceInput) (*models.Profile, error) {
	var msgs []string
	if strings.TrimSpace(in.Title) == "" {
		msgs = append(msgs, "Title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		msgs = append(msgs, "Company is required")
	}
	if err := validation.ValidateEntryDates(in.From, in.To, in.Current); err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	exp := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current || in.To == nil,
		Description: in.Description,
	}
	return s.profileRepo.AddExperience(ctx, in.UserID, exp)
}

// RemoveExperience deletes the entry by id; a missing id is an error, never a
// positional removal.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	return s.profileRepo.RemoveExperience(ctx, userID, expID)
}

// AddEducationInput carries a new education entry.
type AddEducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// AddEducation validates and prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, in AddEducationInput) (*models.Profile, error) {
	var msgs []string
	if strings.TrimSpace(in.School) == "" {
		msgs = append(msgs, "School is required")
	}
	if strings.TrimSpace(in.Degree) == "" {
		msgs = append(msgs, "Degree is required")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		msgs = append(msgs, "Field of Study is required")
	}
	if err := validation.ValidateEntryDates(in.From, in.To, in.Current); err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	edu := &models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current || in.To == nil,
		Description:  in.Description,
	}
	return s.profileRepo.AddEducation(ctx, in.UserID, edu)
}

// RemoveEducation deletes the entry by id with the same missing-id guard as
// RemoveExperience.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	return s.profileRepo.RemoveEducation(ctx, userID, eduID)
}
