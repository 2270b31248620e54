package server

import (
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpsertProfileRequest is the payload for creating or updating a profile.
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

// entryRequest is the shared payload shape for experience and education entries.
type entryRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	Location     string `json:"location"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetMyProfile returns the caller's own profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileRepo.GetByUserID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}
	if profile == nil {
		return respondError(c,
			models.NewNotFoundError("There is no profile or this user!"),
			fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpsertProfile creates the caller's profile or merges the supplied fields.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpsertProfile(c.UserContext(), service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetProfiles returns the public profile directory.
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profiles)
}

// GetProfileByUserID returns a single public profile by its owner's user ID.
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return respondError(c,
			models.NewNotFoundError("Profile not found!"),
			fiber.StatusBadRequest)
	}

	profile, err := s.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteAccount removes the caller's account with everything attached to it.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := s.accountService.DeleteAccount(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	middleware.Logger.InfoContext(c.UserContext(), "account deleted", "user_id", userID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"msg": "User removed!!"})
}

// AddExperience prepends a work history entry to the caller's profile.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	from, err := parseDate(req.From)
	if err != nil {
		return respondError(c, models.NewValidationError("From date is required"))
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return respondError(c, models.NewValidationError("To date is invalid"))
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), service.AddExperienceInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteExperience removes one experience entry by its ID.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := parseID(c, "id")
	if err != nil {
		return respondError(c,
			models.NewNotFoundError("Experience not found!"),
			fiber.StatusBadRequest)
	}

	profile, err := s.profileService.RemoveExperience(c.UserContext(), currentUserID(c), expID)
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	from, err := parseDate(req.From)
	if err != nil {
		return respondError(c, models.NewValidationError("From date is required"))
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return respondError(c, models.NewValidationError("To date is invalid"))
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), service.AddEducationInput{
		UserID:       currentUserID(c),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteEducation removes one education entry by its ID.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := parseID(c, "id")
	if err != nil {
		return respondError(c,
			models.NewNotFoundError("Education not found!"),
			fiber.StatusBadRequest)
	}

	profile, err := s.profileService.RemoveEducation(c.UserContext(), currentUserID(c), eduID)
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetGithubRepos proxies the user's five most recent GitHub repositories.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := s.githubClient.Repos(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(repos)
}
