package server

import (
	"crypto/md5"
	"fmt"
	"strings"

	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// gravatarURL derives a stable avatar URL from the account email.
func gravatarURL(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}

// Register handles new account creation and returns an auth token.
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		msgs = append(msgs, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return respondError(c, models.NewValidationError(msgs...))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, models.NewInternalError("Register", err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Avatar:   gravatarURL(req.Email),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered", "user_id", user.ID)

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError("Register", err))
	}
	return c.Status(fiber.StatusOK).JSON(TokenResponse{Token: token})
}
