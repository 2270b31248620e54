package server

import (
	"strconv"
	"strings"
	"time"

	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the payload for credential authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a JWT. Unknown email and wrong
// password produce byte-identical responses so accounts cannot be enumerated.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	var msgs []string
	if err := validation.ValidateEmail(req.Email); err != nil {
		msgs = append(msgs, err.Error())
	}
	if strings.TrimSpace(req.Password) == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		return respondError(c, models.NewValidationError(msgs...))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return respondError(c, models.NewUnauthorizedError("Invalid credentials!"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return respondError(c, models.NewUnauthorizedError("Invalid credentials!"))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError("Login", err))
	}
	return c.Status(fiber.StatusOK).JSON(TokenResponse{Token: token})
}

// GetCurrentUser returns the authenticated user's record without the password hash.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(s.config.TokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
