package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"devlink/internal/config"
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test_secret", TokenTTL: time.Hour}
}

func TestRegister(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Post("/api/users", s.Register)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "Test User",
				"email":    "test@example.com",
				"password": "secret1",
			},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"name":     "Test User",
				"email":    "exists@example.com",
				"password": "secret1",
			},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewValidationError("User already exists!")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "User already exists!",
		},
		{
			name: "Short Password",
			body: map[string]string{
				"name":     "Test User",
				"email":    "test@example.com",
				"password": "short",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please enter a password with 6 or more characters",
		},
		{
			name: "Invalid Email",
			body: map[string]string{
				"name":     "Test User",
				"email":    "not-an-email",
				"password": "secret1",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please include a valid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var tr TokenResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
				assert.NotEmpty(t, tr.Token)
			} else if tt.expectedMsg != "" {
				var er models.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
				require.NotEmpty(t, er.Errors)
				assert.Equal(t, tt.expectedMsg, er.Errors[0].Msg)
			}
		})
	}
}

func TestRegisterHashesPasswordAndSetsGravatar(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	var created *models.User
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).Return(nil)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Post("/api/users", s.Register)

	body, _ := json.Marshal(map[string]string{
		"name":     "Test User",
		"email":    "Test@Example.COM",
		"password": "secret1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, created)
	assert.Equal(t, "test@example.com", created.Email)
	assert.NotEqual(t, "secret1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")))
	assert.Contains(t, created.Avatar, "https://www.gravatar.com/avatar/")
	assert.Contains(t, created.Avatar, "s=200")
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	app := fiber.New()
	mockRepo := new(MockUserRepository)

	mockRepo.On("GetByEmail", mock.Anything, "known@example.com").
		Return(&models.User{ID: 1, Email: "known@example.com", Password: string(hashed)}, nil)
	mockRepo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Post("/api/auth", s.Login)

	login := func(email, password string) (*http.Response, string) {
		body, _ := json.Marshal(map[string]string{"email": email, "password": password})
		req := httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return resp, string(raw)
	}

	resp, _ := login("known@example.com", "secret1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Unknown email and wrong password must be indistinguishable
	respUnknown, bodyUnknown := login("unknown@example.com", "secret1")
	respWrong, bodyWrong := login("known@example.com", "wrongpass")
	assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
	assert.Equal(t, bodyUnknown, bodyWrong)
	assert.Contains(t, bodyUnknown, "Invalid credentials!")
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Name: "Test User"}, nil)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Get("/api/auth", s.AuthRequired(), s.GetCurrentUser)

	signToken := func(claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test_secret"))
		require.NoError(t, err)
		return signed
	}
	baseClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": strconv.Itoa(7),
			"iss": tokenIssuer,
			"aud": tokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
			"iat": time.Now().Unix(),
		}
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "Valid token",
			authHeader:     "Bearer " + signToken(baseClaims()),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No token",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed header",
			authHeader:     "Token abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			authHeader: "Bearer " + signToken(func() jwt.MapClaims {
				c := baseClaims()
				c["exp"] = time.Now().Add(-time.Hour).Unix()
				return c
			}()),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong issuer",
			authHeader: "Bearer " + signToken(func() jwt.MapClaims {
				c := baseClaims()
				c["iss"] = "someone-else"
				return c
			}()),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong audience",
			authHeader: "Bearer " + signToken(func() jwt.MapClaims {
				c := baseClaims()
				c["aud"] = "someone-else"
				return c
			}()),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetCurrentUserOmitsPassword(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Name: "Test User", Password: "hash"}, nil)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Get("/api/auth", s.AuthRequired(), s.GetCurrentUser)

	token, err := s.generateToken(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), "Test User")
}
