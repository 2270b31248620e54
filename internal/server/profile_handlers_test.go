package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer wires a full server against an in-memory database.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	db, err := database.ConnectTest()
	require.NoError(t, err)

	s := NewServerWithDeps(testConfig(), db, nil)
	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	body, _ := json.Marshal(map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	return tr.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeErrors(t *testing.T, resp *http.Response) []string {
	var er models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
	msgs := make([]string, 0, len(er.Errors))
	for _, e := range er.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

func TestProfileLifecycle(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Profile User", "profile@example.com")

	t.Run("own profile before creation is a 400", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/profile/me", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeErrors(t, resp), "There is no profile or this user!")
	})

	t.Run("create profile", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/profile", token, map[string]any{
			"status":  "Developer",
			"skills":  "Go, Postgres, Redis",
			"company": "Acme",
			"twitter": "https://twitter.com/acme",
		})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.Profile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
		assert.Equal(t, models.SkillList{"Go", "Postgres", "Redis"}, profile.Skills)
		assert.Equal(t, "https://twitter.com/acme", profile.Social.Twitter)
	})

	t.Run("missing required fields", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/profile", token, map[string]any{})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		msgs := decodeErrors(t, resp)
		assert.Contains(t, msgs, "Status is required!")
		assert.Contains(t, msgs, "Skills is required!")
	})

	t.Run("directory lists the profile with its user", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/profile", "", nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profiles []models.Profile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&profiles))
		require.Len(t, profiles, 1)
		assert.Equal(t, "Profile User", profiles[0].User.Name)
	})

	t.Run("profile by user id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/profile/user/1", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		missing := doJSON(t, app, http.MethodGet, "/api/profile/user/999", "", nil)
		defer func() { _ = missing.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
		assert.Contains(t, decodeErrors(t, missing), "Profile not found!")

		malformed := doJSON(t, app, http.MethodGet, "/api/profile/user/not-a-number", "", nil)
		defer func() { _ = malformed.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)
	})

	t.Run("mutations require auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/profile", "", map[string]any{
			"status": "Developer", "skills": "Go",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestExperienceEndpoints(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Exp User", "exp@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/profile", token, map[string]any{
		"status": "Developer", "skills": "Go",
	})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var expID uint
	t.Run("add experience", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/profile/experience", token, map[string]any{
			"title":   "Backend Dev",
			"company": "Acme",
			"from":    "2020-01-01",
			"current": true,
		})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.Profile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
		require.Len(t, profile.Experience, 1)
		expID = profile.Experience[0].ID
		assert.True(t, profile.Experience[0].Current)
	})

	t.Run("validation errors", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/profile/experience", token, map[string]any{
			"title": "X", "company": "Y", "from": "2020-01-01", "to": "2021-01-01", "current": true,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete unknown id is an error and removes nothing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete,
			fmt.Sprintf("/api/profile/experience/%d", expID+50), token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeErrors(t, resp), "Experience not found!")
	})

	t.Run("delete by id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete,
			fmt.Sprintf("/api/profile/experience/%d", expID), token, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.Profile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
		assert.Empty(t, profile.Experience)
	})
}

func TestEducationEndpoints(t *testing.T) {
	_, app := setupTestServer(t)
	token := registerUser(t, app, "Edu User", "edu@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/profile", token, map[string]any{
		"status": "Student or Learning", "skills": "Go",
	})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/profile/education", token, map[string]any{
		"school":       "MIT",
		"degree":       "BSc",
		"fieldofstudy": "CS",
		"from":         "2015-09-01",
		"to":           "2019-06-01",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "CS", profile.Education[0].FieldOfStudy)
	assert.False(t, profile.Education[0].Current)

	del := doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/profile/education/%d", profile.Education[0].ID), token, nil)
	defer func() { _ = del.Body.Close() }()
	assert.Equal(t, http.StatusOK, del.StatusCode)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	s, app := setupTestServer(t)
	token := registerUser(t, app, "Doomed", "doomed@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/profile", token, map[string]any{
		"status": "Developer", "skills": "Go",
	})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	del := doJSON(t, app, http.MethodDelete, "/api/profile", token, nil)
	defer func() { _ = del.Body.Close() }()
	require.Equal(t, http.StatusOK, del.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(del.Body).Decode(&body))
	assert.Equal(t, "User removed!!", body["msg"])

	var users, profiles int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, s.db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Zero(t, users)
	assert.Zero(t, profiles)
}
