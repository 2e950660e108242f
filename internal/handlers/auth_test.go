package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/tourfleet/internal/auth"
	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/middleware"
	"github.com/ukydev/tourfleet/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserCollection is a mock implementation of UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	authService, err := auth.NewService("handlers-secret", time.Hour)
	require.NoError(t, err)
	return authService
}

func postJSON(t *testing.T, path string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body["error"]
}

func TestAuthHandler_Login(t *testing.T) {
	authService := newAuthService(t)
	passwordHash, err := authService.HashPassword("password123")
	require.NoError(t, err)

	activeUser := func() *models.User {
		return &models.User{
			ID:           primitive.NewObjectID(),
			Username:     "dispatch",
			PasswordHash: passwordHash,
			Role:         models.RoleDispatcher,
			IsActive:     true,
		}
	}

	t.Run("successful login", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, mockUserCollection)

		user := activeUser()
		mockUserCollection.On("FindUserByUsername", mock.Anything, "dispatch").Return(user, nil)
		mockUserCollection.On("UpdateLastLogin", mock.Anything, user.ID.Hex()).Return(nil)

		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{Username: "dispatch", Password: "password123"}))

		assert.Equal(t, http.StatusOK, w.Code)
		var response models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "dispatch", response.User.Username)
		assert.NotContains(t, w.Body.String(), "password")
		mockUserCollection.AssertExpectations(t)
	})

	t.Run("last login failure does not fail login", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, mockUserCollection)

		user := activeUser()
		mockUserCollection.On("FindUserByUsername", mock.Anything, "dispatch").Return(user, nil)
		mockUserCollection.On("UpdateLastLogin", mock.Anything, user.ID.Hex()).Return(errors.New("write conflict"))

		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{Username: "dispatch", Password: "password123"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, mockUserCollection)
		mockUserCollection.On("FindUserByUsername", mock.Anything, "dispatch").Return(activeUser(), nil)

		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{Username: "dispatch", Password: "nope-nope"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid credentials", decodeError(t, w))
		mockUserCollection.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, mockUserCollection)
		mockUserCollection.On("FindUserByUsername", mock.Anything, "ghost").Return(nil, db.ErrNotFound)

		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{Username: "ghost", Password: "password123"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("inactive user", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, mockUserCollection)
		user := activeUser()
		user.IsActive = false
		mockUserCollection.On("FindUserByUsername", mock.Anything, "dispatch").Return(user, nil)

		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{Username: "dispatch", Password: "password123"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "account is deactivated", decodeError(t, w))
	})

	t.Run("database failure", func(t *testing.T) {
		mockUserCollection := new(MockUserCollection)
		handler := NewAuthHandler(authService, mockUserCollection)
		mockUserCollection.On("FindUserByUsername", mock.Anything, "dispatch").Return(nil, errors.New("connection reset"))

		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{Username: "dispatch", Password: "password123"}))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", decodeError(t, w))
	})

	t.Run("missing fields and bad JSON", func(t *testing.T) {
		handler := NewAuthHandler(authService, new(MockUserCollection))

		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{Username: "dispatch"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = httptest.NewRecorder()
		handler.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid JSON", decodeError(t, w))
	})
}

func TestAuthHandler_Me(t *testing.T) {
	authService := newAuthService(t)
	mockUserCollection := new(MockUserCollection)
	handler := NewAuthHandler(authService, mockUserCollection)

	user := &models.User{ID: primitive.NewObjectID(), Username: "viewer", Role: models.RoleViewer, IsActive: true}
	mockUserCollection.On("FindUserByID", mock.Anything, user.ID.Hex()).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), &models.Claims{UserID: user.ID.Hex(), Username: "viewer", Role: models.RoleViewer}))
	w := httptest.NewRecorder()
	handler.Me(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "viewer", got.Username)

	w = httptest.NewRecorder()
	handler.Me(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
