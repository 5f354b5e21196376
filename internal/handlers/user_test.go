package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumehq/lume-api/internal/models"
	"github.com/lumehq/lume-api/internal/services"
	"github.com/lumehq/lume-api/pkg/dto"
	"github.com/lumehq/lume-api/tests/testutil"
)

func newUserTestApp(handler *UserHandler) *drift.Engine {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/users", handler.List)
	app.Get("/users/search", handler.Search)
	app.Get("/users/:id", handler.Get)
	app.Post("/users/invite", handler.Invite)
	app.Patch("/users/:id", handler.Update)
	app.Delete("/users/:id", handler.Delete)
	return app
}

func sampleUser() *models.User {
	return &models.User{
		ID:        uuid.New(),
		Email:     "test@example.com",
		Name:      "Test User",
		Roles:     []string{models.RoleMember},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestUserHandler_List(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	user := sampleUser()
	mockService.On("All", mock.Anything).Return([]models.User{*user}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, user.Email, response[0].Email)
	assert.Equal(t, []string{models.RoleMember}, response[0].Roles)

	mockService.AssertExpectations(t)
}

func TestUserHandler_Get(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	user := sampleUser()
	mockService.On("Find", mock.Anything, user.ID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/"+user.ID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, user.ID, response.ID)

	mockService.AssertExpectations(t)
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	userID := uuid.New()
	mockService.On("Find", mock.Anything, userID).Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_Search(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	user := sampleUser()
	mockService.On("Search", mock.Anything, "alice", 10).Return([]models.User{*user}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/search?q=alice&page_size=10", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_Search_DefaultPageSize(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	// The service applies the configured default when page_size is absent.
	mockService.On("Search", mock.Anything, "bob", 0).Return([]models.User{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/search?q=bob", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_Invite(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	user := sampleUser()
	mockService.On("Invite", mock.Anything, services.InviteInput{
		Email: "new@example.com",
		Name:  "New User",
		Role:  models.RoleAdmin,
	}).Return(user, nil)

	body, _ := json.Marshal(dto.InviteUserRequest{
		Email: "new@example.com",
		Name:  "New User",
		Role:  models.RoleAdmin,
	})
	req := httptest.NewRequest(http.MethodPost, "/users/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_Invite_DefaultsRole(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	user := sampleUser()
	mockService.On("Invite", mock.Anything, services.InviteInput{
		Email: "new@example.com",
		Name:  "New User",
		Role:  models.RoleMember,
	}).Return(user, nil)

	body, _ := json.Marshal(dto.InviteUserRequest{Email: "new@example.com", Name: "New User"})
	req := httptest.NewRequest(http.MethodPost, "/users/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_Invite_MissingFields(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	body, _ := json.Marshal(dto.InviteUserRequest{Email: "new@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/users/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Update(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	userID := uuid.New()
	name := "Renamed"
	mockService.On("Update", mock.Anything, userID, services.ProfileUpdate{
		UserUpdate: models.UserUpdate{Name: &name},
		Meta:       map[string]any{"terms_and_cond": true, "bio": "hi"},
	}).Return(true, nil)

	body, _ := json.Marshal(dto.UpdateUserRequest{
		Name: &name,
		Meta: map[string]any{"terms_and_cond": true, "bio": "hi"},
	})
	req := httptest.NewRequest(http.MethodPatch, "/users/"+userID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UpdateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Updated)

	mockService.AssertExpectations(t)
}

func TestUserHandler_Update_TermsNotAccepted(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	userID := uuid.New()
	mockService.On("Update", mock.Anything, userID, mock.Anything).
		Return(false, services.ErrTermsNotAccepted)

	body, _ := json.Marshal(dto.UpdateUserRequest{Meta: map[string]any{"bio": "hi"}})
	req := httptest.NewRequest(http.MethodPatch, "/users/"+userID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_Delete(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	userID := uuid.New()
	mockService.On("Destroy", mock.Anything, userID).Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.DeleteUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Deleted)

	mockService.AssertExpectations(t)
}

func TestUserHandler_Delete_Failure(t *testing.T) {
	mockService := new(testutil.MockProfileService)
	app := newUserTestApp(NewUserHandler(mockService))

	userID := uuid.New()
	mockService.On("Destroy", mock.Anything, userID).
		Return(false, services.ErrProfileDeletionFailed)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	mockService.AssertExpectations(t)
}
