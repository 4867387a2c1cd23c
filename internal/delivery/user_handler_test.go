package delivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserUseCase knows one user (id 1, alex@example.com) and rejects the
// taken email with a field-level validation error.
type stubUserUseCase struct{}

func stubAlex() *domain.UserDTO {
	return &domain.UserDTO{
		ID:        1,
		FirstName: "Alex",
		LastName:  "Brown",
		Email:     "alex@example.com",
		Roles:     []domain.Role{{ID: 1, Authority: "ROLE_OPERATOR"}},
	}
}

func (s *stubUserUseCase) CreateUser(dto *domain.UserInsertDTO) (*domain.UserDTO, error) {
	if dto.Email == "alex@example.com" {
		return nil, domain.NewValidationError("email", "email already exists")
	}
	return &domain.UserDTO{ID: 2, FirstName: dto.FirstName, LastName: dto.LastName, Email: dto.Email, Roles: []domain.Role{}}, nil
}

func (s *stubUserUseCase) GetUserByID(id int64) (*domain.UserDTO, error) {
	if id != 1 {
		return nil, fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	return stubAlex(), nil
}

func (s *stubUserUseCase) UpdateUser(id int64, dto *domain.UserUpdateDTO) (*domain.UserDTO, error) {
	if id != 1 {
		return nil, fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	return &domain.UserDTO{ID: id, FirstName: dto.FirstName, LastName: dto.LastName, Email: dto.Email, Roles: []domain.Role{}}, nil
}

func (s *stubUserUseCase) ChangePassword(id int64, dto *domain.UserPasswordDTO) error {
	if id != 1 {
		return fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	if dto.Password == "weak" {
		return domain.NewValidationError("password", "password must be at least 8 characters long")
	}
	return nil
}

func (s *stubUserUseCase) DeleteUser(id int64) error {
	if id != 1 {
		return fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *stubUserUseCase) ListUsers() ([]domain.UserDTO, error) {
	return []domain.UserDTO{*stubAlex()}, nil
}

func (s *stubUserUseCase) ListUsersPaged(page, size int, sort string) (domain.Page[domain.UserDTO], error) {
	return domain.NewPage([]domain.UserDTO{*stubAlex()}, page, size, 1), nil
}

func (s *stubUserUseCase) LoadUserByEmail(email string) (*domain.Principal, error) {
	if email != "alex@example.com" {
		return nil, fmt.Errorf("user not found: %s: %w", email, domain.ErrNotFound)
	}
	return &domain.Principal{Email: email, Roles: []domain.Role{{ID: 1, Authority: "ROLE_OPERATOR"}}}, nil
}

func (s *stubUserUseCase) AuthenticateUser(email, password string) (*domain.AuthResponse, error) {
	if email == "alex@example.com" && password == "Secret12" {
		return &domain.AuthResponse{Authenticated: true, Token: "token", UserID: 1}, nil
	}
	return &domain.AuthResponse{Authenticated: false, ErrorMessage: "Invalid email or password"}, nil
}

func userRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewUserHandler(&stubUserUseCase{}, testLogger()).RegisterRoutes(router)
	NewAuthHandler(&stubUserUseCase{}, testLogger()).RegisterRoutes(router)
	return router
}

func postJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandler_CreateDuplicateEmailReturns422(t *testing.T) {
	router := userRouter()

	w := postJSON(router, http.MethodPost, "/users",
		`{"first_name":"Other","email":"alex@example.com","password":"Sup3rSecret"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.FieldErrors, 1)
	assert.Equal(t, "email", body.FieldErrors[0].Field)
}

func TestUserHandler_CreateReturnsDTOWithoutPassword(t *testing.T) {
	router := userRouter()

	w := postJSON(router, http.MethodPost, "/users",
		`{"first_name":"Nina","email":"nina@example.com","password":"Sup3rSecret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "password_hash")
}

func TestUserHandler_ChangePassword(t *testing.T) {
	router := userRouter()

	w := postJSON(router, http.MethodPut, "/users/1/password", `{"password":"N3wSecret"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = postJSON(router, http.MethodPut, "/users/1/password", `{"password":"weak"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(router, http.MethodPut, "/users/100/password", `{"password":"N3wSecret"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_GetAndDelete(t *testing.T) {
	router := userRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/100", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	router := userRouter()

	w := postJSON(router, http.MethodPost, "/auth/login",
		`{"email":"alex@example.com","password":"Secret12"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Authenticated)
	assert.NotEmpty(t, result.Token)

	w = postJSON(router, http.MethodPost, "/auth/login",
		`{"email":"alex@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
