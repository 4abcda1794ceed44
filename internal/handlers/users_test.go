package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedify/internal/handlers"
	"feedify/internal/models"
	"feedify/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MockUserService struct {
	shouldReturnError bool
	returnDuplicate   bool
	returnNotFound    bool
	returnReferenced  bool
	users             []models.User
}

func (m *MockUserService) CreateUser(db *gorm.DB, email string, name *string) (models.User, error) {
	if m.shouldReturnError {
		return models.User{}, gorm.ErrInvalidData
	}
	if m.returnDuplicate {
		return models.User{}, services.ErrDuplicateEmail
	}
	user := models.User{ID: uint(len(m.users) + 1), Email: email, Name: name}
	m.users = append(m.users, user)
	return user, nil
}

func (m *MockUserService) GetUsers(db *gorm.DB) ([]models.User, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	return m.users, nil
}

func (m *MockUserService) GetUserByID(db *gorm.DB, id uint) (models.User, error) {
	if m.shouldReturnError {
		return models.User{}, gorm.ErrInvalidData
	}
	if m.returnNotFound {
		return models.User{}, services.ErrUserNotFound
	}
	return models.User{ID: id, Email: "test@example.com"}, nil
}

func (m *MockUserService) GetUserByEmail(db *gorm.DB, email string) (models.User, error) {
	if m.returnNotFound {
		return models.User{}, services.ErrUserNotFound
	}
	return models.User{ID: 1, Email: email}, nil
}

func (m *MockUserService) UpdateUser(db *gorm.DB, id uint, name *string) (models.User, error) {
	if m.returnNotFound {
		return models.User{}, services.ErrUserNotFound
	}
	return models.User{ID: id, Email: "test@example.com", Name: name}, nil
}

func (m *MockUserService) DeleteUser(db *gorm.DB, id uint) (models.User, error) {
	if m.returnNotFound {
		return models.User{}, services.ErrUserNotFound
	}
	if m.returnReferenced {
		return models.User{}, services.ErrUserReferenced
	}
	return models.User{ID: id, Email: "test@example.com"}, nil
}

func setupUserHandler() (*handlers.UserHandler, *MockUserService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	mockService := &MockUserService{}
	handler := handlers.NewUserHandler(nil, mockService)
	router := gin.New()
	return handler, mockService, router
}

func TestCreateUser(t *testing.T) {
	handler, _, router := setupUserHandler()
	router.POST("/users", handler.CreateUser)

	body, _ := json.Marshal(map[string]string{"email": "alice@test.com", "name": "Alice"})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if user.Email != "alice@test.com" {
		t.Errorf("Expected email alice@test.com, got %s", user.Email)
	}
}

func TestCreateUserMissingEmail(t *testing.T) {
	handler, _, router := setupUserHandler()
	router.POST("/users", handler.CreateUser)

	body, _ := json.Marshal(map[string]string{"name": "Alice"})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	handler, mockService, router := setupUserHandler()
	router.POST("/users", handler.CreateUser)

	mockService.returnDuplicate = true

	body, _ := json.Marshal(map[string]string{"email": "alice@test.com"})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestGetUserNotFound(t *testing.T) {
	handler, mockService, router := setupUserHandler()
	router.GET("/users/:id", handler.GetUser)

	mockService.returnNotFound = true

	req, _ := http.NewRequest("GET", "/users/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetUserInvalidID(t *testing.T) {
	handler, _, router := setupUserHandler()
	router.GET("/users/:id", handler.GetUser)

	req, _ := http.NewRequest("GET", "/users/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestDeleteUserStillReferenced(t *testing.T) {
	handler, mockService, router := setupUserHandler()
	router.DELETE("/users/:id", handler.DeleteUser)

	mockService.returnReferenced = true

	req, _ := http.NewRequest("DELETE", "/users/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestDeleteUserReturnsRecord(t *testing.T) {
	handler, _, router := setupUserHandler()
	router.DELETE("/users/:id", handler.DeleteUser)

	req, _ := http.NewRequest("DELETE", "/users/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("Expected deleted user id 1, got %d", user.ID)
	}
}
