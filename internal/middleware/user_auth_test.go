package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"renrakuban/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockUserService 用户服务的Mock实现，认证中间件只用到GetByToken
type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Create(ctx context.Context, user *repository.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *mockUserService) GetByToken(ctx context.Context, token string) (*repository.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *mockUserService) SendVerifyCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*repository.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *mockUserService) Logout(ctx context.Context, user *repository.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserService) RequestEmailChange(ctx context.Context, user *repository.User, newEmail string) error {
	return m.Called(ctx, user, newEmail).Error(0)
}

func (m *mockUserService) VerifyEmailChange(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockUserService) UpdatePassword(ctx context.Context, user *repository.User, password string) error {
	return m.Called(ctx, user, password).Error(0)
}

func newAuthTestRouter(userService *mockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", UserAuth(userService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200, "user_id": c.GetInt64("user_id")})
	})
	return router
}

func TestUserAuth_MissingToken(t *testing.T) {
	router := newAuthTestRouter(new(mockUserService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":401`)
}

func TestUserAuth_InvalidToken(t *testing.T) {
	userService := new(mockUserService)
	userService.On("GetByToken", mock.Anything, "bad-token").Return(nil, sql.ErrNoRows)
	router := newAuthTestRouter(userService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bad-token")
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"code":401`)
}

func TestUserAuth_DisabledAccount(t *testing.T) {
	userService := new(mockUserService)
	userService.On("GetByToken", mock.Anything, "token-1").
		Return(&repository.User{ID: 7, Status: 0}, nil)
	router := newAuthTestRouter(userService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "token-1")
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"code":403`)
}

func TestUserAuth_ValidToken(t *testing.T) {
	userService := new(mockUserService)
	userService.On("GetByToken", mock.Anything, "token-1").
		Return(&repository.User{ID: 7, Status: 1}, nil)
	router := newAuthTestRouter(userService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "token-1")
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"code":200`)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}
