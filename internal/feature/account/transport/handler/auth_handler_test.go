package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/account/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthUsecase はテスト用のAuthUsecaseモック実装です。
type mockAuthUsecase struct {
	registerFn func(ctx context.Context, name, email, password string) (*entity.User, error)
	loginFn    func(ctx context.Context, email, password string) (*entity.Principal, string, error)
	logoutFn   func(ctx context.Context) error
	currentFn  func(ctx context.Context) (*entity.User, error)
	updateFn   func(ctx context.Context, upd usecase.UserUpdate) (*entity.User, error)
	deleteFn   func(ctx context.Context) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	return m.registerFn(ctx, name, email, password)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*entity.Principal, string, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthUsecase) Logout(ctx context.Context) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx)
	}
	return nil
}

func (m *mockAuthUsecase) CurrentUser(ctx context.Context) (*entity.User, error) {
	return m.currentFn(ctx)
}

func (m *mockAuthUsecase) UpdateCurrentUser(ctx context.Context, upd usecase.UserUpdate) (*entity.User, error) {
	return m.updateFn(ctx, upd)
}

func (m *mockAuthUsecase) DeleteAccount(ctx context.Context) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx)
	}
	return nil
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		registerErr  error
		expectedCode int
	}{
		{
			name:         "valid registration",
			body:         `{"name":"Taro","email":"taro@example.com","password":"secret"}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "duplicate email",
			body:         `{"name":"Taro","email":"taro@example.com","password":"secret"}`,
			registerErr:  domain.ErrEmailAlreadyExists,
			expectedCode: http.StatusConflict,
		},
		{
			name:         "missing name",
			body:         `{"email":"taro@example.com","password":"secret"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "malformed email",
			body:         `{"name":"Taro","email":"not-an-email","password":"secret"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAuthUsecase{
				registerFn: func(ctx context.Context, name, email, password string) (*entity.User, error) {
					if tt.registerErr != nil {
						return nil, tt.registerErr
					}
					return &entity.User{ID: "u1", Name: name, Email: email}, nil
				},
			}
			r := gin.New()
			r.POST("/register", NewAuthHandler(mock).Register)

			w := postJSON(r, "/register", tt.body)
			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusCreated {
				// パスワードはレスポンスに含まれない
				assert.NotContains(t, w.Body.String(), "secret")
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		loginErr     error
		expectedCode int
	}{
		{
			name:         "valid login",
			body:         `{"email":"taro@example.com","password":"secret"}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "wrong credentials",
			body:         `{"email":"taro@example.com","password":"bad"}`,
			loginErr:     domain.ErrInvalidCredentials,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "missing password",
			body:         `{"email":"taro@example.com"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAuthUsecase{
				loginFn: func(ctx context.Context, email, password string) (*entity.Principal, string, error) {
					if tt.loginErr != nil {
						return nil, "", tt.loginErr
					}
					return entity.OrdinaryPrincipal(entity.User{ID: "u1", Email: email}), "signed-token", nil
				},
			}
			r := gin.New()
			r.POST("/login", NewAuthHandler(mock).Login)

			w := postJSON(r, "/login", tt.body)
			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusOK {
				assert.Contains(t, w.Body.String(), "signed-token")
			}
		})
	}
}

func TestMeHandler_NoSession(t *testing.T) {
	mock := &mockAuthUsecase{
		currentFn: func(ctx context.Context) (*entity.User, error) {
			return nil, domain.ErrNoActiveSession
		},
	}
	r := gin.New()
	r.GET("/me", NewAuthHandler(mock).Me)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMeHandler(t *testing.T) {
	var got usecase.UserUpdate
	mock := &mockAuthUsecase{
		updateFn: func(ctx context.Context, upd usecase.UserUpdate) (*entity.User, error) {
			got = upd
			return &entity.User{ID: "u1", Name: *upd.Name}, nil
		},
	}
	r := gin.New()
	r.PUT("/me", NewAuthHandler(mock).UpdateMe)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/me", strings.NewReader(`{"name":"Jiro"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Jiro", *got.Name)
	assert.Nil(t, got.Password)
}

func TestUpdateMeHandler_NoSession(t *testing.T) {
	mock := &mockAuthUsecase{
		updateFn: func(ctx context.Context, upd usecase.UserUpdate) (*entity.User, error) {
			return nil, nil
		},
	}
	r := gin.New()
	r.PUT("/me", NewAuthHandler(mock).UpdateMe)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/me", strings.NewReader(`{"name":"Jiro"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
