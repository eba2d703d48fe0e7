// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/account/transport/http/dto"
	"budget_backend/internal/feature/account/usecase"
)

// AuthUsecase は認証・アカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.Principal, string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*entity.User, error)
	UpdateCurrentUser(ctx context.Context, upd usecase.UserUpdate) (*entity.User, error)
	DeleteAccount(ctx context.Context) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は作成されたユーザーとともに201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			slog.Warn("register rejected", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login はログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 成功時は署名済みトークンとユーザーとともに200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// 実際の失敗理由は公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "kind", string(p.Kind), "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Token: token, User: dto.NewUserRes(&p.User)})
}

// Logout はセッションスナップショットをクリアします。
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Me は現在のセッションユーザーを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
			return
		}
		slog.Error("failed to load session user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdateMe はセッションユーザーへの部分更新を処理します。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user, err := h.auth.UpdateCurrentUser(c.Request.Context(), usecase.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		slog.Error("failed to update user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if user == nil {
		// セッションなしはno-op
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// DeleteMe はセッションユーザーのアカウントを不可逆に削除します。
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	if err := h.auth.DeleteAccount(c.Request.Context()); err != nil {
		slog.Error("failed to delete account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
