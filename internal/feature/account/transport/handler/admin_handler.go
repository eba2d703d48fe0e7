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
)

// AdminUsecase は管理コンソール操作のユースケースを定義します。
type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]entity.UserOverview, error)
	UpdateUserSubscription(ctx context.Context, userID string, plan entity.PlanID, status entity.SubscriptionStatus) error
	ResetUserPassword(ctx context.Context, userID, newPassword string) error
	ExtendTrial(ctx context.Context, userID string, days int) error
	DeleteUser(ctx context.Context, userID string) error
}

// AdminHandler は管理コンソールのHTTPリクエストを処理します。
// ルーティング層のRequireAdminミドルウェアが管理者以外を遮断します。
type AdminHandler struct {
	admin AdminUsecase
}

// NewAdminHandler はAdminHandlerの新しいインスタンスを生成します。
func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers は全ユーザーを設定・残り試用日数とともに返します（デモIDが先頭）。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateSubscription は対象ユーザーのプランと状態を強制設定します。
func (h *AdminHandler) UpdateSubscription(c *gin.Context) {
	var req dto.AdminSubscriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	plan := entity.PlanID(req.Plan)
	status := entity.SubscriptionStatus(req.Status)
	if !plan.Valid() || !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown plan or status"})
		return
	}
	userID := c.Param("id")
	if err := h.admin.UpdateUserSubscription(c.Request.Context(), userID, plan, status); err != nil {
		slog.Error("failed to update subscription", "error", err, "target", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	slog.Info("admin updated subscription", "target", userID, "plan", req.Plan, "status", req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ResetPassword は対象ユーザーのパスワードを上書きします。
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var req dto.AdminPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID := c.Param("id")
	if err := h.admin.ResetUserPassword(c.Request.Context(), userID, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("failed to reset password", "error", err, "target", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	slog.Info("admin reset password", "target", userID)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ExtendTrial は対象ユーザーの試用期間をN日延長します。
func (h *AdminHandler) ExtendTrial(c *gin.Context) {
	var req dto.AdminExtendTrialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID := c.Param("id")
	if err := h.admin.ExtendTrial(c.Request.Context(), userID, req.Days); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("failed to extend trial", "error", err, "target", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extend failed"})
		return
	}
	slog.Info("admin extended trial", "target", userID, "days", req.Days)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DeleteUser は対象ユーザーを不可逆に削除します。
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	if err := h.admin.DeleteUser(c.Request.Context(), userID); err != nil {
		slog.Error("failed to delete user", "error", err, "target", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	slog.Info("admin deleted user", "target", userID)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
