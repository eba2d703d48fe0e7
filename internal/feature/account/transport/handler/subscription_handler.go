package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/account/transport/http/dto"
	"budget_backend/internal/feature/account/usecase"
	jwtmw "budget_backend/internal/platform/jwt"
)

// SubscriptionUsecase は設定・サブスクリプション操作のユースケースを定義します。
type SubscriptionUsecase interface {
	Settings(ctx context.Context, p *entity.Principal) (*entity.Settings, error)
	UpdateSettings(ctx context.Context, p *entity.Principal, patch usecase.SettingsPatch) (*entity.Settings, error)
	Activate(ctx context.Context, p *entity.Principal) (*entity.Settings, error)
	TrialDaysLeft(ctx context.Context, p *entity.Principal) (int, error)
}

// SubscriptionHandler は設定・サブスクリプションのHTTPリクエストを処理します。
type SubscriptionHandler struct {
	subs SubscriptionUsecase
}

// NewSubscriptionHandler はSubscriptionHandlerの新しいインスタンスを生成します。
func NewSubscriptionHandler(subs SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

// GetSettings は現在の設定を返します（遅延生成・試用期限チェック込み）。
func (h *SubscriptionHandler) GetSettings(c *gin.Context) {
	p := jwtmw.PrincipalFromContext(c)
	s, err := h.subs.Settings(c.Request.Context(), p)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateSettings は設定への部分更新を処理します。
func (h *SubscriptionHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := usecase.SettingsPatch{
		Username:  req.Username,
		AIEnabled: req.AIEnabled,
		Currency:  req.Currency,
		Language:  req.Language,
	}
	if req.Plan != nil {
		plan := entity.PlanID(*req.Plan)
		if !plan.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown plan"})
			return
		}
		patch.Plan = &plan
	}
	if req.SubscriptionStatus != nil {
		status := entity.SubscriptionStatus(*req.SubscriptionStatus)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown subscription status"})
			return
		}
		patch.SubscriptionStatus = &status
	}

	p := jwtmw.PrincipalFromContext(c)
	s, err := h.subs.UpdateSettings(c.Request.Context(), p, patch)
	if err != nil {
		slog.Error("failed to update settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// Activate は決済シミュレーション成功後の呼び出しで、サブスクリプションを有効化します。
// 実際の決済ゲートウェイ連携は行いません。
func (h *SubscriptionHandler) Activate(c *gin.Context) {
	p := jwtmw.PrincipalFromContext(c)
	s, err := h.subs.Activate(c.Request.Context(), p)
	if err != nil {
		slog.Error("failed to activate subscription", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activation failed"})
		return
	}
	slog.Info("subscription activated", "user_id", p.User.ID)
	c.JSON(http.StatusOK, s)
}

// TrialDays は残り試用日数を返します。
func (h *SubscriptionHandler) TrialDays(c *gin.Context) {
	p := jwtmw.PrincipalFromContext(c)
	days, err := h.subs.TrialDaysLeft(c.Request.Context(), p)
	if err != nil {
		slog.Error("failed to compute trial days", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute trial days"})
		return
	}
	c.JSON(http.StatusOK, dto.TrialDaysRes{TrialDaysLeft: days})
}
