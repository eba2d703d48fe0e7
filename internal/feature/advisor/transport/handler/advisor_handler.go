// Package handler はadvisorフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accountentity "budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/advisor/domain"
	"budget_backend/internal/feature/advisor/domain/entity"
	"budget_backend/internal/feature/advisor/transport/http/dto"
	jwtmw "budget_backend/internal/platform/jwt"
)

// AdvisorUsecase はAIアドバイザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AdvisorUsecase interface {
	Advise(ctx context.Context, p *accountentity.Principal, query, chatHistory string) (string, error)
	ScanReceipt(ctx context.Context, p *accountentity.Principal, image []byte, mimeType string) (*entity.ReceiptExtraction, error)
	ParseVoiceNote(ctx context.Context, p *accountentity.Principal, transcript string) (*entity.TransactionGuess, error)
}

// AdvisorHandler はAIアドバイザーのHTTPリクエストを処理します。
type AdvisorHandler struct {
	uc AdvisorUsecase
}

// NewAdvisorHandler はAdvisorHandlerの新しいインスタンスを生成します。
func NewAdvisorHandler(uc AdvisorUsecase) *AdvisorHandler {
	return &AdvisorHandler{uc: uc}
}

// adviseError はアドバイザーのドメインエラーをHTTPステータスへ変換します。
// コラボレーターの失敗はリトライ可能なメッセージとして502で返します。
func adviseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrFeatureLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "ai features are not available on your subscription"})
	case errors.Is(err, domain.ErrAllowanceExhausted):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily advisor limit reached, try again tomorrow"})
	case errors.Is(err, domain.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is empty or exceeds the 10MB limit"})
	case errors.Is(err, domain.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "the advisor is unavailable right now, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "advisor request failed"})
	}
}

// Advise は財務アドバイスを生成します。
//
// エンドポイント: POST /advisor/advice
func (h *AdvisorHandler) Advise(c *gin.Context) {
	var req dto.AdviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("advice validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	p := jwtmw.PrincipalFromContext(c)
	text, err := h.uc.Advise(c.Request.Context(), p, req.Query, req.History)
	if err != nil {
		slog.Warn("advice generation failed", "error", err)
		adviseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdviceRes{Text: text})
}

// ScanReceipt はレシート画像から取引候補を抽出します。
//
// エンドポイント: POST /advisor/receipt
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *AdvisorHandler) ScanReceipt(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("レシート画像の取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("レシート画像のオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("レシート画像のクローズに失敗", "error", err)
		}
	}()

	image, err := io.ReadAll(f)
	if err != nil {
		slog.Error("レシート画像の読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	p := jwtmw.PrincipalFromContext(c)
	extraction, err := h.uc.ScanReceipt(c.Request.Context(), p, image, mimeType)
	if err != nil {
		slog.Warn("receipt scan failed", "error", err)
		adviseError(c, err)
		return
	}
	c.JSON(http.StatusOK, extraction)
}

// ParseVoice は文字起こしテキストから取引の推定値を生成します。
//
// エンドポイント: POST /advisor/voice
func (h *AdvisorHandler) ParseVoice(c *gin.Context) {
	var req dto.VoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("voice validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "transcript is required"})
		return
	}
	p := jwtmw.PrincipalFromContext(c)
	guess, err := h.uc.ParseVoiceNote(c.Request.Context(), p, req.Transcript)
	if err != nil {
		slog.Warn("voice parsing failed", "error", err)
		adviseError(c, err)
		return
	}
	c.JSON(http.StatusOK, guess)
}
