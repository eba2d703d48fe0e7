package di

import (
	"context"
	"fmt"
	"log/slog"

	"budget_backend/internal/feature/advisor/adapters/gemini"
	"budget_backend/internal/feature/advisor/adapters/vision"
	"budget_backend/internal/feature/advisor/domain"
	"budget_backend/internal/feature/advisor/usecase"
)

// unavailableGenerator はGeminiクライアントが構成できなかったときの代替実装です。
// サーバー自体は起動し、アドバイザーのエンドポイントのみが502を返します。
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: text generator is not configured", domain.ErrUnavailable)
}

func (unavailableGenerator) GenerateVision(context.Context, string, []byte, string) (string, error) {
	return "", fmt.Errorf("%w: text generator is not configured", domain.ErrUnavailable)
}

// NewTextGenerator creates the Gemini-backed TextGenerator.
// If the client cannot be configured (missing credentials), a stub that
// reports the advisor as unavailable is returned instead of failing startup.
func NewTextGenerator(ctx context.Context) usecase.TextGenerator {
	gen, err := gemini.NewGeminiGenerator(ctx)
	if err != nil {
		slog.Warn("gemini client unavailable, advisor disabled", "error", err)
		return unavailableGenerator{}
	}
	return gen
}

// noopMerchantDetector はVisionクライアントが構成できなかったときの代替実装です。
// レシート解析自体は成功し、店舗名のフォールバック検出だけが省略されます。
type noopMerchantDetector struct{}

func (noopMerchantDetector) DetectMerchant(context.Context, []byte) (string, error) {
	return "", nil
}

// NewMerchantDetector creates the Cloud Vision-backed MerchantDetector,
// falling back to a no-op detector when credentials are missing.
func NewMerchantDetector(ctx context.Context) usecase.MerchantDetector {
	det, err := vision.NewVisionMerchantDetector(ctx)
	if err != nil {
		slog.Warn("vision client unavailable, merchant fallback disabled", "error", err)
		return noopMerchantDetector{}
	}
	return det
}
