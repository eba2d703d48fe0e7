// Package vision はGoogle Cloud Vision APIを使用した店舗名検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"budget_backend/internal/feature/advisor/usecase"
)

// VisionMerchantDetector はレシート画像のロゴ検出で店舗名を推定します。
// Geminiの抽出が店舗名を返さなかった場合のフォールバックとして使用されます。
type VisionMerchantDetector struct {
	client *gvision.ImageAnnotatorClient
}

// VisionMerchantDetectorがMerchantDetectorを実装していることをコンパイル時に検証します。
var _ usecase.MerchantDetector = (*VisionMerchantDetector)(nil)

// NewVisionMerchantDetector はADCを使用してVisionMerchantDetectorの新しいインスタンスを生成します。
func NewVisionMerchantDetector(ctx context.Context) (*VisionMerchantDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionMerchantDetector{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionMerchantDetector) Close() error {
	return v.client.Close()
}

// DetectMerchant は画像バイト列から最もスコアの高いロゴの名称を返します。
// ロゴが検出できなかった場合は空文字列を返します（エラーではありません）。
func (v *VisionMerchantDetector) DetectMerchant(ctx context.Context, image []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LOGO_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", nil
	}
	if resp.Responses[0].Error != nil {
		return "", fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	var (
		best  string
		score float32
	)
	for _, logo := range resp.Responses[0].LogoAnnotations {
		if logo.Score >= score {
			best = logo.Description
			score = logo.Score
		}
	}
	return best, nil
}
