// Package gemini はGoogle Gemini APIを使用したテキスト生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"budget_backend/internal/feature/advisor/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiGenerator はGoogle Gemini APIを使用してアドバイス・抽出テキストを生成します。
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// GeminiGeneratorがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator はADCを使用してGeminiGeneratorの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiGenerator(ctx context.Context) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: DefaultModel}, nil
}

// Generate はプロンプトから応答テキストを生成します。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}

// GenerateVision はプロンプトとインライン画像から応答テキストを生成します。
// 構造化抽出ではブレを抑えるためtemperatureを指定しません。
func (g *GeminiGenerator) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
