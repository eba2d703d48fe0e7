// Package usecase はadvisorフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	accountentity "budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/advisor/domain"
	"budget_backend/internal/feature/advisor/domain/entity"
	ledgerentity "budget_backend/internal/feature/ledger/domain/entity"
)

const (
	// MaxImageSize はレシート画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
)

// TextGenerator はテキスト生成コラボレーターを抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type TextGenerator interface {
	// Generate はプロンプトから応答テキストを生成します。
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateVision はプロンプトと画像から応答テキストを生成します。
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// MerchantDetector はレシート画像から店舗名を検出します。
type MerchantDetector interface {
	DetectMerchant(ctx context.Context, image []byte) (string, error)
}

// SettingsProvider は現在の設定（遅延生成・期限チェック込み）を提供します。
// 実装はaccountフィーチャーのsubscription usecaseです。
type SettingsProvider interface {
	Settings(ctx context.Context, p *accountentity.Principal) (*accountentity.Settings, error)
}

// SummaryProvider は当月の財務集計を提供します。実装はledgerフィーチャーのusecaseです。
type SummaryProvider interface {
	Summary(ctx context.Context, p *accountentity.Principal) (*ledgerentity.Summary, error)
}

// Allower はプラン別の1日あたりの利用枠を判定します。
type Allower interface {
	Allow(key string, limit int) bool
}

// advisorUsecase はAIアドバイザーのビジネスロジックを実装します。
// コラボレーターの失敗は保存済みデータに影響せず、常にdomain.ErrUnavailableへ
// 変換されて呼び出し側でリトライ可能なメッセージになります。
type advisorUsecase struct {
	gen       TextGenerator
	merchants MerchantDetector
	settings  SettingsProvider
	summaries SummaryProvider
	allowance Allower
}

// NewAdvisorUsecase はadvisorUsecaseの新しいインスタンスを生成します。
func NewAdvisorUsecase(gen TextGenerator, merchants MerchantDetector,
	settings SettingsProvider, summaries SummaryProvider, allowance Allower) *advisorUsecase {
	return &advisorUsecase{
		gen:       gen,
		merchants: merchants,
		settings:  settings,
		summaries: summaries,
		allowance: allowance,
	}
}

// gate はAI機能の利用可否を判定し、利用可能なら設定を返します。
// 期限切れ・AI無効・本日の利用枠超過はそれぞれドメインエラーになります。
func (u *advisorUsecase) gate(ctx context.Context, p *accountentity.Principal) (*accountentity.Settings, error) {
	s, err := u.settings.Settings(ctx, p)
	if err != nil {
		return nil, err
	}
	if s.SubscriptionStatus == accountentity.StatusExpired || !s.AIEnabled {
		return nil, domain.ErrFeatureLocked
	}
	plan := accountentity.PlanByID(s.Plan)
	if !u.allowance.Allow(p.User.ID, plan.AdvisorLimit) {
		return nil, domain.ErrAllowanceExhausted
	}
	return s, nil
}

// Advise はユーザーの質問と財務状況からアドバイステキストを生成します。
func (u *advisorUsecase) Advise(ctx context.Context, p *accountentity.Principal, query, chatHistory string) (string, error) {
	if p == nil {
		return "", domain.ErrFeatureLocked
	}
	s, err := u.gate(ctx, p)
	if err != nil {
		return "", err
	}
	summary, err := u.summaries.Summary(ctx, p)
	if err != nil {
		return "", err
	}

	breakdown, err := json.Marshal(summary.CategoryBreakdown)
	if err != nil {
		return "", fmt.Errorf("failed to encode breakdown: %w", err)
	}

	prompt := fmt.Sprintf(`You are an expert financial advisor named "Budget AI". You are precise, slightly strict but helpful.

USER CONTEXT:
- Name: %s
- Currency: %s
- Current Month Income: %s
- Current Month Expenses: %s
- Current Month Refunds: %s
- Net Balance: %s
- Expense Breakdown: %s

INSTRUCTIONS:
- Analyze the user's financial situation based on the data above.
- Provide actionable, specific advice.
- If expenses > income, be critical and suggest specific cuts based on the breakdown.
- Keep answers concise (under 200 words) unless asked for a detailed plan.
- Use Markdown for formatting.

Previous conversation context:
%s

USER QUERY: %q`,
		s.Username, s.Currency,
		summary.TotalIncome, summary.TotalExpense, summary.TotalRefund, summary.Balance,
		breakdown, chatHistory, query)

	text, err := u.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return text, nil
}

// ScanReceipt はレシート画像から取引候補の構造化データを抽出します。
// 店舗名が抽出できなかった場合はロゴ検出でのフォールバックを試みます。
func (u *advisorUsecase) ScanReceipt(ctx context.Context, p *accountentity.Principal, image []byte, mimeType string) (*entity.ReceiptExtraction, error) {
	if p == nil {
		return nil, domain.ErrFeatureLocked
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image data is empty", domain.ErrInvalidImage)
	}
	if len(image) > MaxImageSize {
		return nil, fmt.Errorf("%w: image size exceeds maximum of %d bytes", domain.ErrInvalidImage, MaxImageSize)
	}
	if _, err := u.gate(ctx, p); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analyze this receipt image. Extract the following information in JSON format:
- totalAmount: The total sum paid (number only).
- date: The date of purchase in YYYY-MM-DD format. If not found, use today (%s).
- merchant: The name of the store/merchant.
- category: Suggest one category from this list: %s.

Return ONLY the JSON string, no markdown code blocks.`,
		time.Now().Format("2006-01-02"), strings.Join(ledgerentity.Categories, ", "))

	text, err := u.gen.GenerateVision(ctx, prompt, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	var extraction entity.ReceiptExtraction
	if err := json.Unmarshal([]byte(stripFences(text)), &extraction); err != nil {
		return nil, fmt.Errorf("%w: unparsable extraction: %v", domain.ErrUnavailable, err)
	}

	if extraction.Merchant == "" && u.merchants != nil {
		// ベストエフォート。ロゴ検出の失敗で抽出全体を失敗させない。
		if merchant, err := u.merchants.DetectMerchant(ctx, image); err == nil {
			extraction.Merchant = merchant
		}
	}
	return &extraction, nil
}

// ParseVoiceNote は文字起こしされた音声入力から取引の推定値を生成します。
func (u *advisorUsecase) ParseVoiceNote(ctx context.Context, p *accountentity.Principal, transcript string) (*entity.TransactionGuess, error) {
	if p == nil {
		return nil, domain.ErrFeatureLocked
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("transcript is empty")
	}
	if _, err := u.gate(ctx, p); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`The user dictated an expense or income for their budget app. Today is %s.
Transcript: %q

Extract the transaction in JSON format:
- amount: The amount (number only, always positive).
- type: One of "income", "expense", "refund".
- date: YYYY-MM-DD. Resolve relative dates like "yesterday" against today. Default to today.
- category: Suggest one category from this list: %s.
- note: A short description taken from the transcript.

Return ONLY the JSON string, no markdown code blocks.`,
		time.Now().Format("2006-01-02"), transcript, strings.Join(ledgerentity.Categories, ", "))

	text, err := u.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	var guess entity.TransactionGuess
	if err := json.Unmarshal([]byte(stripFences(text)), &guess); err != nil {
		return nil, fmt.Errorf("%w: unparsable transaction guess: %v", domain.ErrUnavailable, err)
	}
	return &guess, nil
}

// stripFences はモデルが指示を無視して付けたマークダウンのコードフェンスを取り除きます。
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
