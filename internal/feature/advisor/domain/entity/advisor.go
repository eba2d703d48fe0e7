// Package entity はadvisorフィーチャーのドメインエンティティを定義します。
package entity

import "github.com/shopspring/decimal"

// ReceiptExtraction はレシート画像からの構造化抽出結果です。
type ReceiptExtraction struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        string          `json:"date"`
	Merchant    string          `json:"merchant"`
	Category    string          `json:"category"`
}

// TransactionGuess は音声入力の文字起こしから推定された取引です。
// ユーザーが確認・修正してから登録される前提の推定値です。
type TransactionGuess struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
}
