// Package dto はledgerフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"github.com/shopspring/decimal"

	"budget_backend/internal/feature/ledger/domain/entity"
)

// TransactionItem は取引1件のリクエスト/インポート表現です。
// 金額・日付の値の妥当性はデータ層では検証されません（形式のみバインディングで検証）。
type TransactionItem struct {
	ID       string          `json:"id"`
	Date     string          `json:"date" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type" binding:"required,oneof=income expense refund"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
}

// ToEntity はDTOをドメインエンティティへ変換します。
func (t TransactionItem) ToEntity() entity.Transaction {
	return entity.Transaction{
		ID:       t.ID,
		Date:     t.Date,
		Amount:   t.Amount,
		Type:     entity.TransactionType(t.Type),
		Category: t.Category,
		Note:     t.Note,
	}
}
