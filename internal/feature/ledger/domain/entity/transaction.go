// Package entity はledgerフィーチャーのドメインエンティティを定義します。
package entity

import "github.com/shopspring/decimal"

func init() {
	// 保存済みデータの金額は引用符なしのJSON数値。文字列でエンコードすると読めなくなる。
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType は取引の種別を表します。符号は種別から導かれ、金額は常に正で保存されます。
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeRefund  TransactionType = "refund"
)

// Valid は既知の取引種別かどうかを返します。
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeRefund:
		return true
	}
	return false
}

// Transaction は1件の取引レコードです。作成と削除のみで、インプレース更新はありません。
type Transaction struct {
	ID string `json:"id"`

	// Date はカレンダー上の日付（YYYY-MM-DD）です。時刻成分は持ちません。
	Date string `json:"date"`

	// Amount は常に正の値で保存されます。符号はTypeが暗黙に決めます。
	Amount decimal.Decimal `json:"amount"`

	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
}

// Categories はUIが提示する固定のカテゴリ語彙です。
// データ層では強制されません（自由入力がそのまま保存されます）。
var Categories = []string{
	"Housing/Bills",
	"Transportation",
	"Food/Dining",
	"Shopping",
	"Entertainment",
	"Health",
	"Income",
	"Refund",
	"Other",
}
