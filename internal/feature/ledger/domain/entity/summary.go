package entity

import "github.com/shopspring/decimal"

// CategoryTotal はカテゴリ名と合計金額の組です。
type CategoryTotal struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary は当月スコープの財務集計です。
// RecentTransactionsのみ全期間を対象とします。
type Summary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalRefund  decimal.Decimal `json:"totalRefund"`

	// Balance = income + refund - expense
	Balance decimal.Decimal `json:"balance"`

	// CategoryBreakdown はexpense種別のみのカテゴリ別合計です。
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`

	TransactionCount int `json:"transactionCount"`

	// TopCategory は支出合計が最大のカテゴリです。支出がない月は{"None", 0}になります。
	TopCategory CategoryTotal `json:"topCategory"`

	// DailyAverage は月初から今日までの支出を経過日数で割った値です。
	DailyAverage decimal.Decimal `json:"dailyAverage"`

	// SavingsRate は(income - expense) / income × 100。incomeが0の月は0です。
	SavingsRate decimal.Decimal `json:"savingsRate"`

	// RecentTransactions は全期間から日付降順で最大5件です。
	RecentTransactions []Transaction `json:"recentTransactions"`
}
