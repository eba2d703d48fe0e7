package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"budget_backend/internal/feature/ledger/domain/entity"
)

// daysAgo はN日前の日付をYYYY-MM-DD形式で返します。
func daysAgo(days int) string {
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// demoTransactions はデモIDの初回アクセス時にシードされる固定のデモデータセットです。
// 日付は現在時刻からの相対で生成されるため、いつログインしても直近の家計簿に見えます。
func demoTransactions() []entity.Transaction {
	return []entity.Transaction{
		// 収入
		{ID: "1", Date: daysAgo(2), Amount: amount("2800"), Type: entity.TypeIncome, Category: "Income", Note: "Monthly Salary"},
		{ID: "2", Date: daysAgo(15), Amount: amount("150"), Type: entity.TypeIncome, Category: "Income", Note: "Freelance Project"},

		// 支出 - 住居
		{ID: "3", Date: daysAgo(3), Amount: amount("850"), Type: entity.TypeExpense, Category: "Housing/Bills", Note: "Monthly Rent"},
		{ID: "4", Date: daysAgo(5), Amount: amount("120"), Type: entity.TypeExpense, Category: "Housing/Bills", Note: "Electricity Bill"},
		{ID: "5", Date: daysAgo(5), Amount: amount("45"), Type: entity.TypeExpense, Category: "Housing/Bills", Note: "Internet"},

		// 支出 - 食費
		{ID: "6", Date: daysAgo(0), Amount: amount("85.50"), Type: entity.TypeExpense, Category: "Food/Dining", Note: "Weekly Groceries"},
		{ID: "7", Date: daysAgo(1), Amount: amount("12.00"), Type: entity.TypeExpense, Category: "Food/Dining", Note: "Lunch at work"},
		{ID: "8", Date: daysAgo(4), Amount: amount("65.00"), Type: entity.TypeExpense, Category: "Food/Dining", Note: "Dinner with friends"},
		{ID: "9", Date: daysAgo(7), Amount: amount("90.20"), Type: entity.TypeExpense, Category: "Food/Dining", Note: "Supermarket"},

		// 支出 - 交通
		{ID: "10", Date: daysAgo(2), Amount: amount("50.00"), Type: entity.TypeExpense, Category: "Transportation", Note: "Gas Refill"},
		{ID: "11", Date: daysAgo(10), Amount: amount("35.00"), Type: entity.TypeExpense, Category: "Transportation", Note: "Train Ticket"},

		// 支出 - ライフスタイル
		{ID: "12", Date: daysAgo(1), Amount: amount("15.99"), Type: entity.TypeExpense, Category: "Entertainment", Note: "Netflix Subscription"},
		{ID: "13", Date: daysAgo(6), Amount: amount("45.00"), Type: entity.TypeExpense, Category: "Health", Note: "Gym Membership"},
		{ID: "14", Date: daysAgo(8), Amount: amount("120.00"), Type: entity.TypeExpense, Category: "Shopping", Note: "New Sneakers"},

		// 返金
		{ID: "15", Date: daysAgo(12), Amount: amount("30.00"), Type: entity.TypeRefund, Category: "Refund", Note: "Returned Item Amazon"},
	}
}
