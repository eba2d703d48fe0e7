// Package usecase はledgerフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountentity "budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/ledger/domain"
	"budget_backend/internal/feature/ledger/domain/entity"
)

// TransactionRepository は取引コレクションの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type TransactionRepository interface {
	// Load はユーザーIDの取引コレクションを返します。
	// 未作成の場合はdomain.ErrCollectionNotFoundを返します。
	Load(ctx context.Context, userID string) ([]entity.Transaction, error)

	// Save は取引コレクション全体を置き換えます。
	Save(ctx context.Context, userID string, txs []entity.Transaction) error

	// Purge は取引コレクションのキーを削除します。
	Purge(ctx context.Context, userID string) error
}

// ledgerUsecase は取引と財務集計のビジネスロジックを実装します。
// すべての操作は呼び出し元からPrincipalを明示的に受け取り、
// nilの場合はエラーではなく空の結果を返します（呼び出し側は空を信号として扱う）。
type ledgerUsecase struct {
	txs TransactionRepository
}

// NewLedgerUsecase はledgerUsecaseの新しいインスタンスを生成します。
func NewLedgerUsecase(txs TransactionRepository) *ledgerUsecase {
	return &ledgerUsecase{txs: txs}
}

// List はPrincipalの取引コレクションを返します。
// デモIDの初回アクセスでは固定のデモデータをシードして永続化します（2回目以降は保存済みを返す）。
// それ以外のユーザーは空のコレクションから始まります。
func (u *ledgerUsecase) List(ctx context.Context, p *accountentity.Principal) ([]entity.Transaction, error) {
	if p == nil {
		return []entity.Transaction{}, nil
	}
	txs, err := u.txs.Load(ctx, p.User.ID)
	if err == nil {
		return txs, nil
	}
	if !errors.Is(err, domain.ErrCollectionNotFound) {
		return nil, err
	}
	if p.Kind == accountentity.IdentityDemo {
		seed := demoTransactions()
		if err := u.txs.Save(ctx, p.User.ID, seed); err != nil {
			return nil, fmt.Errorf("failed to seed demo transactions: %w", err)
		}
		return seed, nil
	}
	return []entity.Transaction{}, nil
}

// Add は取引を追加し、更新後のコレクション全体を返します。
// IDが空の場合は新しいUUIDを割り当てます。金額・日付の値の妥当性検証は
// この層では行いません（UI側の責務）。
func (u *ledgerUsecase) Add(ctx context.Context, p *accountentity.Principal, tx entity.Transaction) ([]entity.Transaction, error) {
	if p == nil {
		return []entity.Transaction{}, nil
	}
	current, err := u.List(ctx, p)
	if err != nil {
		return nil, err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	updated := append(current, tx)
	if err := u.txs.Save(ctx, p.User.ID, updated); err != nil {
		return nil, fmt.Errorf("failed to persist transactions: %w", err)
	}
	return updated, nil
}

// Delete はIDで取引を削除し、更新後のコレクション全体を返します。
func (u *ledgerUsecase) Delete(ctx context.Context, p *accountentity.Principal, id string) ([]entity.Transaction, error) {
	if p == nil {
		return []entity.Transaction{}, nil
	}
	current, err := u.List(ctx, p)
	if err != nil {
		return nil, err
	}
	updated := make([]entity.Transaction, 0, len(current))
	for _, tx := range current {
		if tx.ID != id {
			updated = append(updated, tx)
		}
	}
	if err := u.txs.Save(ctx, p.User.ID, updated); err != nil {
		return nil, fmt.Errorf("failed to persist transactions: %w", err)
	}
	return updated, nil
}

// ReplaceAll はインポートされたコレクションで全体を置き換えます。
// 入力の形式検証（JSON配列であること）はトランスポート層で行われ、
// 検証に失敗した場合ここには到達しません。部分的なインポートは発生しません。
func (u *ledgerUsecase) ReplaceAll(ctx context.Context, p *accountentity.Principal, txs []entity.Transaction) ([]entity.Transaction, error) {
	if p == nil {
		return []entity.Transaction{}, nil
	}
	if txs == nil {
		txs = []entity.Transaction{}
	}
	if err := u.txs.Save(ctx, p.User.ID, txs); err != nil {
		return nil, fmt.Errorf("failed to persist transactions: %w", err)
	}
	return txs, nil
}

// Summary は当月スコープの財務集計を計算します。
// 月のスコープは日付文字列のYYYY-MM接頭辞一致で決まります。
// RecentTransactionsのみ全期間から日付降順で最大5件を返します。
func (u *ledgerUsecase) Summary(ctx context.Context, p *accountentity.Principal) (*entity.Summary, error) {
	txs, err := u.List(ctx, p)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthPrefix := now.Format("2006-01")
	day := now.Day()

	income := decimal.Zero
	expense := decimal.Zero
	refund := decimal.Zero
	breakdown := map[string]decimal.Decimal{}
	monthlyCount := 0

	for _, tx := range txs {
		if len(tx.Date) < len(monthPrefix) || tx.Date[:len(monthPrefix)] != monthPrefix {
			continue
		}
		monthlyCount++
		switch tx.Type {
		case entity.TypeIncome:
			income = income.Add(tx.Amount)
		case entity.TypeExpense:
			expense = expense.Add(tx.Amount)
			breakdown[tx.Category] = breakdown[tx.Category].Add(tx.Amount)
		case entity.TypeRefund:
			refund = refund.Add(tx.Amount)
		}
	}

	// 最大カテゴリ。支出がない月は{"None", 0}。同額の場合は名前順で決定的に選ぶ。
	top := entity.CategoryTotal{Name: "None", Amount: decimal.Zero}
	for name, total := range breakdown {
		if total.GreaterThan(top.Amount) ||
			(total.Equal(top.Amount) && top.Name != "None" && name < top.Name) {
			top = entity.CategoryTotal{Name: name, Amount: total}
		}
	}

	dailyAverage := decimal.Zero
	if day > 0 {
		dailyAverage = expense.Div(decimal.NewFromInt(int64(day)))
	}

	savingsRate := decimal.Zero
	if income.IsPositive() {
		savingsRate = income.Sub(expense).Div(income).Mul(decimal.NewFromInt(100))
	}

	recent := make([]entity.Transaction, len(txs))
	copy(recent, txs)
	sort.SliceStable(recent, func(i, j int) bool {
		// ISO日付は辞書順がそのまま時系列順
		return recent[i].Date > recent[j].Date
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &entity.Summary{
		TotalIncome:        income,
		TotalExpense:       expense,
		TotalRefund:        refund,
		Balance:            income.Add(refund).Sub(expense),
		CategoryBreakdown:  breakdown,
		TransactionCount:   monthlyCount,
		TopCategory:        top,
		DailyAverage:       dailyAverage,
		SavingsRate:        savingsRate,
		RecentTransactions: recent,
	}, nil
}
