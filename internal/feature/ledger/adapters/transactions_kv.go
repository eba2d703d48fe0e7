// Package adapters はledgerフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"budget_backend/internal/feature/ledger/domain"
	"budget_backend/internal/feature/ledger/domain/entity"
	"budget_backend/internal/feature/ledger/usecase"
	"budget_backend/internal/platform/kvstore"
)

// transactionsKV はTransactionRepositoryインターフェースのキー・バリューストア実装です。
// 各ユーザーの取引をtransactions_<userId>キー配下のJSON配列として保持します。
type transactionsKV struct {
	store kvstore.Store
}

// transactionsKVがTransactionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TransactionRepository = (*transactionsKV)(nil)

// NewTransactionsKV は指定されたストアでtransactionsKVの新しいインスタンスを生成します。
func NewTransactionsKV(store kvstore.Store) *transactionsKV {
	return &transactionsKV{store: store}
}

// Load はユーザーIDの取引コレクションを返します。
// キーが未作成の場合はdomain.ErrCollectionNotFoundを返します。
func (r *transactionsKV) Load(ctx context.Context, userID string) ([]entity.Transaction, error) {
	data, err := r.store.Get(ctx, kvstore.TransactionsKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, err
	}
	var txs []entity.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txs, nil
}

// Save は取引コレクション全体を置き換えます。
func (r *transactionsKV) Save(ctx context.Context, userID string, txs []entity.Transaction) error {
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	return r.store.Set(ctx, kvstore.TransactionsKey(userID), data)
}

// Purge は取引コレクションのキーを削除します。アカウント削除カスケードから呼ばれます。
func (r *transactionsKV) Purge(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, kvstore.TransactionsKey(userID))
}
