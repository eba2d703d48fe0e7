// Package domain はadvisorフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrFeatureLocked はサブスクリプション切れなどでAI機能が利用できないことを示します。
	ErrFeatureLocked = errors.New("ai features are locked for this subscription")

	// ErrAllowanceExhausted は本日のプラン利用枠を使い切ったことを示します。
	ErrAllowanceExhausted = errors.New("daily advisor allowance exhausted")

	// ErrUnavailable はテキスト生成コラボレーターが応答しなかったことを示します。
	// 保存済みデータには影響せず、呼び出し側はリトライ可能なメッセージとして表示します。
	ErrUnavailable = errors.New("advisor temporarily unavailable")

	// ErrInvalidImage は画像が空、またはサイズ上限を超えていることを示します。
	ErrInvalidImage = errors.New("invalid receipt image")
)
