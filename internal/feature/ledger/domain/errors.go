// Package domain はledgerフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrCollectionNotFound は取引コレクションがまだ作成されていないことを示します。
	// コレクションは初回アクセス時に遅延生成されます（デモIDはシードデータ付き）。
	ErrCollectionNotFound = errors.New("transaction collection not found")
)
