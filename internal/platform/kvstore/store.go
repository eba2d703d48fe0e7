// Package kvstore はアプリケーション状態をJSON値のキー・バリュー集合として永続化するストアを提供します。
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound は指定されたキーがストアに存在しないことを示します。
var ErrKeyNotFound = errors.New("kvstore: key not found")

// Store はキー・バリュー永続化層を抽象化します。
// 実装はGORM（SQLite/PostgreSQL）とRedisの2種類があり、di層で選択されます。
type Store interface {
	// Get はキーに対応する値を返します。キーが存在しない場合はErrKeyNotFoundを返します。
	Get(ctx context.Context, key string) ([]byte, error)

	// Set はキーに値を書き込みます。既存の値は上書きされます。
	Set(ctx context.Context, key string, value []byte) error

	// SetMulti は複数キーへの書き込みを単一のアトミック操作として実行します。
	// 途中で失敗した場合、いずれのキーも更新されません。
	SetMulti(ctx context.Context, entries map[string][]byte) error

	// Delete は指定されたキーを削除します。存在しないキーはエラーになりません。
	Delete(ctx context.Context, keys ...string) error
}
