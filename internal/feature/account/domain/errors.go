// Package domain はaccountフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

// ビジネスロジックの失敗を表すドメインエラー。上位層で適切にハンドリングされます。
var (
	// ErrEmailAlreadyExists は登録時にメールアドレスが既に使用されていることを示します。
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials はログイン時に一致するレコード・センチネルがないことを示します。
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound は指定された条件に一致するユーザーがいないことを示します。
	ErrUserNotFound = errors.New("user not found")

	// ErrNoActiveSession はセッションスナップショットが存在しないことを示します。
	// データ操作はこのエラーではなく空の結果を返す設計です（呼び出し側は空を信号として扱う）。
	ErrNoActiveSession = errors.New("no active session")

	// ErrSettingsNotFound は設定レコードが未作成であることを示します。
	// 設定は初回読み取り時に遅延生成されるため、通常は内部でのみ使用されます。
	ErrSettingsNotFound = errors.New("settings not found")
)
