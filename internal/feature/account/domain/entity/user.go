// Package entity はaccountフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// User represents a registered user record.
type User struct {
	// ID is the unique identifier for the user (UUID for ordinary users,
	// a fixed constant for the sentinel identities).
	ID string `json:"id"`

	// Name is the display name shown in the UI.
	Name string `json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all stored users (case-sensitive match).
	Email string `json:"email"`

	// Password is stored and compared in the clear. This mirrors the
	// behavior of the product as shipped; see DESIGN.md before changing it.
	Password string `json:"password,omitempty"`

	// CreatedAt is the registration timestamp. It doubles as the trial
	// anchor date: the admin "extend trial" operation shifts it forward.
	CreatedAt time.Time `json:"createdAt"`
}

// IdentityKind は認証済みユーザーの種別を表します。
// センチネルID（管理者・デモ）はログイン時に一度だけ解決され、
// 以降はこの種別で判定します。メールアドレスの文字列比較を各所に散らさないこと。
type IdentityKind string

const (
	// IdentityOrdinary は通常の登録ユーザーです。
	IdentityOrdinary IdentityKind = "ordinary"
	// IdentityAdmin は固定の管理者IDです。usersキーには現れません。
	IdentityAdmin IdentityKind = "admin"
	// IdentityDemo は固定のデモIDです。usersキーには現れません。
	IdentityDemo IdentityKind = "demo"
)

// センチネルIDの定数。ストレージ上のレコードではなく、既知の定数照合で認証されます。
const (
	AdminUserID   = "admin_master"
	AdminEmail    = "admin@budgetai.com"
	AdminPassword = "admin"
	AdminName     = "System Admin"

	DemoUserID   = "demo_user_id"
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo"
	DemoName     = "Mirco (Demo)"
)

// Principal は認証済みのユーザー（ログイン時のスナップショット）と種別の組です。
// ストア操作はグローバルなセッション状態を参照せず、常にPrincipalを明示的に受け取ります。
type Principal struct {
	Kind IdentityKind
	User User
}

// IsAdmin は管理者センチネルかどうかを返します。
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Kind == IdentityAdmin
}

// IsSentinel は通常ユーザー以外（管理者・デモ）かどうかを返します。
func (p *Principal) IsSentinel() bool {
	return p != nil && p.Kind != IdentityOrdinary
}

// OrdinaryPrincipal は保存済みユーザーレコードからPrincipalを生成します。
func OrdinaryPrincipal(u User) *Principal {
	return &Principal{Kind: IdentityOrdinary, User: u}
}

// AdminPrincipal は管理者センチネルのPrincipalを生成します。
func AdminPrincipal() *Principal {
	return &Principal{
		Kind: IdentityAdmin,
		User: User{
			ID:        AdminUserID,
			Name:      AdminName,
			Email:     AdminEmail,
			CreatedAt: time.Now().UTC(),
		},
	}
}

// DemoPrincipal はデモセンチネルのPrincipalを生成します。
// デモの「登録日」はログインのたびに現在時刻へリセットされます。
func DemoPrincipal() *Principal {
	return &Principal{
		Kind: IdentityDemo,
		User: User{
			ID:        DemoUserID,
			Name:      DemoName,
			Email:     DemoEmail,
			CreatedAt: time.Now().UTC(),
		},
	}
}
