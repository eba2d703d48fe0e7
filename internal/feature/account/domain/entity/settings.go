package entity

// SubscriptionStatus はサブスクリプションの状態を表します。
type SubscriptionStatus string

const (
	// StatusTrial は登録から7日間の無料試用期間です。
	StatusTrial SubscriptionStatus = "trial"
	// StatusActive は明示的に有効化された状態です。経過時間による自動遷移はありません。
	StatusActive SubscriptionStatus = "active"
	// StatusExpired は試用期間切れの状態です。自動でtrialへ戻ることはありません。
	StatusExpired SubscriptionStatus = "expired"
)

// TrialDays は無料試用期間の日数です。
const TrialDays = 7

// Settings はユーザーごとの設定レコードです。settings_<userId>キーに保存されます。
type Settings struct {
	Username           string             `json:"username"`
	Plan               PlanID             `json:"plan"`
	AIEnabled          bool               `json:"aiEnabled"`
	Currency           string             `json:"currency"`
	Language           string             `json:"language"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
}

// DefaultSettings は通常ユーザー向けの初期設定を返します。
func DefaultSettings() Settings {
	return Settings{
		Username:           "User",
		Plan:               PlanBase,
		AIEnabled:          true,
		Currency:           "€",
		Language:           "en",
		SubscriptionStatus: StatusTrial,
	}
}

// DemoSettings はデモIDの初期設定を返します。デモは既定で常にactiveです。
func DemoSettings() Settings {
	s := DefaultSettings()
	s.Username = DemoName
	s.SubscriptionStatus = StatusActive
	return s
}

// AdminSettings は管理者IDの初期設定を返します。常にactiveかつ最上位プランです。
func AdminSettings() Settings {
	s := DefaultSettings()
	s.Username = "Admin"
	s.Plan = PlanUltra
	s.SubscriptionStatus = StatusActive
	return s
}
