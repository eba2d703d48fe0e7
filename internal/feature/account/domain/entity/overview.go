package entity

// UserOverview は管理コンソールの一覧表示用に、ユーザー・設定・残り試用日数を結合したビューです。
type UserOverview struct {
	User
	Settings      Settings `json:"settings"`
	TrialDaysLeft int      `json:"trialDaysLeft"`
}
