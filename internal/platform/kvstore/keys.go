package kvstore

// 永続化キーのレイアウト。値はすべてJSONエンコードされます。
//
//	users                  全ユーザーレコードの配列（センチネルIDは含まない）
//	settings_<userId>      ユーザーごとの設定レコード
//	transactions_<userId>  ユーザーごとの取引レコードの配列
//	session_user           ログイン中ユーザーのスナップショット
const (
	KeyUsers   = "users"
	KeySession = "session_user"

	settingsPrefix     = "settings_"
	transactionsPrefix = "transactions_"
)

// SettingsKey はユーザーIDに対応する設定レコードのキーを返します。
func SettingsKey(userID string) string {
	return settingsPrefix + userID
}

// TransactionsKey はユーザーIDに対応する取引コレクションのキーを返します。
func TransactionsKey(userID string) string {
	return transactionsPrefix + userID
}
