// Package model はドメインモデルを定義する。
package model

// Role はブラウザ利用者の権限種別を表す。
type Role string

const (
	// RoleVisitor は閲覧のみ可能な訪問者。未ログイン時のデフォルト。
	RoleVisitor Role = "visitor"
	// RoleAdmin はブログ管理者。投稿・編集・削除が可能。
	RoleAdmin Role = "admin"
)

// User はこのブラウザを利用中の単一の論理ユーザーを表す。
// セッションストアにJSONで永続化される。
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// IsAdmin はユーザーが管理者権限を持つかを返す。nilユーザーは訪問者扱い。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
