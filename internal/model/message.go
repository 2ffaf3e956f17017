// Package model はドメインモデルを定義する。
package model

import "time"

// MessageType は統合メッセージの発信元プラットフォーム種別を表す。
type MessageType string

const (
	// MessageTypeQQ はQQ由来のメッセージ。
	MessageTypeQQ MessageType = "qq"
	// MessageTypeWeChat は微信由来のメッセージ。
	MessageTypeWeChat MessageType = "wechat"
	// MessageTypeEmail はメール由来のメッセージ。
	MessageTypeEmail MessageType = "email"
)

// PlatformLabel はメッセージ種別に対応する表示名を返す。
// 表示名は生成時に1回だけ導出され、以降は再導出しない。
func PlatformLabel(t MessageType) string {
	switch t {
	case MessageTypeQQ:
		return "QQ"
	case MessageTypeWeChat:
		return "微信"
	case MessageTypeEmail:
		return "邮箱"
	default:
		return string(t)
	}
}

// UnifiedMessage は3プラットフォームの受発信アイテムを正規化した統合メッセージ。
// Subjectはメール由来のメッセージのみ持つが、型としては強制しない。
type UnifiedMessage struct {
	ID        string
	Type      MessageType
	From      string
	To        string
	Content   string
	Subject   string
	Timestamp time.Time
	Read      bool
	Avatar    string
	Platform  string
}

// MessageStats は統合メッセージコレクションから導出される統計値。
// 保存せず、常にコレクション全体の1パスで再計算する。
type MessageStats struct {
	Total  int
	Unread int
	QQ     int
	WeChat int
	Email  int
}

// PlatformPresence は1プラットフォームの接続状態と未読数のスナップショット。
type PlatformPresence struct {
	Connected   bool
	UnreadCount int
}

// PlatformStatus は全プラットフォームの接続・未読スナップショット。
// Connectedは各シミュレーターの実際のログイン状態から導出する。
type PlatformStatus struct {
	QQ     PlatformPresence
	WeChat PlatformPresence
	Email  PlatformPresence
}
