// Package platform は外部メッセージングAPIの代役となるシミュレーターを提供する。
//
// QQ・微信・メールの3プラットフォームそれぞれがインメモリのデータを持ち、
// タイマーによる擬似レイテンシで非同期I/Oを模倣する。
// 本物のネットワークプロトコルや資格情報検証は行わない。
// 各シミュレーターは起動時に明示的に構築し、参照で渡す。
// モジュールレベルのシングルトンは持たないため、テストは独立インスタンスを作れる。
package platform

import (
	"context"
	"sync"
	"time"
)

// MessageKind はチャットメッセージの種別を表す。
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
	KindEmoji MessageKind = "emoji"
	KindVoice MessageKind = "voice"
	KindVideo MessageKind = "video"
)

// PresenceStatus は連絡先のオンライン状態を表す。
type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
	StatusAway    PresenceStatus = "away"
)

// Profile はプラットフォームにログイン中のアカウント情報を表す。
type Profile struct {
	OpenID   string
	Nickname string
	Avatar   string
	Gender   string
	Province string
	City     string
	Country  string
}

// Contact はプラットフォーム上の連絡先を表す。
type Contact struct {
	ID       string
	Nickname string
	Avatar   string
	Remark   string
	Status   PresenceStatus
	LastSeen *time.Time
}

// ChatMessage は連絡先とのチャットメッセージを表す。
type ChatMessage struct {
	ID        string
	From      string
	To        string
	Content   string
	Kind      MessageKind
	Timestamp time.Time
	Avatar    string
}

// failureHook は意図的な失敗注入の仕組み。
// 通常のシミュレーターのタイマー後段は必ず成功するため、
// エラーハンドリングのテストには明示的に失敗を仕込む必要がある。
type failureHook struct {
	mu   sync.Mutex
	next error
}

// InjectFailure は次の1回の操作を指定エラーで失敗させる。
func (f *failureHook) InjectFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next = err
}

// consume は注入済みエラーを取り出してクリアする。未注入の場合はnil。
func (f *failureHook) consume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.next
	f.next = nil
	return err
}

// wait は擬似レイテンシ分だけブロックする。コンテキストのキャンセルを尊重する。
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// mustTime はシードデータのRFC3339タイムスタンプをパースする。
// シードは定数のためパース失敗はプログラミングエラーとしてpanicする。
func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// timePtr はtime.Timeへのポインタを返すシード用ヘルパー。
func timePtr(t time.Time) *time.Time {
	return &t
}
