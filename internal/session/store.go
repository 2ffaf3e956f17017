// Package session はブラウザ単位のセッション/ロールストアを提供する。
//
// 追跡するのは「このブラウザを誰が使っているか」という単一の論理ユーザーのみで、
// visitor と admin の2状態を持つ。遷移はLogin（資格情報一致でvisitor→admin）と
// Logout（admin→visitor）だけで、有効期限やトークン更新は存在しない。
// 値はローカルストレージスロットに永続化され、変更はHub経由で全ビューに配信される。
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/blogd/internal/localslot"
	"github.com/hitoshi/blogd/internal/model"
)

// 管理者の固定資格情報。実運用の認証方式ではなく、単一管理者ブログの割り切り。
const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

// Slot はセッションフラグの永続化先。localslot.Storeの部分集合。
type Slot interface {
	Get(key string, out any) (bool, error)
	Put(key string, v any) error
	Delete(key string) error
}

// Store はセッション/ロールの単一の信頼できる情報源。
type Store struct {
	slot    Slot
	hub     *Hub
	latency time.Duration

	mu sync.Mutex // 書き込み（永続化＋配信）の直列化
}

// Option はStoreの構築オプション。
type Option func(*Store)

// WithLatency はログイン処理の擬似遅延を設定する。デフォルトは遅延なし。
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// NewStore はセッションストアを生成する。
func NewStore(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot: slot,
		hub:  NewHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hub はセッション変更の配信Hubを返す。ビューの購読に使う。
func (s *Store) Hub() *Hub {
	return s.hub
}

// CurrentUser は永続化済みのユーザーを返す。
// 未保存・壊れた値・読み取り失敗はすべてnil（visitor相当）として扱う。
func (s *Store) CurrentUser() *model.User {
	var user model.User
	found, err := s.slot.Get(localslot.KeyAuth, &user)
	if err != nil {
		slog.Error("failed to read session slot", slog.String("error", err.Error()))
		return nil
	}
	if !found {
		return nil
	}
	return &user
}

// SetCurrentUser はユーザーを永続化（nilの場合はクリア）し、全購読者に配信する。
func (s *Store) SetCurrentUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		if err := s.slot.Delete(localslot.KeyAuth); err != nil {
			return err
		}
	} else {
		if err := s.slot.Put(localslot.KeyAuth, user); err != nil {
			return err
		}
	}

	s.hub.Broadcast(user)
	return nil
}

// Login は管理者としてのログインを試みる。
// 唯一の固定資格情報ペアのみ受け付け、不一致は詳細を明かさない汎用エラーを返す。
func (s *Store) Login(ctx context.Context, username, password string) (*model.User, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if username != adminUsername || password != adminPassword {
		return nil, model.NewLoginFailedError()
	}

	user := &model.User{
		ID:       "admin-001",
		Username: adminUsername,
		Role:     model.RoleAdmin,
		Avatar:   "/api/placeholder/40/40",
	}
	if err := s.SetCurrentUser(user); err != nil {
		return nil, err
	}

	slog.Info("admin logged in", slog.String("username", username))
	return user, nil
}

// Logout はセッションをクリアしてvisitorに戻す。
func (s *Store) Logout() error {
	if err := s.SetCurrentUser(nil); err != nil {
		return err
	}
	slog.Info("user logged out")
	return nil
}

// IsAdmin は現在のユーザーが管理者かを返す。
func (s *Store) IsAdmin() bool {
	return s.CurrentUser().IsAdmin()
}
