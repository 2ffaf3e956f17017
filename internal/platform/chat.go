package platform

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/blogd/internal/model"
)

// ChatSimulator はQQ・微信系のチャットプラットフォームの代役。
// ログイン、連絡先一覧、チャット履歴、送信をインメモリデータで模倣する。
// 同時呼び出しはミューテックスで直列化され、後勝ちで共有データを更新する。
type ChatSimulator struct {
	platform model.MessageType
	profile  Profile
	latency  time.Duration

	failureHook

	mu       sync.RWMutex
	loggedIn bool
	contacts []Contact
	logs     map[string][]ChatMessage // contactID → 時系列のチャット履歴
}

// NewQQ はQQシミュレーターをシードデータ付きで生成する。
// latencyは各操作の擬似遅延。0を渡すと遅延なしで動作する（テスト用）。
func NewQQ(latency time.Duration) *ChatSimulator {
	return &ChatSimulator{
		platform: model.MessageTypeQQ,
		profile:  qqProfile,
		latency:  latency,
		contacts: seedQQContacts(),
		logs:     seedQQLogs(),
	}
}

// NewWeChat は微信シミュレーターをシードデータ付きで生成する。
func NewWeChat(latency time.Duration) *ChatSimulator {
	return &ChatSimulator{
		platform: model.MessageTypeWeChat,
		profile:  wechatProfile,
		latency:  latency,
		contacts: seedWeChatContacts(),
		logs:     seedWeChatLogs(),
	}
}

// Platform はこのシミュレーターが代役を務めるプラットフォーム種別を返す。
func (c *ChatSimulator) Platform() model.MessageType {
	return c.platform
}

// Login は擬似ログインを実行する。資格情報の検証は行わず、遅延後に必ず成功する。
// 失敗注入されている場合のみエラーを返す。
func (c *ChatSimulator) Login(ctx context.Context) (*Profile, error) {
	if err := wait(ctx, c.latency); err != nil {
		return nil, err
	}
	if err := c.consume(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.loggedIn = true
	c.mu.Unlock()
	profile := c.profile
	return &profile, nil
}

// Logout は擬似ログアウトを実行する。
func (c *ChatSimulator) Logout(ctx context.Context) error {
	if err := wait(ctx, c.latency); err != nil {
		return err
	}
	c.mu.Lock()
	c.loggedIn = false
	c.mu.Unlock()
	return nil
}

// LoggedIn は現在ログイン中かを返す。
// 統合メッセージセンターはこの値からconnectedを導出する。
func (c *ChatSimulator) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loggedIn
}

// Contacts は連絡先一覧を返す。
func (c *ChatSimulator) Contacts(ctx context.Context) ([]Contact, error) {
	if err := wait(ctx, c.latency); err != nil {
		return nil, err
	}
	if err := c.consume(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Contact, len(c.contacts))
	copy(out, c.contacts)
	return out, nil
}

// Messages は指定連絡先とのチャット履歴をタイムスタンプ昇順で返す。
// 履歴のない連絡先には空スライスを返す。
func (c *ChatSimulator) Messages(ctx context.Context, contactID string) ([]ChatMessage, error) {
	if err := wait(ctx, c.latency); err != nil {
		return nil, err
	}
	if err := c.consume(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	log := c.logs[contactID]
	out := make([]ChatMessage, len(log))
	copy(out, log)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// Send はメッセージを生成してチャット履歴に追記する。
// 生成IDと現在時刻が付与される。リロード相当（再構築）をまたいで永続化はされない。
func (c *ChatSimulator) Send(ctx context.Context, to, content string, kind MessageKind) (*ChatMessage, error) {
	if err := wait(ctx, c.latency); err != nil {
		return nil, err
	}
	if err := c.consume(); err != nil {
		return nil, err
	}
	if kind == "" {
		kind = KindText
	}

	msg := ChatMessage{
		ID:        uuid.New().String(),
		From:      c.profile.OpenID,
		To:        to,
		Content:   content,
		Kind:      kind,
		Timestamp: time.Now(),
		Avatar:    c.profile.Avatar,
	}

	c.mu.Lock()
	c.logs[to] = append(c.logs[to], msg)
	c.mu.Unlock()

	return &msg, nil
}
