// Package message は統合メッセージセンターのドメインロジックを提供する。
//
// QQ・微信・メールの3フィードをマージ済みのコレクションとして保持し、
// ソート・フィルタ・検索・既読化・削除と統計の導出を行う。
// コレクションは明示的なストアとして構築され、参照で渡される。
package message

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hitoshi/blogd/internal/model"
)

// PresenceSource はプラットフォームの接続状態の問い合わせ先。
// platform.ChatSimulator / platform.Mailbox がこれを満たす。
type PresenceSource interface {
	LoggedIn() bool
}

// Service は統合メッセージの集約サービス。
// 読み取りはタイムスタンプ降順ソート済みのコピーを返し、
// 変更は共有コレクションをインプレースで更新する。
// 統計は常にコレクション全体から再計算し、キャッシュ値のパッチはしない。
type Service struct {
	latency time.Duration

	qq     PresenceSource
	wechat PresenceSource
	mail   PresenceSource

	mu       sync.RWMutex
	messages []model.UnifiedMessage
}

// Option はServiceの構築オプション。
type Option func(*Service)

// WithLatency は各操作の擬似遅延を設定する。デフォルトは遅延なし。
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// WithPresence は接続状態の導出元となるシミュレーターを設定する。
// 未設定のプラットフォームは常に未接続として報告される。
func WithPresence(qq, wechat, mail PresenceSource) Option {
	return func(s *Service) {
		s.qq = qq
		s.wechat = wechat
		s.mail = mail
	}
}

// WithMessages は初期メッセージを差し替える。テスト用。
func WithMessages(msgs []model.UnifiedMessage) Option {
	return func(s *Service) { s.messages = msgs }
}

// NewService は統合メッセージサービスをシードデータ付きで生成する。
func NewService(opts ...Option) *Service {
	s := &Service{
		messages: seedMessages(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// wait は擬似レイテンシ分だけブロックする。コンテキストのキャンセルを尊重する。
func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// sortedCopy は保持中メッセージのコピーをタイムスタンプ降順で返す。
// 同時刻のメッセージは元の並び順を維持する（安定ソート）。
func sortedCopy(msgs []model.UnifiedMessage) []model.UnifiedMessage {
	out := make([]model.UnifiedMessage, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// All は全統合メッセージをタイムスタンプ降順で返す。
func (s *Service) All(ctx context.Context) ([]model.UnifiedMessage, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCopy(s.messages), nil
}

// Stats は統計値をコレクション全体の1パスで再計算して返す。
func (s *Service) Stats(ctx context.Context) (model.MessageStats, error) {
	if err := s.wait(ctx); err != nil {
		return model.MessageStats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return computeStats(s.messages), nil
}

// computeStats は渡されたメッセージ群から統計を導出する。
func computeStats(msgs []model.UnifiedMessage) model.MessageStats {
	var stats model.MessageStats
	for _, m := range msgs {
		stats.Total++
		if !m.Read {
			stats.Unread++
		}
		switch m.Type {
		case model.MessageTypeQQ:
			stats.QQ++
		case model.MessageTypeWeChat:
			stats.WeChat++
		case model.MessageTypeEmail:
			stats.Email++
		}
	}
	return stats
}

// FilterAll は全プラットフォームを対象とするフィルタ値。
const FilterAll = "all"

// validFilter はフィルタ値が有効かを返す。
func validFilter(filter string) bool {
	switch filter {
	case FilterAll,
		string(model.MessageTypeQQ),
		string(model.MessageTypeWeChat),
		string(model.MessageTypeEmail):
		return true
	default:
		return false
	}
}

// ByType は種別でフィルタしたメッセージをタイムスタンプ降順で返す。
// "all" は全件を返す。未知のフィルタはバリデーションエラー。
func (s *Service) ByType(ctx context.Context, filter string) ([]model.UnifiedMessage, error) {
	if !validFilter(filter) {
		return nil, model.NewInvalidFilterError(filter)
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter == FilterAll {
		return sortedCopy(s.messages), nil
	}
	var filtered []model.UnifiedMessage
	for _, m := range s.messages {
		if string(m.Type) == filter {
			filtered = append(filtered, m)
		}
	}
	return sortedCopy(filtered), nil
}

// Search はcontent・from・subject（存在する場合）に対する大文字小文字を
// 区別しない部分一致検索を行う。空クエリは現在のフィルタの結果をそのまま返す。
func (s *Service) Search(ctx context.Context, filter, query string) ([]model.UnifiedMessage, error) {
	if query == "" {
		return s.ByType(ctx, filter)
	}
	if !validFilter(filter) {
		return nil, model.NewInvalidFilterError(filter)
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var matched []model.UnifiedMessage
	for _, m := range s.messages {
		if filter != FilterAll && string(m.Type) != filter {
			continue
		}
		if strings.Contains(strings.ToLower(m.Content), needle) ||
			strings.Contains(strings.ToLower(m.From), needle) ||
			(m.Subject != "" && strings.Contains(strings.ToLower(m.Subject), needle)) {
			matched = append(matched, m)
		}
	}
	return sortedCopy(matched), nil
}

// MarkRead は指定メッセージを既読にする。見つからない場合はfalseのno-op。
// 既読済みメッセージへの再適用は状態を変えない（冪等）。
func (s *Service) MarkRead(ctx context.Context, id string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

// Delete は指定メッセージをコレクションから取り除く。
// ハードデリートであり、プロセス稼働中は復元できない。見つからない場合はfalse。
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Status は全プラットフォームの接続・未読スナップショットを返す。
// Connectedは各シミュレーターの実際のログイン状態から導出する。
func (s *Service) Status(ctx context.Context) (model.PlatformStatus, error) {
	if err := s.wait(ctx); err != nil {
		return model.PlatformStatus{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	unread := func(t model.MessageType) int {
		n := 0
		for _, m := range s.messages {
			if m.Type == t && !m.Read {
				n++
			}
		}
		return n
	}
	connected := func(src PresenceSource) bool {
		return src != nil && src.LoggedIn()
	}

	return model.PlatformStatus{
		QQ: model.PlatformPresence{
			Connected:   connected(s.qq),
			UnreadCount: unread(model.MessageTypeQQ),
		},
		WeChat: model.PlatformPresence{
			Connected:   connected(s.wechat),
			UnreadCount: unread(model.MessageTypeWeChat),
		},
		Email: model.PlatformPresence{
			Connected:   connected(s.mail),
			UnreadCount: unread(model.MessageTypeEmail),
		},
	}, nil
}
