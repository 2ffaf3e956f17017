// Package moment は日常動態フィードのドメインロジックを提供する。
//
// 動態コレクションは単一のJSON配列としてローカルストレージスロットに
// 永続化される。スロットが空または不正な場合はシードデータへ戻る。
// 変更操作はすべて即座にスロットへ書き戻される。
package moment

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/blogd/internal/localslot"
	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/security"
)

// Slot は動態コレクションの永続化先。localslot.Storeの部分集合。
type Slot interface {
	Get(key string, out any) (bool, error)
	Put(key string, v any) error
	Delete(key string) error
}

// Service は日常動態の単一の信頼できる情報源。
type Service struct {
	slot    Slot
	latency time.Duration

	mu      sync.RWMutex
	moments []model.Moment
}

// Option はServiceの構築オプション。
type Option func(*Service)

// WithLatency は各操作の擬似遅延を設定する。デフォルトは遅延なし。
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// NewService は動態サービスを生成する。
// スロットに保存済みの配列があればそれを、なければシードデータを初期状態とする。
// 不正なJSONはスロット側で「存在しない」扱いになるため、ここでも seed へ戻る。
func NewService(slot Slot, opts ...Option) *Service {
	s := &Service{slot: slot}
	for _, opt := range opts {
		opt(s)
	}

	var stored []model.Moment
	found, err := slot.Get(localslot.KeyMoments, &stored)
	if err == nil && found && len(stored) > 0 {
		s.moments = stored
	} else {
		s.moments = seedMoments()
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

// persist は現在のコレクションをスロットへ書き戻す。呼び出し側がロックを保持する。
func (s *Service) persist() error {
	return s.slot.Put(localslot.KeyMoments, s.moments)
}

// sortedCopy は保持中の動態のコピーを投稿時刻降順で返す。
func sortedCopy(moments []model.Moment) []model.Moment {
	out := make([]model.Moment, len(moments))
	copy(out, moments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// All は全動態を投稿時刻降順で返す。
func (s *Service) All(ctx context.Context) ([]model.Moment, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCopy(s.moments), nil
}

// ByID は指定IDの動態を返す。見つからない場合はMOMENT_NOT_FOUND。
func (s *Service) ByID(ctx context.Context, id string) (*model.Moment, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.moments {
		if s.moments[i].ID == id {
			m := s.moments[i]
			return &m, nil
		}
	}
	return nil, model.NewMomentNotFoundError(id)
}

// Input は動態の作成・編集で受け付けるフィールド。
// ID・投稿時刻・いいね数・コメントはサービス側が管理する。
type Input struct {
	Content  string         `json:"content"`
	Images   []string       `json:"images,omitempty"`
	Location string         `json:"location,omitempty"`
	Mood     model.Mood     `json:"mood,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Weather  *model.Weather `json:"weather,omitempty"`
}

// validateInput は作成・編集共通のバリデーションを行う。
func validateInput(in Input) error {
	var violations []string
	if strings.TrimSpace(in.Content) == "" {
		violations = append(violations, "内容不能为空")
	}
	if !model.ValidMood(in.Mood) {
		violations = append(violations, "心情类型无效")
	}
	if len(violations) > 0 {
		return model.NewValidationError(violations)
	}
	return nil
}

// Add は新しい動態を先頭に追加してスロットへ永続化する。管理者専用の操作。
func (s *Service) Add(ctx context.Context, in Input) (*model.Moment, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := model.Moment{
		ID:        uuid.NewString(),
		Content:   in.Content,
		Images:    in.Images,
		Location:  in.Location,
		Mood:      in.Mood,
		Tags:      in.Tags,
		Weather:   in.Weather,
		CreatedAt: time.Now().UTC(),
		Likes:     0,
	}
	s.moments = append([]model.Moment{m}, s.moments...)
	if err := s.persist(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update は既存動態の編集可能フィールドを差し替える。管理者専用の操作。
// ID・投稿時刻・いいね数・コメントは維持される。
func (s *Service) Update(ctx context.Context, id string, in Input) (*model.Moment, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.moments {
		if s.moments[i].ID != id {
			continue
		}
		s.moments[i].Content = in.Content
		s.moments[i].Images = in.Images
		s.moments[i].Location = in.Location
		s.moments[i].Mood = in.Mood
		s.moments[i].Tags = in.Tags
		s.moments[i].Weather = in.Weather
		if err := s.persist(); err != nil {
			return nil, err
		}
		m := s.moments[i]
		return &m, nil
	}
	return nil, model.NewMomentNotFoundError(id)
}

// Delete は指定動態を取り除いてスロットへ永続化する。管理者専用の操作。
// 見つからない場合はfalseのno-op。
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.moments {
		if s.moments[i].ID == id {
			s.moments = append(s.moments[:i], s.moments[i+1:]...)
			if err := s.persist(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Like は指定動態のいいね数を1増やす。見つからない場合はfalseのno-op。
func (s *Service) Like(ctx context.Context, id string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.moments {
		if s.moments[i].ID == id {
			s.moments[i].Likes++
			if err := s.persist(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// AddComment は指定動態へ訪問者のコメントを追記する。
// 訪問者入力のためauthor・contentはHTMLタグを除去して保存する。
// 動態が見つからない場合はMOMENT_NOT_FOUND。
func (s *Service) AddComment(ctx context.Context, momentID, author, content string) (*model.MomentComment, error) {
	author = strings.TrimSpace(security.StripTags(author))
	content = strings.TrimSpace(security.StripTags(content))

	var violations []string
	if author == "" {
		violations = append(violations, "昵称不能为空")
	}
	if content == "" {
		violations = append(violations, "评论内容不能为空")
	}
	if len(violations) > 0 {
		return nil, model.NewValidationError(violations)
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.moments {
		if s.moments[i].ID != momentID {
			continue
		}
		c := model.MomentComment{
			ID:        uuid.NewString(),
			Author:    author,
			Content:   content,
			CreatedAt: time.Now().UTC(),
		}
		s.moments[i].Comments = append(s.moments[i].Comments, c)
		if err := s.persist(); err != nil {
			return nil, err
		}
		return &c, nil
	}
	return nil, model.NewMomentNotFoundError(momentID)
}

// Reset はコレクションをシードデータへ戻してスロットへ永続化する。
func (s *Service) Reset(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moments = seedMoments()
	return s.persist()
}
