// Package contact は問い合わせフォームのドメインロジックを提供する。
//
// 送信内容はバリデーション後、ホスト型永続化コラボレーター（contact_messagesテーブル）へ
// 保存され、SMTP通知が送られる。DB・SMTPのどちらも未設定時は段階的に縮退し、
// 送信自体は成功として扱われる。
package contact

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/repository"
	"github.com/hitoshi/blogd/internal/security"
)

// メッセージ本文の上限文字数。
const maxMessageLength = 1000

// emailPattern は簡易的なメールアドレス形式チェック。
// 空白を含まないlocal@domain.tld形状のみ受け付ける。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission は問い合わせフォームの入力。
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate は入力を検証し、違反の完全なリストを返す。
// 空リストは入力が有効なことを示す。
func Validate(sub Submission) []string {
	var violations []string

	if strings.TrimSpace(sub.Name) == "" {
		violations = append(violations, "姓名不能为空")
	}

	email := strings.TrimSpace(sub.Email)
	if email == "" {
		violations = append(violations, "邮箱不能为空")
	} else if !emailPattern.MatchString(email) {
		violations = append(violations, "邮箱格式不正确")
	}

	if strings.TrimSpace(sub.Subject) == "" {
		violations = append(violations, "主题不能为空")
	}

	if strings.TrimSpace(sub.Message) == "" {
		violations = append(violations, "消息内容不能为空")
	}
	if len([]rune(sub.Message)) > maxMessageLength {
		violations = append(violations, "消息内容不能超过1000字符")
	}

	return violations
}

// Service は問い合わせの受付処理を提供する。
type Service struct {
	repo   repository.ContactMessageRepository
	mailer Mailer
	logger *slog.Logger
}

// NewService は問い合わせサービスを生成する。repo・mailerはnil可。
func NewService(repo repository.ContactMessageRepository, mailer Mailer, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		logger: logger,
	}
}

// Submit は問い合わせを受け付ける。バリデーション違反はVALIDATION_FAILEDとして
// 全違反を返す。DB未設定時は保存をスキップし、通知メーラー未設定時も
// 送信成功として扱う。
func (s *Service) Submit(ctx context.Context, sub Submission) (*model.ContactMessage, error) {
	if violations := Validate(sub); len(violations) > 0 {
		return nil, model.NewValidationError(violations)
	}

	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(security.StripTags(sub.Name)),
		Email:     strings.TrimSpace(sub.Email),
		Subject:   strings.TrimSpace(security.StripTags(sub.Subject)),
		Message:   strings.TrimSpace(security.StripTags(sub.Message)),
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, msg); err != nil {
			return nil, err
		}
	} else {
		s.logger.Warn("DB未設定のため問い合わせの保存をスキップします", "id", msg.ID)
	}

	if s.mailer != nil {
		if err := s.mailer.Notify(ctx, msg); err != nil {
			// 通知の失敗は受付の成否に影響させない
			s.logger.Error("問い合わせ通知メールの送信に失敗しました", "error", err, "id", msg.ID)
		}
	}

	return msg, nil
}

// Messages は問い合わせメッセージを作成日時降順で返す。
// DB未設定時は空リスト。
func (s *Service) Messages(ctx context.Context) ([]*model.ContactMessage, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.List(ctx)
}

// MarkRead は指定メッセージを既読にする。対象が存在しない場合はfalseを返す。
// DB未設定時は何もせずfalse。
func (s *Service) MarkRead(ctx context.Context, id string) (bool, error) {
	if s.repo == nil {
		return false, nil
	}
	return s.repo.MarkRead(ctx, id)
}
