package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/hitoshi/blogd/internal/model"
)

// Mailer は問い合わせ受信をブログ管理者へ通知する。
type Mailer interface {
	// Notify は問い合わせメッセージの通知を送る。
	Notify(ctx context.Context, msg *model.ContactMessage) error
}

// SMTPMailer はnet/smtpで通知メールを送るMailer実装。
// 宛先またはSMTPアドレスが未設定の場合、送信はスキップされ成功として扱われる。
type SMTPMailer struct {
	addr     string // host:port 空なら未設定
	username string
	password string
	from     string
	to       string
	logger   *slog.Logger
}

// NewSMTPMailer はSMTPMailerを生成する。
func NewSMTPMailer(addr, username, password, from, to string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		addr:     addr,
		username: username,
		password: password,
		from:     from,
		to:       to,
		logger:   logger,
	}
}

// Notify は問い合わせ内容を管理者宛にメール送信する。
// 未設定時はwarnログを出してno-opで成功を返す。
func (m *SMTPMailer) Notify(_ context.Context, msg *model.ContactMessage) error {
	if m.addr == "" || m.to == "" {
		m.logger.Warn("SMTP未設定のため通知メール送信をスキップします")
		return nil
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nReply-To: %s\r\nSubject: %s\r\n\r\n%s <%s> からの問い合わせ:\r\n\r\n%s\r\n",
		m.from, m.to, msg.Email, msg.Subject, msg.Name, msg.Email, msg.Message,
	)

	var auth smtp.Auth
	if m.username != "" {
		host, _, err := net.SplitHostPort(m.addr)
		if err != nil {
			host = m.addr
		}
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, []string{m.to}, []byte(body)); err != nil {
		return fmt.Errorf("通知メールの送信に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ Mailer = (*SMTPMailer)(nil)
