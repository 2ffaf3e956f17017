package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/blogd/internal/model"
)

// PostgresContactRepo はPostgreSQLを使用した問い合わせメッセージリポジトリ。
type PostgresContactRepo struct {
	db *sql.DB
}

// NewPostgresContactRepo はPostgresContactRepoを生成する。
func NewPostgresContactRepo(db *sql.DB) *PostgresContactRepo {
	return &PostgresContactRepo{db: db}
}

// Create は問い合わせメッセージを保存する。
func (r *PostgresContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Read, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("問い合わせメッセージの保存に失敗しました: %w", err)
	}
	return nil
}

// List は問い合わせメッセージを作成日時降順で取得する。
func (r *PostgresContactRepo) List(ctx context.Context) ([]*model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, read, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("問い合わせ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var msgs []*model.ContactMessage
	for rows.Next() {
		m := &model.ContactMessage{}
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("問い合わせの読み取りに失敗しました: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("問い合わせ一覧の走査に失敗しました: %w", err)
	}
	return msgs, nil
}

// MarkRead は指定メッセージを既読にする。対象が存在しない場合はfalseを返す。
func (r *PostgresContactRepo) MarkRead(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_messages SET read = true WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("問い合わせの既読化に失敗しました: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("問い合わせの既読化結果の確認に失敗しました: %w", err)
	}
	return n > 0, nil
}

// compile-time interface check
var _ ContactMessageRepository = (*PostgresContactRepo)(nil)
