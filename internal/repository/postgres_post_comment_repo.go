package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/blogd/internal/model"
)

// PostgresPostCommentRepo はPostgreSQLを使用した記事コメントリポジトリ。
type PostgresPostCommentRepo struct {
	db *sql.DB
}

// NewPostgresPostCommentRepo はPostgresPostCommentRepoを生成する。
func NewPostgresPostCommentRepo(db *sql.DB) *PostgresPostCommentRepo {
	return &PostgresPostCommentRepo{db: db}
}

// ListApprovedByPostID は指定記事の承認済みコメントを作成日時昇順で取得する。
func (r *PostgresPostCommentRepo) ListApprovedByPostID(ctx context.Context, postID string) ([]*model.PostComment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, author_name, author_email, content, approved, created_at
		 FROM post_comments
		 WHERE post_id = $1 AND approved = true
		 ORDER BY created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var comments []*model.PostComment
	for rows.Next() {
		c := &model.PostComment{}
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail,
			&c.Content, &c.Approved, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("コメントの読み取りに失敗しました: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コメント一覧の走査に失敗しました: %w", err)
	}
	return comments, nil
}

// Create はコメントを作成する。投稿直後は未承認。
func (r *PostgresPostCommentRepo) Create(ctx context.Context, comment *model.PostComment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO post_comments (id, post_id, author_name, author_email,
		                            content, approved, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		comment.ID, comment.PostID, comment.AuthorName, comment.AuthorEmail,
		comment.Content, comment.Approved, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("コメントの作成に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ PostCommentRepository = (*PostgresPostCommentRepo)(nil)
