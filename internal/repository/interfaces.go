// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/blogd/internal/model"
)

// PostRepository はブログ記事の永続化インターフェース。
type PostRepository interface {
	// ListPublished は公開済みの記事を作成日時降順で取得する。
	ListPublished(ctx context.Context) ([]*model.Post, error)

	// FindBySlug はスラッグで公開済み記事を検索する。見つからない場合はnilを返す。
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)

	// Create は記事を作成する。
	Create(ctx context.Context, post *model.Post) error

	// Update は記事を更新する。対象が存在しない場合はfalseを返す。
	Update(ctx context.Context, post *model.Post) (bool, error)

	// DeleteByID は指定IDの記事を削除する。関連コメントはCASCADE削除される。
	// 対象が存在しない場合はfalseを返す。
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// PostCommentRepository はブログ記事コメントの永続化インターフェース。
type PostCommentRepository interface {
	// ListApprovedByPostID は指定記事の承認済みコメントを作成日時昇順で取得する。
	ListApprovedByPostID(ctx context.Context, postID string) ([]*model.PostComment, error)

	// Create はコメントを作成する。投稿直後は未承認。
	Create(ctx context.Context, comment *model.PostComment) error
}

// ContactMessageRepository は問い合わせメッセージの永続化インターフェース。
type ContactMessageRepository interface {
	// Create は問い合わせメッセージを保存する。
	Create(ctx context.Context, msg *model.ContactMessage) error

	// List は問い合わせメッセージを作成日時降順で取得する。
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// MarkRead は指定メッセージを既読にする。対象が存在しない場合はfalseを返す。
	MarkRead(ctx context.Context, id string) (bool, error)
}
