package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/blogd/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した記事リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// ListPublished は公開済みの記事を作成日時降順で取得する。
func (r *PostgresPostRepo) ListPublished(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, excerpt, slug, content, published, tags,
		        author, read_time, created_at, updated_at
		 FROM posts
		 WHERE published = true
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("記事一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("記事の読み取りに失敗しました: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("記事一覧の走査に失敗しました: %w", err)
	}
	return posts, nil
}

// FindBySlug はスラッグで公開済み記事を検索する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, excerpt, slug, content, published, tags,
		        author, read_time, created_at, updated_at
		 FROM posts
		 WHERE slug = $1 AND published = true`,
		slug,
	)
	post, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("スラッグによる記事の検索に失敗しました: %w", err)
	}
	return post, nil
}

// Create は記事を作成する。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, excerpt, slug, content, published, tags,
		                    author, read_time, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		post.ID, post.Title, post.Excerpt, post.Slug, post.Content,
		post.Published, pq.Array(post.Tags),
		post.Author, post.ReadTime, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("記事の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は記事を更新する。対象が存在しない場合はfalseを返す。
func (r *PostgresPostRepo) Update(ctx context.Context, post *model.Post) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET
		    title = $2, excerpt = $3, slug = $4, content = $5,
		    published = $6, tags = $7, author = $8, read_time = $9,
		    updated_at = $10
		 WHERE id = $1`,
		post.ID, post.Title, post.Excerpt, post.Slug, post.Content,
		post.Published, pq.Array(post.Tags), post.Author, post.ReadTime,
		post.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("記事の更新に失敗しました: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("記事の更新結果の確認に失敗しました: %w", err)
	}
	return n > 0, nil
}

// DeleteByID は指定IDの記事を削除する。関連コメントはCASCADE削除される。
// 対象が存在しない場合はfalseを返す。
func (r *PostgresPostRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("記事の削除に失敗しました: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("記事の削除結果の確認に失敗しました: %w", err)
	}
	return n > 0, nil
}

// scanPost は1行分の記事カラムをmodel.Postへ読み取る。
func scanPost(scan func(...any) error) (*model.Post, error) {
	post := &model.Post{}
	var tags pq.StringArray
	if err := scan(
		&post.ID, &post.Title, &post.Excerpt, &post.Slug, &post.Content,
		&post.Published, &tags,
		&post.Author, &post.ReadTime, &post.CreatedAt, &post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	post.Tags = []string(tags)
	return post, nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
