// Package model はドメインモデルを定義する。
package model

import "time"

// Post はブログ記事を表す。
// ホスト型永続化コラボレーター（postsテーブル）またはシード記事から取得される。
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"` // Markdown原文
	Published bool      `json:"published"`
	Tags      []string  `json:"tags"`
	Author    string    `json:"author"`
	ReadTime  int       `json:"read_time"` // 分
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostComment はブログ記事への読者コメント。
// 投稿直後は未承認で、承認済みのもののみ一覧に出る。
type PostComment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactMessage は問い合わせフォームから送信されたメッセージ。
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
