// Package blog はブログ記事のドメインロジックを提供する。
//
// 記事はホスト型永続化コラボレーター（PostgreSQL）を第一の取得元とし、
// DBが未設定または空の場合はシード記事へフォールバックする。
// 記事本文はMarkdown原文として保持され、API応答時にサニタイズ済みHTMLへ変換される。
package blog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/repository"
	"github.com/hitoshi/blogd/internal/security"
)

// Service はブログ記事の取得・検索とコメント操作を提供する。
// posts・commentsはDB未設定時nilとなり、その場合はシード記事のみで動作する。
type Service struct {
	posts    repository.PostRepository
	comments repository.PostCommentRepository
	renderer *Renderer
}

// NewService はブログサービスを生成する。
// posts・commentsはnil可。nilの場合はシード記事への読み取り専用フォールバックになる。
func NewService(posts repository.PostRepository, comments repository.PostCommentRepository, renderer *Renderer) *Service {
	return &Service{
		posts:    posts,
		comments: comments,
		renderer: renderer,
	}
}

// sortPostsDesc は記事を作成日時降順に整列する。
func sortPostsDesc(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// All は公開済み記事を作成日時降順で返す。
// DBに記事があればそれを、なければシード記事を返す。
func (s *Service) All(ctx context.Context) ([]*model.Post, error) {
	if s.posts != nil {
		posts, err := s.posts.ListPublished(ctx)
		if err != nil {
			return nil, err
		}
		if len(posts) > 0 {
			return posts, nil
		}
	}
	posts := seedPosts()
	sortPostsDesc(posts)
	return posts, nil
}

// BySlug はスラッグで記事を取得する。DBに見つからなければシード記事を探し、
// どちらにもない場合はPOST_NOT_FOUND。
func (s *Service) BySlug(ctx context.Context, slug string) (*model.Post, error) {
	if s.posts != nil {
		post, err := s.posts.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if post != nil {
			return post, nil
		}
	}
	for _, post := range seedPosts() {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, model.NewPostNotFoundError(slug)
}

// Search はタイトル・要約・本文・タグに対する大文字小文字を区別しない
// 部分一致検索を行う。空クエリは全件を返す。
func (s *Service) Search(ctx context.Context, query string) ([]*model.Post, error) {
	posts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return posts, nil
	}

	needle := strings.ToLower(query)
	var matched []*model.Post
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Excerpt), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) ||
			tagsMatch(p.Tags, needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// tagsMatch はいずれかのタグがneedleを含むかを返す。
func tagsMatch(tags []string, needle string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// ByTag は指定タグを持つ記事を作成日時降順で返す。タグは部分一致。
func (s *Service) ByTag(ctx context.Context, tag string) ([]*model.Post, error) {
	posts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(tag)
	var matched []*model.Post
	for _, p := range posts {
		if tagsMatch(p.Tags, needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Tags は全記事のタグをソート済みの重複なしリストで返す。
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	posts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// RenderHTML は記事のMarkdown本文をサニタイズ済みHTMLへ変換する。
func (s *Service) RenderHTML(post *model.Post) (string, error) {
	return s.renderer.Render(post.Content)
}

// PostInput は記事の作成・更新リクエストの入力値。
type PostInput struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags"`
	Author    string   `json:"author"`
	ReadTime  int      `json:"readTime"`
}

// validate は入力値を検証し、違反ルールの全リストを返す。
func (in *PostInput) validate() []string {
	var violations []string
	if strings.TrimSpace(in.Title) == "" {
		violations = append(violations, "标题不能为空")
	}
	if strings.TrimSpace(in.Slug) == "" {
		violations = append(violations, "slug不能为空")
	}
	if strings.TrimSpace(in.Content) == "" {
		violations = append(violations, "正文不能为空")
	}
	return violations
}

// estimateReadTime は本文の文字数から読了時間（分）を概算する。
func estimateReadTime(content string) int {
	const runesPerMinute = 400
	minutes := len([]rune(content)) / runesPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// CreatePost は記事を新規作成する。書き込みにはDB接続が必須で、
// リポジトリ未設定の場合はDATABASE_REQUIRED。
func (s *Service) CreatePost(ctx context.Context, input *PostInput) (*model.Post, error) {
	if s.posts == nil {
		return nil, model.NewDatabaseRequiredError()
	}
	if violations := input.validate(); len(violations) > 0 {
		return nil, model.NewValidationError(violations)
	}

	now := time.Now().UTC()
	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(input.Title),
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Slug:      strings.TrimSpace(input.Slug),
		Content:   input.Content,
		Published: input.Published,
		Tags:      input.Tags,
		Author:    strings.TrimSpace(input.Author),
		ReadTime:  input.ReadTime,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.ReadTime <= 0 {
		post.ReadTime = estimateReadTime(post.Content)
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost は指定IDの記事を更新する。存在しないIDはPOST_NOT_FOUND。
func (s *Service) UpdatePost(ctx context.Context, id string, input *PostInput) (*model.Post, error) {
	if s.posts == nil {
		return nil, model.NewDatabaseRequiredError()
	}
	if violations := input.validate(); len(violations) > 0 {
		return nil, model.NewValidationError(violations)
	}

	post := &model.Post{
		ID:        id,
		Title:     strings.TrimSpace(input.Title),
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Slug:      strings.TrimSpace(input.Slug),
		Content:   input.Content,
		Published: input.Published,
		Tags:      input.Tags,
		Author:    strings.TrimSpace(input.Author),
		ReadTime:  input.ReadTime,
		UpdatedAt: time.Now().UTC(),
	}
	if post.ReadTime <= 0 {
		post.ReadTime = estimateReadTime(post.Content)
	}
	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, model.NewPostNotFoundError(id)
	}

	// created_atは更新しないため、保存済みの値を読み直して返す
	stored, err := s.posts.FindBySlug(ctx, post.Slug)
	if err == nil && stored != nil {
		return stored, nil
	}
	return post, nil
}

// DeletePost は指定IDの記事を削除する。対象が存在しない場合はfalseを返す。
func (s *Service) DeletePost(ctx context.Context, id string) (bool, error) {
	if s.posts == nil {
		return false, model.NewDatabaseRequiredError()
	}
	return s.posts.DeleteByID(ctx, id)
}

// CommentsByPost は指定記事の承認済みコメントを返す。
// コメントリポジトリが未設定の場合は空リスト。
func (s *Service) CommentsByPost(ctx context.Context, postID string) ([]*model.PostComment, error) {
	if s.comments == nil {
		return nil, nil
	}
	return s.comments.ListApprovedByPostID(ctx, postID)
}

// AddComment は記事への読者コメントを受け付ける。保存直後は未承認で、
// 承認されるまで一覧には現れない。訪問者入力のためHTMLタグは除去される。
// リポジトリが未設定の場合は保存をスキップし、受理したコメントをそのまま返す。
func (s *Service) AddComment(ctx context.Context, postID, name, email, content string) (*model.PostComment, error) {
	name = strings.TrimSpace(security.StripTags(name))
	content = strings.TrimSpace(security.StripTags(content))

	var violations []string
	if name == "" {
		violations = append(violations, "昵称不能为空")
	}
	if content == "" {
		violations = append(violations, "评论内容不能为空")
	}
	if len(violations) > 0 {
		return nil, model.NewValidationError(violations)
	}

	comment := &model.PostComment{
		ID:          uuid.NewString(),
		PostID:      postID,
		AuthorName:  name,
		AuthorEmail: strings.TrimSpace(email),
		Content:     content,
		Approved:    false,
		CreatedAt:   time.Now().UTC(),
	}
	if s.comments != nil {
		if err := s.comments.Create(ctx, comment); err != nil {
			return nil, err
		}
	}
	return comment, nil
}
