package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogd/internal/blog"
	"github.com/hitoshi/blogd/internal/model"
)

// BlogServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type BlogServiceInterface interface {
	All(ctx context.Context) ([]*model.Post, error)
	BySlug(ctx context.Context, slug string) (*model.Post, error)
	Search(ctx context.Context, query string) ([]*model.Post, error)
	ByTag(ctx context.Context, tag string) ([]*model.Post, error)
	Tags(ctx context.Context) ([]string, error)
	RenderHTML(post *model.Post) (string, error)
	CommentsByPost(ctx context.Context, postID string) ([]*model.PostComment, error)
	AddComment(ctx context.Context, postID, name, email, content string) (*model.PostComment, error)
	CreatePost(ctx context.Context, input *blog.PostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, input *blog.PostInput) (*model.Post, error)
	DeletePost(ctx context.Context, id string) (bool, error)
}

// PostHandler は記事閲覧のHTTPハンドラー。
type PostHandler struct {
	service BlogServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service BlogServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// ListPosts は公開記事の一覧を返す。
// クエリパラメータ q で検索、tag でタグ絞り込みができる。
// GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []*model.Post
		err   error
	)

	q := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")

	switch {
	case q != "":
		posts, err = h.service.Search(r.Context(), q)
	case tag != "":
		posts, err = h.service.ByTag(r.Context(), tag)
	default:
		posts, err = h.service.All(r.Context())
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if posts == nil {
		posts = []*model.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// ListTags は全記事のユニークなタグ一覧を返す。
// GET /api/posts/tags
func (h *PostHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.Tags(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	writeJSON(w, http.StatusOK, tags)
}

// GetPost はスラッグで記事を取得する。
// GET /api/posts/{slug}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.service.BySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// renderedPostResponse はレンダリング済み記事のAPIレスポンス。
type renderedPostResponse struct {
	Slug string `json:"slug"`
	HTML string `json:"html"`
}

// RenderPost は記事のMarkdownをサニタイズ済みHTMLに変換して返す。
// GET /api/posts/{slug}/html
func (h *PostHandler) RenderPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.service.BySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	html, err := h.service.RenderHTML(post)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, renderedPostResponse{Slug: post.Slug, HTML: html})
}

// ListComments は記事の承認済みコメント一覧を返す。
// GET /api/posts/{slug}/comments
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "slug")

	comments, err := h.service.CommentsByPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if comments == nil {
		comments = []*model.PostComment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// addPostCommentRequest は記事コメント投稿リクエストのボディ。
type addPostCommentRequest struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
}

// AddComment は記事にコメントを投稿する。承認待ちとして保存される。
// POST /api/posts/{slug}/comments
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "slug")

	var req addPostCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	comment, err := h.service.AddComment(r.Context(), postID, req.AuthorName, req.AuthorEmail, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// CreatePost は記事を新規作成する。管理者専用。
// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input blog.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	post, err := h.service.CreatePost(r.Context(), &input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost は指定IDの記事を更新する。管理者専用。
// PUT /api/posts/manage/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input blog.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, &input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// DeletePost は指定IDの記事を削除する。管理者専用。
// 対象が存在しない場合も200で deleted: false を返す。
// DELETE /api/posts/manage/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.DeletePost(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
