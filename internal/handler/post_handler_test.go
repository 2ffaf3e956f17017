package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogd/internal/blog"
	"github.com/hitoshi/blogd/internal/model"
)

// mockBlogService はBlogServiceInterfaceの関数リテラルモック。
type mockBlogService struct {
	allFn            func(ctx context.Context) ([]*model.Post, error)
	bySlugFn         func(ctx context.Context, slug string) (*model.Post, error)
	searchFn         func(ctx context.Context, query string) ([]*model.Post, error)
	byTagFn          func(ctx context.Context, tag string) ([]*model.Post, error)
	tagsFn           func(ctx context.Context) ([]string, error)
	renderHTMLFn     func(post *model.Post) (string, error)
	commentsByPostFn func(ctx context.Context, postID string) ([]*model.PostComment, error)
	addCommentFn     func(ctx context.Context, postID, name, email, content string) (*model.PostComment, error)
	createPostFn     func(ctx context.Context, input *blog.PostInput) (*model.Post, error)
	updatePostFn     func(ctx context.Context, id string, input *blog.PostInput) (*model.Post, error)
	deletePostFn     func(ctx context.Context, id string) (bool, error)
}

func (m *mockBlogService) All(ctx context.Context) ([]*model.Post, error) {
	return m.allFn(ctx)
}

func (m *mockBlogService) BySlug(ctx context.Context, slug string) (*model.Post, error) {
	return m.bySlugFn(ctx, slug)
}

func (m *mockBlogService) Search(ctx context.Context, query string) ([]*model.Post, error) {
	return m.searchFn(ctx, query)
}

func (m *mockBlogService) ByTag(ctx context.Context, tag string) ([]*model.Post, error) {
	return m.byTagFn(ctx, tag)
}

func (m *mockBlogService) Tags(ctx context.Context) ([]string, error) {
	return m.tagsFn(ctx)
}

func (m *mockBlogService) RenderHTML(post *model.Post) (string, error) {
	return m.renderHTMLFn(post)
}

func (m *mockBlogService) CommentsByPost(ctx context.Context, postID string) ([]*model.PostComment, error) {
	return m.commentsByPostFn(ctx, postID)
}

func (m *mockBlogService) AddComment(ctx context.Context, postID, name, email, content string) (*model.PostComment, error) {
	return m.addCommentFn(ctx, postID, name, email, content)
}

func (m *mockBlogService) CreatePost(ctx context.Context, input *blog.PostInput) (*model.Post, error) {
	return m.createPostFn(ctx, input)
}

func (m *mockBlogService) UpdatePost(ctx context.Context, id string, input *blog.PostInput) (*model.Post, error) {
	return m.updatePostFn(ctx, id, input)
}

func (m *mockBlogService) DeletePost(ctx context.Context, id string) (bool, error) {
	return m.deletePostFn(ctx, id)
}

// newPostRouter はPostHandlerのルートだけを持つテスト用ルーターを返す。
func newPostRouter(service BlogServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewPostHandler(service)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Get("/tags", h.ListTags)
		r.Post("/", h.CreatePost)
		r.Route("/manage/{id}", func(r chi.Router) {
			r.Put("/", h.UpdatePost)
			r.Delete("/", h.DeletePost)
		})
		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", h.GetPost)
			r.Get("/html", h.RenderPost)
			r.Get("/comments", h.ListComments)
			r.Post("/comments", h.AddComment)
		})
	})

	return r
}

func testPost(slug string) *model.Post {
	return &model.Post{
		ID:        slug,
		Title:     "テスト記事",
		Slug:      slug,
		Excerpt:   "概要",
		Content:   "# 本文",
		Published: true,
		Tags:      []string{"Go"},
		Author:    "博主",
		ReadTime:  3,
		CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestListPosts_ReturnsAllPosts(t *testing.T) {
	service := &mockBlogService{
		allFn: func(ctx context.Context) ([]*model.Post, error) {
			return []*model.Post{testPost("first"), testPost("second")}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var posts []model.Post
	if err := json.NewDecoder(w.Result().Body).Decode(&posts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("len(posts) = %d, want 2", len(posts))
	}
}

func TestListPosts_SearchQueryUsesSearch(t *testing.T) {
	var gotQuery string
	service := &mockBlogService{
		searchFn: func(ctx context.Context, query string) ([]*model.Post, error) {
			gotQuery = query
			return []*model.Post{testPost("match")}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts?q=Hooks", nil)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if gotQuery != "Hooks" {
		t.Errorf("query = %q, want %q", gotQuery, "Hooks")
	}
}

func TestListPosts_TagQueryUsesByTag(t *testing.T) {
	var gotTag string
	service := &mockBlogService{
		byTagFn: func(ctx context.Context, tag string) ([]*model.Post, error) {
			gotTag = tag
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts?tag=React", nil)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if gotTag != "React" {
		t.Errorf("tag = %q, want %q", gotTag, "React")
	}

	// 空の結果は空配列としてシリアライズされる
	body := w.Body.String()
	if !strings.HasPrefix(strings.TrimSpace(body), "[") {
		t.Errorf("expected JSON array response, got %q", body)
	}
}

func TestGetPost_ReturnsPost(t *testing.T) {
	service := &mockBlogService{
		bySlugFn: func(ctx context.Context, slug string) (*model.Post, error) {
			if slug != "react-hooks-guide" {
				t.Errorf("slug = %q, want %q", slug, "react-hooks-guide")
			}
			return testPost("react-hooks-guide"), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts/react-hooks-guide", nil)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var post model.Post
	if err := json.NewDecoder(w.Result().Body).Decode(&post); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if post.Slug != "react-hooks-guide" {
		t.Errorf("slug = %q, want %q", post.Slug, "react-hooks-guide")
	}
}

func TestGetPost_NotFound_Returns404(t *testing.T) {
	service := &mockBlogService{
		bySlugFn: func(ctx context.Context, slug string) (*model.Post, error) {
			return nil, model.NewPostNotFoundError(slug)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts/no-such-post", nil)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}

	var body apiErrorResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != model.ErrCodePostNotFound {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodePostNotFound)
	}
}

func TestRenderPost_ReturnsSanitizedHTML(t *testing.T) {
	service := &mockBlogService{
		bySlugFn: func(ctx context.Context, slug string) (*model.Post, error) {
			return testPost(slug), nil
		},
		renderHTMLFn: func(post *model.Post) (string, error) {
			return "<h1>本文</h1>", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts/first/html", nil)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var body renderedPostResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.HTML != "<h1>本文</h1>" {
		t.Errorf("html = %q, want %q", body.HTML, "<h1>本文</h1>")
	}
	if body.Slug != "first" {
		t.Errorf("slug = %q, want %q", body.Slug, "first")
	}
}

func TestListTags_ReturnsTags(t *testing.T) {
	service := &mockBlogService{
		tagsFn: func(ctx context.Context) ([]string, error) {
			return []string{"CSS", "Go", "React"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts/tags", nil)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var tags []string
	if err := json.NewDecoder(w.Result().Body).Decode(&tags); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(tags) != 3 || tags[0] != "CSS" {
		t.Errorf("tags = %v, want [CSS Go React]", tags)
	}
}

func TestAddPostComment_ReturnsCreated(t *testing.T) {
	service := &mockBlogService{
		addCommentFn: func(ctx context.Context, postID, name, email, content string) (*model.PostComment, error) {
			return &model.PostComment{
				ID:         "comment-1",
				PostID:     postID,
				AuthorName: name,
				Content:    content,
				Approved:   false,
			}, nil
		},
	}

	body := strings.NewReader(`{"author_name":"张三","author_email":"zhang@example.com","content":"好文章"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/posts/first/comments", body)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}

	var comment model.PostComment
	if err := json.NewDecoder(w.Result().Body).Decode(&comment); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if comment.Approved {
		t.Error("new comment should not be approved")
	}
	if comment.PostID != "first" {
		t.Errorf("post_id = %q, want %q", comment.PostID, "first")
	}
}

func TestAddPostComment_ValidationFailure_Returns400(t *testing.T) {
	service := &mockBlogService{
		addCommentFn: func(ctx context.Context, postID, name, email, content string) (*model.PostComment, error) {
			return nil, model.NewValidationError([]string{"昵称不能为空"})
		},
	}

	body := strings.NewReader(`{"author_name":"","content":"好文章"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/posts/first/comments", body)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestAddPostComment_InvalidJSON_Returns400(t *testing.T) {
	service := &mockBlogService{}

	req := httptest.NewRequest(http.MethodPost, "/api/posts/first/comments", strings.NewReader("{invalid"))
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestCreatePost_ReturnsCreated(t *testing.T) {
	var gotInput *blog.PostInput
	service := &mockBlogService{
		createPostFn: func(ctx context.Context, input *blog.PostInput) (*model.Post, error) {
			gotInput = input
			return &model.Post{ID: "post-1", Title: input.Title, Slug: input.Slug}, nil
		},
	}

	body := strings.NewReader(`{"title":"新文章","slug":"new-post","content":"# 正文","tags":["Go"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}
	if gotInput == nil || gotInput.Title != "新文章" || len(gotInput.Tags) != 1 {
		t.Errorf("service received input %+v", gotInput)
	}

	var post model.Post
	if err := json.NewDecoder(w.Result().Body).Decode(&post); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if post.ID != "post-1" {
		t.Errorf("post.ID = %q, want post-1", post.ID)
	}
}

func TestCreatePost_WithoutDatabase_Returns503(t *testing.T) {
	service := &mockBlogService{
		createPostFn: func(ctx context.Context, input *blog.PostInput) (*model.Post, error) {
			return nil, model.NewDatabaseRequiredError()
		},
	}

	body := strings.NewReader(`{"title":"新文章","slug":"new-post","content":"正文"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusServiceUnavailable)
	}

	var errResp apiErrorResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Code != model.ErrCodeDatabaseRequired {
		t.Errorf("code = %q, want %q", errResp.Code, model.ErrCodeDatabaseRequired)
	}
}

func TestUpdatePost_ReturnsUpdatedPost(t *testing.T) {
	service := &mockBlogService{
		updatePostFn: func(ctx context.Context, id string, input *blog.PostInput) (*model.Post, error) {
			return &model.Post{ID: id, Title: input.Title}, nil
		},
	}

	body := strings.NewReader(`{"title":"更新后","slug":"updated","content":"正文"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/posts/manage/post-1", body)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var post model.Post
	if err := json.NewDecoder(w.Result().Body).Decode(&post); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if post.ID != "post-1" || post.Title != "更新后" {
		t.Errorf("post = %+v", post)
	}
}

func TestUpdatePost_NotFound_Returns404(t *testing.T) {
	service := &mockBlogService{
		updatePostFn: func(ctx context.Context, id string, input *blog.PostInput) (*model.Post, error) {
			return nil, model.NewPostNotFoundError(id)
		},
	}

	body := strings.NewReader(`{"title":"更新后","slug":"updated","content":"正文"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/posts/manage/missing", body)
	w := httptest.NewRecorder()

	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestDeletePost_ReturnsDeletionResult(t *testing.T) {
	service := &mockBlogService{
		deletePostFn: func(ctx context.Context, id string) (bool, error) {
			return id == "post-1", nil
		},
	}

	// 存在する記事は deleted: true
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/manage/post-1", nil)
	w := httptest.NewRecorder()
	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	var result map[string]bool
	if err := json.NewDecoder(w.Result().Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result["deleted"] {
		t.Error("deleted = false, want true")
	}

	// 存在しない記事も200で deleted: false
	req = httptest.NewRequest(http.MethodDelete, "/api/posts/manage/missing", nil)
	w = httptest.NewRecorder()
	newPostRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if err := json.NewDecoder(w.Result().Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["deleted"] {
		t.Error("deleted = true, want false")
	}
}
