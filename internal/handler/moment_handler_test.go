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
	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/moment"
)

// mockMomentService はMomentServiceInterfaceの関数リテラルモック。
type mockMomentService struct {
	allFn        func(ctx context.Context) ([]model.Moment, error)
	byIDFn       func(ctx context.Context, id string) (*model.Moment, error)
	addFn        func(ctx context.Context, in moment.Input) (*model.Moment, error)
	updateFn     func(ctx context.Context, id string, in moment.Input) (*model.Moment, error)
	deleteFn     func(ctx context.Context, id string) (bool, error)
	likeFn       func(ctx context.Context, id string) (bool, error)
	addCommentFn func(ctx context.Context, momentID, author, content string) (*model.MomentComment, error)
	resetFn      func(ctx context.Context) error
}

func (m *mockMomentService) All(ctx context.Context) ([]model.Moment, error) {
	return m.allFn(ctx)
}

func (m *mockMomentService) ByID(ctx context.Context, id string) (*model.Moment, error) {
	return m.byIDFn(ctx, id)
}

func (m *mockMomentService) Add(ctx context.Context, in moment.Input) (*model.Moment, error) {
	return m.addFn(ctx, in)
}

func (m *mockMomentService) Update(ctx context.Context, id string, in moment.Input) (*model.Moment, error) {
	return m.updateFn(ctx, id, in)
}

func (m *mockMomentService) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockMomentService) Like(ctx context.Context, id string) (bool, error) {
	return m.likeFn(ctx, id)
}

func (m *mockMomentService) AddComment(ctx context.Context, momentID, author, content string) (*model.MomentComment, error) {
	return m.addCommentFn(ctx, momentID, author, content)
}

func (m *mockMomentService) Reset(ctx context.Context) error {
	return m.resetFn(ctx)
}

// newMomentRouter はMomentHandlerのルートだけを持つテスト用ルーターを返す。
func newMomentRouter(service MomentServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewMomentHandler(service, nil)

	r.Route("/api/moments", func(r chi.Router) {
		r.Get("/", h.ListMoments)
		r.Post("/", h.AddMoment)
		r.Post("/reset", h.ResetMoments)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetMoment)
			r.Put("/", h.UpdateMoment)
			r.Delete("/", h.DeleteMoment)
			r.Post("/like", h.LikeMoment)
			r.Post("/comments", h.AddMomentComment)
		})
	})

	return r
}

func testMoment(id string) model.Moment {
	return model.Moment{
		ID:        id,
		Content:   "今天天气真好",
		Likes:     12,
		CreatedAt: time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC),
	}
}

func TestListMoments_ReturnsMoments(t *testing.T) {
	service := &mockMomentService{
		allFn: func(ctx context.Context) ([]model.Moment, error) {
			return []model.Moment{testMoment("5"), testMoment("4")}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/moments", nil)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var moments []model.Moment
	if err := json.NewDecoder(w.Result().Body).Decode(&moments); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(moments) != 2 {
		t.Errorf("len(moments) = %d, want 2", len(moments))
	}
	if moments[0].ID != "5" {
		t.Errorf("first moment ID = %q, want %q", moments[0].ID, "5")
	}
}

func TestGetMoment_NotFound_Returns404(t *testing.T) {
	service := &mockMomentService{
		byIDFn: func(ctx context.Context, id string) (*model.Moment, error) {
			return nil, model.NewMomentNotFoundError(id)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/moments/999", nil)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestAddMoment_ReturnsCreated(t *testing.T) {
	service := &mockMomentService{
		addFn: func(ctx context.Context, in moment.Input) (*model.Moment, error) {
			return &model.Moment{ID: "new-id", Content: in.Content}, nil
		},
	}

	body := strings.NewReader(`{"content":"新しい動態","mood":"happy"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/moments", body)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}
}

func TestAddMoment_ValidationFailure_Returns400(t *testing.T) {
	service := &mockMomentService{
		addFn: func(ctx context.Context, in moment.Input) (*model.Moment, error) {
			return nil, model.NewValidationError([]string{"内容不能为空"})
		},
	}

	body := strings.NewReader(`{"content":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/moments", body)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestUpdateMoment_ReturnsUpdated(t *testing.T) {
	service := &mockMomentService{
		updateFn: func(ctx context.Context, id string, in moment.Input) (*model.Moment, error) {
			return &model.Moment{ID: id, Content: in.Content}, nil
		},
	}

	body := strings.NewReader(`{"content":"編集後の内容"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/moments/1", body)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var m model.Moment
	if err := json.NewDecoder(w.Result().Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if m.ID != "1" {
		t.Errorf("id = %q, want %q", m.ID, "1")
	}
}

func TestDeleteMoment_ReportsResult(t *testing.T) {
	tests := []struct {
		name    string
		deleted bool
	}{
		{"existing moment", true},
		{"missing moment is silent no-op", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockMomentService{
				deleteFn: func(ctx context.Context, id string) (bool, error) {
					return tt.deleted, nil
				},
			}

			req := httptest.NewRequest(http.MethodDelete, "/api/moments/1", nil)
			w := httptest.NewRecorder()

			newMomentRouter(service).ServeHTTP(w, req)

			if w.Result().StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
			}

			var body map[string]bool
			if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["deleted"] != tt.deleted {
				t.Errorf("deleted = %v, want %v", body["deleted"], tt.deleted)
			}
		})
	}
}

func TestLikeMoment_NotFound_Returns404(t *testing.T) {
	service := &mockMomentService{
		likeFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/moments/999/like", nil)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestLikeMoment_Succeeds(t *testing.T) {
	var gotID string
	service := &mockMomentService{
		likeFn: func(ctx context.Context, id string) (bool, error) {
			gotID = id
			return true, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/moments/1/like", nil)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if gotID != "1" {
		t.Errorf("id = %q, want %q", gotID, "1")
	}
}

func TestAddMomentComment_ReturnsCreated(t *testing.T) {
	service := &mockMomentService{
		addCommentFn: func(ctx context.Context, momentID, author, content string) (*model.MomentComment, error) {
			return &model.MomentComment{ID: "c1", Author: author, Content: content}, nil
		},
	}

	body := strings.NewReader(`{"author":"小明","content":"赞"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/moments/1/comments", body)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}

	var comment model.MomentComment
	if err := json.NewDecoder(w.Result().Body).Decode(&comment); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if comment.Author != "小明" {
		t.Errorf("author = %q, want %q", comment.Author, "小明")
	}
}

func TestResetMoments_Returns204(t *testing.T) {
	resetCalled := false
	service := &mockMomentService{
		resetFn: func(ctx context.Context) error {
			resetCalled = true
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/moments/reset", nil)
	w := httptest.NewRecorder()

	newMomentRouter(service).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNoContent)
	}
	if !resetCalled {
		t.Error("Reset should have been called")
	}
}
