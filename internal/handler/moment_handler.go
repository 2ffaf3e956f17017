package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogd/internal/metrics"
	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/moment"
)

// MomentServiceInterface は動態ハンドラーが必要とするサービスインターフェース。
type MomentServiceInterface interface {
	All(ctx context.Context) ([]model.Moment, error)
	ByID(ctx context.Context, id string) (*model.Moment, error)
	Add(ctx context.Context, in moment.Input) (*model.Moment, error)
	Update(ctx context.Context, id string, in moment.Input) (*model.Moment, error)
	Delete(ctx context.Context, id string) (bool, error)
	Like(ctx context.Context, id string) (bool, error)
	AddComment(ctx context.Context, momentID, author, content string) (*model.MomentComment, error)
	Reset(ctx context.Context) error
}

// MomentHandler は動態フィードのHTTPハンドラー。
type MomentHandler struct {
	service MomentServiceInterface
	metrics metrics.MetricsCollector
}

// NewMomentHandler はMomentHandlerを生成する。collectorはnil可。
func NewMomentHandler(service MomentServiceInterface, collector metrics.MetricsCollector) *MomentHandler {
	return &MomentHandler{service: service, metrics: collector}
}

// ListMoments は動態一覧を新しい順で返す。
// GET /api/moments
func (h *MomentHandler) ListMoments(w http.ResponseWriter, r *http.Request) {
	moments, err := h.service.All(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if moments == nil {
		moments = []model.Moment{}
	}
	writeJSON(w, http.StatusOK, moments)
}

// GetMoment はIDで動態を取得する。
// GET /api/moments/{id}
func (h *MomentHandler) GetMoment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.service.ByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// AddMoment は新しい動態を投稿する。管理者専用。
// POST /api/moments
func (h *MomentHandler) AddMoment(w http.ResponseWriter, r *http.Request) {
	var in moment.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	m, err := h.service.Add(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordMomentCreated()
	}

	writeJSON(w, http.StatusCreated, m)
}

// UpdateMoment は既存の動態を編集する。管理者専用。
// PUT /api/moments/{id}
func (h *MomentHandler) UpdateMoment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in moment.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	m, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// DeleteMoment は動態を削除する。存在しないIDは何もしない。管理者専用。
// DELETE /api/moments/{id}
func (h *MomentHandler) DeleteMoment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// LikeMoment は動態にいいねを1つ加算する。
// POST /api/moments/{id}/like
func (h *MomentHandler) LikeMoment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	liked, err := h.service.Like(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if !liked {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewMomentNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"liked": true})
}

// addMomentCommentRequest は動態コメント投稿リクエストのボディ。
type addMomentCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// AddMomentComment は動態にコメントを投稿する。
// POST /api/moments/{id}/comments
func (h *MomentHandler) AddMomentComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req addMomentCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	comment, err := h.service.AddComment(r.Context(), id, req.Author, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// ResetMoments は動態コレクションを初期データに戻す。管理者専用。
// POST /api/moments/reset
func (h *MomentHandler) ResetMoments(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
