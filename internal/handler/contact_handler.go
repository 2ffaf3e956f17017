package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogd/internal/contact"
	"github.com/hitoshi/blogd/internal/metrics"
	"github.com/hitoshi/blogd/internal/model"
)

// ContactServiceInterface は問い合わせハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	Submit(ctx context.Context, sub contact.Submission) (*model.ContactMessage, error)
	Messages(ctx context.Context) ([]*model.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (bool, error)
}

// ContactHandler は問い合わせフォームのHTTPハンドラー。
type ContactHandler struct {
	service ContactServiceInterface
	metrics metrics.MetricsCollector
}

// NewContactHandler はContactHandlerを生成する。collectorはnil可。
func NewContactHandler(service ContactServiceInterface, collector metrics.MetricsCollector) *ContactHandler {
	return &ContactHandler{service: service, metrics: collector}
}

// Submit は問い合わせを受け付ける。
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	msg, err := h.service.Submit(r.Context(), sub)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordContactSubmission()
	}

	writeJSON(w, http.StatusCreated, msg)
}

// ListMessages は問い合わせメッセージの一覧を作成日時降順で返す。管理者専用。
// GET /api/contact
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.Messages(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if msgs == nil {
		msgs = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// MarkMessageRead は指定メッセージを既読にする。管理者専用。
// 対象が存在しない場合も200で read: false を返す。
// PUT /api/contact/{id}/read
func (h *ContactHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	read, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"read": read})
}
