package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogd/internal/model"
)

// MessageServiceInterface はメッセージセンターハンドラーが必要とするサービスインターフェース。
type MessageServiceInterface interface {
	All(ctx context.Context) ([]model.UnifiedMessage, error)
	Stats(ctx context.Context) (model.MessageStats, error)
	ByType(ctx context.Context, filter string) ([]model.UnifiedMessage, error)
	Search(ctx context.Context, filter, query string) ([]model.UnifiedMessage, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Status(ctx context.Context) (model.PlatformStatus, error)
}

// MessageHandler は統合メッセージセンターのHTTPハンドラー。全ルート管理者専用。
type MessageHandler struct {
	service MessageServiceInterface
}

// NewMessageHandler はMessageHandlerを生成する。
func NewMessageHandler(service MessageServiceInterface) *MessageHandler {
	return &MessageHandler{service: service}
}

// unifiedMessageResponse は統合メッセージのAPIレスポンス。
type unifiedMessageResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Content   string    `json:"content"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Avatar    string    `json:"avatar,omitempty"`
	Platform  string    `json:"platform"`
}

// messageStatsResponse はメッセージ統計のAPIレスポンス。
type messageStatsResponse struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
	QQ     int `json:"qq"`
	WeChat int `json:"wechat"`
	Email  int `json:"email"`
}

// platformPresenceResponse は1プラットフォームの接続状態のAPIレスポンス。
type platformPresenceResponse struct {
	Connected   bool `json:"connected"`
	UnreadCount int  `json:"unread_count"`
}

// platformStatusResponse は全プラットフォームの状態のAPIレスポンス。
type platformStatusResponse struct {
	QQ     platformPresenceResponse `json:"qq"`
	WeChat platformPresenceResponse `json:"wechat"`
	Email  platformPresenceResponse `json:"email"`
}

// ListMessages は統合メッセージ一覧を返す。
// クエリパラメータ type でプラットフォーム絞り込み、q で検索ができる。
// GET /api/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("type")
	if filter == "" {
		filter = "all"
	}
	query := r.URL.Query().Get("q")

	var (
		msgs []model.UnifiedMessage
		err  error
	)
	if query != "" {
		msgs, err = h.service.Search(r.Context(), filter, query)
	} else {
		msgs, err = h.service.ByType(r.Context(), filter)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMessageResponses(msgs))
}

// GetStats はメッセージ統計を返す。統計は常にコレクション全体から再計算される。
// GET /api/messages/stats
func (h *MessageHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageStatsResponse{
		Total:  stats.Total,
		Unread: stats.Unread,
		QQ:     stats.QQ,
		WeChat: stats.WeChat,
		Email:  stats.Email,
	})
}

// GetStatus は全プラットフォームの接続・未読状態を返す。
// GET /api/messages/status
func (h *MessageHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, platformStatusResponse{
		QQ:     platformPresenceResponse{Connected: status.QQ.Connected, UnreadCount: status.QQ.UnreadCount},
		WeChat: platformPresenceResponse{Connected: status.WeChat.Connected, UnreadCount: status.WeChat.UnreadCount},
		Email:  platformPresenceResponse{Connected: status.Email.Connected, UnreadCount: status.Email.UnreadCount},
	})
}

// MarkRead はメッセージを既読にする。既読済みに対しては冪等で、
// 存在しないIDも削除と同じく200で read: false を返す。
// PUT /api/messages/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	marked, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"read": marked})
}

// DeleteMessage はメッセージを完全に削除する。取り消しはできない。
// DELETE /api/messages/{id}
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// --- ヘルパー関数 ---

// toMessageResponses はmodel.UnifiedMessageのスライスをAPIレスポンスに変換する。
func toMessageResponses(msgs []model.UnifiedMessage) []unifiedMessageResponse {
	out := make([]unifiedMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, unifiedMessageResponse{
			ID:        m.ID,
			Type:      string(m.Type),
			From:      m.From,
			To:        m.To,
			Content:   m.Content,
			Subject:   m.Subject,
			Timestamp: m.Timestamp,
			Read:      m.Read,
			Avatar:    m.Avatar,
			Platform:  m.Platform,
		})
	}
	return out
}
