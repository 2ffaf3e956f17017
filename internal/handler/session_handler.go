package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hitoshi/blogd/internal/metrics"
	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/session"
)

// SessionStoreInterface はセッションハンドラーが必要とするストアインターフェース。
type SessionStoreInterface interface {
	CurrentUser() *model.User
	Login(ctx context.Context, username, password string) (*model.User, error)
	Logout() error
	Hub() *session.Hub
}

// SessionHandler はセッション/ロール管理のHTTPハンドラー。
type SessionHandler struct {
	store   SessionStoreInterface
	metrics metrics.MetricsCollector
}

// NewSessionHandler はSessionHandlerを生成する。collectorはnil可。
func NewSessionHandler(store SessionStoreInterface, collector metrics.MetricsCollector) *SessionHandler {
	return &SessionHandler{store: store, metrics: collector}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse は現在のセッション状態のAPIレスポンス。
// 未ログイン時はuserがnullになる。
type sessionResponse struct {
	User *model.User `json:"user"`
}

// Login は管理者ログインを処理する。
// POST /api/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	user, err := h.store.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordLoginAttempt(false)
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLoginAttempt(true)
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: user})
}

// Logout はセッションをクリアして訪問者に戻す。
// POST /api/session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me は現在のセッション状態を返す。未ログイン時はuser: null。
// GET /api/session/me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{User: h.store.CurrentUser()})
}

// Watch はセッション変更をServer-Sent Eventsで配信する。
// 接続直後に現在の状態を1回送信し、以降は変更のたびに配信する。
// 複数の開いているビューが同じ状態に収束するための仕組み。
// GET /api/session/watch
func (h *SessionHandler) Watch(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
			Code:     "STREAMING_UNSUPPORTED",
			Message:  "ストリーミングに対応していません。",
			Category: "system",
			Action:   "SSE対応のクライアントで接続してください。",
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := h.store.Hub().Subscribe()
	defer cancel()

	// 接続直後のスナップショット
	writeSessionEvent(w, h.store.CurrentUser())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case user, open := <-ch:
			if !open {
				return
			}
			writeSessionEvent(w, user)
			flusher.Flush()
		}
	}
}

// writeSessionEvent はSSEのsessionイベントを1件書き込む。
func writeSessionEvent(w http.ResponseWriter, user *model.User) {
	data, err := json.Marshal(sessionResponse{User: user})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: session\ndata: %s\n\n", data)
}
