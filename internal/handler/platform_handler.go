package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogd/internal/metrics"
	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/platform"
)

// PlatformHandler はプラットフォームシミュレーターのHTTPハンドラー。全ルート管理者専用。
type PlatformHandler struct {
	qq      *platform.ChatSimulator
	wechat  *platform.ChatSimulator
	mailbox *platform.Mailbox
	metrics metrics.MetricsCollector
}

// NewPlatformHandler はPlatformHandlerを生成する。collectorはnil可。
func NewPlatformHandler(qq, wechat *platform.ChatSimulator, mailbox *platform.Mailbox, collector metrics.MetricsCollector) *PlatformHandler {
	return &PlatformHandler{qq: qq, wechat: wechat, mailbox: mailbox, metrics: collector}
}

// chatByName はパスパラメータのプラットフォーム名からシミュレーターを引く。
func (h *PlatformHandler) chatByName(name string) *platform.ChatSimulator {
	switch name {
	case "qq":
		return h.qq
	case "wechat":
		return h.wechat
	default:
		return nil
	}
}

// writeUnknownPlatform は未知のプラットフォーム名のエラーレスポンスを書き込む。
func writeUnknownPlatform(w http.ResponseWriter, name string) {
	writeAPIErrorResponse(w, http.StatusNotFound, &model.APIError{
		Code:     "PLATFORM_NOT_FOUND",
		Message:  "指定されたプラットフォームが見つかりません: " + name,
		Category: "content",
		Action:   "プラットフォームには qq または wechat を指定してください。",
	})
}

// --- レスポンス型 ---

type profileResponse struct {
	OpenID   string `json:"open_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Province string `json:"province,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
}

type contactResponse struct {
	ID       string     `json:"id"`
	Nickname string     `json:"nickname"`
	Avatar   string     `json:"avatar,omitempty"`
	Remark   string     `json:"remark,omitempty"`
	Status   string     `json:"status"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

type chatMessageResponse struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Content   string    `json:"content"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Avatar    string    `json:"avatar,omitempty"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Avatar   string `json:"avatar,omitempty"`
}

type emailResponse struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        []string  `json:"to"`
	Cc        []string  `json:"cc,omitempty"`
	Bcc       []string  `json:"bcc,omitempty"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Starred   bool      `json:"starred"`
	Folder    string    `json:"folder"`
	Labels    []string  `json:"labels,omitempty"`
}

type folderInfoResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
	UnreadCount int    `json:"unread_count"`
}

// --- チャットプラットフォーム（QQ / 微信） ---

// ChatLogin はチャットプラットフォームにログインする。
// POST /api/platforms/{name}/login
func (h *PlatformHandler) ChatLogin(w http.ResponseWriter, r *http.Request) {
	sim := h.chatByName(chi.URLParam(r, "name"))
	if sim == nil {
		writeUnknownPlatform(w, chi.URLParam(r, "name"))
		return
	}

	profile, err := sim.Login(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		OpenID:   profile.OpenID,
		Nickname: profile.Nickname,
		Avatar:   profile.Avatar,
		Gender:   profile.Gender,
		Province: profile.Province,
		City:     profile.City,
		Country:  profile.Country,
	})
}

// ChatLogout はチャットプラットフォームからログアウトする。
// POST /api/platforms/{name}/logout
func (h *PlatformHandler) ChatLogout(w http.ResponseWriter, r *http.Request) {
	sim := h.chatByName(chi.URLParam(r, "name"))
	if sim == nil {
		writeUnknownPlatform(w, chi.URLParam(r, "name"))
		return
	}

	if err := sim.Logout(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChatContacts は連絡先一覧を返す。
// GET /api/platforms/{name}/contacts
func (h *PlatformHandler) ChatContacts(w http.ResponseWriter, r *http.Request) {
	sim := h.chatByName(chi.URLParam(r, "name"))
	if sim == nil {
		writeUnknownPlatform(w, chi.URLParam(r, "name"))
		return
	}

	contacts, err := sim.Contacts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, contactResponse{
			ID:       c.ID,
			Nickname: c.Nickname,
			Avatar:   c.Avatar,
			Remark:   c.Remark,
			Status:   string(c.Status),
			LastSeen: c.LastSeen,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ChatMessages は連絡先とのチャット履歴を返す。
// GET /api/platforms/{name}/messages/{contactID}
func (h *PlatformHandler) ChatMessages(w http.ResponseWriter, r *http.Request) {
	sim := h.chatByName(chi.URLParam(r, "name"))
	if sim == nil {
		writeUnknownPlatform(w, chi.URLParam(r, "name"))
		return
	}

	msgs, err := sim.Messages(r.Context(), chi.URLParam(r, "contactID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChatMessageResponses(msgs))
}

// sendChatMessageRequest はチャットメッセージ送信リクエストのボディ。
type sendChatMessageRequest struct {
	To      string `json:"to"`
	Content string `json:"content"`
	Kind    string `json:"kind"`
}

// ChatSend はチャットメッセージを送信する。
// POST /api/platforms/{name}/send
func (h *PlatformHandler) ChatSend(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sim := h.chatByName(name)
	if sim == nil {
		writeUnknownPlatform(w, name)
		return
	}

	var req sendChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	kind := platform.MessageKind(req.Kind)
	if kind == "" {
		kind = platform.KindText
	}

	start := time.Now()
	msg, err := sim.Send(r.Context(), req.To, req.Content, kind)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordMessageSendFailure(name)
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordMessageSent(name)
		h.metrics.RecordSendLatency(time.Since(start))
	}

	writeJSON(w, http.StatusCreated, toChatMessageResponse(*msg))
}

// --- メールプラットフォーム ---

// mailLoginRequest はメールログインリクエストのボディ。
type mailLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MailLogin はメールプラットフォームにログインする。
// POST /api/platforms/email/login
func (h *PlatformHandler) MailLogin(w http.ResponseWriter, r *http.Request) {
	var req mailLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	account, err := h.mailbox.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		ID:       account.ID,
		Email:    account.Email,
		Name:     account.Name,
		Provider: account.Provider,
		Avatar:   account.Avatar,
	})
}

// MailLogout はメールプラットフォームからログアウトする。
// POST /api/platforms/email/logout
func (h *PlatformHandler) MailLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.mailbox.Logout(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MailFolders はフォルダごとの件数スナップショットを返す。
// GET /api/platforms/email/folders
func (h *PlatformHandler) MailFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.mailbox.Folders(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]folderInfoResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, folderInfoResponse{
			ID:          string(f.ID),
			Name:        f.Name,
			Count:       f.Count,
			UnreadCount: f.UnreadCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// MailEmails はフォルダ内のメール一覧を返す。
// クエリパラメータ folder 省略時は受信箱。
// GET /api/platforms/email/emails
func (h *PlatformHandler) MailEmails(w http.ResponseWriter, r *http.Request) {
	folder := platform.Folder(r.URL.Query().Get("folder"))
	if folder == "" {
		folder = platform.FolderInbox
	}

	emails, err := h.mailbox.Emails(r.Context(), folder)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]emailResponse, 0, len(emails))
	for _, e := range emails {
		out = append(out, toEmailResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// MailEmail はIDでメールを取得する。
// GET /api/platforms/email/emails/{id}
func (h *PlatformHandler) MailEmail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	email, err := h.mailbox.EmailByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if email == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, &model.APIError{
			Code:     "EMAIL_NOT_FOUND",
			Message:  "指定されたメールが見つかりません: " + id,
			Category: "content",
			Action:   "メールIDを確認してください。",
		})
		return
	}

	writeJSON(w, http.StatusOK, toEmailResponse(*email))
}

// sendMailRequest はメール送信リクエストのボディ。
type sendMailRequest struct {
	To      []string `json:"to"`
	Cc      []string `json:"cc"`
	Bcc     []string `json:"bcc"`
	Subject string   `json:"subject"`
	Content string   `json:"content"`
}

// MailSend はメールを送信する。
// POST /api/platforms/email/send
func (h *PlatformHandler) MailSend(w http.ResponseWriter, r *http.Request) {
	var req sendMailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	start := time.Now()
	email, err := h.mailbox.Send(r.Context(), req.To, req.Cc, req.Bcc, req.Subject, req.Content)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordMessageSendFailure("email")
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordMessageSent("email")
		h.metrics.RecordSendLatency(time.Since(start))
	}

	writeJSON(w, http.StatusCreated, toEmailResponse(*email))
}

// MailMarkRead はメールを既読にする。
// PUT /api/platforms/email/emails/{id}/read
func (h *PlatformHandler) MailMarkRead(w http.ResponseWriter, r *http.Request) {
	h.mailFlagOp(w, r, h.mailbox.MarkRead, "read")
}

// MailToggleStar はメールのスター状態を切り替える。
// PUT /api/platforms/email/emails/{id}/star
func (h *PlatformHandler) MailToggleStar(w http.ResponseWriter, r *http.Request) {
	h.mailFlagOp(w, r, h.mailbox.ToggleStar, "starred")
}

// MailDelete はメールをゴミ箱に移動する。
// DELETE /api/platforms/email/emails/{id}
func (h *PlatformHandler) MailDelete(w http.ResponseWriter, r *http.Request) {
	h.mailFlagOp(w, r, h.mailbox.Delete, "deleted")
}

// mailFlagOp はID指定のメール操作を実行し、結果のbool値をJSONで返す。
func (h *PlatformHandler) mailFlagOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (bool, error), field string) {
	id := chi.URLParam(r, "id")

	ok, err := op(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{field: ok})
}

// --- ヘルパー関数 ---

func toChatMessageResponse(m platform.ChatMessage) chatMessageResponse {
	return chatMessageResponse{
		ID:        m.ID,
		From:      m.From,
		To:        m.To,
		Content:   m.Content,
		Kind:      string(m.Kind),
		Timestamp: m.Timestamp,
		Avatar:    m.Avatar,
	}
}

func toChatMessageResponses(msgs []platform.ChatMessage) []chatMessageResponse {
	out := make([]chatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toChatMessageResponse(m))
	}
	return out
}

func toEmailResponse(e platform.Email) emailResponse {
	return emailResponse{
		ID:        e.ID,
		From:      e.From,
		To:        e.To,
		Cc:        e.Cc,
		Bcc:       e.Bcc,
		Subject:   e.Subject,
		Content:   e.Content,
		Timestamp: e.Timestamp,
		Read:      e.Read,
		Starred:   e.Starred,
		Folder:    string(e.Folder),
		Labels:    e.Labels,
	}
}
