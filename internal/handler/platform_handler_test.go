package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/platform"
)

// newPlatformRouter は遅延なしの実シミュレーターを組んだテスト用ルーターを返す。
func newPlatformRouter() (http.Handler, *platform.ChatSimulator, *platform.Mailbox) {
	qq := platform.NewQQ(0)
	wechat := platform.NewWeChat(0)
	mailbox := platform.NewMailbox(0)
	h := NewPlatformHandler(qq, wechat, mailbox, nil)

	r := chi.NewRouter()
	r.Route("/api/platforms", func(r chi.Router) {
		r.Route("/email", func(r chi.Router) {
			r.Post("/login", h.MailLogin)
			r.Post("/logout", h.MailLogout)
			r.Get("/folders", h.MailFolders)
			r.Get("/emails", h.MailEmails)
			r.Post("/send", h.MailSend)
			r.Route("/emails/{id}", func(r chi.Router) {
				r.Get("/", h.MailEmail)
				r.Put("/read", h.MailMarkRead)
				r.Put("/star", h.MailToggleStar)
				r.Delete("/", h.MailDelete)
			})
		})
		r.Route("/{name}", func(r chi.Router) {
			r.Post("/login", h.ChatLogin)
			r.Post("/logout", h.ChatLogout)
			r.Get("/contacts", h.ChatContacts)
			r.Get("/messages/{contactID}", h.ChatMessages)
			r.Post("/send", h.ChatSend)
		})
	})

	return r, qq, mailbox
}

func TestChatLogin_ReturnsProfile(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/platforms/qq/login", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var resp profileResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.OpenID != "mock_qq_user_123" {
		t.Errorf("open_id = %q, want %q", resp.OpenID, "mock_qq_user_123")
	}
}

func TestChatLogin_UnknownPlatform_Returns404(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/platforms/telegram/login", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}

	var errResp apiErrorResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if errResp.Code != "PLATFORM_NOT_FOUND" {
		t.Errorf("code = %q, want %q", errResp.Code, "PLATFORM_NOT_FOUND")
	}
}

func TestChatLogin_InjectedFailure_Returns500(t *testing.T) {
	router, qq, _ := newPlatformRouter()
	qq.InjectFailure(errors.New("simulated outage"))

	req := httptest.NewRequest(http.MethodPost, "/api/platforms/qq/login", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}

func TestChatContacts_ReturnsSeedContacts(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/platforms/wechat/contacts", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var resp []contactResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 3 {
		t.Fatalf("contacts = %d, want 3", len(resp))
	}
	if resp[0].ID != "wechat_friend_1" {
		t.Errorf("first contact id = %q, want %q", resp[0].ID, "wechat_friend_1")
	}
}

func TestChatMessages_UnknownContact_ReturnsEmptyArray(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/platforms/qq/messages/nobody", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want empty array", body)
	}
}

func TestChatSend_AppendsToLog(t *testing.T) {
	router, _, _ := newPlatformRouter()

	body := strings.NewReader(`{"to":"friend_1","content":"在吗？","kind":"text"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/qq/send", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}

	var resp chatMessageResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("sent message should have a generated id")
	}
	if resp.Content != "在吗？" {
		t.Errorf("content = %q, want %q", resp.Content, "在吗？")
	}

	// 送信後の履歴に反映されていること
	req = httptest.NewRequest(http.MethodGet, "/api/platforms/qq/messages/friend_1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var msgs []chatMessageResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&msgs); err != nil {
		t.Fatalf("failed to decode messages: %v", err)
	}
	if len(msgs) == 0 || msgs[len(msgs)-1].Content != "在吗？" {
		t.Errorf("sent message should be the newest in the log, got %+v", msgs)
	}
}

func TestChatSend_EmptyKindDefaultsToText(t *testing.T) {
	router, _, _ := newPlatformRouter()

	body := strings.NewReader(`{"to":"friend_1","content":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/wechat/send", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var resp chatMessageResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Kind != string(platform.KindText) {
		t.Errorf("kind = %q, want %q", resp.Kind, platform.KindText)
	}
}

func TestMailLogin_EmptyCredentials_Returns400(t *testing.T) {
	router, _, _ := newPlatformRouter()

	body := strings.NewReader(`{"email":"","password":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/email/login", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}

	var errResp apiErrorResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Code != model.ErrCodeValidationFailed {
		t.Errorf("code = %q, want %q", errResp.Code, model.ErrCodeValidationFailed)
	}
	if !strings.Contains(errResp.Message, "邮箱或密码不能为空") {
		t.Errorf("message = %q, want credential violation listed", errResp.Message)
	}
}

func TestMailLogin_ReturnsAccountWithGivenEmail(t *testing.T) {
	router, _, _ := newPlatformRouter()

	body := strings.NewReader(`{"email":"me@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/email/login", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var resp accountResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "me@example.com" {
		t.Errorf("email = %q, want %q", resp.Email, "me@example.com")
	}
}

func TestMailFolders_CountsSeedEmails(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/platforms/email/folders", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var resp []folderInfoResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 5 {
		t.Fatalf("folders = %d, want 5", len(resp))
	}
	inbox := resp[0]
	if inbox.ID != string(platform.FolderInbox) {
		t.Fatalf("first folder = %q, want inbox", inbox.ID)
	}
	if inbox.Count != 3 || inbox.UnreadCount != 2 {
		t.Errorf("inbox count = %d/%d unread, want 3/2", inbox.Count, inbox.UnreadCount)
	}
}

func TestMailEmails_DefaultsToInbox(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/platforms/email/emails", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var resp []emailResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 3 {
		t.Fatalf("inbox emails = %d, want 3", len(resp))
	}
	// タイムスタンプ降順
	if resp[0].ID != "email_1" {
		t.Errorf("newest email = %q, want email_1", resp[0].ID)
	}
	for _, e := range resp {
		if e.Folder != string(platform.FolderInbox) {
			t.Errorf("email %q folder = %q, want inbox", e.ID, e.Folder)
		}
	}
}

func TestMailEmails_FolderQueryFilters(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/platforms/email/emails?folder=sent", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var resp []emailResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "email_3" {
		t.Errorf("sent folder = %+v, want only email_3", resp)
	}
}

func TestMailEmail_NotFound_Returns404(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/platforms/email/emails/no_such_email", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}

	var errResp apiErrorResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if errResp.Code != "EMAIL_NOT_FOUND" {
		t.Errorf("code = %q, want %q", errResp.Code, "EMAIL_NOT_FOUND")
	}
}

func TestMailSend_AddsToSentFolder(t *testing.T) {
	router, _, _ := newPlatformRouter()

	body := strings.NewReader(`{"to":["boss@company.com"],"subject":"周报","content":"本周进展如下"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/email/send", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}

	var resp emailResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Folder != string(platform.FolderSent) {
		t.Errorf("folder = %q, want sent", resp.Folder)
	}
	if !resp.Read {
		t.Error("sent email should be marked read")
	}
}

func TestMailMarkRead_SetsFlag(t *testing.T) {
	router, _, mailbox := newPlatformRouter()

	req := httptest.NewRequest(http.MethodPut, "/api/platforms/email/emails/email_1/read", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var resp map[string]bool
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp["read"] {
		t.Error("read should be true")
	}

	email, err := mailbox.EmailByID(req.Context(), "email_1")
	if err != nil || email == nil {
		t.Fatalf("failed to read back email: %v", err)
	}
	if !email.Read {
		t.Error("email_1 should be marked read")
	}
}

func TestMailToggleStar_FlipsFlag(t *testing.T) {
	router, _, _ := newPlatformRouter()

	// email_2 はシードでスター済みなので反転でfalseになる
	req := httptest.NewRequest(http.MethodPut, "/api/platforms/email/emails/email_2/star", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var resp map[string]bool
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp["starred"] {
		t.Error("starred should report the operation succeeded")
	}
}

func TestMailDelete_MovesToTrash(t *testing.T) {
	router, _, mailbox := newPlatformRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/platforms/email/emails/email_1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	email, err := mailbox.EmailByID(req.Context(), "email_1")
	if err != nil || email == nil {
		t.Fatalf("failed to read back email: %v", err)
	}
	if email.Folder != platform.FolderTrash {
		t.Errorf("folder = %q, want trash", email.Folder)
	}
}

func TestMailDelete_MissingEmail_ReportsFalse(t *testing.T) {
	router, _, _ := newPlatformRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/platforms/email/emails/ghost", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var resp map[string]bool
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["deleted"] {
		t.Error("deleting a missing email should report false")
	}
}
