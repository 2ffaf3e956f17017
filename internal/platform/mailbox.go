package platform

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/blogd/internal/model"
)

// Folder はメールボックスのフォルダ種別を表す。
type Folder string

const (
	FolderInbox Folder = "inbox"
	FolderSent  Folder = "sent"
	FolderDraft Folder = "draft"
	FolderTrash Folder = "trash"
	FolderSpam  Folder = "spam"
)

// folderNames はフォルダの表示名。表示順も兼ねる。
var folderOrder = []struct {
	ID   Folder
	Name string
}{
	{FolderInbox, "收件箱"},
	{FolderSent, "已发送"},
	{FolderDraft, "草稿箱"},
	{FolderTrash, "垃圾箱"},
	{FolderSpam, "垃圾邮件"},
}

// Account はメールアカウント情報を表す。
type Account struct {
	ID       string
	Email    string
	Name     string
	Provider string
	Avatar   string
}

// Email は1通のメールを表す。
type Email struct {
	ID          string
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Content     string
	Timestamp   time.Time
	Read        bool
	Starred     bool
	Folder      Folder
	Labels      []string
}

// FolderInfo はフォルダごとの件数スナップショット。
// 件数は保存せず、現在のメール一覧から毎回導出する。
type FolderInfo struct {
	ID          Folder
	Name        string
	Count       int
	UnreadCount int
}

// Mailbox はメールプラットフォームの代役。
// フォルダ分けされたインメモリのメール一覧を持ち、擬似遅延付きで操作を受ける。
type Mailbox struct {
	account Account
	latency time.Duration

	failureHook

	mu       sync.RWMutex
	loggedIn bool
	emails   []Email
}

// NewMailbox はメールシミュレーターをシードデータ付きで生成する。
func NewMailbox(latency time.Duration) *Mailbox {
	return &Mailbox{
		account: mailAccount,
		latency: latency,
		emails:  seedEmails(),
	}
}

// Login は擬似ログインを実行する。
// メールのみ資格情報の非空チェックを行う。それ以外の検証はしない。
func (m *Mailbox) Login(ctx context.Context, email, password string) (*Account, error) {
	if err := wait(ctx, m.latency); err != nil {
		return nil, err
	}
	if err := m.consume(); err != nil {
		return nil, err
	}
	if email == "" || password == "" {
		return nil, model.NewValidationError([]string{"邮箱或密码不能为空"})
	}

	m.mu.Lock()
	m.loggedIn = true
	m.mu.Unlock()

	account := m.account
	account.Email = email
	return &account, nil
}

// Logout は擬似ログアウトを実行する。
func (m *Mailbox) Logout(ctx context.Context) error {
	if err := wait(ctx, m.latency); err != nil {
		return err
	}
	m.mu.Lock()
	m.loggedIn = false
	m.mu.Unlock()
	return nil
}

// LoggedIn は現在ログイン中かを返す。
func (m *Mailbox) LoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loggedIn
}

// Folders は全フォルダの件数スナップショットを返す。
func (m *Mailbox) Folders(ctx context.Context) ([]FolderInfo, error) {
	if err := wait(ctx, m.latency); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]FolderInfo, 0, len(folderOrder))
	for _, f := range folderOrder {
		info := FolderInfo{ID: f.ID, Name: f.Name}
		for _, e := range m.emails {
			if e.Folder != f.ID {
				continue
			}
			info.Count++
			if !e.Read {
				info.UnreadCount++
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Emails は指定フォルダのメールをタイムスタンプ降順で返す。
func (m *Mailbox) Emails(ctx context.Context, folder Folder) ([]Email, error) {
	if err := wait(ctx, m.latency); err != nil {
		return nil, err
	}
	if err := m.consume(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Email
	for _, e := range m.emails {
		if e.Folder == folder {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// EmailByID は指定IDのメールを返す。見つからない場合はnilを返す。
func (m *Mailbox) EmailByID(ctx context.Context, id string) (*Email, error) {
	if err := wait(ctx, m.latency); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.emails {
		if m.emails[i].ID == id {
			e := m.emails[i]
			return &e, nil
		}
	}
	return nil, nil
}

// Send はメールを生成して「已发送」フォルダに追加する。
func (m *Mailbox) Send(ctx context.Context, to, cc, bcc []string, subject, content string) (*Email, error) {
	if err := wait(ctx, m.latency); err != nil {
		return nil, err
	}
	if err := m.consume(); err != nil {
		return nil, err
	}

	email := Email{
		ID:        uuid.New().String(),
		From:      m.account.Email,
		To:        to,
		Cc:        cc,
		Bcc:       bcc,
		Subject:   subject,
		Content:   content,
		Timestamp: time.Now(),
		Read:      true,
		Folder:    FolderSent,
	}

	m.mu.Lock()
	m.emails = append([]Email{email}, m.emails...)
	m.mu.Unlock()

	return &email, nil
}

// MarkRead は指定メールを既読にする。見つからない場合はfalseを返す。
func (m *Mailbox) MarkRead(ctx context.Context, id string) (bool, error) {
	if err := wait(ctx, m.latency); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.emails {
		if m.emails[i].ID == id {
			m.emails[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

// ToggleStar は指定メールのスター状態を反転する。見つからない場合はfalseを返す。
func (m *Mailbox) ToggleStar(ctx context.Context, id string) (bool, error) {
	if err := wait(ctx, m.latency); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.emails {
		if m.emails[i].ID == id {
			m.emails[i].Starred = !m.emails[i].Starred
			return true, nil
		}
	}
	return false, nil
}

// Delete は指定メールを「垃圾箱」フォルダへ移動する。見つからない場合はfalseを返す。
func (m *Mailbox) Delete(ctx context.Context, id string) (bool, error) {
	if err := wait(ctx, m.latency); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.emails {
		if m.emails[i].ID == id {
			m.emails[i].Folder = FolderTrash
			return true, nil
		}
	}
	return false, nil
}
