// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, content, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeMomentNotFound   = "MOMENT_NOT_FOUND"
	ErrCodePostNotFound     = "POST_NOT_FOUND"
	ErrCodeContactNotFound  = "CONTACT_NOT_FOUND"
	ErrCodeLoginFailed      = "LOGIN_FAILED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInvalidFilter    = "INVALID_FILTER"
	ErrCodeDatabaseRequired = "DATABASE_REQUIRED"
)

// NewValidationError はバリデーション失敗エラーを生成する。
// violationsには違反したルールの全リストを格納する（最初の1件だけではない）。
func NewValidationError(violations []string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力内容に誤りがあります: %v", violations),
		Category: "validation",
		Action:   "入力内容を確認して再度送信してください。",
	}
}

// NewMomentNotFoundError は動態未検出エラーを生成する。
func NewMomentNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeMomentNotFound,
		Message:  fmt.Sprintf("指定された動態が見つかりません: %s", id),
		Category: "content",
		Action:   "動態IDを確認してください。",
	}
}

// NewPostNotFoundError は記事未検出エラーを生成する。
func NewPostNotFoundError(slug string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された記事が見つかりません: %s", slug),
		Category: "content",
		Action:   "記事のスラッグを確認してください。",
	}
}

// NewLoginFailedError はログイン失敗エラーを生成する。
// 資格情報の不一致は詳細を明かさず、常に同一の汎用メッセージを返す。
func NewLoginFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeLoginFailed,
		Message:  "用户名或密码错误",
		Category: "auth",
		Action:   "ユーザー名とパスワードを確認してください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作には管理者権限が必要です。",
		Category: "auth",
		Action:   "管理者としてログインしてください。",
	}
}

// NewDatabaseRequiredError はDB未設定エラーを生成する。
// 記事の作成・更新・削除などの書き込み系管理操作はDB接続が前提になる。
func NewDatabaseRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeDatabaseRequired,
		Message:  "この操作にはデータベース接続が必要です。",
		Category: "system",
		Action:   "DATABASE_URLを設定してサーバーを再起動してください。",
	}
}

// NewInvalidFilterError は無効なフィルタエラーを生成する。
func NewInvalidFilterError(filter string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFilter,
		Message:  fmt.Sprintf("無効なフィルタです: %s", filter),
		Category: "validation",
		Action:   "フィルタには all、qq、wechat、email のいずれかを指定してください。",
	}
}
