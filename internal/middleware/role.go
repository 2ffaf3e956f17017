package middleware

import (
	"net/http"

	"github.com/hitoshi/blogd/internal/model"
)

// AdminChecker は現在のブラウザセッションが管理者かを判定する。
type AdminChecker interface {
	IsAdmin() bool
}

// NewRequireAdminMiddleware は管理者専用エンドポイントを保護するミドルウェアを返す。
// 管理者ロールでない場合は403を統一エラーフォーマットで返す。
func NewRequireAdminMiddleware(checker AdminChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.IsAdmin() {
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
