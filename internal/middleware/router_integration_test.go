package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// TestRouterIntegration_AdminProtectedRoutes は
// RequireAdmin ミドルウェアがchi.Routerのグループで正しく動作することを検証する。
func TestRouterIntegration_AdminProtectedRoutes(t *testing.T) {
	isAdmin := false
	checker := &mockAdminChecker{
		isAdminFn: func() bool { return isAdmin },
	}

	r := chi.NewRouter()

	// 公開エンドポイント
	r.Get("/api/posts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// 管理者専用ルートグループ
	r.Group(func(r chi.Router) {
		r.Use(NewRequireAdminMiddleware(checker))

		r.Delete("/api/moments/{id}", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"deleted": chi.URLParam(r, "id")})
		})
	})

	// テスト1: 公開エンドポイントは誰でも通る
	t.Run("public_route_as_visitor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
		}
	})

	// テスト2: 管理者専用ルートはvisitorで403
	t.Run("admin_route_as_visitor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/moments/1", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
		}
	})

	// テスト3: 管理者専用ルートはadminで通る
	t.Run("admin_route_as_admin", func(t *testing.T) {
		isAdmin = true
		defer func() { isAdmin = false }()

		req := httptest.NewRequest(http.MethodDelete, "/api/moments/1", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
		}

		var body map[string]string
		json.NewDecoder(w.Result().Body).Decode(&body)
		if body["deleted"] != "1" {
			t.Errorf("deleted = %q, want %q", body["deleted"], "1")
		}
	})
}

// TestRouterIntegration_ContactRateLimitRoute は
// 問い合わせエンドポイントだけに厳しいレート制限がかかることを検証する。
func TestRouterIntegration_ContactRateLimitRoute(t *testing.T) {
	cfg := RateLimiterConfig{
		GeneralRate:     100,
		GeneralBurst:    200,
		ContactRate:     1,
		ContactBurst:    1,
		CleanupInterval: 1 * time.Minute,
	}

	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	r := chi.NewRouter()
	r.Use(rl.GeneralMiddleware())

	r.Get("/api/posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(rl.ContactMiddleware())
		r.Post("/api/contact", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	})

	// 問い合わせ1回目は通る
	req1 := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req1.RemoteAddr = "10.8.0.1:50000"
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, req1)

	if w1.Result().StatusCode != http.StatusCreated {
		t.Errorf("first contact: status = %d, want %d", w1.Result().StatusCode, http.StatusCreated)
	}

	// 問い合わせ2回目は429
	req2 := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req2.RemoteAddr = "10.8.0.1:50000"
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	if w2.Result().StatusCode != http.StatusTooManyRequests {
		t.Errorf("second contact: status = %d, want %d", w2.Result().StatusCode, http.StatusTooManyRequests)
	}

	// 一般エンドポイントは引き続き通る
	req3 := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req3.RemoteAddr = "10.8.0.1:50000"
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req3)

	if w3.Result().StatusCode != http.StatusOK {
		t.Errorf("general route: status = %d, want %d", w3.Result().StatusCode, http.StatusOK)
	}
}
