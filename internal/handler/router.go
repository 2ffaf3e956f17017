package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogd/internal/metrics"
	"github.com/hitoshi/blogd/internal/middleware"
	"github.com/hitoshi/blogd/internal/platform"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	AdminChecker      middleware.AdminChecker
	Logger            *slog.Logger

	// サービス
	BlogService    BlogServiceInterface
	MomentService  MomentServiceInterface
	MessageService MessageServiceInterface
	ContactService ContactServiceInterface
	SessionStore   SessionStoreInterface

	// プラットフォームシミュレーター
	QQ      *platform.ChatSimulator
	WeChat  *platform.ChatSimulator
	Mailbox *platform.Mailbox

	// メトリクス。Collectorがnilの場合は記録をスキップする
	Metrics         metrics.MetricsCollector
	MetricsGatherer prometheus.Gatherer
	StatusRecorder  middleware.StatusRecorder
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics → RateLimit(General)
//
// 管理者専用ルートはRequireAdminで保護し、問い合わせ送信には専用のレート制限を重ねる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.StatusRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.StatusRecorder))
	}

	postHandler := NewPostHandler(deps.BlogService)
	momentHandler := NewMomentHandler(deps.MomentService, deps.Metrics)
	messageHandler := NewMessageHandler(deps.MessageService)
	contactHandler := NewContactHandler(deps.ContactService, deps.Metrics)
	sessionHandler := NewSessionHandler(deps.SessionStore, deps.Metrics)
	platformHandler := NewPlatformHandler(deps.QQ, deps.WeChat, deps.Mailbox, deps.Metrics)

	// ヘルスチェック（レート制限の外）
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheusスクレイプ（レート制限の外）
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		// --- 公開ルート ---

		// 記事
		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", postHandler.ListPosts)
			r.Get("/tags", postHandler.ListTags)

			// 作成・更新・削除は管理者専用。更新・削除はスラッグではなく
			// 記事IDで指定するため/manage配下に置く
			adminOnly := middleware.NewRequireAdminMiddleware(deps.AdminChecker)
			r.With(adminOnly).Post("/", postHandler.CreatePost)
			r.Route("/manage/{id}", func(r chi.Router) {
				r.With(adminOnly).Put("/", postHandler.UpdatePost)
				r.With(adminOnly).Delete("/", postHandler.DeletePost)
			})

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", postHandler.GetPost)
				r.Get("/html", postHandler.RenderPost)
				r.Get("/comments", postHandler.ListComments)
				r.Post("/comments", postHandler.AddComment)
			})
		})

		// 動態フィード（閲覧・いいね・コメントは公開）
		r.Route("/api/moments", func(r chi.Router) {
			r.Get("/", momentHandler.ListMoments)

			// 投稿・編集・削除・リセットは管理者専用
			adminOnly := middleware.NewRequireAdminMiddleware(deps.AdminChecker)
			r.With(adminOnly).Post("/", momentHandler.AddMoment)
			r.With(adminOnly).Post("/reset", momentHandler.ResetMoments)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", momentHandler.GetMoment)
				r.Post("/like", momentHandler.LikeMoment)
				r.Post("/comments", momentHandler.AddMomentComment)

				r.With(adminOnly).Put("/", momentHandler.UpdateMoment)
				r.With(adminOnly).Delete("/", momentHandler.DeleteMoment)
			})
		})

		// 問い合わせフォーム（送信専用レート制限を追加）
		if deps.RateLimiter != nil {
			r.With(deps.RateLimiter.ContactMiddleware()).Post("/api/contact", contactHandler.Submit)
		} else {
			r.Post("/api/contact", contactHandler.Submit)
		}

		// セッション管理
		r.Route("/api/session", func(r chi.Router) {
			r.Post("/login", sessionHandler.Login)
			r.Post("/logout", sessionHandler.Logout)
			r.Get("/me", sessionHandler.Me)
			r.Get("/watch", sessionHandler.Watch)
		})

		// --- 管理者専用ルート ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewRequireAdminMiddleware(deps.AdminChecker))

			// 問い合わせメッセージの閲覧・既読化
			r.Get("/api/contact", contactHandler.ListMessages)
			r.Put("/api/contact/{id}/read", contactHandler.MarkMessageRead)

			// 統合メッセージセンター
			r.Route("/api/messages", func(r chi.Router) {
				r.Get("/", messageHandler.ListMessages)
				r.Get("/stats", messageHandler.GetStats)
				r.Get("/status", messageHandler.GetStatus)

				r.Route("/{id}", func(r chi.Router) {
					r.Put("/read", messageHandler.MarkRead)
					r.Delete("/", messageHandler.DeleteMessage)
				})
			})

			// プラットフォームシミュレーター
			r.Route("/api/platforms", func(r chi.Router) {
				// メール（具体パスをチャットの{name}より先に定義する）
				r.Route("/email", func(r chi.Router) {
					r.Post("/login", platformHandler.MailLogin)
					r.Post("/logout", platformHandler.MailLogout)
					r.Get("/folders", platformHandler.MailFolders)
					r.Get("/emails", platformHandler.MailEmails)
					r.Post("/send", platformHandler.MailSend)

					r.Route("/emails/{id}", func(r chi.Router) {
						r.Get("/", platformHandler.MailEmail)
						r.Put("/read", platformHandler.MailMarkRead)
						r.Put("/star", platformHandler.MailToggleStar)
						r.Delete("/", platformHandler.MailDelete)
					})
				})

				// チャット（QQ / 微信）
				r.Route("/{name}", func(r chi.Router) {
					r.Post("/login", platformHandler.ChatLogin)
					r.Post("/logout", platformHandler.ChatLogout)
					r.Get("/contacts", platformHandler.ChatContacts)
					r.Get("/messages/{contactID}", platformHandler.ChatMessages)
					r.Post("/send", platformHandler.ChatSend)
				})
			})
		})
	})

	return r
}
