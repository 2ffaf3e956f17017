// Package app はアプリケーションの初期化と起動を担当する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/blogd/internal/blog"
	"github.com/hitoshi/blogd/internal/config"
	"github.com/hitoshi/blogd/internal/contact"
	"github.com/hitoshi/blogd/internal/database"
	"github.com/hitoshi/blogd/internal/handler"
	"github.com/hitoshi/blogd/internal/localslot"
	"github.com/hitoshi/blogd/internal/logger"
	"github.com/hitoshi/blogd/internal/message"
	"github.com/hitoshi/blogd/internal/metrics"
	"github.com/hitoshi/blogd/internal/middleware"
	"github.com/hitoshi/blogd/internal/moment"
	"github.com/hitoshi/blogd/internal/platform"
	"github.com/hitoshi/blogd/internal/repository"
	"github.com/hitoshi/blogd/internal/security"
	"github.com/hitoshi/blogd/internal/session"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DATABASE_URL未設定の場合はDBなしの縮退モード（シード記事のみ・問い合わせ保存スキップ）で動作する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続（任意）
	var (
		postRepo    repository.PostRepository
		commentRepo repository.PostCommentRepository
		contactRepo repository.ContactMessageRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		postRepo = repository.NewPostgresPostRepo(db)
		commentRepo = repository.NewPostgresPostCommentRepo(db)
		contactRepo = repository.NewPostgresContactRepo(db)

		slog.Info("database connection established")
	} else {
		slog.Info("DATABASE_URL not set, running without database persistence")
	}

	// 2. ローカルストレージスロット（pebble）
	slot, err := localslot.Open(cfg.SlotPath)
	if err != nil {
		return fmt.Errorf("failed to open local slot: %w", err)
	}
	defer slot.Close()

	// 3. プラットフォームシミュレーター
	qq := platform.NewQQ(cfg.SimLatency)
	wechat := platform.NewWeChat(cfg.SimLatency)
	mailbox := platform.NewMailbox(cfg.SimLatency)

	// 4. ドメインサービスの初期化
	sessionStore := session.NewStore(slot, session.WithLatency(cfg.SimLatency))

	blogService := blog.NewService(
		postRepo, commentRepo,
		blog.NewRenderer(security.NewContentSanitizer()),
	)
	momentService := moment.NewService(slot, moment.WithLatency(cfg.SimLatency))
	messageService := message.NewService(
		message.WithLatency(cfg.SimLatency),
		message.WithPresence(qq, wechat, mailbox),
	)

	var mailer contact.Mailer
	if cfg.SMTPAddr != "" && cfg.MailTo != "" {
		mailer = contact.NewSMTPMailer(
			cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.MailFrom, cfg.MailTo, slog.Default(),
		)
	} else {
		slog.Info("SMTP not configured, contact notifications disabled")
	}
	contactService := contact.NewService(contactRepo, mailer, slog.Default())

	// 5. メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 6. レート制限（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.ContactRate = rate.Limit(float64(cfg.RateLimitContact) / 60.0)
	rateLimiterCfg.ContactBurst = cfg.RateLimitContact
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		AdminChecker:      sessionStore,
		Logger:            slog.Default(),

		BlogService:    blogService,
		MomentService:  momentService,
		MessageService: messageService,
		ContactService: contactService,
		SessionStore:   sessionStore,

		QQ:      qq,
		WeChat:  wechat,
		Mailbox: mailbox,

		Metrics:         collector,
		MetricsGatherer: registry,
		StatusRecorder:  collector,
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSEストリーム（/api/session/watch）を保持するため無制限
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for migrations")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	version, err := database.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully",
		slog.Uint64("schema_version", uint64(version)),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
