package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	// 空の場合、記事・コメント・問い合わせの永続化はシード/スキップへ縮退する。
	DatabaseURL string

	// Local slot (pebble)
	SlotPath string

	// Simulation
	SimLatency time.Duration

	// SMTP（問い合わせ通知）
	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailTo       string

	// Rate Limit
	RateLimitGeneral int
	RateLimitContact int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須の環境変数はない。DATABASE_URLやSMTP設定が未設定の場合、
// 該当機能は縮退モードで動作する。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.SlotPath = getEnvString("SLOT_PATH", "data/slots")
	cfg.SimLatency = getEnvDuration("SIM_LATENCY", 300*time.Millisecond)

	cfg.SMTPAddr = os.Getenv("SMTP_ADDR")
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.MailFrom = getEnvString("MAIL_FROM", "blog@localhost")
	cfg.MailTo = os.Getenv("MAIL_TO")

	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitContact = getEnvInt("RATE_LIMIT_CONTACT", 5)

	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
