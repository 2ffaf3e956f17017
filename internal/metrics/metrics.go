// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordMessageSent(platform string)
	RecordMessageSendFailure(platform string)
	RecordSendLatency(duration time.Duration)
	RecordMomentCreated()
	RecordContactSubmission()
	RecordLoginAttempt(success bool)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus         *prometheus.CounterVec
	messagesSent       *prometheus.CounterVec
	messageSendFail    *prometheus.CounterVec
	sendLatency        prometheus.Histogram
	momentsCreated     prometheus.Counter
	contactSubmissions prometheus.Counter
	loginAttempts      *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_messages_sent_total",
			Help: "プラットフォーム別のメッセージ送信成功の合計数",
		}, []string{"platform"}),
		messageSendFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_message_send_fail_total",
			Help: "プラットフォーム別のメッセージ送信失敗の合計数",
		}, []string{"platform"}),
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogd_send_latency_seconds",
			Help:    "メッセージ送信のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		momentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogd_moments_created_total",
			Help: "作成された動態の合計数",
		}),
		contactSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogd_contact_submissions_total",
			Help: "受け付けた問い合わせの合計数",
		}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_login_attempts_total",
			Help: "結果別のログイン試行の合計数",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.messagesSent,
		c.messageSendFail,
		c.sendLatency,
		c.momentsCreated,
		c.contactSubmissions,
		c.loginAttempts,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordMessageSent はメッセージ送信成功をプラットフォーム別に記録する。
func (c *Collector) RecordMessageSent(platform string) {
	c.messagesSent.WithLabelValues(platform).Inc()
}

// RecordMessageSendFailure はメッセージ送信失敗をプラットフォーム別に記録する。
func (c *Collector) RecordMessageSendFailure(platform string) {
	c.messageSendFail.WithLabelValues(platform).Inc()
}

// RecordSendLatency はメッセージ送信のレイテンシを記録する。
func (c *Collector) RecordSendLatency(duration time.Duration) {
	c.sendLatency.Observe(duration.Seconds())
}

// RecordMomentCreated は動態作成を記録する。
func (c *Collector) RecordMomentCreated() {
	c.momentsCreated.Inc()
}

// RecordContactSubmission は問い合わせ受け付けを記録する。
func (c *Collector) RecordContactSubmission() {
	c.contactSubmissions.Inc()
}

// RecordLoginAttempt はログイン試行を結果別に記録する。
func (c *Collector) RecordLoginAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.loginAttempts.WithLabelValues(result).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
