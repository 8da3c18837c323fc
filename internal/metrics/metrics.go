// Package metrics はレジ操作のprometheusメトリクスを持つ。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// カート変更の件数（add / remove / clear）
	CartMutations *prometheus.CounterVec

	// 失敗したリスナーの件数（トピック別）
	ListenerFailures *prometheus.CounterVec

	// 完了した会計の件数
	SalesCompleted prometheus.Counter

	// 開いている端末セッション数
	OpenTerminals prometheus.Gauge
}

// regに登録する。テストでは prometheus.NewRegistry() を渡す。
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CartMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_cart_mutations_total",
			Help: "Total cart mutations by kind",
		}, []string{"kind"}),

		ListenerFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_cart_listener_failures_total",
			Help: "Total cart listener failures by topic",
		}, []string{"topic"}),

		SalesCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_completed_total",
			Help: "Total completed sales",
		}),

		OpenTerminals: f.NewGauge(prometheus.GaugeOpts{
			Name: "pos_open_terminals",
			Help: "Number of open terminal sessions",
		}),
	}
}

func (m *Metrics) IncMutation(kind string) {
	if m != nil {
		m.CartMutations.WithLabelValues(kind).Inc()
	}
}

// event.Reporter として使える
func (m *Metrics) ListenerFailed(topic string, _ error) {
	if m != nil {
		m.ListenerFailures.WithLabelValues(topic).Inc()
	}
}

func (m *Metrics) IncSale() {
	if m != nil {
		m.SalesCompleted.Inc()
	}
}

func (m *Metrics) TerminalOpened() {
	if m != nil {
		m.OpenTerminals.Inc()
	}
}

func (m *Metrics) TerminalClosed() {
	if m != nil {
		m.OpenTerminals.Dec()
	}
}
