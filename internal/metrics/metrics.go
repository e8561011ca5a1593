// Package metrics exposes prometheus counters for the ordering flow.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrcafe_orders_created_total",
		Help: "Orders accepted and persisted.",
	})

	PaymentSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrcafe_payment_sessions_total",
		Help: "Payment session requests by outcome.",
	}, []string{"outcome"})

	WebhooksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrcafe_webhooks_processed_total",
		Help: "Webhook notifications by outcome.",
	}, []string{"outcome"})

	SignatureMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrcafe_webhook_signature_mismatches_total",
		Help: "Notifications whose signature did not verify.",
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) { h.ServeHTTP(c.Writer, c.Request) }
}
