package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hafidmst/qrcafe/internal/httpx"
	"github.com/hafidmst/qrcafe/internal/metrics"
	"github.com/hafidmst/qrcafe/internal/order"
	"github.com/hafidmst/qrcafe/internal/payment"
	"github.com/hafidmst/qrcafe/internal/ratelimit"
)

// createPaymentSessionHandler obtains a hosted-payment token for an order.
// @Summary Create a payment session
// @Accept json
// @Produce json
// @Param body body payment.SessionRequest true "transaction"
// @Success 200 {object} payment.Session
// @Failure 400 {object} product.HTTPError
// @Failure 500 {object} product.HTTPError
// @Router /payment/create-session [post]
func createPaymentSessionHandler(client *payment.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.SessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		sess, err := client.CreateSession(c.Request.Context(), &req)
		if err != nil {
			var gwErr *payment.GatewayError
			switch {
			case errors.Is(err, payment.ErrMissingTransaction):
				metrics.PaymentSessions.WithLabelValues("rejected").Inc()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required transaction details"})
			case errors.Is(err, payment.ErrNotConfigured):
				metrics.PaymentSessions.WithLabelValues("misconfigured").Inc()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment configuration error"})
			case errors.As(err, &gwErr):
				metrics.PaymentSessions.WithLabelValues("gateway_error").Inc()
				c.JSON(http.StatusInternalServerError, gin.H{"error": gwErr.Message})
			default:
				metrics.PaymentSessions.WithLabelValues("error").Inc()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		metrics.PaymentSessions.WithLabelValues("created").Inc()
		c.JSON(http.StatusOK, sess)
	}
}

// paymentWebhookHandler receives asynchronous payment-status notifications
// from the gateway. The rate limit fires before any other validation.
// @Summary Payment gateway webhook
// @Accept json
// @Produce json
// @Param body body payment.Notification true "notification"
// @Success 200 {object} map[string]any
// @Failure 404 {object} product.HTTPError
// @Failure 413 {object} product.HTTPError
// @Failure 415 {object} product.HTTPError
// @Failure 429 {object} product.HTTPError
// @Router /webhooks/payment [post]
func paymentWebhookHandler(rec *payment.Reconciler, limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := httpx.ClientIP(c.Request)
		if !limiter.Allow(clientIP) {
			metrics.WebhooksProcessed.WithLabelValues("rate_limited").Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		if c.Request.ContentLength > payment.MaxNotificationBytes {
			metrics.WebhooksProcessed.WithLabelValues("too_large").Inc()
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large"})
			return
		}
		if ct := c.ContentType(); !strings.Contains(ct, "application/json") {
			metrics.WebhooksProcessed.WithLabelValues("bad_media_type").Inc()
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Invalid content type"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, payment.MaxNotificationBytes)
		var n payment.Notification
		if err := json.NewDecoder(c.Request.Body).Decode(&n); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				metrics.WebhooksProcessed.WithLabelValues("too_large").Inc()
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large"})
				return
			}
			metrics.WebhooksProcessed.WithLabelValues("malformed").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload structure"})
			return
		}

		result, err := rec.Process(c.Request.Context(), &n, clientIP)
		if err != nil {
			switch {
			case errors.Is(err, payment.ErrMalformedNotification):
				metrics.WebhooksProcessed.WithLabelValues("malformed").Inc()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload structure"})
			case errors.Is(err, order.ErrNotFound):
				metrics.WebhooksProcessed.WithLabelValues("order_not_found").Inc()
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			default:
				metrics.WebhooksProcessed.WithLabelValues("error").Inc()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			}
			return
		}

		outcome := "no_change"
		if result.Applied {
			outcome = "applied"
		} else if result.Duplicate {
			outcome = "duplicate"
		}
		metrics.WebhooksProcessed.WithLabelValues(outcome).Inc()

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"order": gin.H{
				"order_number":   result.Order.OrderNumber,
				"status":         result.OrderStatus,
				"payment_status": result.PaymentStatus,
			},
		})
	}
}
