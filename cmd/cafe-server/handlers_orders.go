package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hafidmst/qrcafe/internal/metrics"
	"github.com/hafidmst/qrcafe/internal/order"
	"github.com/hafidmst/qrcafe/internal/profile"
)

// createOrderHandler accepts a cart for a table and persists a pending order.
// @Summary Create an order
// @Accept json
// @Produce json
// @Param body body order.CreateOrderRequest true "cart"
// @Success 201 {object} map[string]any
// @Failure 400 {object} product.HTTPError
// @Failure 500 {object} product.HTTPError
// @Router /orders [post]
func createOrderHandler(svc *order.Service, auth *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		var userID *string
		if p := identify(c, auth); p != nil {
			userID = &p.ID
		}

		o, items, tbl, err := svc.Create(c.Request.Context(), &req, userID)
		if err != nil {
			switch {
			case errors.Is(err, order.ErrInvalidTable):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table"})
			case errors.Is(err, order.ErrNoItems):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no items"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		metrics.OrdersCreated.Inc()
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"id":             o.ID,
				"order_number":   o.OrderNumber,
				"user_id":        o.UserID,
				"table_id":       o.TableID,
				"total_amount":   o.TotalAmount,
				"status":         o.Status,
				"payment_status": o.PaymentStatus,
				"notes":          o.Notes,
				"table":          tbl,
				"items":          items,
			},
		})
	}
}

// listOrdersHandler lists orders filtered by user and/or status.
// @Summary List orders
// @Produce json
// @Param user_id query string false "filter by user"
// @Param status query string false "filter by status"
// @Success 200 {object} map[string]any
// @Router /orders [get]
func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := order.Filter{
			UserID: c.Query("user_id"),
			Status: c.Query("status"),
		}
		if f.Status != "" && !order.ValidStatus(f.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		out, err := repo.List(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if out == nil {
			out = []order.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
	}
}

// getOrderHandler returns one order with its joined items/table/profile.
// @Summary Get an order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} product.HTTPError
// @Router /orders/{id} [get]
func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := repo.GetDetail(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": d})
	}
}

// patchOrderHandler applies a field patch, gated to the order owner or an
// elevated role.
// @Summary Update an order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param body body order.UpdateOrderRequest true "fields"
// @Success 200 {object} map[string]any
// @Failure 403 {object} product.HTTPError
// @Router /orders/{id} [patch]
func patchOrderHandler(repo order.Repository, auth *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		p := identify(c, auth)
		canUpdate := false
		if p != nil {
			if profile.Elevated(p.Role) {
				canUpdate = true
			} else if o, err := repo.GetByID(c.Request.Context(), id); err == nil {
				canUpdate = o.UserID != nil && *o.UserID == p.ID
			}
		}
		if !canUpdate {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}

		var req order.UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		fields := map[string]any{}
		if req.Status != nil {
			if !order.ValidStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			fields["status"] = *req.Status
		}
		if req.PaymentStatus != nil {
			if !order.ValidPaymentStatus(*req.PaymentStatus) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
				return
			}
			fields["payment_status"] = *req.PaymentStatus
		}
		if req.Notes != nil {
			fields["notes"] = *req.Notes
		}

		updated, err := repo.UpdateFields(c.Request.Context(), id, fields)
		if err != nil {
			switch {
			case errors.Is(err, order.ErrInvalidPatch):
				c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields"})
			case errors.Is(err, order.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}
