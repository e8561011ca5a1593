package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hafidmst/qrcafe/internal/product"
	"github.com/hafidmst/qrcafe/internal/table"
)

// listTablesHandler returns all active tables.
// @Summary List tables
// @Produce json
// @Success 200 {object} map[string]any
// @Router /tables [get]
func listTablesHandler(repo table.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.ListActive(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tables"})
			return
		}
		if out == nil {
			out = []table.Table{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
	}
}

// getTableByNumberHandler resolves a scanned table number.
// @Summary Get a table by number
// @Produce json
// @Param number path int true "table number"
// @Success 200 {object} map[string]any
// @Failure 404 {object} product.HTTPError
// @Router /tables/{number} [get]
func getTableByNumberHandler(repo table.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := strconv.Atoi(c.Param("number"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table number"})
			return
		}
		t, err := repo.GetActiveByNumber(c.Request.Context(), number)
		if err != nil {
			if errors.Is(err, table.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": t})
	}
}

// createTableHandler registers an ordering point and mints its QR URL.
// @Summary Create a table
// @Accept json
// @Produce json
// @Param body body table.CreateTableRequest true "table"
// @Success 201 {object} map[string]any
// @Failure 400 {object} product.HTTPError
// @Router /tables [post]
func createTableHandler(repo table.Repository, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req table.CreateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.TableNumber <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table number"})
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		t := &table.Table{
			ID:          uuid.NewString(),
			TableNumber: req.TableNumber,
			QRCode:      fmt.Sprintf("%s/table/%d", baseURL, req.TableNumber),
			IsActive:    active,
		}
		if err := repo.Create(c.Request.Context(), t); err != nil {
			if errors.Is(err, table.ErrAlreadyExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Table number already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": t})
	}
}

// listProductsHandler returns the available menu with categories.
// @Summary List products
// @Produce json
// @Success 200 {object} map[string]any
// @Router /products [get]
func listProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.ListAvailable(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if out == nil {
			out = []product.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
	}
}

// createProductHandler adds a menu entry.
// @Summary Create a product
// @Accept json
// @Produce json
// @Param body body product.CreateProductRequest true "product"
// @Success 201 {object} map[string]any
// @Failure 400 {object} product.HTTPError
// @Router /products [post]
func createProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.Name == "" || req.Price == "" || req.CategoryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price and category_id are required"})
			return
		}

		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		p := &product.Product{
			ID:                   uuid.NewString(),
			Name:                 req.Name,
			Description:          req.Description,
			Price:                req.Price,
			CategoryID:           req.CategoryID,
			ImageURL:             req.ImageURL,
			IsAvailable:          available,
			CustomizationOptions: req.CustomizationOptions,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
	}
}
